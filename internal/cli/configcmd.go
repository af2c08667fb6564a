package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change invoice defaults, company details, and email delivery settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appInstance.Config

		fmt.Println("Invoice defaults:")
		fmt.Printf("  number-prefix:  %s\n", cfg.Invoice.NumberPrefix)
		fmt.Printf("  due-days:       %d\n", cfg.Invoice.DefaultDueDays)
		fmt.Printf("  tax-rate:       %g%%\n", cfg.Invoice.DefaultTaxRate)
		fmt.Printf("  date-format:    %s\n", cfg.Invoice.DateFormat)
		fmt.Printf("  output-dir:     %s\n", cfg.Invoice.OutputDir)
		fmt.Println("Company:")
		fmt.Printf("  name:           %s\n", cfg.Company.Name)
		fmt.Printf("  address:        %s\n", cfg.Company.Address)
		fmt.Printf("  email:          %s\n", cfg.Company.Email)
		fmt.Printf("  phone:          %s\n", cfg.Company.Phone)
		fmt.Println("Email delivery:")
		fmt.Printf("  service-id:     %s\n", cfg.Email.ServiceID)
		fmt.Printf("  template-id:    %s\n", cfg.Email.TemplateID)

		hasKey := false
		if _, err := appInstance.Keyring.GetKey(); err == nil {
			hasKey = true
		}
		fmt.Printf("  api-key:        %s\n", map[bool]string{true: "(stored in keyring)", false: "(not set)"}[hasKey])
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Keys:
  number-prefix, due-days, tax-rate, date-format, output-dir,
  company.name, company.address, company.email, company.phone,
  email.service-id, email.template-id`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appInstance.Config
		key, value := args[0], args[1]

		switch key {
		case "number-prefix":
			cfg.Invoice.NumberPrefix = value
		case "due-days":
			days, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("due-days must be a number: %w", err)
			}
			cfg.Invoice.DefaultDueDays = days
		case "tax-rate":
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("tax-rate must be a number: %w", err)
			}
			cfg.Invoice.DefaultTaxRate = rate
		case "date-format":
			cfg.Invoice.DateFormat = value
		case "output-dir":
			cfg.Invoice.OutputDir = value
		case "company.name":
			cfg.Company.Name = value
		case "company.address":
			cfg.Company.Address = value
		case "company.email":
			cfg.Company.Email = value
		case "company.phone":
			cfg.Company.Phone = value
		case "email.service-id":
			cfg.Email.ServiceID = value
		case "email.template-id":
			cfg.Email.TemplateID = value
		default:
			return fmt.Errorf("unknown key %q", key)
		}

		if err := appInstance.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Set %s\n", key)
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the email API key in the system keyring",
	Long: `Prompt for the email service public key and store it in the
system keyring. The key never touches the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("Email API key: ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		key := strings.TrimSpace(string(keyBytes))
		if key == "" {
			fmt.Fprintln(os.Stderr, "No key entered; nothing stored.")
			return nil
		}

		if err := appInstance.Keyring.SetKey(key); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}

		fmt.Println("✓ Email API key stored in keyring")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
