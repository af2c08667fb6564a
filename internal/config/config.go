package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Default company info for new invoices
	Company CompanyConfig `yaml:"company"`

	// Email service settings (the credential lives in the keyring)
	Email EmailConfig `yaml:"email"`
}

type InvoiceConfig struct {
	DefaultDueDays int     `yaml:"default_due_days"` // Days until invoice due
	DefaultTaxRate float64 `yaml:"default_tax_rate"` // Percentage (12 = 12%)
	NumberPrefix   string  `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
	DateFormat     string  `yaml:"date_format"`      // Locale tag or "long"
	OutputDir      string  `yaml:"output_dir"`       // Directory for exported documents
}

type CompanyConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
}

type EmailConfig struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
}

// DefaultConfigPath returns ~/.config/invoicegen/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicegen", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoicegen", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Invoice: InvoiceConfig{
			DefaultDueDays: 30,
			DefaultTaxRate: 0.0,
			NumberPrefix:   "INV",
			DateFormat:     "en-US",
			OutputDir:      filepath.Join(homeDir, ".config", "invoicegen", "exports"),
		},
		Company: CompanyConfig{},
		Email:   EmailConfig{},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the export output directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Invoice.OutputDir, 0755)
}
