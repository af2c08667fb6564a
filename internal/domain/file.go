package domain

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadFile reads an invoice from a YAML file. This is input for the
// preview/export/send commands, not persistence; the app never writes
// invoices back.
func LoadFile(path string) (*Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice file: %w", err)
	}

	var inv Invoice
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse invoice file: %w", err)
	}

	// Hand-written files often omit IDs; assign them so edits stay stable.
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == "" {
			inv.LineItems[i].ID = uuid.NewString()
		}
	}
	for i := range inv.AdditionalCharges {
		if inv.AdditionalCharges[i].ID == "" {
			inv.AdditionalCharges[i].ID = uuid.NewString()
		}
		if inv.AdditionalCharges[i].Kind == "" {
			inv.AdditionalCharges[i].Kind = ChargeFixed
		}
	}

	return &inv, nil
}
