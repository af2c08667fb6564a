package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Invoice.DefaultDueDays != 30 {
		t.Errorf("DefaultDueDays = %d, want 30", cfg.Invoice.DefaultDueDays)
	}
	if cfg.Invoice.NumberPrefix != "INV" {
		t.Errorf("NumberPrefix = %q, want INV", cfg.Invoice.NumberPrefix)
	}
	if cfg.Invoice.DateFormat != "en-US" {
		t.Errorf("DateFormat = %q, want en-US", cfg.Invoice.DateFormat)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Company.Name = "Acme Studio"
	cfg.Company.Address = "12 Hill Road\nMakati"
	cfg.Invoice.DefaultTaxRate = 12
	cfg.Invoice.DateFormat = "long"
	cfg.Email.ServiceID = "service_abc123"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Company.Name != "Acme Studio" {
		t.Errorf("Company.Name = %q", loaded.Company.Name)
	}
	if loaded.Company.Address != "12 Hill Road\nMakati" {
		t.Errorf("Company.Address = %q", loaded.Company.Address)
	}
	if loaded.Invoice.DefaultTaxRate != 12 {
		t.Errorf("DefaultTaxRate = %v", loaded.Invoice.DefaultTaxRate)
	}
	if loaded.Email.ServiceID != "service_abc123" {
		t.Errorf("Email.ServiceID = %q", loaded.Email.ServiceID)
	}
}
