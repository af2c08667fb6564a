package app

import (
	"fmt"

	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/crypto"
	"github.com/andy/invoicegen/internal/email"
)

// App is the dependency injection container for all application components
type App struct {
	Config  *config.Config
	Keyring crypto.Keyring
	Sender  *email.Sender
}

// New creates a new App instance, initializing all dependencies:
// 1. Loading config
// 2. Reading the email API key from the keyring (optional; the app
//    works without it and falls back to the mail client)
// 3. Creating the email sender
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	keyring := crypto.NewKeyring()

	// A missing key is not an error: the sender detects the missing
	// credential and uses the mail-client fallback.
	publicKey, err := keyring.GetKey()
	if err != nil {
		publicKey = ""
	}

	sender := email.NewSender(email.Config{
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  publicKey,
	})

	return &App{
		Config:  cfg,
		Keyring: keyring,
		Sender:  sender,
	}, nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
