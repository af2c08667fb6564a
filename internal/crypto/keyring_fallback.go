//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

// GetKey retrieves the email API key from the INVOICEGEN_EMAIL_KEY environment variable
func (k *fallbackKeyring) GetKey() (string, error) {
	key := os.Getenv("INVOICEGEN_EMAIL_KEY")
	if key == "" {
		return "", errors.New("INVOICEGEN_EMAIL_KEY environment variable not set")
	}

	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *fallbackKeyring) SetKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please set INVOICEGEN_EMAIL_KEY environment variable to '%s'", key)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteKey() error {
	return errors.New("keyring not available on this platform: please unset INVOICEGEN_EMAIL_KEY environment variable manually")
}

// IsAvailable checks if the INVOICEGEN_EMAIL_KEY environment variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv("INVOICEGEN_EMAIL_KEY") != ""
}
