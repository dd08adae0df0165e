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

// GetKey retrieves the database key from the SATCHEL_DB_KEY environment
// variable. The variable covers whichever user is logging in, so on
// platforms without a keychain each user exports their own key before
// starting a session.
func (k *fallbackKeyring) GetKey(username string) (string, error) {
	key := os.Getenv("SATCHEL_DB_KEY")
	if key == "" {
		return "", errors.New("SATCHEL_DB_KEY environment variable not set")
	}

	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *fallbackKeyring) SetKey(username, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please set SATCHEL_DB_KEY environment variable to '%s'", password)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteKey(username string) error {
	return errors.New("keyring not available on this platform: please unset SATCHEL_DB_KEY environment variable manually")
}

// IsAvailable checks if the SATCHEL_DB_KEY environment variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv("SATCHEL_DB_KEY") != ""
}
