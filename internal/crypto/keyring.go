package crypto

import "strings"

// Keyring provides secure storage for per-user database keys
type Keyring interface {
	GetKey(username string) (string, error)
	SetKey(username, password string) error
	DeleteKey(username string) error
	IsAvailable() bool
}

const (
	ServiceName = "satchel"
	keyPrefix   = "db-key-"
)

// keyName returns the keyring entry name for a user. Usernames are
// lowercased to match the database file naming.
func keyName(username string) string {
	return keyPrefix + strings.ToLower(username)
}

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
