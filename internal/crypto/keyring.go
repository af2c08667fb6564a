package crypto

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(key string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "invoicegen"
	KeyName     = "email-api-key"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
