package session

import (
	"fmt"

	"github.com/99designs/keyring"
)

// credentialKey is the keyring entry holding the mail access token.
const credentialKey = "gmail-access-token"

// CredentialStore persists the session credential across launches.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// KeyringStore stores the credential in the system keyring, falling back
// to an encrypted file backend where no native keychain exists.
type KeyringStore struct {
	service string
	fileDir string
}

// NewKeyringStore returns a store scoped to the given keyring service
// name. fileDir is used by the file fallback backend.
func NewKeyringStore(service, fileDir string) *KeyringStore {
	return &KeyringStore{service: service, fileDir: fileDir}
}

func (s *KeyringStore) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: s.service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  s.fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(s.service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Load retrieves the stored credential.
func (s *KeyringStore) Load() (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(credentialKey)
	if err != nil {
		return "", fmt.Errorf("getting credential: %w", err)
	}
	return string(item.Data), nil
}

// Save stores the credential.
func (s *KeyringStore) Save(token string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: credentialKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("setting credential: %w", err)
	}
	return nil
}

// Clear removes the credential. A missing entry is not an error.
func (s *KeyringStore) Clear() error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(credentialKey); err != nil && err != keyring.ErrKeyNotFound {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
