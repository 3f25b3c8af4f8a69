// Package credential keeps secrets such as the push token in the system
// keyring.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/99designs/keyring"
)

const serviceName = "tgift"

// KeyPushToken is the keyring key holding the push token.
const KeyPushToken = "push-token"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("credential not found")

// Store reads and writes named secrets.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Keyring is a Store backed by the OS keyring, falling back to an
// encrypted file under the data directory.
type Keyring struct {
	cfg keyring.Config
}

// NewKeyring returns a Keyring whose file backend lives in dataDir.
func NewKeyring(dataDir string) *Keyring {
	return &Keyring{cfg: keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(dataDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("tgift-file-key"),
		KeychainTrustApplication: true,
	}}
}

// openKeyring returns a configured keyring instance.
func (k *Keyring) openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(k.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key.
func (k *Keyring) Get(key string) (string, error) {
	ring, err := k.openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key.
func (k *Keyring) Set(key, value string) error {
	ring, err := k.openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "tgift " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential. Deleting a missing key is not an error.
func (k *Keyring) Delete(key string) error {
	ring, err := k.openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// Memory is an in-process Store, used when no keyring is wanted.
type Memory struct {
	items map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.items[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.items, key)
	return nil
}
