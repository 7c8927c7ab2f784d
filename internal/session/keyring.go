package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "habitflow"
	keyringUser    = "active-user"
)

var (
	// ErrNoActiveUser is returned when no user has been selected yet.
	ErrNoActiveUser = errors.New("no active user selected")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// KeyringStore remembers which user the CLI acts for between invocations.
type KeyringStore struct {
	service string
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService}
}

func (store *KeyringStore) ActiveUser() (uint, error) {
	raw, err := keyring.Get(store.service, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return 0, ErrNoActiveUser
		}
		return 0, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	userID, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("stored active user %q is not a valid id", raw)
	}
	return uint(userID), nil
}

func (store *KeyringStore) SetActiveUser(userID uint) error {
	if userID == 0 {
		return errors.New("user id must be positive")
	}
	if err := keyring.Set(store.service, keyringUser, strconv.FormatUint(uint64(userID), 10)); err != nil {
		return fmt.Errorf("store active user in keyring: %w", err)
	}
	return nil
}

// Clear forgets the active user. Clearing an empty store is not an error.
func (store *KeyringStore) Clear() error {
	err := keyring.Delete(store.service, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete active user from keyring: %w", err)
	}
	return nil
}
