package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// MinSecretKeyLength is the shortest accepted token signing key.
	MinSecretKeyLength = 32

	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")

	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", MinSecretKeyLength)
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses a placeholder value")
)

var secretKeyPlaceholders = map[string]struct{}{
	"change_me_in_production":                     {},
	"replace_with_at_least_32_random_characters":  {},
	"your_secret_key_here_at_least_32_characters": {},
}

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// GenerateSecretKey returns a random alphanumeric signing key.
func GenerateSecretKey(length int) (string, error) {
	if length < MinSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return RandomString(length, secretKeyAlphabet)
}

// ValidateSecretKey rejects empty, short and well-known example keys.
func ValidateSecretKey(secret string) error {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return ErrSecretKeyMissing
	}
	if _, placeholder := secretKeyPlaceholders[strings.ToLower(trimmed)]; placeholder {
		return ErrSecretKeyPlaceholder
	}
	if len(trimmed) < MinSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}
