// Package credentials provides secure token storage for the mintel CLI.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used in the system keyring.
	keyringService = "mintel-cli"
	// calendarTokenUser is the account name for the calendar API token.
	calendarTokenUser = "calendar-token"

	// EnvCalendarToken overrides keyring lookup when set.
	EnvCalendarToken = "MINTEL_CALENDAR_TOKEN"
)

// ErrKeyringUnavailable indicates the system keyring is not available.
var ErrKeyringUnavailable = errors.New("system keyring unavailable")

// ErrTokenNotFound indicates no token has been stored.
var ErrTokenNotFound = errors.New("token not found")

// TokenProvider obtains the bearer token for the calendar service.
type TokenProvider interface {
	// Token returns the stored token, or ErrTokenNotFound.
	Token() (string, error)

	// Description returns a human-readable description of the storage mechanism.
	Description() string
}

// EnvTokenProvider reads the token from the environment. Used in CI and
// containers where no keyring exists.
type EnvTokenProvider struct{}

// NewEnvTokenProvider creates a new EnvTokenProvider.
func NewEnvTokenProvider() *EnvTokenProvider {
	return &EnvTokenProvider{}
}

// Token returns the token from $MINTEL_CALENDAR_TOKEN.
func (p *EnvTokenProvider) Token() (string, error) {
	if v := os.Getenv(EnvCalendarToken); v != "" {
		return v, nil
	}
	return "", ErrTokenNotFound
}

// Description returns a description of this provider.
func (p *EnvTokenProvider) Description() string {
	return "environment variable (" + EnvCalendarToken + ")"
}

// KeyringTokenProvider stores the token in the system keyring
// (macOS Keychain, Windows Credential Manager, Linux Secret Service).
type KeyringTokenProvider struct {
	mu sync.Mutex
}

// NewKeyringTokenProvider creates a new KeyringTokenProvider.
func NewKeyringTokenProvider() *KeyringTokenProvider {
	return &KeyringTokenProvider{}
}

// Token retrieves the calendar token from the system keyring.
func (p *KeyringTokenProvider) Token() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	token, err := keyring.Get(keyringService, calendarTokenUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetToken stores the calendar token in the system keyring.
func (p *KeyringTokenProvider) SetToken(token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := keyring.Set(keyringService, calendarTokenUser, token); err != nil {
		return fmt.Errorf("%w: storing token: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// DeleteToken removes the calendar token from the system keyring.
func (p *KeyringTokenProvider) DeleteToken() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := keyring.Delete(keyringService, calendarTokenUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("%w: deleting token: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Description returns a description of this provider.
func (p *KeyringTokenProvider) Description() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	default:
		return "System Keyring (Secret Service)"
	}
}

// ChainTokenProvider tries providers in order, returning the first token
// found. The environment beats the keyring so container deployments can
// override a stale stored token.
type ChainTokenProvider struct {
	providers []TokenProvider
}

// NewChainTokenProvider creates a chain over the given providers.
func NewChainTokenProvider(providers ...TokenProvider) *ChainTokenProvider {
	return &ChainTokenProvider{providers: providers}
}

// DefaultTokenProvider returns the standard chain: environment first,
// then the system keyring.
func DefaultTokenProvider() *ChainTokenProvider {
	return NewChainTokenProvider(NewEnvTokenProvider(), NewKeyringTokenProvider())
}

// Token returns the first token found in the chain.
func (p *ChainTokenProvider) Token() (string, error) {
	for _, provider := range p.providers {
		token, err := provider.Token()
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrTokenNotFound) {
			return "", err
		}
	}
	return "", ErrTokenNotFound
}

// Description lists the chained providers.
func (p *ChainTokenProvider) Description() string {
	desc := ""
	for i, provider := range p.providers {
		if i > 0 {
			desc += ", then "
		}
		desc += provider.Description()
	}
	return desc
}
