package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"zotsync/internal/services"
)

const (
	// KeyLibraryID names the library-identifier secret within the service.
	KeyLibraryID = "library_id"
	// KeyAPIKey names the API-key secret within the service.
	KeyAPIKey = "api_key"

	envLibraryID = "ZOTERO_LIBRARY_ID"
	envAPIKey    = "ZOTERO_API_KEY"
)

// Credentials is the resolved pair the Zotero client needs. The core never
// touches the underlying store directly.
type Credentials struct {
	LibraryID string
	APIKey    string
}

// Store is an opaque key-to-secret lookup under a fixed service name.
type Store interface {
	Get(service, key string) (string, error)
	Set(service, key, secret string) error
}

// SystemStore is backed by the OS keyring (Keychain on macOS, Secret
// Service on Linux, Credential Manager on Windows).
type SystemStore struct{}

func (SystemStore) Get(service, key string) (string, error) {
	secret, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("keyring get %s/%s: %w", service, key, err)
	}
	return secret, nil
}

func (SystemStore) Set(service, key, secret string) error {
	if err := keyring.Set(service, key, secret); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", service, key, err)
	}
	return nil
}

// Source identifies where a credential value came from.
type Source string

const (
	SourceKeyring     Source = "keyring"
	SourceEnvironment Source = "environment"
	SourceMissing     Source = "missing"
)

// Status reports per-credential provenance for diagnostics.
type Status struct {
	LibraryID Source
	APIKey    Source
}

// Resolver looks up the credential pair in a store, optionally falling back
// to ZOTERO_LIBRARY_ID / ZOTERO_API_KEY for headless machines without a
// keyring.
type Resolver struct {
	store    Store
	service  string
	allowEnv bool
}

// NewResolver constructs a Resolver for the given service name.
func NewResolver(store Store, service string, allowEnv bool) *Resolver {
	if store == nil {
		store = SystemStore{}
	}
	return &Resolver{store: store, service: strings.TrimSpace(service), allowEnv: allowEnv}
}

// Resolve returns the credential pair or a credentials error naming what is
// missing and how to fix it.
func (r *Resolver) Resolve() (Credentials, error) {
	libraryID, _, err := r.lookup(KeyLibraryID, envLibraryID)
	if err != nil {
		return Credentials{}, services.Wrap(services.ErrCredentials, "credentials", "resolve", KeyLibraryID, err)
	}
	apiKey, _, err := r.lookup(KeyAPIKey, envAPIKey)
	if err != nil {
		return Credentials{}, services.Wrap(services.ErrCredentials, "credentials", "resolve", KeyAPIKey, err)
	}

	var missing []string
	if libraryID == "" {
		missing = append(missing, KeyLibraryID)
	}
	if apiKey == "" {
		missing = append(missing, KeyAPIKey)
	}
	if len(missing) > 0 {
		hint := fmt.Sprintf("missing %s for service %q; run `zotsync credentials set`", strings.Join(missing, ", "), r.service)
		if r.allowEnv {
			hint += fmt.Sprintf(" or export %s and %s", envLibraryID, envAPIKey)
		}
		return Credentials{}, services.Wrap(services.ErrCredentials, "credentials", "resolve", hint, nil)
	}

	return Credentials{LibraryID: libraryID, APIKey: apiKey}, nil
}

// Status reports where each credential would be read from without failing.
func (r *Resolver) Status() (Status, error) {
	_, libSource, err := r.lookup(KeyLibraryID, envLibraryID)
	if err != nil {
		return Status{}, err
	}
	_, keySource, err := r.lookup(KeyAPIKey, envAPIKey)
	if err != nil {
		return Status{}, err
	}
	return Status{LibraryID: libSource, APIKey: keySource}, nil
}

// Save writes both credentials to the store.
func (r *Resolver) Save(creds Credentials) error {
	libraryID := strings.TrimSpace(creds.LibraryID)
	apiKey := strings.TrimSpace(creds.APIKey)
	if libraryID == "" || apiKey == "" {
		return services.Wrap(services.ErrCredentials, "credentials", "save", "library id and api key are both required", nil)
	}
	if err := r.store.Set(r.service, KeyLibraryID, libraryID); err != nil {
		return services.Wrap(services.ErrCredentials, "credentials", "save", KeyLibraryID, err)
	}
	if err := r.store.Set(r.service, KeyAPIKey, apiKey); err != nil {
		return services.Wrap(services.ErrCredentials, "credentials", "save", KeyAPIKey, err)
	}
	return nil
}

func (r *Resolver) lookup(key, envName string) (value string, source Source, err error) {
	value, err = r.store.Get(r.service, key)
	if err != nil {
		return "", SourceMissing, err
	}
	if value = strings.TrimSpace(value); value != "" {
		return value, SourceKeyring, nil
	}
	if r.allowEnv {
		if env := strings.TrimSpace(os.Getenv(envName)); env != "" {
			return env, SourceEnvironment, nil
		}
	}
	return "", SourceMissing, nil
}
