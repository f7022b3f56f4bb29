package credentials_test

import (
	"errors"
	"strings"
	"testing"

	"zotsync/internal/credentials"
	"zotsync/internal/services"
)

type fakeStore struct {
	secrets map[string]string
	getErr  error
}

func (f *fakeStore) Get(service, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.secrets[service+"/"+key], nil
}

func (f *fakeStore) Set(service, key, secret string) error {
	if f.secrets == nil {
		f.secrets = make(map[string]string)
	}
	f.secrets[service+"/"+key] = secret
	return nil
}

func TestResolveFromStore(t *testing.T) {
	store := &fakeStore{secrets: map[string]string{
		"zotero-tag-automation/library_id": "12345",
		"zotero-tag-automation/api_key":    "secret",
	}}
	resolver := credentials.NewResolver(store, "zotero-tag-automation", false)

	creds, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if creds.LibraryID != "12345" || creds.APIKey != "secret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestResolveFallsBackToEnvironment(t *testing.T) {
	t.Setenv("ZOTERO_LIBRARY_ID", "67890")
	t.Setenv("ZOTERO_API_KEY", "env-secret")

	resolver := credentials.NewResolver(&fakeStore{}, "zotero-tag-automation", true)
	creds, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if creds.LibraryID != "67890" || creds.APIKey != "env-secret" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestResolveIgnoresEnvironmentWhenDisabled(t *testing.T) {
	t.Setenv("ZOTERO_LIBRARY_ID", "67890")
	t.Setenv("ZOTERO_API_KEY", "env-secret")

	resolver := credentials.NewResolver(&fakeStore{}, "zotero-tag-automation", false)
	if _, err := resolver.Resolve(); !errors.Is(err, services.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
}

func TestResolveMissingNamesBothKeys(t *testing.T) {
	resolver := credentials.NewResolver(&fakeStore{}, "zotero-tag-automation", true)
	_, err := resolver.Resolve()
	if !errors.Is(err, services.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
	for _, want := range []string{"library_id", "api_key", "credentials set"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected hint mentioning %q, got: %v", want, err)
		}
	}
}

func TestResolveWrapsStoreFailure(t *testing.T) {
	store := &fakeStore{getErr: errors.New("dbus unavailable")}
	resolver := credentials.NewResolver(store, "zotero-tag-automation", true)
	if _, err := resolver.Resolve(); !errors.Is(err, services.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	store := &fakeStore{}
	resolver := credentials.NewResolver(store, "zotero-tag-automation", false)

	err := resolver.Save(credentials.Credentials{LibraryID: " 12345 ", APIKey: " secret "})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	creds, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve after Save returned error: %v", err)
	}
	if creds.LibraryID != "12345" || creds.APIKey != "secret" {
		t.Fatalf("expected trimmed values stored, got %+v", creds)
	}
}

func TestSaveRejectsIncompletePair(t *testing.T) {
	resolver := credentials.NewResolver(&fakeStore{}, "zotero-tag-automation", false)
	if err := resolver.Save(credentials.Credentials{LibraryID: "12345"}); !errors.Is(err, services.ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
}

func TestStatusReportsProvenance(t *testing.T) {
	t.Setenv("ZOTERO_API_KEY", "env-secret")
	store := &fakeStore{secrets: map[string]string{
		"zotero-tag-automation/library_id": "12345",
	}}
	resolver := credentials.NewResolver(store, "zotero-tag-automation", true)

	status, err := resolver.Status()
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.LibraryID != credentials.SourceKeyring {
		t.Fatalf("expected keyring source for library id, got %s", status.LibraryID)
	}
	if status.APIKey != credentials.SourceEnvironment {
		t.Fatalf("expected environment source for api key, got %s", status.APIKey)
	}
}
