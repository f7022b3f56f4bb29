package services_test

import (
	"errors"
	"testing"

	"zotsync/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	base := errors.New("connection reset")
	err := services.Wrap(services.ErrRemoteQuery, "zotero", "items-by-tag", "page 2", base)
	if !errors.Is(err, services.ErrRemoteQuery) {
		t.Fatalf("expected wrapped error to match ErrRemoteQuery: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain the cause: %v", err)
	}
	want := "remote query error: zotero: items-by-tag: page 2: connection reset"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrRemoteUpdate) {
		t.Fatalf("expected nil marker to default to ErrRemoteUpdate: %v", err)
	}
	if err.Error() != "remote update error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestHardFailureClassification(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		expect bool
	}{
		{"extraction", services.Wrap(services.ErrExtraction, "logseq", "query", "", nil), true},
		{"remote query", services.Wrap(services.ErrRemoteQuery, "zotero", "items-by-tag", "", nil), true},
		{"configuration", services.ErrConfiguration, true},
		{"credentials", services.ErrCredentials, true},
		{"version conflict", services.Wrap(services.ErrVersionConflict, "zotero", "update", "", nil), false},
		{"remote update", services.ErrRemoteUpdate, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := services.HardFailure(tc.err); got != tc.expect {
			t.Errorf("%s: HardFailure=%v want %v", tc.name, got, tc.expect)
		}
	}
}
