package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExtraction marks unusable note-graph query output. Hard failure;
	// no tagging is attempted.
	ErrExtraction = errors.New("extraction error")
	// ErrRemoteQuery marks a failed tagged-set fetch after retries were
	// exhausted. Hard failure; no tagging is attempted.
	ErrRemoteQuery = errors.New("remote query error")
	// ErrVersionConflict marks an item update rejected because another
	// client modified the item after it was read. Recovered per item.
	ErrVersionConflict = errors.New("version conflict")
	// ErrRemoteUpdate marks any other per-item fetch/update failure.
	// Recovered per item.
	ErrRemoteUpdate = errors.New("remote update error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrCredentials marks missing or unreadable credentials.
	ErrCredentials = errors.New("credentials error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrRemoteUpdate
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HardFailure reports whether the error aborts the whole run before any
// mutation, as opposed to a per-item failure folded into the run summary.
func HardFailure(err error) bool {
	return errors.Is(err, ErrExtraction) ||
		errors.Is(err, ErrRemoteQuery) ||
		errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrCredentials)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
