package testsupport

import (
	"path/filepath"
	"testing"

	"zotsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test so
// journal, lock, and log locations never collide between parallel tests.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Dir = filepath.Join(base, "logs")
	cfg.Journal.Path = filepath.Join(base, "journal.db")
	cfg.Run.LockPath = filepath.Join(base, "zotsync.lock")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTag overrides the marker tag on the test config.
func WithTag(tag string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Zotero.Tag = tag
	}
}

// WithGraph sets the default graph on the test config.
func WithGraph(graph string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logseq.Graph = graph
	}
}

// WithJournalDisabled turns the run journal off.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}
