package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Zotero contains connection settings for the Zotero Web API.
type Zotero struct {
	BaseURL        string `toml:"base_url"`
	LibraryType    string `toml:"library_type"`
	Tag            string `toml:"tag"`
	PageLimit      int    `toml:"page_limit"`
	MaxRetries     int    `toml:"max_retries"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logseq contains settings for invoking the Logseq CLI.
type Logseq struct {
	Binary       string `toml:"binary"`
	Graph        string `toml:"graph"`
	URLProperty  string `toml:"url_property"`
	QueryTimeout int    `toml:"query_timeout"`
}

// Credentials contains settings for locating the Zotero API credentials.
type Credentials struct {
	Service  string `toml:"service"`
	AllowEnv bool   `toml:"allow_env"`
}

// Journal contains settings for the local run-history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Run contains settings for run coordination.
type Run struct {
	LockPath string `toml:"lock_path"`
}

// Config encapsulates all configuration values for zotsync.
//
// Configuration sections:
//   - Zotero: remote API endpoint, marker tag, paging and retry limits
//   - Logseq: CLI binary, default graph, query timeout
//   - Credentials: keyring service name and env-var fallback
//   - Journal: local run-history database
//   - Logging: log format, level, and directory
//   - Run: lock file guarding against overlapping invocations
type Config struct {
	Zotero      Zotero      `toml:"zotero"`
	Logseq      Logseq      `toml:"logseq"`
	Credentials Credentials `toml:"credentials"`
	Journal     Journal     `toml:"journal"`
	Logging     Logging     `toml:"logging"`
	Run         Run         `toml:"run"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/zotsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("zotsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before any logging or
// journaling happens.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.Dir}
	if c.Journal.Enabled {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	if strings.TrimSpace(c.Run.LockPath) != "" {
		dirs = append(dirs, filepath.Dir(c.Run.LockPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RequestTimeout returns the Zotero per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Zotero.RequestTimeout) * time.Second
}

// QueryTimeout returns the Logseq CLI timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Logseq.QueryTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
