package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeZotero(); err != nil {
		return err
	}
	c.normalizeLogseq()
	c.normalizeCredentials()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeRun()
}

func (c *Config) normalizeZotero() error {
	c.Zotero.BaseURL = strings.TrimRight(strings.TrimSpace(c.Zotero.BaseURL), "/")
	if c.Zotero.BaseURL == "" {
		c.Zotero.BaseURL = defaultZoteroBaseURL
	}
	c.Zotero.LibraryType = strings.ToLower(strings.TrimSpace(c.Zotero.LibraryType))
	if c.Zotero.LibraryType == "" {
		c.Zotero.LibraryType = defaultZoteroLibraryType
	}
	c.Zotero.Tag = strings.TrimSpace(c.Zotero.Tag)
	if c.Zotero.Tag == "" {
		c.Zotero.Tag = defaultMarkerTag
	}
	if c.Zotero.PageLimit <= 0 {
		c.Zotero.PageLimit = defaultPageLimit
	}
	if c.Zotero.MaxRetries < 0 {
		return fmt.Errorf("zotero.max_retries must not be negative (got %d)", c.Zotero.MaxRetries)
	}
	if c.Zotero.RequestTimeout <= 0 {
		c.Zotero.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizeLogseq() {
	c.Logseq.Binary = strings.TrimSpace(c.Logseq.Binary)
	if c.Logseq.Binary == "" {
		c.Logseq.Binary = defaultLogseqBinary
	}
	c.Logseq.Graph = strings.TrimSpace(c.Logseq.Graph)
	c.Logseq.URLProperty = strings.TrimSpace(c.Logseq.URLProperty)
	if c.Logseq.URLProperty == "" {
		c.Logseq.URLProperty = defaultURLProperty
	}
	if c.Logseq.QueryTimeout <= 0 {
		c.Logseq.QueryTimeout = defaultQueryTimeout
	}
}

func (c *Config) normalizeCredentials() {
	c.Credentials.Service = strings.TrimSpace(c.Credentials.Service)
	if c.Credentials.Service == "" {
		c.Credentials.Service = defaultCredentialsService
	}
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRun() error {
	if strings.TrimSpace(c.Run.LockPath) == "" {
		c.Run.LockPath = defaultLockPath
	}
	var err error
	if c.Run.LockPath, err = expandPath(c.Run.LockPath); err != nil {
		return fmt.Errorf("run.lock_path: %w", err)
	}
	return nil
}
