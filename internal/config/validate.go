package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateZotero(); err != nil {
		return err
	}
	if err := c.validateLogseq(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateZotero() error {
	switch c.Zotero.LibraryType {
	case "user", "group":
	default:
		return fmt.Errorf("zotero.library_type must be \"user\" or \"group\" (got %q)", c.Zotero.LibraryType)
	}
	// The Zotero Web API caps result pages at 100 entries.
	if c.Zotero.PageLimit > 100 {
		return fmt.Errorf("zotero.page_limit must not exceed 100 (got %d)", c.Zotero.PageLimit)
	}
	if c.Zotero.Tag == "" {
		return errors.New("zotero.tag must be set")
	}
	return nil
}

func (c *Config) validateLogseq() error {
	if c.Logseq.Binary == "" {
		return errors.New("logseq.binary must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\" (got %q)", c.Logging.Format)
	}
}
