// Package config loads, normalizes, and validates zotsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Secrets never live here: the Zotero
// library ID and API key are resolved through the credentials package so the
// config file stays safe to commit or share.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
