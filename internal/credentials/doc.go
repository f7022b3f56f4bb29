// Package credentials resolves the Zotero library ID and API key from the
// OS keyring, with an optional environment-variable fallback. The service
// name is shared with the original credential setup tooling so existing
// keychain entries keep working.
package credentials
