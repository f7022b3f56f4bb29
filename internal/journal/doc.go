// Package journal keeps a local SQLite history of sync runs. It is
// observability only: journal failures are logged and never fail a sync,
// and nothing in the reconciliation reads from it.
package journal
