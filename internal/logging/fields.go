package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for run identifiers.
	FieldRunID = "run_id"
	// FieldGraph is the standardized structured logging key for the Logseq graph name.
	FieldGraph = "graph"
	// FieldTag is the standardized structured logging key for the marker tag.
	FieldTag = "tag"
	// FieldItemKey is the standardized structured logging key for Zotero item keys.
	FieldItemKey = "item_key"
)

// WithComponent returns a logger whose records carry the component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger.With(slog.String(FieldComponent, component))
}
