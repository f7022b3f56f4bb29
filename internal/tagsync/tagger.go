package tagsync

import (
	"context"
	"log/slog"
	"slices"

	"zotsync/internal/logging"
	"zotsync/internal/services/logseq"
	"zotsync/internal/services/zotero"
)

// Library is the slice of the Zotero client the sync needs.
type Library interface {
	ItemsByTag(ctx context.Context, tag string) (map[string]struct{}, error)
	Item(ctx context.Context, key string) (zotero.Item, error)
	UpdateItemTags(ctx context.Context, key string, version int, tags []string) error
}

// Tagger applies the marker tag to pending items one at a time. Each attempt
// re-reads the item so the update carries the current version and full tag
// list; the remote rejects the write if another client modified the record
// in between.
type Tagger struct {
	library Library
	tag     string
	logger  *slog.Logger
}

// NewTagger constructs a Tagger for the marker tag.
func NewTagger(library Library, tag string, logger *slog.Logger) *Tagger {
	return &Tagger{
		library: library,
		tag:     tag,
		logger:  logging.WithComponent(logger, "tagger"),
	}
}

// Apply processes pending in order, recording one TagResult each. A failure
// on one item never aborts the rest of the batch. The report callback, when
// set, observes each result as it lands (1-based index).
func (t *Tagger) Apply(ctx context.Context, pending []logseq.NoteReference, report func(index, total int, result TagResult)) []TagResult {
	results := make([]TagResult, 0, len(pending))
	for i, ref := range pending {
		result := t.applyOne(ctx, ref)
		results = append(results, result)
		if report != nil {
			report(i+1, len(pending), result)
		}
	}
	return results
}

func (t *Tagger) applyOne(ctx context.Context, ref logseq.NoteReference) TagResult {
	item, err := t.library.Item(ctx, ref.Key)
	if err != nil {
		t.logger.Warn("item fetch failed", slog.String(logging.FieldItemKey, ref.Key), slog.Any("error", err))
		return TagResult{Key: ref.Key, Title: ref.Title, Err: err}
	}

	title := item.Title
	if title == "" {
		title = ref.Title
	}

	// The reconciler works from a snapshot; the item may have gained the
	// tag since. Nothing to write in that case.
	if slices.Contains(item.Tags, t.tag) {
		t.logger.Debug("already tagged", slog.String(logging.FieldItemKey, item.Key))
		return TagResult{Key: item.Key, Title: title, Succeeded: true}
	}

	tags := append(slices.Clone(item.Tags), t.tag)
	if err := t.library.UpdateItemTags(ctx, item.Key, item.Version, tags); err != nil {
		t.logger.Warn("item update failed", slog.String(logging.FieldItemKey, item.Key), slog.Any("error", err))
		return TagResult{Key: item.Key, Title: title, Err: err}
	}

	t.logger.Debug("item tagged", slog.String(logging.FieldItemKey, item.Key))
	return TagResult{Key: item.Key, Title: title, Succeeded: true}
}
