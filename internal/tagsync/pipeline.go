package tagsync

import (
	"context"
	"log/slog"

	"zotsync/internal/logging"
	"zotsync/internal/services/logseq"
)

// GraphSource yields the note references extracted from a graph.
type GraphSource interface {
	References(ctx context.Context, graph string) ([]logseq.NoteReference, error)
}

// Reporter receives progress milestones for human-readable output. All
// methods are optional in spirit; NoopReporter satisfies the interface.
type Reporter interface {
	FoundReferences(count int)
	TaggedSnapshot(count int)
	Pending(refs []logseq.NoteReference)
	ItemDone(index, total int, result TagResult)
}

// NoopReporter discards every milestone.
type NoopReporter struct{}

func (NoopReporter) FoundReferences(int)          {}
func (NoopReporter) TaggedSnapshot(int)           {}
func (NoopReporter) Pending([]logseq.NoteReference) {}
func (NoopReporter) ItemDone(int, int, TagResult) {}

// Options controls a single pipeline run.
type Options struct {
	Graph    string
	DryRun   bool
	Reporter Reporter
}

// Pipeline wires the extractor, the tagged-set fetch, the reconciler, and
// the batch tagger into one linear run.
type Pipeline struct {
	source  GraphSource
	library Library
	tag     string
	tagger  *Tagger
	logger  *slog.Logger
}

// New constructs a Pipeline applying the marker tag.
func New(source GraphSource, library Library, tag string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		source:  source,
		library: library,
		tag:     tag,
		tagger:  NewTagger(library, tag, logger),
		logger:  logging.WithComponent(logger, "sync"),
	}
}

// Run executes one reconciliation. Extraction or tagged-set fetch failures
// abort before any mutation; per-item tagging failures are folded into the
// returned summary. Idempotence, not in-process retry, is the correctness
// mechanism: a failed run is simply re-invoked by the scheduler.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*RunSummary, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NoopReporter{}
	}

	found, err := p.source.References(ctx, opts.Graph)
	if err != nil {
		return nil, err
	}
	p.logger.Info("references extracted",
		slog.String(logging.FieldGraph, opts.Graph),
		slog.Int("count", len(found)))
	reporter.FoundReferences(len(found))

	tagged, err := p.library.ItemsByTag(ctx, p.tag)
	if err != nil {
		return nil, err
	}
	p.logger.Info("tagged set fetched",
		slog.String(logging.FieldTag, p.tag),
		slog.Int("count", len(tagged)))
	reporter.TaggedSnapshot(len(tagged))

	pending := Reconcile(found, tagged)
	reporter.Pending(pending)

	summary := &RunSummary{
		TotalFound:    len(found),
		AlreadyTagged: len(found) - len(pending),
		DryRun:        opts.DryRun,
	}

	if len(pending) == 0 || opts.DryRun {
		return summary, nil
	}

	summary.Results = p.tagger.Apply(ctx, pending, reporter.ItemDone)
	summary.Attempted = len(summary.Results)
	for _, result := range summary.Results {
		if result.Succeeded {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	p.logger.Info("run complete",
		slog.Int("attempted", summary.Attempted),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed))
	return summary, nil
}
