package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"zotsync/internal/config"
	"zotsync/internal/credentials"
	"zotsync/internal/journal"
	"zotsync/internal/logging"
	"zotsync/internal/services/logseq"
	"zotsync/internal/services/zotero"
	"zotsync/internal/tagsync"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var tagOverride string

	cmd := &cobra.Command{
		Use:   "sync [graph]",
		Short: "Reconcile the Logseq graph against the Zotero library",
		Long: `Extracts every Zotero item referenced from the Logseq graph, diffs it
against the items already carrying the marker tag, and tags the difference.
Safe to re-run: items keep the tag exactly once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, ctx, args, dryRun, tagOverride)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the pending set without tagging anything")
	cmd.Flags().StringVar(&tagOverride, "tag", "", "Marker tag to apply (overrides config)")
	return cmd
}

func runSync(cmd *cobra.Command, ctx *commandContext, args []string, dryRun bool, tagOverride string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String(logging.FieldRunID, runID))
	out := cmd.OutOrStdout()

	lock := flock.New(cfg.Run.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", cfg.Run.LockPath, err)
	}
	if !locked {
		return fmt.Errorf("another zotsync run holds %s; try again once it finishes", cfg.Run.LockPath)
	}
	defer func() { _ = lock.Unlock() }()

	graphSource, err := logseq.New(cfg.Logseq.Binary, cfg.Logseq.URLProperty, cfg.Logseq.QueryTimeout)
	if err != nil {
		return err
	}

	graph := cfg.Logseq.Graph
	if len(args) == 1 {
		graph = strings.TrimSpace(args[0])
	}
	if graph == "" {
		graph, err = graphSource.AutoDetectGraph(cmd.Context())
		if err != nil {
			return fmt.Errorf("%w\nUsage: zotsync sync [GRAPH]", err)
		}
		logger.Info("graph auto-detected", slog.String(logging.FieldGraph, graph))
	}

	resolver := credentials.NewResolver(nil, cfg.Credentials.Service, cfg.Credentials.AllowEnv)
	creds, err := resolver.Resolve()
	if err != nil {
		return err
	}

	library, err := zotero.New(zotero.Config{
		BaseURL:     cfg.Zotero.BaseURL,
		LibraryType: cfg.Zotero.LibraryType,
		LibraryID:   creds.LibraryID,
		APIKey:      creds.APIKey,
		PageLimit:   cfg.Zotero.PageLimit,
		MaxRetries:  cfg.Zotero.MaxRetries,
		Timeout:     cfg.RequestTimeout(),
	})
	if err != nil {
		return err
	}

	tag := cfg.Zotero.Tag
	if override := strings.TrimSpace(tagOverride); override != "" {
		tag = override
	}

	fmt.Fprintf(out, "Syncing Logseq graph %q to Zotero tag %q\n", graph, tag)
	if dryRun {
		fmt.Fprintln(out, "Dry run: no items will be modified")
	}

	started := time.Now()
	pipeline := tagsync.New(graphSource, library, tag, logger)
	summary, err := pipeline.Run(cmd.Context(), tagsync.Options{
		Graph:    graph,
		DryRun:   dryRun,
		Reporter: newConsoleReporter(out, dryRun),
	})
	if err != nil {
		return err
	}

	recordRun(cmd, cfg, logger, journal.Entry{
		RunID:         runID,
		Graph:         graph,
		Tag:           tag,
		DryRun:        summary.DryRun,
		Outcome:       outcomeLabel(summary),
		TotalFound:    summary.TotalFound,
		AlreadyTagged: summary.AlreadyTagged,
		Attempted:     summary.Attempted,
		Succeeded:     summary.Succeeded,
		Failed:        summary.Failed,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	})

	printSummary(out, summary, tag)
	if !summary.Ok() {
		return fmt.Errorf("%d of %d items failed to tag", summary.Failed, summary.Attempted)
	}
	return nil
}

func outcomeLabel(summary *tagsync.RunSummary) string {
	switch {
	case summary.DryRun:
		return journal.OutcomeDryRun
	case summary.Ok():
		return journal.OutcomeOK
	default:
		return journal.OutcomePartial
	}
}

// recordRun appends the run to the journal. Best effort: a journal problem
// never fails a sync that already mutated the remote library.
func recordRun(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, entry journal.Entry) {
	if !cfg.Journal.Enabled {
		return
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn("journal unavailable", slog.Any("error", err))
		return
	}
	defer store.Close()
	if err := store.Append(cmd.Context(), entry); err != nil {
		logger.Warn("journal append failed", slog.Any("error", err))
	}
}
