package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"zotsync/internal/services/logseq"
	"zotsync/internal/tagsync"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// consoleReporter prints per-item progress as the tagger walks the pending
// set. Output goes to the command writer, not the logger, so a piped run
// stays machine-quiet while an interactive one shows each item.
type consoleReporter struct {
	out      io.Writer
	dryRun   bool
	colorize bool
}

func newConsoleReporter(out io.Writer, dryRun bool) *consoleReporter {
	return &consoleReporter{out: out, dryRun: dryRun, colorize: writerIsTerminal(out)}
}

func writerIsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (r *consoleReporter) FoundReferences(count int) {
	fmt.Fprintf(r.out, "Found %d referenced item(s) in the graph\n", count)
}

func (r *consoleReporter) TaggedSnapshot(count int) {
	fmt.Fprintf(r.out, "Library already tags %d item(s)\n", count)
}

func (r *consoleReporter) Pending(refs []logseq.NoteReference) {
	if len(refs) == 0 {
		fmt.Fprintln(r.out, "Nothing to tag; library is up to date")
		return
	}
	if r.dryRun {
		fmt.Fprintf(r.out, "Would tag %d item(s):\n", len(refs))
		for _, ref := range refs {
			title := ref.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(r.out, "  - %s: %s\n", ref.Key, title)
		}
		return
	}
	fmt.Fprintf(r.out, "Tagging %d item(s):\n", len(refs))
}

func (r *consoleReporter) ItemDone(index, total int, result tagsync.TagResult) {
	mark := "✓"
	color := ansiGreen
	if !result.Succeeded {
		mark = "✗"
		color = ansiRed
	}
	if r.colorize {
		mark = color + mark + ansiReset
	}

	title := result.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("  [%d/%d] %s %s: %s", index, total, mark, result.Key, title)
	if !result.Succeeded && result.Err != nil {
		line += fmt.Sprintf(" (%v)", result.Err)
	}
	fmt.Fprintln(r.out, line)
}

// renderTable renders rows under headers in the rounded style used across
// the CLI. Count columns named in rightAlign (1-based) are right-aligned;
// everything else stays left-aligned.
func renderTable(headers []string, rows [][]string, rightAlign ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, name := range headers {
		header[i] = name
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		tw.AppendRow(cells)
	}

	if len(rightAlign) > 0 {
		configs := make([]table.ColumnConfig, 0, len(rightAlign))
		for _, column := range rightAlign {
			configs = append(configs, table.ColumnConfig{
				Number:      column,
				Align:       text.AlignRight,
				AlignHeader: text.AlignLeft,
			})
		}
		tw.SetColumnConfigs(configs)
	}

	return tw.Render()
}

func printSummary(out io.Writer, summary *tagsync.RunSummary, tag string) {
	headers := []string{"Metric", "Count"}
	rows := [][]string{
		{"Referenced in graph", strconv.Itoa(summary.TotalFound)},
		{"Already tagged", strconv.Itoa(summary.AlreadyTagged)},
		{"Attempted", strconv.Itoa(summary.Attempted)},
		{"Succeeded", strconv.Itoa(summary.Succeeded)},
		{"Failed", strconv.Itoa(summary.Failed)},
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run summary (tag %q)\n", tag)
	fmt.Fprintln(out, renderTable(headers, rows, 2))

	if failed := summary.FailedResults(); len(failed) > 0 {
		fmt.Fprintln(out, "Failed items:")
		for _, result := range failed {
			fmt.Fprintf(out, "  %s: %v\n", result.Key, result.Err)
		}
	}
	if pending := summary.TotalFound - summary.AlreadyTagged; summary.DryRun && pending > 0 {
		fmt.Fprintf(out, "Dry run: %d item(s) would have been tagged\n", pending)
	}
}
