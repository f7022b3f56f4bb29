package logseq_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"zotsync/internal/services"
	"zotsync/internal/services/logseq"
)

type stubExecutor struct {
	output []byte
	err    error
	calls  int
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	return s.output, s.err
}

func TestReferencesRunsQueryAndParses(t *testing.T) {
	exec := &stubExecutor{output: []byte(sampleQueryOutput)}
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	refs, err := client.References(context.Background(), "My Graph")
	if err != nil {
		t.Fatalf("References returned error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}

	if exec.calls != 1 {
		t.Fatalf("expected one CLI invocation, got %d", exec.calls)
	}
	args := exec.args[0]
	if len(args) != 3 || args[0] != "query" || args[1] != "My Graph" {
		t.Fatalf("unexpected CLI args: %v", args)
	}
	if !strings.Contains(args[2], ":user.property/ZoteroURL-om1JHnZv") {
		t.Fatalf("query missing url property: %q", args[2])
	}
}

func TestReferencesWrapsCLIFailure(t *testing.T) {
	exec := &stubExecutor{err: errors.New("exit status 1: graph not found")}
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.References(context.Background(), "Missing")
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if !strings.Contains(err.Error(), "graph not found") {
		t.Fatalf("expected CLI stderr detail preserved: %v", err)
	}
}

func TestReferencesRequiresGraphName(t *testing.T) {
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.References(context.Background(), "  "); !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected ErrExtraction for blank graph, got %v", err)
	}
}

func TestGraphsParsesDBSection(t *testing.T) {
	exec := &stubExecutor{output: []byte(`File Graphs:
  old-notes
DB Graphs:
  2025-10-26 Logseq DB
  Research Graph
`)}
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	graphs, err := client.Graphs(context.Background())
	if err != nil {
		t.Fatalf("Graphs returned error: %v", err)
	}
	want := []string{"2025-10-26 Logseq DB", "Research Graph"}
	if len(graphs) != len(want) {
		t.Fatalf("unexpected graphs: %v", graphs)
	}
	for i := range want {
		if graphs[i] != want[i] {
			t.Fatalf("graphs[%d]: got %q want %q", i, graphs[i], want[i])
		}
	}
	if len(exec.args) != 1 || exec.args[0][0] != "list" {
		t.Fatalf("expected `logseq list` invocation, got %v", exec.args)
	}
}

func TestAutoDetectGraphPicksFirstDBGraph(t *testing.T) {
	exec := &stubExecutor{output: []byte("DB Graphs:\n  Primary\n  Secondary\n")}
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	graph, err := client.AutoDetectGraph(context.Background())
	if err != nil {
		t.Fatalf("AutoDetectGraph returned error: %v", err)
	}
	if graph != "Primary" {
		t.Fatalf("expected first graph, got %q", graph)
	}
}

func TestAutoDetectGraphFailsWithoutDBGraphs(t *testing.T) {
	exec := &stubExecutor{output: []byte("File Graphs:\n  legacy\n")}
	client, err := logseq.New("logseq", "ZoteroURL-om1JHnZv", 5, logseq.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.AutoDetectGraph(context.Background()); !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected ErrExtraction when no DB graphs, got %v", err)
	}
}

func TestNewValidatesInputs(t *testing.T) {
	if _, err := logseq.New("", "prop", 5); err == nil {
		t.Fatal("expected error for missing binary")
	}
	if _, err := logseq.New("logseq", "", 5); err == nil {
		t.Fatal("expected error for missing url property")
	}
}
