package logseq

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"zotsync/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// commandExecutor executes commands using os/exec.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return output, nil
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps Logseq CLI interactions. The desktop application may be
// unavailable, in which case the CLI can hang; every invocation runs under
// the configured timeout.
type Client struct {
	binary      string
	urlProperty string
	timeout     time.Duration
	exec        Executor
}

// New constructs a Logseq client.
func New(binary, urlProperty string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("logseq binary required")
	}
	urlProperty = strings.TrimSpace(urlProperty)
	if urlProperty == "" {
		return nil, errors.New("logseq url property required")
	}
	client := &Client{
		binary:      binary,
		urlProperty: urlProperty,
		timeout:     time.Duration(timeoutSeconds) * time.Second,
		exec:        commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// referenceQuery builds the datalog query selecting every page that carries
// the Zotero URL property, pulling the page title and the property value.
func (c *Client) referenceQuery() string {
	return fmt.Sprintf(
		"[:find (pull ?b [:block/title {:user.property/%s [:block/title]}]) :where [?b :user.property/%s]]",
		c.urlProperty, c.urlProperty,
	)
}

// References queries the graph and extracts the referenced Zotero items.
// CLI failure or empty output is a hard extraction failure.
func (c *Client) References(ctx context.Context, graph string) ([]NoteReference, error) {
	graph = strings.TrimSpace(graph)
	if graph == "" {
		return nil, services.Wrap(services.ErrExtraction, "logseq", "query", "graph name required", nil)
	}

	output, err := c.run(ctx, "query", graph, c.referenceQuery())
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "logseq", "query", fmt.Sprintf("graph %q", graph), err)
	}

	return ParseReferences(string(output))
}

// Graphs lists the DB graphs known to the Logseq CLI.
func (c *Client) Graphs(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "list")
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "logseq", "list-graphs", "", err)
	}
	return parseGraphList(string(output)), nil
}

// AutoDetectGraph returns the first DB graph reported by the CLI.
func (c *Client) AutoDetectGraph(ctx context.Context) (string, error) {
	graphs, err := c.Graphs(ctx)
	if err != nil {
		return "", err
	}
	if len(graphs) == 0 {
		return "", services.Wrap(services.ErrExtraction, "logseq", "list-graphs", "no DB graphs found; pass a graph name", nil)
	}
	return graphs[0], nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, c.binary, args)
}

// parseGraphList extracts graph names from `logseq list` output. The CLI
// groups graphs under section headers; only the "DB Graphs:" section is
// relevant here.
func parseGraphList(raw string) []string {
	var graphs []string
	inSection := false
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, ":") {
			inSection = strings.Contains(trimmed, "DB Graphs")
			continue
		}
		if inSection {
			graphs = append(graphs, trimmed)
		}
	}
	return graphs
}
