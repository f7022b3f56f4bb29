package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"zotsync/internal/credentials"
)

func newCredentialsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the stored Zotero API credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCredentialsSetCommand(ctx))
	cmd.AddCommand(newCredentialsStatusCommand(ctx))
	return cmd
}

func newCredentialsSetCommand(ctx *commandContext) *cobra.Command {
	var libraryID string
	var apiKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Zotero library id and API key in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if strings.TrimSpace(libraryID) == "" {
				libraryID, err = promptValue(reader, out, "Zotero library id: ")
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(apiKey) == "" {
				apiKey, err = promptValue(reader, out, "Zotero API key: ")
				if err != nil {
					return err
				}
			}

			resolver := credentials.NewResolver(nil, cfg.Credentials.Service, cfg.Credentials.AllowEnv)
			if err := resolver.Save(credentials.Credentials{
				LibraryID: libraryID,
				APIKey:    apiKey,
			}); err != nil {
				return err
			}

			fmt.Fprintf(out, "Credentials stored under keyring service %q\n", cfg.Credentials.Service)
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library-id", "", "Zotero library id (prompted when omitted)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Zotero API key (prompted when omitted)")
	return cmd
}

func newCredentialsStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where each credential resolves from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			resolver := credentials.NewResolver(nil, cfg.Credentials.Service, cfg.Credentials.AllowEnv)
			status, err := resolver.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Credential", "Source"},
				[][]string{
					{"library_id", string(status.LibraryID)},
					{"api_key", string(status.APIKey)},
				},
			))
			if status.LibraryID == credentials.SourceMissing || status.APIKey == credentials.SourceMissing {
				fmt.Fprintln(out, "Run `zotsync credentials set` to store the missing values")
			}
			return nil
		},
	}
}

func promptValue(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("a value is required")
	}
	return value, nil
}
