package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stylus/internal/discogs"
	"stylus/internal/logging"
	"stylus/internal/release"
	"stylus/internal/services"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut  bool
		noVerify bool
		token    string
	)

	cmd := &cobra.Command{
		Use:   "lookup <artist> <title>",
		Short: "Find the earliest pressing of a track on Discogs",
		Long: `Search Discogs for a track and report its earliest pressing.

Candidates are sorted by year and verified oldest-first by fetching each
release's tracklist until one actually contains the track. Verification
costs one extra API request per candidate; --no-verify trusts the oldest
search hit instead.

Examples:
  stylus lookup "Pink Floyd" "Time"
  stylus lookup --json "Nick Drake" "River Man"
  stylus lookup --no-verify "Kraftwerk" "Autobahn"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			resolved := strings.TrimSpace(token)
			if resolved == "" {
				resolved = cfg.Discogs.Token
			}
			client, err := discogs.New(resolved, cfg.Discogs.BaseURL, cfg.Discogs.UserAgent)
			if err != nil {
				return fmt.Errorf("create discogs client: %w", err)
			}
			resolver := release.New(client, release.WithLogger(logger))

			query := release.Query{Artist: args[0], Title: args[1]}
			result, err := resolver.FindEarliest(cmd.Context(), query, !noVerify)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					fmt.Fprintf(cmd.ErrOrStderr(), "No results found for '%s - %s'\n", args[0], args[1])
					return errReported
				}
				return err
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printLookupResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip tracklist verification requests")
	cmd.Flags().StringVar(&token, "token", "", "Discogs API token (overrides config and DISCOGS_TOKEN)")

	return cmd
}

// printLookupResult writes the aligned human-readable field list.
func printLookupResult(out io.Writer, result *release.Result) {
	fmt.Fprintf(out, "Artist:  %s\n", result.Artist)
	fmt.Fprintf(out, "Title:   %s\n", result.Title)
	fmt.Fprintf(out, "Year:    %s\n", yearOrNA(result.Year))
	fmt.Fprintf(out, "Genre:   %s\n", joinOrNA(result.Genres))
	fmt.Fprintf(out, "Style:   %s\n", joinOrNA(result.Styles))
	fmt.Fprintf(out, "Label:   %s\n", valueOrNA(result.Label))
	fmt.Fprintf(out, "Format:  %s\n", valueOrNA(result.Format))
	fmt.Fprintf(out, "Country: %s\n", valueOrNA(result.Country))
	fmt.Fprintf(out, "Discogs: %s\n", result.ReleaseURL)
}

func yearOrNA(year int) string {
	if year <= 0 {
		return "N/A"
	}
	return strconv.Itoa(year)
}

func joinOrNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}
	return strings.Join(values, ", ")
}

func valueOrNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
