package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stylus/internal/batch"
	"stylus/internal/config"
	"stylus/internal/discogs"
	"stylus/internal/filename"
	"stylus/internal/logging"
	"stylus/internal/lookupcache"
	"stylus/internal/release"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var (
		patternFlag  string
		dryRun       bool
		recursive    bool
		useDiscogs   bool
		discogsToken string
	)

	cmd := &cobra.Command{
		Use:   "tag <path>",
		Short: "Tag audio files with artist/title parsed from their filenames",
		Long: `Tag audio files using metadata parsed from their filenames.

The path may be a single file or a directory. Directories are scanned for
audio files (one level deep unless --recursive is set) and each file is
matched against the filename pattern. Files that do not match the pattern
or use an unwritable format are reported as skips; everything else gets
its artist and title tags rewritten in place.

With --discogs each parsed track is also looked up on Discogs and the
earliest pressing's year, genre, and label are written alongside.

Examples:
  stylus tag ~/Music/incoming
  stylus tag -r -n ~/Music/incoming          # recursive dry run
  stylus tag -p "{title} by {artist}" song.mp3
  stylus tag --discogs ~/Music/incoming`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			patternText := strings.TrimSpace(patternFlag)
			if patternText == "" {
				patternText = cfg.Tagging.DefaultPattern
			}
			pattern, err := filename.Compile(patternText)
			if err != nil {
				return err
			}

			opts := []batch.Option{
				batch.WithLogger(logger),
				batch.WithDryRun(dryRun),
			}
			if useDiscogs {
				token := strings.TrimSpace(discogsToken)
				if token == "" {
					token = cfg.Discogs.Token
				}
				client, err := discogs.New(token, cfg.Discogs.BaseURL, cfg.Discogs.UserAgent)
				if err != nil {
					return fmt.Errorf("create discogs client: %w", err)
				}
				opts = append(opts, batch.WithEnricher(release.New(client, release.WithLogger(logger))))
				if cachePath := cfg.LookupCachePath(); cachePath != "" {
					opts = append(opts, batch.WithCache(lookupcache.New(cachePath, logger)))
				}
			}

			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(target); err != nil {
				fmt.Fprintf(out, "Error: Path not found: %s\n", args[0])
				return errReported
			}

			if dryRun {
				fmt.Fprintln(out, "=== DRY RUN (no changes will be made) ===")
				fmt.Fprintln(out)
			}

			colorize := shouldColorize(out)
			processor := batch.New(pattern, opts...)
			summary, err := processor.Run(cmd.Context(), target, recursive, func(result batch.FileResult) {
				fmt.Fprintln(out, renderFileStatus(result, colorize))
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s\n", summary.String())
			if summary.Failed > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&patternFlag, "pattern", "p", "", `Filename pattern (default: [tagging] default_pattern, "{artist} - {title}")`)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be tagged without modifying files")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Scan directories recursively")
	cmd.Flags().BoolVarP(&useDiscogs, "discogs", "d", false, "Enrich tags with year, genre, and label from Discogs")
	cmd.Flags().StringVar(&discogsToken, "discogs-token", "", "Discogs API token (overrides config and DISCOGS_TOKEN)")

	return cmd
}
