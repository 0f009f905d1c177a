package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stylus/internal/logging"
	"stylus/internal/lookupcache"
)

const cacheStampLayout = "2006-01-02 15:04"

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the lookup cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

// openLookupCache returns the configured cache, or nil when caching is
// disabled.
func openLookupCache(ctx *commandContext) (*lookupcache.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.LookupCachePath()
	if path == "" {
		return nil, nil
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return lookupcache.New(path, logger), nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached lookup results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cache == nil {
				fmt.Fprintln(out, "Lookup cache is disabled; enable [lookup_cache] in the configuration")
				return nil
			}
			entries := cache.List()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Lookup cache is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				year := ""
				if entry.Result.Year > 0 {
					year = strconv.Itoa(entry.Result.Year)
				}
				rows = append(rows, []string{
					entry.Artist,
					entry.Title,
					year,
					entry.Result.Label,
					entry.CachedAt.Local().Format(cacheStampLayout),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Artist", "Title", "Year", "Label", "Cached"}, rows))
			fmt.Fprintf(out, "%d cached lookups\n", len(entries))
			return nil
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <artist> <title>",
		Short: "Remove one cached lookup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cache == nil {
				fmt.Fprintln(out, "Lookup cache is disabled; enable [lookup_cache] in the configuration")
				return nil
			}
			if err := cache.Remove(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed cached lookup for '%s - %s'\n", args[0], args[1])
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openLookupCache(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cache == nil {
				fmt.Fprintln(out, "Lookup cache is disabled; enable [lookup_cache] in the configuration")
				return nil
			}
			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %d cached lookups\n", count)
			return nil
		},
	}
}
