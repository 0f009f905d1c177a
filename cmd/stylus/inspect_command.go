package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stylus/internal/config"
	"stylus/internal/tagging"
)

func newInspectCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "inspect <file>",
		Short:       "Show the tags currently present in an audio file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			tags, err := tagging.Read(path)
			if err != nil {
				return fmt.Errorf("read tags from %s: %w", args[0], err)
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), tags)
			}

			year := ""
			if tags.Year > 0 {
				year = strconv.Itoa(tags.Year)
			}
			rows := [][]string{
				{"Artist", tags.Artist},
				{"Title", tags.Title},
				{"Year", year},
				{"Genre", tags.Genre},
				{"Label", tags.Label},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the tags as JSON")

	return cmd
}
