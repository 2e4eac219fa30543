package cmd

import (
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/spf13/cobra"
)

func newImagesCmd() *cobra.Command {
	var (
		timespan   string
		maxRecords int
	)

	cmd := &cobra.Command{
		Use:     "images <query...>",
		Short:   "List articles that carry a social image",
		Example: `  gdeltctl images volcano --timespan 1w`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "timespan", "timespan", timespan)
			setIfChanged(cmd, args, "max", "maxrecords", maxRecords)
			return runTool(cmd, mcptools.ToolImageSearch, args)
		},
	}

	cmd.Flags().StringVarP(&timespan, "timespan", "t", "3d", "time window ending now")
	cmd.Flags().IntVarP(&maxRecords, "max", "n", 75, "maximum number of articles to scan (1-250)")
	return cmd
}
