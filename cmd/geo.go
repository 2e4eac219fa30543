package cmd

import (
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/spf13/cobra"
)

func newGeoCmd() *cobra.Command {
	var (
		timespan  string
		maxPoints int
	)

	cmd := &cobra.Command{
		Use:     "geo <query...>",
		Short:   "List locations mentioned in coverage",
		Example: `  gdeltctl geo protest --max 50 --json`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "timespan", "timespan", timespan)
			setIfChanged(cmd, args, "max", "maxpoints", maxPoints)
			return runTool(cmd, mcptools.ToolGeoSearch, args)
		},
	}

	cmd.Flags().StringVarP(&timespan, "timespan", "t", "1d", "time window ending now")
	cmd.Flags().IntVarP(&maxPoints, "max", "n", 100, "maximum number of locations (1-1000)")
	return cmd
}
