package cmd

import (
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/spf13/cobra"
)

func newToneCmd() *cobra.Command {
	var timespan string

	cmd := &cobra.Command{
		Use:     "tone <query...>",
		Short:   "Show the tone distribution of coverage",
		Example: `  gdeltctl tone 'wildfire sourcecountry:australia' --timespan 1w`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "timespan", "timespan", timespan)
			return runTool(cmd, mcptools.ToolToneChart, args)
		},
	}

	cmd.Flags().StringVarP(&timespan, "timespan", "t", "3d", "time window ending now")
	return cmd
}
