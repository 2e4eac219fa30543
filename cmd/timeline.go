package cmd

import (
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	var (
		timespan     string
		timelineType string
		smooth       int
		start, end   string
	)

	cmd := &cobra.Command{
		Use:   "timeline <query...>",
		Short: "Chart coverage of a query over time",
		Long: `Show how coverage of a query changes over time. --type selects the
measure: volume (share of monitored coverage), tone (average tone),
language or sourcecountry. Only the first series is shown for the
language and sourcecountry breakdowns.`,
		Example: `  gdeltctl timeline earthquake
  gdeltctl timeline '"interest rates"' --type tone --timespan 2m --smooth 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "timespan", "timespan", timespan)
			setIfChanged(cmd, args, "type", "timeline_type", timelineType)
			setIfChanged(cmd, args, "smooth", "smooth", smooth)
			setIfChanged(cmd, args, "start", "start_datetime", start)
			setIfChanged(cmd, args, "end", "end_datetime", end)
			return runTool(cmd, mcptools.ToolTimeline, args)
		},
	}

	cmd.Flags().StringVarP(&timespan, "timespan", "t", "1w", "time window ending now")
	cmd.Flags().StringVar(&timelineType, "type", "volume", "measure (volume|tone|language|sourcecountry)")
	cmd.Flags().IntVar(&smooth, "smooth", 0, "moving average window in steps (1-30)")
	cmd.Flags().StringVar(&start, "start", "", "absolute window start (YYYYMMDD[HH[MM[SS]]])")
	cmd.Flags().StringVar(&end, "end", "", "absolute window end (YYYYMMDD[HH[MM[SS]]])")
	return cmd
}
