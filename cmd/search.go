package cmd

import (
	"github.com/chris-regnier/gdeltctl/internal/mcptools"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		timespan   string
		maxRecords int
		sort       string
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search news articles",
		Long: `Search GDELT for news articles matching a query. The query uses GDELT
syntax: quoted phrases, OR, -exclusions and operators such as domain:,
sourcecountry:, sourcelang: and tone<.`,
		Example: `  gdeltctl search '"climate change"' --timespan 1w
  gdeltctl search 'election sourcecountry:france' --max 20 --sort ToneAsc
  gdeltctl search flood --start 20240101 --end 20240107 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			args := queryArgs(words)
			setIfChanged(cmd, args, "timespan", "timespan", timespan)
			setIfChanged(cmd, args, "max", "maxrecords", maxRecords)
			setIfChanged(cmd, args, "sort", "sort", sort)
			setIfChanged(cmd, args, "start", "start_datetime", start)
			setIfChanged(cmd, args, "end", "end_datetime", end)
			return runTool(cmd, mcptools.ToolSearchArticles, args)
		},
	}

	cmd.Flags().StringVarP(&timespan, "timespan", "t", "3d", "time window ending now (e.g. 15min, 24h, 3d, 1w, 2m)")
	cmd.Flags().IntVarP(&maxRecords, "max", "n", 75, "maximum number of articles (1-250)")
	cmd.Flags().StringVar(&sort, "sort", "DateDesc", "sort order (DateDesc|DateAsc|ToneDesc|ToneAsc|HybridRel)")
	cmd.Flags().StringVar(&start, "start", "", "absolute window start (YYYYMMDD[HH[MM[SS]]]), replaces --timespan")
	cmd.Flags().StringVar(&end, "end", "", "absolute window end (YYYYMMDD[HH[MM[SS]]]), replaces --timespan")
	return cmd
}
