package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after merging defaults, the config file,
.env and GDELTCTL_* environment variables. The output is a valid
config.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appConfig == nil {
				return errors.New("runtime not initialized")
			}
			return appConfig.WriteTOML(cmd.OutOrStdout())
		},
	}
}
