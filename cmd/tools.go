package cmd

import (
	"errors"

	"github.com/chris-regnier/gdeltctl/internal/ui"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools served over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dispatcher == nil {
				return errors.New("runtime not initialized")
			}
			defs := dispatcher.Registry().Definitions()
			if jsonOutput {
				return ui.FormatJSON(cmd.OutOrStdout(), defs)
			}
			ui.FormatToolList(cmd.OutOrStdout(), defs)
			return nil
		},
	}
}
