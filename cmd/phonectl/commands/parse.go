package commands

import (
	"github.com/spf13/cobra"

	"phonebridge/internal/channel/service"
)

// parse <phone>: validate a number and print its layouts.
func parseCmd() *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "parse <phone>",
		Short: "Validate a number and print every layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := dispatcher.Call(cmd.Context(), service.MethodParse, map[string]interface{}{
				service.ArgPhone:  args[0],
				service.ArgRegion: region,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&region, "region", "r", "", "region the number is dialed from")
	return cmd
}
