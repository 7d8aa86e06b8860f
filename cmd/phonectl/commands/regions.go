package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"phonebridge/internal/channel/service"
	"phonebridge/internal/regions/repository"
	"phonebridge/platform/apperr"
	"phonebridge/platform/phone"
)

// regions [code...]: print the catalog, or only the named regions.
func regionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions [code...]",
		Short: "Print the supported region catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := dispatcher.Call(cmd.Context(), service.MethodGetAllSupportedRegions, nil)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			catalog, ok := result.(repository.Catalog)
			if !ok {
				return fmt.Errorf("unexpected catalog type %T", result)
			}

			subset := make(repository.Catalog, len(args))
			for _, arg := range args {
				code := phone.NormalizeRegion(arg)
				info, ok := catalog[code]
				if !ok {
					return apperr.InvalidParameter(service.ArgRegion)
				}
				subset[code] = info
			}
			return writeJSON(cmd.OutOrStdout(), subset)
		},
	}
	return cmd
}
