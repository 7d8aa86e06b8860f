package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"phonebridge/platform/apperr"
)

// call <method> [args]: invoke any dispatcher method with a JSON object of arguments.
func callCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <method> [json-args]",
		Short: "Invoke a method by name",
		Example: `  phonectl call parse '{"phone":"+16502530000"}'
  phonectl call format '{"string":"0201234","region":"GB"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var callArgs map[string]interface{}
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &callArgs); err != nil {
					return apperr.New(apperr.KindInvalidParameters, "arguments must be a JSON object")
				}
			}

			result, err := dispatcher.Call(cmd.Context(), args[0], callArgs)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	return cmd
}
