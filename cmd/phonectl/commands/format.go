package commands

import (
	"github.com/spf13/cobra"

	"phonebridge/internal/channel/service"
	"phonebridge/platform/apperr"
	"phonebridge/platform/phone"
)

// format <input>: lay out partial input. With --steps every keystroke's output is printed.
func formatCmd() *cobra.Command {
	var (
		region string
		steps  bool
	)
	cmd := &cobra.Command{
		Use:   "format <input>",
		Short: "Lay out partial input as it would appear while typing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps {
				outputs, err := formatSteps(args[0], region)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), outputs)
			}

			result, err := dispatcher.Call(cmd.Context(), service.MethodFormat, map[string]interface{}{
				service.ArgPhone:  args[0],
				service.ArgRegion: region,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&region, "region", "r", "", "region the input is typed in")
	cmd.Flags().BoolVar(&steps, "steps", false, "print the output after every character")
	return cmd
}

func formatSteps(input, region string) ([]string, error) {
	if region == "" {
		region = cfg.GetDefaultRegion()
	}

	f, err := phone.NewAsYouTypeFormatter(region)
	if err != nil {
		return nil, apperr.InvalidNumber(input, err)
	}

	outputs := make([]string, 0, len(input))
	for _, r := range input {
		outputs = append(outputs, f.InputDigit(r))
	}
	return outputs, nil
}
