package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"phonebridge/internal/channel"
	"phonebridge/internal/channel/service"
	"phonebridge/internal/numbers"
	"phonebridge/internal/regions"
	"phonebridge/platform/apperr"
	"phonebridge/platform/config"
	"phonebridge/platform/httpkit"
	"phonebridge/platform/logger"
	"phonebridge/platform/validator"
)

var (
	defaultRegion string
	countryLang   string
	overridesFile string
	verbose       bool

	cfg        *config.Config
	dispatcher *service.Dispatcher
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "phonectl",
		Short:         "Parse, format and list phone number regions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if defaultRegion != "" {
				loaded.DefaultRegion = strings.ToUpper(strings.TrimSpace(defaultRegion))
			}
			if countryLang != "" {
				loaded.CountryNameLanguage = countryLang
			}
			if overridesFile != "" {
				loaded.CatalogOverridesFile = overridesFile
			}
			cfg = loaded

			log := logger.Discard()
			if verbose {
				log = logger.NewWithWriter("development", cmd.ErrOrStderr())
			}

			regionsModule, err := regions.NewModule(cfg, nil, log)
			if err != nil {
				return err
			}
			numbersModule := numbers.NewModule(cfg, validator.New(), log)
			dispatcher = channel.NewModule(numbersModule.Service(), regionsModule.Service(), log).Dispatcher()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&defaultRegion, "default-region", "", "region assumed when none is given (default $DEFAULT_REGION)")
	root.PersistentFlags().StringVar(&countryLang, "lang", "", "language for country names (default $COUNTRY_NAME_LANGUAGE)")
	root.PersistentFlags().StringVar(&overridesFile, "overrides", "", "catalog overrides YAML file (default $CATALOG_OVERRIDES_FILE)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log calls to stderr")

	root.AddCommand(parseCmd(), formatCmd(), regionsCmd(), callCmd())
	return root
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		_ = writeJSON(w, httpkit.ErrorResponse{Code: domainErr.Code(), Message: domainErr.Message})
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
