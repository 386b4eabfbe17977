package main

import (
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Tomlord1122/notes/internal/catalog"
	"github.com/Tomlord1122/notes/internal/config"
	"github.com/Tomlord1122/notes/internal/controller"
	"github.com/Tomlord1122/notes/internal/logger"
	"github.com/Tomlord1122/notes/internal/notesapi"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	verbose    bool
	configPath string

	in  io.Reader
	out io.Writer
	log *zap.Logger
	cfg config.Client
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out, log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "notes",
		Short:        "Manage notes stored in a hosted Postgres table",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = logger.New(a.verbose)
			if !a.verbose {
				a.log = a.log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
			}
			cfg, err := config.LoadClient(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/notes/config.toml)")

	cmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newProductCmd(a),
	)
	return cmd
}

func (a *app) controller() (*controller.Controller, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := notesapi.New(notesapi.Config{
		BaseURL: a.cfg.APIURL,
		APIKey:  a.cfg.APIKey,
		Timeout: a.cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return controller.New(client, controller.WithLogger(a.log)), nil
}

func (a *app) catalog() *catalog.Client {
	return catalog.NewClient(a.cfg.CatalogURL, &http.Client{Timeout: a.cfg.Timeout})
}
