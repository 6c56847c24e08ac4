package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/thunkx/internal/config"
	"github.com/comalice/thunkx/internal/logging"
)

type globalOptions struct {
	configFile string
	verbose    bool
	json       bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "thunkx",
		Short:         "Reducer store with thunk dispatch: demos and script replay",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.Log.Level = "debug"
			}
			if opts.json {
				cfg.Log.Format = "json"
			}
			logging.Configure(cfg.Log)
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to thunkx.yml or thunkx.toml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	cmd.AddCommand(newCounterCmd(opts))
	cmd.AddCommand(newReplayCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
