package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/comalice/thunkx/internal/logging"
	"github.com/comalice/thunkx/internal/script"
)

func newReplayCmd(opts *globalOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "replay SCRIPT",
		Short: "Run a counter script and print each commit",
		Long: `Run a counter script and print each commit.

A script is YAML or TOML (chosen by extension):

  initial: 1
  steps:
    - action: {type: add, by: 2}
    - thunk: increment_async
      delay: 100ms
    - wait: true
    - expect: 4

With --watch the script is run again every time the file is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var ropts []script.Option
			if opts.json {
				ropts = append(ropts, script.WithJSON())
			}
			out := cmd.OutOrStdout()
			if !watch {
				return replay(ctx, args[0], out, ropts)
			}
			return replayWatch(ctx, args[0], out, ropts)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-run the script when the file changes")
	return cmd
}

func replay(ctx context.Context, path string, out io.Writer, opts []script.Option) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	res, err := script.Run(ctx, s, out, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "final count=%d commits=%d\n", res.Final, res.Commits)
	return nil
}

func replayWatch(ctx context.Context, path string, out io.Writer, opts []script.Option) error {
	log := logging.NewLogger("replay")
	w, err := script.NewWatcher(path, 0)
	if err != nil {
		return err
	}
	defer w.Close()

	run := func(string) {
		if err := replay(ctx, path, out, opts); err != nil {
			log.WithError(err).Error("replay failed")
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprintln(out, "watching for changes...")
	}
	run(path)
	w.Start(ctx, run)
	return nil
}
