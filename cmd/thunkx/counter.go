package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/comalice/thunkx/host"
	"github.com/comalice/thunkx/internal/config"
	"github.com/comalice/thunkx/internal/counter"
	"github.com/comalice/thunkx/internal/logging"
	"github.com/comalice/thunkx/tui"
)

func newCounterCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Run the interactive counter",
		Long: `Run the interactive counter.

Keys:
  +  add step          -  subtract step
  a  deferred increment (after --async-delay)
  o  increment if odd  r  reset to --initial
  q  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := config.ApplyFlags(cmd.Flags(), cfg); err != nil {
				return err
			}
			return runCounter(cmd.Context(), cfg.Counter)
		},
	}
	config.BindFlags(cmd.Flags(), config.Default())
	return cmd
}

func counterBindings(c config.Counter) []tui.Binding {
	return []tui.Binding{
		{
			Key:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", fmt.Sprintf("add %d", c.Step))),
			Make: func(host.Scheduler) any { return counter.AddAction(c.Step) },
		},
		{
			Key:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", fmt.Sprintf("sub %d", c.Step))),
			Make: func(host.Scheduler) any { return counter.AddAction(-c.Step) },
		},
		{
			Key: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "increment later")),
			Make: func(sched host.Scheduler) any {
				return counter.IncrementAsync(sched, c.AsyncDelay)
			},
		},
		{
			Key:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "increment if odd")),
			Make: func(host.Scheduler) any { return counter.IncrementIfOdd() },
		},
		{
			Key:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
			Make: func(host.Scheduler) any { return counter.ResetAction(c.Initial) },
		},
	}
}

func renderCount(s *counter.State) string {
	bar := strings.Repeat("█", min(max(s.Count, 0), 40))
	return fmt.Sprintf("count: %d\n%s", s.Count, bar)
}

func runCounter(ctx context.Context, c config.Counter) error {
	log := logging.NewLogger("counter")
	m := tui.New(counter.Reducer, counter.Init(c.Initial), renderCount,
		tui.WithTitle("thunkx counter"),
		tui.WithBindings(counterBindings(c)...),
		tui.WithLogger(log),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.Tick > 0 {
		ticks := host.NewTickerSource(counter.IncrementAction(), c.Tick)
		defer ticks.Stop()
		go host.Feed(ctx, m.Loop(), ticks, func(a counter.Action) error {
			return m.Handle().Dispatch.Action(a)
		})
	}

	log.WithField("initial", c.Initial).Debug("starting counter")
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
