// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.hybscloud.com/lnq"
	"code.hybscloud.com/lnq/internal/stress"
	"github.com/spf13/cobra"
)

// CmdStress returns the root command.
func CmdStress() *cobra.Command {
	root := &cobra.Command{
		Use:          "lnqstress",
		Short:        "Stress and demo tool for lnq queues",
		SilenceUsage: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.AddCommand(cmdRun())
	root.AddCommand(cmdDemo())
	return root
}

type runFlags struct {
	config     string
	producers  int
	items      int
	queue      string
	timeout    time.Duration
	yieldEvery int
	history    int
	logLevel   string
	logJSON    bool
}

func cmdRun() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the multi-producer workload and verify delivery",
		Long: `Run the multi-producer workload and verify delivery.

Producer p enqueues p*10000+i for i below items. One consumer collects
every value and checks for loss, duplication and per-producer reordering.
With --queue both, the mutex queue runs first as the oracle and the
lock-free queue must deliver the same multiset.`,
		Example: `  lnqstress run
  lnqstress run --config stress.yml --producers 16 --yield-every 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reports, err := stress.Run(ctx, cfg, cfg.NewLogger(cmd.ErrOrStderr()))
			for _, r := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s consumed=%d/%d handoffs=%d stalls=%d elapsed=%s ok=%t\n",
					r.Queue, r.Consumed, r.Produced, r.Handoffs, r.Stalls, r.Elapsed, r.OK())
			}
			return err
		},
	}

	def := stress.DefaultConfig()
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML config file (flags override it)")
	cmd.Flags().IntVarP(&f.producers, "producers", "p", def.Producers, "Number of producer goroutines")
	cmd.Flags().IntVarP(&f.items, "items", "n", def.ItemsPerProducer, "Values per producer")
	cmd.Flags().StringVarP(&f.queue, "queue", "q", def.Queue, "Queue under test: mpsc, locked, both")
	cmd.Flags().DurationVar(&f.timeout, "timeout", time.Duration(def.Timeout), "Consumer timeout")
	cmd.Flags().IntVar(&f.yieldEvery, "yield-every", def.YieldEvery, "Producer yields with probability 1/N (0 disables)")
	cmd.Flags().IntVar(&f.history, "history", def.History, "Recent values kept for failure reports")
	cmd.Flags().StringVar(&f.logLevel, "log-level", def.LogLevel, "TRACE, DEBUG, INFO, WARN, ERROR")
	cmd.Flags().BoolVar(&f.logJSON, "log-json", def.LogJSON, "Log JSON lines instead of text")
	return cmd
}

// resolve loads the config file, if any, then applies flags the user set.
func (f *runFlags) resolve(cmd *cobra.Command) (stress.Config, error) {
	cfg := stress.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = stress.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("producers") {
		cfg.Producers = f.producers
	}
	if flags.Changed("items") {
		cfg.ItemsPerProducer = f.items
	}
	if flags.Changed("queue") {
		cfg.Queue = f.queue
	}
	if flags.Changed("timeout") {
		cfg.Timeout = stress.Duration(f.timeout)
	}
	if flags.Changed("yield-every") {
		cfg.YieldEvery = f.yieldEvery
	}
	if flags.Changed("history") {
		cfg.History = f.history
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = f.logJSON
	}
	return cfg, cfg.Validate()
}

func cmdDemo() *cobra.Command {
	var locked bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Enqueue two rounds of five values and print the queue state after each dequeue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q stress.DemoQueue = lnq.NewMPSC[int]()
			if locked {
				q = lnq.NewLocked[int]()
			}
			return stress.Demo(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().BoolVar(&locked, "locked", false, "Use the mutex-guarded queue")
	return cmd
}

