// Package main provides the entry point for apexsim, a cycle-accurate
// functional simulator of a pipelined, out-of-order, register-renamed
// integer machine.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarchlab/apexsim/diag"
	"github.com/sarchlab/apexsim/loader"
	"github.com/sarchlab/apexsim/timing/core"
	"github.com/sarchlab/apexsim/timing/latency"
	"github.com/sarchlab/apexsim/trace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apexsim <input_file> [mode] [num_cycles]",
		Short: "Cycle-accurate out-of-order integer pipeline simulator",
		Args: cobra.MatchAll(cobra.RangeArgs(1, 3), func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return fmt.Errorf("mode and num_cycles must be given together")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := latency.DefaultConfig()
			if configPath != "" {
				loaded, err := latency.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			inputFile := args[0]
			prog, err := loader.Load(inputFile, cfg.CodeBase)
			if err != nil {
				return err
			}
			reporter := diag.NewReporterTo(cmd.ErrOrStderr())
			for _, d := range prog.Diagnostics {
				reporter.Report(0, "PARSE", d.String())
			}

			if len(args) == 1 {
				return runInteractive(cmd, cfg, prog)
			}
			return runOnce(cmd, cfg, prog, args[1], args[2])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a timing configuration JSON file")

	return cmd
}

// runOnce implements the `apexsim <input_file> <mode> <num_cycles>`
// one-shot form (spec.md §6 / original_source main.c's argc==4 branch).
func runOnce(cmd *cobra.Command, cfg *latency.Config, prog *loader.Program, mode, cyclesArg string) error {
	numCycles, err := parseModeAndCycles(mode, cyclesArg)
	if err != nil {
		return err
	}

	m := core.NewMachine(cfg, prog)
	tr := trace.New(cmd.OutOrStdout())
	runMachine(m, tr, numCycles)
	reportCompletion(cmd, m)

	if mode == "display" {
		tr.Final(m)
	}
	return nil
}

// runMachine ticks m one cycle at a time up to targetCycle (0 means
// unbounded), printing the per-cycle trace block unconditionally after
// every tick — spec.md §6 gates only the end-of-run summary to display
// mode, not the per-cycle dump, matching original_source/cpu.c's
// APEX_cpu_run printing its IQ/ROB/rename block every cycle regardless
// of mode.
func runMachine(m *core.Machine, tr *trace.Tracer, targetCycle uint64) {
	for !m.Halted() && !m.Idle() {
		if targetCycle > 0 && m.Cycle() >= targetCycle {
			return
		}
		m.Tick()
		tr.Cycle(m)
	}
}

// runInteractive implements the `apexsim <input_file>` stdin loop
// (original_source main.c's argc==2 branch): the same Machine is
// advanced further on each `<mode> <num_cycles>` line until `exit`, never
// rebuilt, matching the C original's reuse of the same `cpu`/`rob`/
// queues across commands.
func runInteractive(cmd *cobra.Command, cfg *latency.Config, prog *loader.Program) error {
	m := core.NewMachine(cfg, prog)
	tr := trace.New(cmd.OutOrStdout())
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprintln(cmd.OutOrStdout(), "Usage ?: <func(eg: simulate Or display)> <num_cycles>")
		fmt.Fprintln(cmd.OutOrStdout(), "Exit : exit")

		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "exit" {
			fmt.Fprintln(cmd.OutOrStdout(), "Terminating Simulation")
			return nil
		}

		var mode, cyclesArg string
		if _, err := fmt.Sscanf(line, "%s %s", &mode, &cyclesArg); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Invalid parameters passed !!!")
			continue
		}

		numCycles, err := parseModeAndCycles(mode, cyclesArg)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}

		runMachine(m, tr, m.Cycle()+numCycles)
		reportCompletion(cmd, m)

		if mode == "display" {
			tr.Final(m)
		}
	}
}

func parseModeAndCycles(mode, cyclesArg string) (uint64, error) {
	if mode != "simulate" && mode != "display" {
		return 0, fmt.Errorf("invalid mode %q: must be simulate or display", mode)
	}
	numCycles, err := strconv.ParseUint(cyclesArg, 10, 64)
	if err != nil || numCycles == 0 {
		return 0, fmt.Errorf("number of cycles must be a positive integer, got %q", cyclesArg)
	}
	return numCycles, nil
}

func reportCompletion(cmd *cobra.Command, m *core.Machine) {
	if m.Halted() {
		fmt.Fprintln(cmd.OutOrStdout(), "Simulation Complete")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Simulation Return Code: %d cycles run, program not yet halted\n", m.Cycle())
}
