package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/Gthulhu/schedsim/pkg/tracing"
	"github.com/Gthulhu/schedsim/procfile"
	"github.com/Gthulhu/schedsim/repository"
	"github.com/Gthulhu/schedsim/rest"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/service"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

// RunOptions are the flags of the run command
type RunOptions struct {
	Input  string
	Output string
	Format string
	Quiet  bool
	Tables bool
	// Algorithms keeps only the named policies, all of them when empty
	Algorithms []string
}

func newRunCommand(opts *Options) *cobra.Command {
	runOpts := &RunOptions{}
	c := &cobra.Command{
		Use:   "run <input> <output>",
		Short: "Simulate every queue of an input file and write the results",
		Long: "Reads burst:priority:arrival:queue lines from <input>, runs FCFS, SJF and Priority\n" +
			"on every queue and writes queue:algorithm:wt...:avg lines to <output>.\n" +
			"Both arguments accept local paths or storage URLs.",
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			runOpts.Input, runOpts.Output = args[0], args[1]
			if runOpts.Format == "" {
				runOpts.Format = cfg.Output.Format
			}
			return Run(c.Context(), cfg, *runOpts, c.OutOrStdout(), c.ErrOrStderr())
		},
	}
	c.Flags().StringVar(&runOpts.Format, "format", "", "output format: lines, json or yaml (defaults to output.format)")
	c.Flags().BoolVarP(&runOpts.Quiet, "quiet", "q", false, "only write the output file")
	c.Flags().BoolVar(&runOpts.Tables, "tables", false, "print the per process schedule of every result")
	c.Flags().StringSliceVar(&runOpts.Algorithms, "algorithm", nil, "only report these algorithms, by name or tag (repeatable)")
	return c
}

// Run executes one simulation from input to output, printing progress to stdout
func Run(ctx context.Context, cfg config.SimConfig, opts RunOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, closeLog, err := logger.InitLoggerWithConfig(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	ctx = log.WithContext(ctx)
	shutdownTracing, err := tracing.InitWithConfig(cfg.Tracing, rest.BuildVersion)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("flush traces")
		}
	}()

	format, err := procfile.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	algs, err := domain.ParseAlgorithms(opts.Algorithms)
	if err != nil {
		return err
	}
	if opts.Quiet {
		stdout = io.Discard
	}

	_, _ = fmt.Fprintln(stdout, "CPU Scheduler Simulator")
	_, _ = fmt.Fprintln(stdout, "=======================")

	fs := afs.New()
	reader := procfile.Reader{MaxQueueID: cfg.Simulation.MaxQueueID}
	specs, skipped, err := reader.ReadFile(ctx, fs, opts.Input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Read %d processes from %s\n", len(specs), opts.Input)
	if len(skipped) > 0 {
		_, _ = fmt.Fprintf(stdout, "Skipped %d invalid lines\n", len(skipped))
	}

	run, err := simulate(ctx, cfg.Simulation, specs)
	if err != nil {
		return err
	}
	run.Simulation = run.Simulation.Only(algs...)

	procfile.WriteProgress(stdout, run.Simulation)
	if opts.Tables {
		procfile.WriteTables(stdout, run.Results)
	}

	if err := procfile.WriteFile(ctx, fs, opts.Output, format, run); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "\nResults written to %s\n", opts.Output)
	procfile.WriteFinal(stdout, run.Results)
	return nil
}

// simulate runs specs through a throwaway service so the CLI shares the
// validation, tracing and logging of the REST path
func simulate(ctx context.Context, simCfg config.SimulationConfig, specs []domain.ProcessSpec) (*domain.SimulationRun, error) {
	if len(specs) == 0 {
		return &domain.SimulationRun{Simulation: scheduler.Simulate(specs)}, nil
	}
	svc, err := service.NewService(service.Params{
		Repo:       repository.NewMemoryRepository(),
		SimConfig:  simCfg,
		Registerer: prometheus.NewRegistry(),
	})
	if err != nil {
		return nil, err
	}
	run, err := svc.Simulate(ctx, specs)
	if err != nil {
		return nil, errors.Wrap(err, "simulate")
	}
	return run, nil
}
