// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ZhengKeli/OpticalInterpretation/archive"
	"github.com/ZhengKeli/OpticalInterpretation/config"
	"github.com/ZhengKeli/OpticalInterpretation/hilbert"
	"github.com/ZhengKeli/OpticalInterpretation/logging"
	"github.com/ZhengKeli/OpticalInterpretation/model"
	"github.com/ZhengKeli/OpticalInterpretation/report"
	"github.com/ZhengKeli/OpticalInterpretation/simulation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the parsed flags and the state shared by subcommands.
type app struct {
	configPath     string
	logLevel       string
	labelsOnly     bool
	format         string
	out            string
	archivePath    string
	archiveBackend string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "optint",
		Short:         "Reachable-subspace open quantum system models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.StringVar(&a.format, "format", "", "report format: json, msgpack, csv")
	pf.StringVar(&a.out, "out", "", "report file (stdout when empty)")
	pf.StringVar(&a.archivePath, "archive", "", "archive database path")
	pf.StringVar(&a.archiveBackend, "archive-backend", "", "archive backend: memory, sqlite (default sqlite when --archive is set)")

	for _, c := range []*cobra.Command{
		{
			Use:   "chemical",
			Short: "Prune and evolve the two-atom chemical model",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runModels(cmd.Context(), cmd.OutOrStdout(), a.chemicalJob)
			},
		},
		{
			Use:   "optical",
			Short: "Prune and evolve the optical model with atom-transport-anode bundles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runModels(cmd.Context(), cmd.OutOrStdout(), a.opticalJob)
			},
		},
		{
			Use:   "all",
			Short: "Run both models concurrently",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runModels(cmd.Context(), cmd.OutOrStdout(), a.chemicalJob, a.opticalJob)
			},
		},
	} {
		c.Flags().BoolVar(&a.labelsOnly, "labels-only", false, "print the pruned state labels and exit")
		root.AddCommand(c)
	}
	root.AddCommand(newRunsCmd(a))

	return root
}

func newRunsCmd(a *app) *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived runs",
	}
	runs.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List archived runs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.listRuns(cmd.Context(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "show <run-id>",
			Short: "Print an archived report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.showRun(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
	)

	return runs
}

// setup loads the configuration and applies flags that were set explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("out") {
		cfg.Output.Path = a.out
	}
	if flags.Changed("archive") {
		cfg.Output.Archive = a.archivePath
	}
	if flags.Changed("archive-backend") {
		cfg.Output.ArchiveBackend = a.archiveBackend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())

	return nil
}

// jobFunc builds, prunes and labels one model.
type jobFunc func() (simulation.Job, error)

func (a *app) chemicalJob() (simulation.Job, error) {
	c := a.cfg.Chemical
	chem, err := model.NewChemical(c.ChemicalParams)
	if err != nil {
		return simulation.Job{}, err
	}
	init, err := chem.Initial(c.Initial)
	if err != nil {
		return simulation.Job{}, err
	}
	pruned, err := model.NewPrunedChemical(chem, []*hilbert.Ket{init})
	if err != nil {
		return simulation.Job{}, err
	}
	k, err := pruned.PruneKet(init)
	if err != nil {
		return simulation.Job{}, err
	}
	a.log.Info().Str("model", pruned.Name()).Int("full_dim", chem.Dim()).Int("pruned_dim", pruned.Space().Dim()).Msg("model pruned")

	return simulation.Job{Subject: pruned, Initial: k}, nil
}

func (a *app) opticalJob() (simulation.Job, error) {
	o := a.cfg.Optical
	opt, err := model.NewOptical(o.OpticalParams)
	if err != nil {
		return simulation.Job{}, err
	}
	init, err := opt.Initial(o.Initial)
	if err != nil {
		return simulation.Job{}, err
	}
	pruned, err := model.NewPrunedOptical(opt, []*hilbert.Ket{init})
	if err != nil {
		return simulation.Job{}, err
	}
	k, err := pruned.PruneKet(init)
	if err != nil {
		return simulation.Job{}, err
	}
	a.log.Info().Str("model", pruned.Name()).Int("full_dim", opt.Dim()).Int("pruned_dim", pruned.Space().Dim()).Msg("model pruned")

	return simulation.Job{Subject: pruned, Initial: k}, nil
}

func (a *app) runModels(ctx context.Context, stdout io.Writer, builds ...jobFunc) error {
	jobs := make([]simulation.Job, len(builds))
	for i, build := range builds {
		job, err := build()
		if err != nil {
			return err
		}
		jobs[i] = job
	}

	if a.labelsOnly {
		for _, job := range jobs {
			labels, err := job.Subject.Labels()
			if err != nil {
				return err
			}
			for i, l := range labels {
				fmt.Fprintf(stdout, "%s\t%d\t%s\n", job.Subject.Name(), i, l)
			}
		}
		return nil
	}

	reports, err := simulation.RunAll(ctx, jobs, a.cfg.Evolution, a.log)
	if err != nil {
		return err
	}
	for _, r := range reports {
		if len(r.Spectrum) > 0 {
			a.log.Info().
				Str("model", r.Model).
				Float64("e_min", r.Spectrum[0]).
				Float64("e_max", r.Spectrum[len(r.Spectrum)-1]).
				Int("levels", len(r.Spectrum)).
				Msg("energy spectrum")
		}
		r.Summarize(a.log)
	}

	if err := a.writeReports(stdout, reports); err != nil {
		return err
	}

	return a.archiveReports(ctx, reports)
}

func (a *app) writeReports(stdout io.Writer, reports []*report.Report) error {
	format, err := report.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}
	w := stdout
	if path := a.cfg.Output.Path; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}
	for _, r := range reports {
		if err := report.Write(w, r, format); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) openArchive(ctx context.Context) (archive.Store, error) {
	store, err := archive.NewStore(a.cfg.Output.ArchiveBackend, a.cfg.Output.Archive)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (a *app) archiveReports(ctx context.Context, reports []*report.Report) error {
	if a.cfg.Output.Archive == "" {
		return nil
	}
	store, err := a.openArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.CloseIfSupported(store) }()

	for _, r := range reports {
		if err := store.SaveReport(ctx, r); err != nil {
			return err
		}
		a.log.Info().Str("run_id", r.RunID).Str("archive", a.cfg.Output.Archive).Msg("report archived")
	}

	return nil
}

func (a *app) listRuns(ctx context.Context, stdout io.Writer) error {
	store, err := a.openArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.CloseIfSupported(store) }()

	list, err := store.ListReports(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Fprintf(stdout, "%s\t%s\t%s\tstates=%d samples=%d final=%d\n",
			s.RunID, s.Model, s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), s.States, s.Samples, s.Final)
	}

	return nil
}

func (a *app) showRun(ctx context.Context, stdout io.Writer, runID string) error {
	store, err := a.openArchive(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = archive.CloseIfSupported(store) }()

	r, ok, err := store.GetReport(ctx, runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	format, err := report.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	return report.Write(stdout, r, format)
}
