package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/modules/crm/infrastructure/persistence"
	"github.com/databankhq/databank/modules/crm/ingest"
	"github.com/databankhq/databank/modules/crm/services"
	"github.com/databankhq/databank/pkg/composables"
	"github.com/databankhq/databank/pkg/configuration"
	"github.com/databankhq/databank/pkg/eventbus"
	"github.com/databankhq/databank/pkg/logging"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

type importOptions struct {
	input      string
	apply      bool
	errorLimit int
	verbose    bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import contacts from a csv, xls or xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input spreadsheet file (required)")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write to the database (default is dry-run)")
	cmd.Flags().IntVar(&opts.errorLimit, "error-limit", 10, "Max per-row error details in the summary")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Log per-row warnings")

	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// dryRunCreator counts rows that would import without touching storage.
type dryRunCreator struct {
	next atomic.Int64
}

func (c *dryRunCreator) CreateProfile(context.Context, profile.CanonicalRecord) (int64, error) {
	return c.next.Add(1), nil
}

func runImport(ctx context.Context, opts importOptions) error {
	level := logrus.WarnLevel
	if opts.verbose {
		level = logrus.InfoLevel
	}
	log := logging.ConsoleLogger(level)

	f, err := os.Open(opts.input)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("open input: %w", err))
	}
	defer func() { _ = f.Close() }()

	rows, err := spreadsheet.ParseFile(f, spreadsheet.Ext(opts.input))
	if err != nil {
		return withCode(exitValidation, err)
	}

	var creator ingest.ProfileCreator = &dryRunCreator{}
	if opts.apply {
		conf := configuration.Use()
		pool, err := pgxpool.New(ctx, conf.Database.Opts)
		if err != nil {
			return withCode(exitDB, fmt.Errorf("connect: %w", err))
		}
		defer pool.Close()
		ctx = composables.WithPool(ctx, pool)
		creator = services.NewProfileService(persistence.NewProfileRepository(), eventbus.NewEventPublisher(log))
	}

	report := ingest.NewImporter(creator, log).ImportBatch(ctx, rows)

	if err := writeJSONLine(map[string]any{
		"dryRun":       !opts.apply,
		"successCount": report.SuccessCount,
		"errorCount":   report.ErrorCount,
	}); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, report.Summary(opts.errorLimit))

	if report.ErrorCount > 0 {
		return withCode(exitValidation, fmt.Errorf("%d rows failed", report.ErrorCount))
	}
	return nil
}
