package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/databankhq/databank/modules/crm/infrastructure/persistence"
	"github.com/databankhq/databank/modules/crm/services"
	"github.com/databankhq/databank/pkg/composables"
	"github.com/databankhq/databank/pkg/configuration"
	"github.com/databankhq/databank/pkg/eventbus"
	"github.com/databankhq/databank/pkg/logging"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

type exportOptions struct {
	output string
	format string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every profile to a csv or xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.output, "output", "", "Output file (required)")
	cmd.Flags().StringVar(&opts.format, "format", "", "csv or xlsx (default: from output extension)")

	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runExport(ctx context.Context, opts exportOptions) error {
	format := opts.format
	if format == "" {
		format = spreadsheet.Ext(opts.output)
	}
	if format != "csv" && format != "xlsx" {
		return withCode(exitUsage, fmt.Errorf("unsupported export format %q", format))
	}

	log := logging.ConsoleLogger(logrus.WarnLevel)
	conf := configuration.Use()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect: %w", err))
	}
	defer pool.Close()
	ctx = composables.WithPool(ctx, pool)

	profiles := services.NewProfileService(persistence.NewProfileRepository(), eventbus.NewEventPublisher(log))
	export := services.NewExportService(profiles)

	out, err := os.Create(opts.output)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("create output: %w", err))
	}
	defer func() { _ = out.Close() }()

	switch format {
	case "csv":
		if err := export.ExportCSV(ctx, out); err != nil {
			return withCode(exitDB, err)
		}
	case "xlsx":
		data, err := export.ExportXLSX(ctx)
		if err != nil {
			return withCode(exitDB, err)
		}
		if _, err := out.Write(data); err != nil {
			return withCode(exitDB, err)
		}
	}

	return writeJSONLine(map[string]any{"output": opts.output, "format": format})
}
