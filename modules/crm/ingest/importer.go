package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

// ProfileCreator persists one canonical record and returns the new person id.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, rec profile.CanonicalRecord) (int64, error)
}

// RowError records why a single row was rejected. RowIndex is 1-based and
// counts data rows, not file lines.
type RowError struct {
	RowIndex int             `json:"rowIndex"`
	Reason   string          `json:"reason"`
	RawRow   spreadsheet.Row `json:"rawRow"`
}

// RowWarning is a non-fatal note attached to a row that still imported.
type RowWarning struct {
	RowIndex int    `json:"rowIndex"`
	Message  string `json:"message"`
}

// BatchReport aggregates the outcome of one import run.
type BatchReport struct {
	SuccessCount int          `json:"successCount"`
	ErrorCount   int          `json:"errorCount"`
	Errors       []RowError   `json:"errors"`
	Warnings     []RowWarning `json:"warnings,omitempty"`
}

// Summary renders a short human-readable account, keeping at most limit
// error details.
func (r *BatchReport) Summary(limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "imported %d, failed %d", r.SuccessCount, r.ErrorCount)
	if len(r.Errors) == 0 {
		return b.String()
	}

	shown := r.Errors
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, e := range shown {
		fmt.Fprintf(&b, "\n  row %d: %s", e.RowIndex, e.Reason)
	}
	if rest := len(r.Errors) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n  ... and %d more", rest)
	}
	return b.String()
}

// Importer runs rows through normalization, validation and persistence,
// one at a time in order.
type Importer struct {
	creator ProfileCreator
	log     *logrus.Logger
}

func NewImporter(creator ProfileCreator, log *logrus.Logger) *Importer {
	return &Importer{creator: creator, log: log}
}

// ImportBatch processes every row sequentially. A failing row is recorded
// and skipped; it never aborts the batch or touches other rows.
func (im *Importer) ImportBatch(ctx context.Context, rows []spreadsheet.Row) BatchReport {
	var report BatchReport

	for i, row := range rows {
		rowIndex := i + 1

		rec, warnings := NormalizeRow(row)
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, RowWarning{RowIndex: rowIndex, Message: w})
			if im.log != nil {
				im.log.WithField("row", rowIndex).Warn(w)
			}
		}

		if err := rec.Validate(); err != nil {
			report.ErrorCount++
			report.Errors = append(report.Errors, RowError{
				RowIndex: rowIndex,
				Reason:   err.Error(),
				RawRow:   row,
			})
			continue
		}

		if _, err := im.creator.CreateProfile(ctx, rec); err != nil {
			report.ErrorCount++
			report.Errors = append(report.Errors, RowError{
				RowIndex: rowIndex,
				Reason:   err.Error(),
				RawRow:   row,
			})
			continue
		}
		report.SuccessCount++
	}

	return report
}
