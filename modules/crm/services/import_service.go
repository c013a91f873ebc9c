package services

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/databankhq/databank/modules/crm/ingest"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

// ImportService parses an uploaded spreadsheet and feeds its rows through
// the import pipeline.
type ImportService struct {
	profiles *ProfileService
	log      *logrus.Logger
}

func NewImportService(profiles *ProfileService, log *logrus.Logger) *ImportService {
	return &ImportService{profiles: profiles, log: log}
}

// ImportFile parses r according to the filename extension and imports every
// data row sequentially. Parse failures are file-level errors; row failures
// land in the report.
func (s *ImportService) ImportFile(ctx context.Context, r io.Reader, filename string) (ingest.BatchReport, error) {
	rows, err := spreadsheet.ParseFile(r, spreadsheet.Ext(filename))
	if err != nil {
		return ingest.BatchReport{}, err
	}
	importer := ingest.NewImporter(s.profiles, s.log)
	return importer.ImportBatch(ctx, rows), nil
}
