package services

import (
	"context"
	"io"
	"strconv"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/modules/crm/ingest"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

// ExportService renders the full profile set as a spreadsheet whose headers
// map straight back through the import pipeline.
type ExportService struct {
	profiles *ProfileService
}

func NewExportService(profiles *ProfileService) *ExportService {
	return &ExportService{profiles: profiles}
}

// ExportCSV streams every profile as CSV rows.
func (s *ExportService) ExportCSV(ctx context.Context, w io.Writer) error {
	header, rows, err := s.table(ctx)
	if err != nil {
		return err
	}
	return spreadsheet.WriteCSV(w, header, rows)
}

// ExportXLSX renders every profile into a single-sheet workbook.
func (s *ExportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	header, rows, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return spreadsheet.WriteXLSX("Profiles", header, rows)
}

func (s *ExportService) table(ctx context.Context) ([]string, [][]string, error) {
	profiles, err := s.profiles.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	header := make([]string, len(ingest.ExportColumns))
	for i, col := range ingest.ExportColumns {
		header[i] = col.Header
	}

	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		row := make([]string, len(ingest.ExportColumns))
		for j, col := range ingest.ExportColumns {
			row[j] = exportValue(&p, col.Path)
		}
		rows[i] = row
	}
	return header, rows, nil
}

func exportValue(p *profile.Profile, path string) string {
	switch path {
	case "firstName":
		return p.FirstName
	case "lastName":
		return p.LastName
	case "title":
		return p.Title
	case "seniority":
		return p.Seniority
	case "departments":
		return p.Departments
	case "mobilePhone":
		return p.MobilePhone
	case "email":
		return p.Email
	case "EmailStatus":
		return p.EmailStatus
	case "company.company":
		return p.Company.Company
	case "company.email":
		return p.Company.Email
	case "company.phone":
		return p.Company.Phone
	case "company.employees":
		return formatInt(p.Company.Employees)
	case "company.industry":
		return p.Company.Industry
	case "company.seoDescription":
		return p.Company.SEODescription
	case "company.website":
		return p.Company.Website
	case "geo.address":
		return p.Geo.Address
	case "geo.city":
		return p.Geo.City
	case "geo.state":
		return p.Geo.State
	case "geo.country":
		return p.Geo.Country
	case "companyRevenue.latestFunding":
		return p.Revenue.LatestFunding
	case "companyRevenue.latestFundingAmount":
		return formatInt(p.Revenue.LatestFundingAmount)
	case "companyRevenue.annualRevenue":
		return formatInt(p.Revenue.AnnualRevenue)
	case "companyRevenue.totalFunding":
		return formatInt(p.Revenue.TotalFunding)
	case "social.linkedinUrl":
		return p.Social.LinkedinURL
	case "social.facebookUrl":
		return p.Social.FacebookURL
	case "social.twitterUrl":
		return p.Social.TwitterURL
	default:
		return ""
	}
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
