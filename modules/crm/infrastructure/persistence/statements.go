package persistence

import (
	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
)

// statement is one planned SQL command with its bound arguments. Planning is
// separated from execution so section selection, coercion and ordering can be
// checked without a database.
type statement struct {
	query string
	args  []any
}

const (
	updatePersonQuery = `
	UPDATE persons
	SET first_name = $1, last_name = $2, title = $3, seniority = $4,
	    departments = $5, mobile_phone = $6, email = $7, email_status = $8
	WHERE person_id = $9`

	updateCompanyQuery = `
	UPDATE companies
	SET company = $1, email = $2, phone = $3, employees = $4,
	    industry = $5, seo_description = $6, website = $7
	WHERE person_id = $8`

	updateGeoQuery = `
	UPDATE geographies
	SET address = $1, city = $2, state = $3, country = $4
	WHERE company_id = (SELECT company_id FROM companies WHERE person_id = $5)`

	updateRevenueQuery = `
	UPDATE revenues
	SET latest_funding = $1, latest_funding_amount = $2,
	    annual_revenue = $3, total_funding = $4
	WHERE company_id = (SELECT company_id FROM companies WHERE person_id = $5)`

	updateSocialQuery = `
	UPDATE socials
	SET linkedin_url = $1, facebook_url = $2, twitter_url = $3
	WHERE company_id = (SELECT company_id FROM companies WHERE person_id = $4)`
)

// planUpdate translates a partial edit into per-table UPDATE statements, one
// per present section, in parent-to-child order. Coercion failures surface
// here, before any transaction opens, so a bad value never half-applies an
// edit.
func planUpdate(personID int64, edit profile.ProfileEdit) ([]statement, error) {
	var stmts []statement

	if p := edit.PersonDetails; p != nil {
		stmts = append(stmts, statement{
			query: updatePersonQuery,
			args: []any{
				p.FirstName, p.LastName, p.Title, p.Seniority,
				p.Departments, p.MobilePhone, p.Email, p.EmailStatus,
				personID,
			},
		})
	}

	if c := edit.CompanyDetails; c != nil {
		stmts = append(stmts, statement{
			query: updateCompanyQuery,
			args: []any{
				c.Company, c.Email, c.Phone, profile.CoerceInt(c.Employees),
				c.Industry, c.SEODescription, c.Website,
				personID,
			},
		})
	}

	if g := edit.GeoDetails; g != nil {
		stmts = append(stmts, statement{
			query: updateGeoQuery,
			args:  []any{g.Address, g.City, g.State, g.Country, personID},
		})
	}

	if v := edit.RevenueDetails; v != nil {
		funding, err := profile.NormalizeDate("companyRevenue.latestFunding", v.LatestFunding)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, statement{
			query: updateRevenueQuery,
			args: []any{
				nullableDate(funding),
				profile.CoerceInt(v.LatestFundingAmount),
				profile.CoerceInt(v.AnnualRevenue),
				profile.CoerceInt(v.TotalFunding),
				personID,
			},
		})
	}

	if s := edit.SocialDetails; s != nil {
		stmts = append(stmts, statement{
			query: updateSocialQuery,
			args:  []any{s.LinkedinURL, s.FacebookURL, s.TwitterURL, personID},
		})
	}

	return stmts, nil
}

const (
	deleteSocialQuery = `
	DELETE FROM socials
	WHERE company_id IN (SELECT company_id FROM companies WHERE person_id = $1)`

	deleteRevenueQuery = `
	DELETE FROM revenues
	WHERE company_id IN (SELECT company_id FROM companies WHERE person_id = $1)`

	deleteGeoQuery = `
	DELETE FROM geographies
	WHERE company_id IN (SELECT company_id FROM companies WHERE person_id = $1)`

	deleteCompanyQuery = `DELETE FROM companies WHERE person_id = $1`

	deletePersonQuery = `DELETE FROM persons WHERE person_id = $1`
)

// planDelete fixes the cascade order: children before parents, ending at the
// person row.
func planDelete(personID int64) []statement {
	return []statement{
		{query: deleteSocialQuery, args: []any{personID}},
		{query: deleteRevenueQuery, args: []any{personID}},
		{query: deleteGeoQuery, args: []any{personID}},
		{query: deleteCompanyQuery, args: []any{personID}},
		{query: deletePersonQuery, args: []any{personID}},
	}
}

// nullableDate maps an empty date string to NULL.
func nullableDate(v string) any {
	if v == "" {
		return nil
	}
	return v
}
