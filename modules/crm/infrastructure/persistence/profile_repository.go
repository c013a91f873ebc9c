package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/pkg/composables"
)

const (
	selectPersonsQuery = `
	SELECT person_id, first_name, last_name, title, seniority, departments,
	       mobile_phone, email, email_status
	FROM persons
	ORDER BY person_id`

	selectCompaniesQuery = `
	SELECT company_id, person_id, company, email, phone, employees,
	       industry, seo_description, website
	FROM companies`

	selectGeographiesQuery = `
	SELECT company_id, address, city, state, country
	FROM geographies`

	selectRevenuesQuery = `
	SELECT company_id, COALESCE(to_char(latest_funding, 'YYYY-MM-DD'), ''),
	       latest_funding_amount, annual_revenue, total_funding
	FROM revenues`

	selectSocialsQuery = `
	SELECT company_id, linkedin_url, facebook_url, twitter_url
	FROM socials`

	selectEmployeesQuery = `
	SELECT p.person_id, p.first_name, p.last_name, p.title, p.seniority,
	       p.departments, p.mobile_phone, p.email, p.email_status
	FROM persons p
	JOIN companies c ON c.person_id = p.person_id
	WHERE c.company ILIKE '%' || $1 || '%'
	ORDER BY p.person_id`

	insertPersonQuery = `
	INSERT INTO persons (first_name, last_name, title, seniority, departments,
	                     mobile_phone, email, email_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING person_id`

	insertCompanyQuery = `
	INSERT INTO companies (person_id, company, email, phone, employees,
	                       industry, seo_description, website)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING company_id`

	insertGeoQuery = `
	INSERT INTO geographies (company_id, address, city, state, country)
	VALUES ($1, $2, $3, $4, $5)`

	insertRevenueQuery = `
	INSERT INTO revenues (company_id, latest_funding, latest_funding_amount,
	                      annual_revenue, total_funding)
	VALUES ($1, $2, $3, $4, $5)`

	insertSocialQuery = `
	INSERT INTO socials (company_id, linkedin_url, facebook_url, twitter_url)
	VALUES ($1, $2, $3, $4)`
)

// ProfileRepository talks to the five contact tables through whatever
// querier the context carries, pool or transaction.
type ProfileRepository struct{}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Persons(ctx context.Context) ([]profile.PersonRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectPersonsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query persons")
	}
	defer rows.Close()

	var out []profile.PersonRow
	for rows.Next() {
		var p profile.PersonRow
		if err := rows.Scan(
			&p.PersonID, &p.FirstName, &p.LastName, &p.Title, &p.Seniority,
			&p.Departments, &p.MobilePhone, &p.Email, &p.EmailStatus,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan person row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Companies(ctx context.Context) ([]profile.CompanyRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectCompaniesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query companies")
	}
	defer rows.Close()

	var out []profile.CompanyRow
	for rows.Next() {
		var c profile.CompanyRow
		if err := rows.Scan(
			&c.CompanyID, &c.PersonID, &c.Company, &c.Email, &c.Phone,
			&c.Employees, &c.Industry, &c.SEODescription, &c.Website,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan company row")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Geographies(ctx context.Context) ([]profile.GeoRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectGeographiesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query geographies")
	}
	defer rows.Close()

	var out []profile.GeoRow
	for rows.Next() {
		var g profile.GeoRow
		if err := rows.Scan(&g.CompanyID, &g.Address, &g.City, &g.State, &g.Country); err != nil {
			return nil, errors.Wrap(err, "failed to scan geography row")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Revenues(ctx context.Context) ([]profile.RevenueRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectRevenuesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query revenues")
	}
	defer rows.Close()

	var out []profile.RevenueRow
	for rows.Next() {
		var v profile.RevenueRow
		if err := rows.Scan(
			&v.CompanyID, &v.LatestFunding, &v.LatestFundingAmount,
			&v.AnnualRevenue, &v.TotalFunding,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan revenue row")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) Socials(ctx context.Context) ([]profile.SocialRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectSocialsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query socials")
	}
	defer rows.Close()

	var out []profile.SocialRow
	for rows.Next() {
		var s profile.SocialRow
		if err := rows.Scan(&s.CompanyID, &s.LinkedinURL, &s.FacebookURL, &s.TwitterURL); err != nil {
			return nil, errors.Wrap(err, "failed to scan social row")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) EmployeesByCompany(ctx context.Context, company string) ([]profile.PersonRow, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectEmployeesQuery, company)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query employees by company")
	}
	defer rows.Close()

	var out []profile.PersonRow
	for rows.Next() {
		var p profile.PersonRow
		if err := rows.Scan(
			&p.PersonID, &p.FirstName, &p.LastName, &p.Title, &p.Seniority,
			&p.Departments, &p.MobilePhone, &p.Email, &p.EmailStatus,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreateProfile inserts the person and company rows, then whichever optional
// sections carry data, all inside one transaction. The funding date is
// normalized before the transaction opens so an invalid value writes nothing.
func (r *ProfileRepository) CreateProfile(ctx context.Context, rec profile.CanonicalRecord) (int64, error) {
	funding, err := profile.NormalizeDate("companyRevenue.latestFunding", rec.CompanyRevenue.LatestFunding)
	if err != nil {
		return 0, err
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return 0, err
		}

		var personID int64
		err = tx.QueryRow(txCtx, insertPersonQuery,
			rec.FirstName, rec.LastName, rec.Title, rec.Seniority,
			rec.Departments, rec.MobilePhone, rec.Email, rec.EmailStatus,
		).Scan(&personID)
		if err != nil {
			return 0, errors.Wrap(err, "failed to insert person")
		}

		var companyID int64
		c := rec.Company
		err = tx.QueryRow(txCtx, insertCompanyQuery,
			personID, c.Company, c.Email, c.Phone, profile.CoerceInt(c.Employees),
			c.Industry, c.SEODescription, c.Website,
		).Scan(&companyID)
		if err != nil {
			return 0, errors.Wrap(err, "failed to insert company")
		}

		if rec.HasGeo() {
			g := rec.Geo
			if _, err := tx.Exec(txCtx, insertGeoQuery,
				companyID, g.Address, g.City, g.State, g.Country,
			); err != nil {
				return 0, errors.Wrap(err, "failed to insert geography")
			}
		}

		if rec.HasRevenue() {
			v := rec.CompanyRevenue
			if _, err := tx.Exec(txCtx, insertRevenueQuery,
				companyID, nullableDate(funding),
				profile.CoerceInt(v.LatestFundingAmount),
				profile.CoerceInt(v.AnnualRevenue),
				profile.CoerceInt(v.TotalFunding),
			); err != nil {
				return 0, errors.Wrap(err, "failed to insert revenue")
			}
		}

		if rec.HasSocial() {
			s := rec.Social
			if _, err := tx.Exec(txCtx, insertSocialQuery,
				companyID, s.LinkedinURL, s.FacebookURL, s.TwitterURL,
			); err != nil {
				return 0, errors.Wrap(err, "failed to insert social")
			}
		}

		return personID, nil
	})
}

// UpdateSections plans one UPDATE per present section, then runs the plan in
// a single transaction. Planning errors abort before any write.
func (r *ProfileRepository) UpdateSections(ctx context.Context, personID int64, edit profile.ProfileEdit) error {
	stmts, err := planUpdate(personID, edit)
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		return nil
	}
	return r.runPlan(ctx, personID, stmts, true)
}

// DeletePerson cascades child-to-parent and reports ErrNotFound when the
// person row was not there.
func (r *ProfileRepository) DeletePerson(ctx context.Context, personID int64) error {
	return r.runPlan(ctx, personID, planDelete(personID), false)
}

// runPlan executes statements in order inside one transaction. The last
// statement of a delete plan, and every statement of an update plan, must
// touch the person's rows; a zero-row person statement means the profile does
// not exist.
func (r *ProfileRepository) runPlan(ctx context.Context, personID int64, stmts []statement, isUpdate bool) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		for i, st := range stmts {
			tag, err := tx.Exec(txCtx, st.query, st.args...)
			if err != nil {
				return errors.Wrap(err, "failed to execute profile statement")
			}
			last := i == len(stmts)-1
			if last && !isUpdate && tag.RowsAffected() == 0 {
				return errors.Wrap(profile.ErrNotFound, "delete")
			}
		}
		if isUpdate {
			return r.ensureExists(txCtx, tx, personID)
		}
		return nil
	})
}

func (r *ProfileRepository) ensureExists(ctx context.Context, tx composables.Tx, personID int64) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM persons WHERE person_id = $1)`, personID).Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "failed to check person existence")
	}
	if !exists {
		return errors.Wrap(profile.ErrNotFound, "update")
	}
	return nil
}

var _ profile.Repository = (*ProfileRepository)(nil)
