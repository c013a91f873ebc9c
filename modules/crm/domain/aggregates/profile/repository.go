package profile

import "context"

// Repository is the storage boundary of the reconciliation engine. Reads are
// whole-table fetches; writes run inside one transaction each, opened and
// closed by the implementation.
type Repository interface {
	Persons(ctx context.Context) ([]PersonRow, error)
	Companies(ctx context.Context) ([]CompanyRow, error)
	Geographies(ctx context.Context) ([]GeoRow, error)
	Revenues(ctx context.Context) ([]RevenueRow, error)
	Socials(ctx context.Context) ([]SocialRow, error)

	// CreateProfile inserts the person, its company, and whichever optional
	// sections carry data. Returns the new person id.
	CreateProfile(ctx context.Context, rec CanonicalRecord) (int64, error)

	// UpdateSections applies one UPDATE per present edit section, all or
	// nothing.
	UpdateSections(ctx context.Context, personID int64, edit ProfileEdit) error

	// DeletePerson cascades child-to-parent through social, revenue,
	// geography, company, person.
	DeletePerson(ctx context.Context, personID int64) error

	// EmployeesByCompany finds persons whose company name matches the given
	// fragment, case-insensitively.
	EmployeesByCompany(ctx context.Context, company string) ([]PersonRow, error)
}
