// Package profile defines the five-table contact schema, the denormalized
// profile view assembled from it, and the canonical nested record every
// import converges to.
package profile

// PersonRow mirrors the persons table. Owns the downstream entities.
type PersonRow struct {
	PersonID    int64
	FirstName   string
	LastName    string
	Title       string
	Seniority   string
	Departments string
	MobilePhone string
	Email       string
	EmailStatus string
}

// CompanyRow mirrors the companies table. One row per contact, never shared
// between persons.
type CompanyRow struct {
	CompanyID      int64
	PersonID       int64
	Company        string
	Email          string
	Phone          string
	Employees      *int64
	Industry       string
	SEODescription string
	Website        string
}

// GeoRow mirrors the geographies table. Zero or one per company.
type GeoRow struct {
	CompanyID int64
	Address   string
	City      string
	State     string
	Country   string
}

// RevenueRow mirrors the revenues table. Zero or one per company.
// LatestFunding is a YYYY-MM-DD date string.
type RevenueRow struct {
	CompanyID           int64
	LatestFunding       string
	LatestFundingAmount *int64
	AnnualRevenue       *int64
	TotalFunding        *int64
}

// SocialRow mirrors the socials table. Zero or one per company.
type SocialRow struct {
	CompanyID   int64
	LinkedinURL string
	FacebookURL string
	TwitterURL  string
}
