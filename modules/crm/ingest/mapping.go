// Package ingest normalizes heterogeneous spreadsheet rows into canonical
// nested records and drives batch imports against the profile write path.
package ingest

import (
	"strings"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
)

// importMapping is the versioned lookup from recognized external column
// labels to canonical dotted paths. Adding an importable column means adding
// one entry here; nothing else changes.
var importMapping = map[string]string{
	"First Name":            "firstName",
	"Last Name":             "lastName",
	"Title":                 "title",
	"Seniority":             "seniority",
	"Departments":           "departments",
	"Mobile Phone":          "mobilePhone",
	"Email":                 "email",
	"Email Status":          "EmailStatus",
	"Company":               "company.company",
	"Company Email":         "company.email",
	"Company Phone":         "company.phone",
	"Employees":             "company.employees",
	"Industry":              "company.industry",
	"SEO Description":       "company.seoDescription",
	"Website":               "company.website",
	"City":                  "geo.city",
	"Address":               "geo.address",
	"State":                 "geo.state",
	"Country":               "geo.country",
	"Latest Funding":        "companyRevenue.latestFunding",
	"Latest Funding Amount": "companyRevenue.latestFundingAmount",
	"Annual Revenue":        "companyRevenue.annualRevenue",
	"Total Funding":         "companyRevenue.totalFunding",
	"LinkedIn":              "social.linkedinUrl",
	"Facebook":              "social.facebookUrl",
	"Twitter":               "social.twitterUrl",
}

// setters writes a coerced value into its slot on a record.
var setters = map[string]func(*profile.CanonicalRecord, string){
	"firstName":                          func(r *profile.CanonicalRecord, v string) { r.FirstName = v },
	"lastName":                           func(r *profile.CanonicalRecord, v string) { r.LastName = v },
	"title":                              func(r *profile.CanonicalRecord, v string) { r.Title = v },
	"seniority":                          func(r *profile.CanonicalRecord, v string) { r.Seniority = v },
	"departments":                        func(r *profile.CanonicalRecord, v string) { r.Departments = v },
	"mobilePhone":                        func(r *profile.CanonicalRecord, v string) { r.MobilePhone = v },
	"email":                              func(r *profile.CanonicalRecord, v string) { r.Email = v },
	"EmailStatus":                        func(r *profile.CanonicalRecord, v string) { r.EmailStatus = v },
	"company.company":                    func(r *profile.CanonicalRecord, v string) { r.Company.Company = v },
	"company.email":                      func(r *profile.CanonicalRecord, v string) { r.Company.Email = v },
	"company.phone":                      func(r *profile.CanonicalRecord, v string) { r.Company.Phone = v },
	"company.employees":                  func(r *profile.CanonicalRecord, v string) { r.Company.Employees = v },
	"company.industry":                   func(r *profile.CanonicalRecord, v string) { r.Company.Industry = v },
	"company.seoDescription":             func(r *profile.CanonicalRecord, v string) { r.Company.SEODescription = v },
	"company.website":                    func(r *profile.CanonicalRecord, v string) { r.Company.Website = v },
	"geo.address":                        func(r *profile.CanonicalRecord, v string) { r.Geo.Address = v },
	"geo.city":                           func(r *profile.CanonicalRecord, v string) { r.Geo.City = v },
	"geo.state":                          func(r *profile.CanonicalRecord, v string) { r.Geo.State = v },
	"geo.country":                        func(r *profile.CanonicalRecord, v string) { r.Geo.Country = v },
	"companyRevenue.latestFunding":       func(r *profile.CanonicalRecord, v string) { r.CompanyRevenue.LatestFunding = v },
	"companyRevenue.latestFundingAmount": func(r *profile.CanonicalRecord, v string) { r.CompanyRevenue.LatestFundingAmount = v },
	"companyRevenue.annualRevenue":       func(r *profile.CanonicalRecord, v string) { r.CompanyRevenue.AnnualRevenue = v },
	"companyRevenue.totalFunding":        func(r *profile.CanonicalRecord, v string) { r.CompanyRevenue.TotalFunding = v },
	"social.linkedinUrl":                 func(r *profile.CanonicalRecord, v string) { r.Social.LinkedinURL = v },
	"social.facebookUrl":                 func(r *profile.CanonicalRecord, v string) { r.Social.FacebookURL = v },
	"social.twitterUrl":                  func(r *profile.CanonicalRecord, v string) { r.Social.TwitterURL = v },
}

// normalizedMapping folds importMapping keys plus the canonical paths
// themselves through normalizeKey, so re-importing an exported file is a
// no-op on headers.
var normalizedMapping = func() map[string]string {
	m := make(map[string]string, len(importMapping)+len(setters))
	for label, path := range importMapping {
		m[normalizeKey(label)] = path
	}
	for path := range setters {
		m[normalizeKey(path)] = path
	}
	return m
}()

// normalizeKey collapses runs of whitespace and lowercases, so header
// matching tolerates spacing and case drift.
func normalizeKey(key string) string {
	return strings.ToLower(strings.Join(strings.Fields(key), " "))
}

// CanonicalPath resolves a raw header label. ok is false for unrecognized
// labels, which the pipeline skips.
func CanonicalPath(header string) (string, bool) {
	path, ok := normalizedMapping[normalizeKey(header)]
	return path, ok
}

// ExportColumn pairs an external header label with its canonical path, in
// the stable export order.
type ExportColumn struct {
	Header string
	Path   string
}

// ExportColumns is the column layout for profile exports. Every header maps
// back through importMapping, so export followed by import round-trips.
var ExportColumns = []ExportColumn{
	{"First Name", "firstName"},
	{"Last Name", "lastName"},
	{"Title", "title"},
	{"Seniority", "seniority"},
	{"Departments", "departments"},
	{"Mobile Phone", "mobilePhone"},
	{"Email", "email"},
	{"Email Status", "EmailStatus"},
	{"Company", "company.company"},
	{"Company Email", "company.email"},
	{"Company Phone", "company.phone"},
	{"Employees", "company.employees"},
	{"Industry", "company.industry"},
	{"SEO Description", "company.seoDescription"},
	{"Website", "company.website"},
	{"Address", "geo.address"},
	{"City", "geo.city"},
	{"State", "geo.state"},
	{"Country", "geo.country"},
	{"Latest Funding", "companyRevenue.latestFunding"},
	{"Latest Funding Amount", "companyRevenue.latestFundingAmount"},
	{"Annual Revenue", "companyRevenue.annualRevenue"},
	{"Total Funding", "companyRevenue.totalFunding"},
	{"LinkedIn", "social.linkedinUrl"},
	{"Facebook", "social.facebookUrl"},
	{"Twitter", "social.twitterUrl"},
}
