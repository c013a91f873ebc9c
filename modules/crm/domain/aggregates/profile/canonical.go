package profile

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/databankhq/databank/pkg/constants"
)

// CanonicalRecord is the nested shape all imports normalize into, whatever
// the source file layout was. Numeric-looking fields stay strings here;
// coercion happens at the write path. It is a plain value type: assigning it
// copies it, so every import row works on an independent instance.
type CanonicalRecord struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Title       string `json:"title"`
	Seniority   string `json:"seniority"`
	Departments string `json:"departments"`
	MobilePhone string `json:"mobilePhone"`
	Email       string `json:"email" validate:"required"`
	EmailStatus string `json:"EmailStatus"`

	Company        CompanyDetails `json:"company"`
	Geo            GeoDetails     `json:"geo"`
	Social         SocialDetails  `json:"social"`
	CompanyRevenue RevenueDetails `json:"companyRevenue"`
}

type CompanyDetails struct {
	Company        string `json:"company" validate:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Employees      string `json:"employees"`
	Industry       string `json:"industry"`
	SEODescription string `json:"seoDescription"`
	Website        string `json:"website"`
}

type GeoDetails struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type SocialDetails struct {
	LinkedinURL string `json:"linkedinUrl"`
	FacebookURL string `json:"facebookUrl"`
	TwitterURL  string `json:"twitterUrl"`
}

type RevenueDetails struct {
	LatestFunding       string `json:"latestFunding"`
	LatestFundingAmount string `json:"latestFundingAmount"`
	AnnualRevenue       string `json:"annualRevenue"`
	TotalFunding        string `json:"totalFunding"`
}

// HasGeo reports whether any geography field carries a value.
func (r *CanonicalRecord) HasGeo() bool {
	g := r.Geo
	return anyNonEmpty(g.Address, g.City, g.State, g.Country)
}

// HasSocial reports whether any social field carries a value.
func (r *CanonicalRecord) HasSocial() bool {
	s := r.Social
	return anyNonEmpty(s.LinkedinURL, s.FacebookURL, s.TwitterURL)
}

// HasRevenue reports whether any revenue field carries a value.
func (r *CanonicalRecord) HasRevenue() bool {
	v := r.CompanyRevenue
	return anyNonEmpty(v.LatestFunding, v.LatestFundingAmount, v.AnnualRevenue, v.TotalFunding)
}

func anyNonEmpty(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// canonicalFieldNames translates validator namespaces into the dotted
// canonical paths used in error reports.
var canonicalFieldNames = map[string]string{
	"CanonicalRecord.FirstName":       "firstName",
	"CanonicalRecord.LastName":        "lastName",
	"CanonicalRecord.Email":           "email",
	"CanonicalRecord.Company.Company": "company.company",
}

// Validate enforces the required-field contract: firstName, lastName, email
// and company.company must be non-empty. Failures come back as a
// MissingFieldsError naming exactly the missing paths.
func (r *CanonicalRecord) Validate() error {
	err := constants.Validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := canonicalFieldNames[fe.StructNamespace()]
		if !ok {
			name = fe.StructNamespace()
		}
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return &MissingFieldsError{Fields: fields}
}
