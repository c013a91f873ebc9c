package profile

// The view types are the read-side shape of a profile. Every key is always
// present: when the underlying row is absent a placeholder view stands in,
// so downstream filters and exporters never null-check nested paths.

type CompanyView struct {
	CompanyID      *int64 `json:"companyId"`
	Company        string `json:"company"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Employees      *int64 `json:"employees"`
	Industry       string `json:"industry"`
	SEODescription string `json:"seoDescription"`
	Website        string `json:"website"`
	PersonID       int64  `json:"personId"`
}

type GeoView struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type RevenueView struct {
	LatestFunding       string `json:"latestFunding"`
	LatestFundingAmount *int64 `json:"latestFundingAmount"`
	AnnualRevenue       *int64 `json:"annualRevenue"`
	TotalFunding        *int64 `json:"totalFunding"`
	CompanyID           *int64 `json:"companyId"`
}

type SocialView struct {
	LinkedinURL string `json:"linkedinUrl"`
	FacebookURL string `json:"facebookUrl"`
	TwitterURL  string `json:"twitterUrl"`
	CompanyID   *int64 `json:"companyId"`
}

// Profile is the denormalized composite of one person and its related rows.
type Profile struct {
	PersonID    int64  `json:"personId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Title       string `json:"title"`
	Seniority   string `json:"seniority"`
	Departments string `json:"departments"`
	MobilePhone string `json:"mobilePhone"`
	Email       string `json:"email"`
	EmailStatus string `json:"emailStatus"`

	Company CompanyView `json:"company"`
	Geo     GeoView     `json:"geo"`
	Revenue RevenueView `json:"revenue"`
	Social  SocialView  `json:"social"`
}

// EmptyCompanyView keeps the owning person id so a later edit can establish
// the company link.
func EmptyCompanyView(personID int64) CompanyView {
	return CompanyView{PersonID: personID}
}

func EmptyGeoView() GeoView {
	return GeoView{}
}

func EmptyRevenueView(companyID *int64) RevenueView {
	return RevenueView{CompanyID: companyID}
}

func EmptySocialView(companyID *int64) SocialView {
	return SocialView{CompanyID: companyID}
}
