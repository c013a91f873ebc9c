package profile

// ProfileEdit carries a partial edit to one profile. Each nil section means
// "leave that table alone": absence never implies nulling.
type ProfileEdit struct {
	PersonDetails  *PersonDetailsEdit  `json:"personalDetails"`
	CompanyDetails *CompanyDetailsEdit `json:"companyDetails"`
	GeoDetails     *GeoDetailsEdit     `json:"geoDetails"`
	RevenueDetails *RevenueDetailsEdit `json:"revenueDetails"`
	SocialDetails  *SocialDetailsEdit  `json:"socialDetails"`
}

type PersonDetailsEdit struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Title       string `json:"title"`
	Seniority   string `json:"seniority"`
	Departments string `json:"departments"`
	MobilePhone string `json:"mobilePhone"`
	Email       string `json:"email"`
	EmailStatus string `json:"EmailStatus"`
}

type CompanyDetailsEdit struct {
	Company        string `json:"company"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Employees      string `json:"employees"`
	Industry       string `json:"industry"`
	SEODescription string `json:"seoDescription"`
	Website        string `json:"website"`
}

type GeoDetailsEdit struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type RevenueDetailsEdit struct {
	LatestFunding       string `json:"latestFunding"`
	LatestFundingAmount string `json:"latestFundingAmount"`
	AnnualRevenue       string `json:"annualRevenue"`
	TotalFunding        string `json:"totalFunding"`
}

type SocialDetailsEdit struct {
	LinkedinURL string `json:"linkedinUrl"`
	FacebookURL string `json:"facebookUrl"`
	TwitterURL  string `json:"twitterUrl"`
}

// IsEmpty reports an edit with no sections at all.
func (e *ProfileEdit) IsEmpty() bool {
	return e.PersonDetails == nil &&
		e.CompanyDetails == nil &&
		e.GeoDetails == nil &&
		e.RevenueDetails == nil &&
		e.SocialDetails == nil
}
