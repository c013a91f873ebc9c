package profile

// BuildProfiles joins the five row sets into denormalized profiles, one per
// person, preserving person order. Companies are indexed by person id and
// the optional rows by company id, built once per call, so the join is
// O(P+C) instead of a nested scan. When duplicates exist for a key the first
// row in input order wins.
func BuildProfiles(
	persons []PersonRow,
	companies []CompanyRow,
	geos []GeoRow,
	revenues []RevenueRow,
	socials []SocialRow,
) []Profile {
	companyByPerson := make(map[int64]CompanyRow, len(companies))
	for _, c := range companies {
		if _, ok := companyByPerson[c.PersonID]; !ok {
			companyByPerson[c.PersonID] = c
		}
	}
	geoByCompany := make(map[int64]GeoRow, len(geos))
	for _, g := range geos {
		if _, ok := geoByCompany[g.CompanyID]; !ok {
			geoByCompany[g.CompanyID] = g
		}
	}
	revenueByCompany := make(map[int64]RevenueRow, len(revenues))
	for _, r := range revenues {
		if _, ok := revenueByCompany[r.CompanyID]; !ok {
			revenueByCompany[r.CompanyID] = r
		}
	}
	socialByCompany := make(map[int64]SocialRow, len(socials))
	for _, s := range socials {
		if _, ok := socialByCompany[s.CompanyID]; !ok {
			socialByCompany[s.CompanyID] = s
		}
	}

	out := make([]Profile, 0, len(persons))
	for _, p := range persons {
		profile := Profile{
			PersonID:    p.PersonID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Title:       p.Title,
			Seniority:   p.Seniority,
			Departments: p.Departments,
			MobilePhone: p.MobilePhone,
			Email:       p.Email,
			EmailStatus: p.EmailStatus,
		}

		var companyID *int64
		if c, ok := companyByPerson[p.PersonID]; ok {
			id := c.CompanyID
			companyID = &id
			profile.Company = CompanyView{
				CompanyID:      companyID,
				Company:        c.Company,
				Email:          c.Email,
				Phone:          c.Phone,
				Employees:      c.Employees,
				Industry:       c.Industry,
				SEODescription: c.SEODescription,
				Website:        c.Website,
				PersonID:       c.PersonID,
			}
		} else {
			profile.Company = EmptyCompanyView(p.PersonID)
		}

		profile.Geo = EmptyGeoView()
		profile.Revenue = EmptyRevenueView(companyID)
		profile.Social = EmptySocialView(companyID)

		if companyID != nil {
			if g, ok := geoByCompany[*companyID]; ok {
				profile.Geo = GeoView{
					Address: g.Address,
					City:    g.City,
					State:   g.State,
					Country: g.Country,
				}
			}
			if r, ok := revenueByCompany[*companyID]; ok {
				profile.Revenue = RevenueView{
					LatestFunding:       r.LatestFunding,
					LatestFundingAmount: r.LatestFundingAmount,
					AnnualRevenue:       r.AnnualRevenue,
					TotalFunding:        r.TotalFunding,
					CompanyID:           companyID,
				}
			}
			if s, ok := socialByCompany[*companyID]; ok {
				profile.Social = SocialView{
					LinkedinURL: s.LinkedinURL,
					FacebookURL: s.FacebookURL,
					TwitterURL:  s.TwitterURL,
					CompanyID:   companyID,
				}
			}
		}

		out = append(out, profile)
	}
	return out
}
