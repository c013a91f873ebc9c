package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestBuildProfilesFullChain(t *testing.T) {
	profiles := BuildProfiles(
		[]PersonRow{{PersonID: 1, FirstName: "Ada", Email: "ada@acme.test"}},
		[]CompanyRow{{CompanyID: 10, PersonID: 1, Company: "Acme", Employees: ptr(1200)}},
		[]GeoRow{{CompanyID: 10, City: "London"}},
		[]RevenueRow{{CompanyID: 10, LatestFunding: "2021-06-15", AnnualRevenue: ptr(5_000_000)}},
		[]SocialRow{{CompanyID: 10, LinkedinURL: "https://linkedin.com/company/acme"}},
	)

	require.Len(t, profiles, 1)
	p := profiles[0]

	assert.Equal(t, "Acme", p.Company.Company)
	require.NotNil(t, p.Company.CompanyID)
	assert.Equal(t, int64(10), *p.Company.CompanyID)
	assert.Equal(t, "London", p.Geo.City)
	assert.Equal(t, "2021-06-15", p.Revenue.LatestFunding)
	require.NotNil(t, p.Revenue.AnnualRevenue)
	assert.Equal(t, int64(5_000_000), *p.Revenue.AnnualRevenue)
	assert.Equal(t, "https://linkedin.com/company/acme", p.Social.LinkedinURL)
}

func TestBuildProfilesPlaceholders(t *testing.T) {
	profiles := BuildProfiles(
		[]PersonRow{{PersonID: 2, FirstName: "Alan"}},
		nil, nil, nil, nil,
	)

	require.Len(t, profiles, 1)
	p := profiles[0]

	// every nested key present, ids only where derivable
	assert.Nil(t, p.Company.CompanyID)
	assert.Equal(t, int64(2), p.Company.PersonID)
	assert.Equal(t, "", p.Company.Company)
	assert.Nil(t, p.Company.Employees)
	assert.Equal(t, GeoView{}, p.Geo)
	assert.Nil(t, p.Revenue.CompanyID)
	assert.Nil(t, p.Social.CompanyID)
}

func TestBuildProfilesCompanyWithoutChildren(t *testing.T) {
	profiles := BuildProfiles(
		[]PersonRow{{PersonID: 1}},
		[]CompanyRow{{CompanyID: 10, PersonID: 1, Company: "Acme"}},
		nil, nil, nil,
	)

	require.Len(t, profiles, 1)
	p := profiles[0]

	// placeholders for absent children still carry the company id
	require.NotNil(t, p.Revenue.CompanyID)
	assert.Equal(t, int64(10), *p.Revenue.CompanyID)
	assert.Equal(t, "", p.Revenue.LatestFunding)
	require.NotNil(t, p.Social.CompanyID)
	assert.Equal(t, "", p.Social.LinkedinURL)
}

func TestBuildProfilesFirstMatchWins(t *testing.T) {
	profiles := BuildProfiles(
		[]PersonRow{{PersonID: 1}},
		[]CompanyRow{
			{CompanyID: 10, PersonID: 1, Company: "First"},
			{CompanyID: 11, PersonID: 1, Company: "Second"},
		},
		[]GeoRow{
			{CompanyID: 10, City: "Paris"},
			{CompanyID: 10, City: "Lyon"},
		},
		nil, nil,
	)

	require.Len(t, profiles, 1)
	assert.Equal(t, "First", profiles[0].Company.Company)
	assert.Equal(t, "Paris", profiles[0].Geo.City)
}

func TestBuildProfilesPreservesPersonOrder(t *testing.T) {
	profiles := BuildProfiles(
		[]PersonRow{{PersonID: 3}, {PersonID: 1}, {PersonID: 2}},
		nil, nil, nil, nil,
	)

	require.Len(t, profiles, 3)
	assert.Equal(t, int64(3), profiles[0].PersonID)
	assert.Equal(t, int64(1), profiles[1].PersonID)
	assert.Equal(t, int64(2), profiles[2].PersonID)
}
