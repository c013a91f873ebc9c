package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/modules/crm/services"
	"github.com/databankhq/databank/pkg/eventbus"
)

type fakeRepo struct {
	persons   []profile.PersonRow
	companies []profile.CompanyRow

	created []profile.CanonicalRecord
	deleted []int64
	edits   map[int64]profile.ProfileEdit
	fail    error
}

func (f *fakeRepo) Persons(context.Context) ([]profile.PersonRow, error) { return f.persons, nil }
func (f *fakeRepo) Companies(context.Context) ([]profile.CompanyRow, error) { return f.companies, nil }
func (f *fakeRepo) Geographies(context.Context) ([]profile.GeoRow, error) { return nil, nil }
func (f *fakeRepo) Revenues(context.Context) ([]profile.RevenueRow, error) { return nil, nil }
func (f *fakeRepo) Socials(context.Context) ([]profile.SocialRow, error) { return nil, nil }

func (f *fakeRepo) CreateProfile(_ context.Context, rec profile.CanonicalRecord) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.created = append(f.created, rec)
	return int64(len(f.created)), nil
}

func (f *fakeRepo) UpdateSections(_ context.Context, personID int64, edit profile.ProfileEdit) error {
	if f.fail != nil {
		return f.fail
	}
	if f.edits == nil {
		f.edits = map[int64]profile.ProfileEdit{}
	}
	f.edits[personID] = edit
	return nil
}

func (f *fakeRepo) DeletePerson(_ context.Context, personID int64) error {
	if f.fail != nil {
		return f.fail
	}
	f.deleted = append(f.deleted, personID)
	return nil
}

func (f *fakeRepo) EmployeesByCompany(context.Context, string) ([]profile.PersonRow, error) {
	return f.persons, nil
}

func newRouter(repo *fakeRepo) *mux.Router {
	profiles := services.NewProfileService(repo, eventbus.NewEventPublisher(nil))
	controller := NewProfileAPIController(
		profiles,
		services.NewImportService(profiles, nil),
		services.NewExportService(profiles),
		1<<20,
		10,
	)
	r := mux.NewRouter()
	controller.Register(r)
	return r
}

func TestListProfilesPlaceholdersSerialized(t *testing.T) {
	repo := &fakeRepo{persons: []profile.PersonRow{{PersonID: 1, FirstName: "Ada"}}}
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)

	company, ok := out[0]["company"].(map[string]any)
	require.True(t, ok, "company key must always be present")
	assert.Nil(t, company["companyId"])
	assert.Equal(t, float64(1), company["personId"])
	_, hasGeo := out[0]["geo"]
	assert.True(t, hasGeo)
}

func TestCreateProfileValidationEnvelope(t *testing.T) {
	repo := &fakeRepo{}
	body := `{"firstName":"Ada"}`
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", envelope["code"])
	assert.Contains(t, envelope["message"], "email")
	assert.Empty(t, repo.created)
}

func TestCreateProfileSuccess(t *testing.T) {
	repo := &fakeRepo{}
	body := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@acme.test","company":{"company":"Acme"}}`
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, float64(1), out["personId"])
}

func TestUpdateInvalidFundingDate(t *testing.T) {
	body := `{"revenueDetails":{"latestFunding":"whenever"}}`

	profiles := services.NewProfileService(&invalidDateRepo{}, eventbus.NewEventPublisher(nil))
	controller := NewProfileAPIController(profiles, services.NewImportService(profiles, nil), services.NewExportService(profiles), 1<<20, 10)
	r := mux.NewRouter()
	controller.Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/profiles/5", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_FIELD", envelope["code"])
	meta := envelope["meta"].(map[string]any)
	assert.Equal(t, "companyRevenue.latestFunding", meta["field"])
}

// invalidDateRepo runs the real update planner semantics for date handling.
type invalidDateRepo struct {
	fakeRepo
}

func (r *invalidDateRepo) UpdateSections(_ context.Context, _ int64, edit profile.ProfileEdit) error {
	if v := edit.RevenueDetails; v != nil {
		if _, err := profile.NormalizeDate("companyRevenue.latestFunding", v.LatestFunding); err != nil {
			return err
		}
	}
	return nil
}

func TestDeleteNotFound(t *testing.T) {
	repo := &fakeRepo{fail: profile.ErrNotFound}
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profiles/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "PROFILE_NOT_FOUND", envelope["code"])
}

func TestImportMultipart(t *testing.T) {
	repo := &fakeRepo{}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "people.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("First Name,Last Name,Email,Company\nAda,Lovelace,ada@acme.test,Acme\nAlan,Turing,,Acme\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, float64(1), report["successCount"])
	assert.Equal(t, float64(1), report["errorCount"])
	require.Len(t, repo.created, 1)
}

func TestExportCSV(t *testing.T) {
	repo := &fakeRepo{persons: []profile.PersonRow{{PersonID: 1, FirstName: "Ada", Email: "ada@acme.test"}}}
	rec := httptest.NewRecorder()

	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "First Name,"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeRepo{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export?format=pdf", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
