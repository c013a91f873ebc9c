// Package controllers exposes the profile database over a JSON HTTP API.
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/modules/crm/services"
	"github.com/databankhq/databank/pkg/httpapi"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

type ProfileAPIController struct {
	profiles   *services.ProfileService
	imports    *services.ImportService
	exports    *services.ExportService
	maxUpload  int64
	errorLimit int
	basePath   string
}

func NewProfileAPIController(
	profiles *services.ProfileService,
	imports *services.ImportService,
	exports *services.ExportService,
	maxUpload int64,
	errorLimit int,
) *ProfileAPIController {
	return &ProfileAPIController{
		profiles:   profiles,
		imports:    imports,
		exports:    exports,
		maxUpload:  maxUpload,
		errorLimit: errorLimit,
		basePath:   "/api",
	}
}

func (c *ProfileAPIController) Key() string {
	return c.basePath
}

func (c *ProfileAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/profiles", c.List).Methods(http.MethodGet)
	router.HandleFunc("/profiles", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/profiles/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/profiles/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/companies/{company}/employees", c.Employees).Methods(http.MethodGet)
	router.HandleFunc("/import", c.Import).Methods(http.MethodPost)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
}

func (c *ProfileAPIController) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := c.profiles.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, profiles)
}

func (c *ProfileAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var rec profile.CanonicalRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}

	personID, err := c.profiles.CreateProfile(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"personId": personID})
}

func (c *ProfileAPIController) Update(w http.ResponseWriter, r *http.Request) {
	personID, ok := pathID(w, r)
	if !ok {
		return
	}

	var edit profile.ProfileEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON", nil)
		return
	}

	if err := c.profiles.ApplyEdit(r.Context(), personID, edit); err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"personId": personID})
}

func (c *ProfileAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	personID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.profiles.Delete(r.Context(), personID); err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"personId": personID})
}

func (c *ProfileAPIController) Employees(w http.ResponseWriter, r *http.Request) {
	company := mux.Vars(r)["company"]
	persons, err := c.profiles.EmployeesByCompany(r.Context(), company)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if persons == nil {
		persons = []profile.PersonRow{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, persons)
}

func (c *ProfileAPIController) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUpload)
	if err := r.ParseMultipartForm(c.maxUpload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "could not read multipart upload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_FILE", "upload must carry a \"file\" part", nil)
		return
	}
	defer func() { _ = file.Close() }()

	report, err := c.imports.ImportFile(r.Context(), file, header.Filename)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"successCount": report.SuccessCount,
		"errorCount":   report.ErrorCount,
		"errors":       report.Errors,
		"warnings":     report.Warnings,
		"summary":      report.Summary(c.errorLimit),
	})
}

func (c *ProfileAPIController) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("profiles-%s", time.Now().Format("2006-01-02"))

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		if err := c.exports.ExportCSV(r.Context(), w); err != nil {
			writeDomainError(w, err)
		}
	case "xlsx":
		data, err := c.exports.ExportXLSX(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		_, _ = w.Write(data)
	default:
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx", nil)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain failures onto the API error envelope.
func writeDomainError(w http.ResponseWriter, err error) {
	var missing *profile.MissingFieldsError
	var invalid *profile.InvalidFieldError

	switch {
	case errors.As(err, &missing):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS", missing.Error(), nil)
	case errors.As(err, &invalid):
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FIELD", invalid.Error(), map[string]string{
			"field": invalid.Field,
		})
	case errors.Is(err, profile.ErrNotFound):
		_ = httpapi.WriteCoded(w, http.StatusNotFound, err, nil)
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat), errors.Is(err, spreadsheet.ErrParse):
		_ = httpapi.WriteCoded(w, http.StatusBadRequest, err, nil)
	default:
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}
