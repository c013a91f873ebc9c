package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/databankhq/databank/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteCoded renders an error carrying a serrors code with that code and
// message. Errors without a code fall back to a generic internal envelope so
// wrapped driver errors never leak detail to the client.
func WriteCoded(w http.ResponseWriter, status int, err error, meta map[string]string) error {
	var base *serrors.Base
	if errors.As(err, &base) {
		return WriteError(w, status, base.Code, base.Message, meta)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", meta)
}
