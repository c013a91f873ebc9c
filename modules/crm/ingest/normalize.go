package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/databankhq/databank/modules/crm/domain/aggregates/profile"
	"github.com/databankhq/databank/pkg/spreadsheet"
)

// validEmailStatuses is the closed set the EmailStatus column may carry.
var validEmailStatuses = map[string]struct{}{
	"Valid":        {},
	"Extrapolated": {},
	"Unavailable":  {},
	"Unknown":      {},
}

// NormalizeRow turns one parsed spreadsheet row into a canonical record.
// Unrecognized headers are dropped and reported back as warnings, as are
// values clamped during coercion. The record starts zero-valued every call,
// so no state leaks between rows.
func NormalizeRow(row spreadsheet.Row) (profile.CanonicalRecord, []string) {
	var rec profile.CanonicalRecord
	var warnings []string

	for header, raw := range row {
		path, ok := CanonicalPath(header)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unmapped column %q dropped", header))
			continue
		}

		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}

		switch path {
		case "email", "company.email":
			value = unwrapEmail(value)
		case "EmailStatus":
			if _, known := validEmailStatuses[value]; !known {
				warnings = append(warnings, fmt.Sprintf("email status %q is not recognized, stored as empty", value))
				value = ""
			}
		}

		setters[path](&rec, value)
	}

	return rec, warnings
}

// unwrapEmail recovers an address from a cell that carries a serialized JSON
// object instead of a plain string. Exported CSVs sometimes double the inner
// quotes, so those are folded back before decoding. Anything that does not
// decode is returned untouched.
func unwrapEmail(value string) string {
	if !strings.HasPrefix(value, "{") || !strings.HasSuffix(value, "}") {
		return value
	}

	candidate := strings.ReplaceAll(value, `""`, `"`)
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return value
	}
	return obj.Text
}
