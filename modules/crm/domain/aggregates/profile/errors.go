package profile

import (
	"fmt"
	"strings"

	"github.com/databankhq/databank/pkg/serrors"
)

var (
	ErrNotFound = serrors.NewError("PROFILE_NOT_FOUND", "profile not found")
)

// MissingFieldsError rejects a record whose required fields are empty after
// normalization. Row-level: the surrounding batch continues.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "MissingRequiredFields: " + strings.Join(e.Fields, ", ")
}

// InvalidFieldError rejects an edit whose field value cannot be interpreted,
// e.g. an unparsable funding date. Nothing is written for the whole edit.
type InvalidFieldError struct {
	Field string
	Value string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q", e.Field, e.Value)
}
