package serrors

import "fmt"

// Base is a machine-readable error with a stable code. Codes are part of the
// API contract and must not change between releases.
type Base struct {
	Code    string
	Message string
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Base) WithMessage(message string) *Base {
	return &Base{Code: e.Code, Message: message}
}

func (e *Base) Is(target error) bool {
	other, ok := target.(*Base)
	return ok && other.Code == e.Code
}
