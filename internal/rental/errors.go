package rental

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a backend failure.
type Kind int

const (
	// KindGeneric is any other non-success response.
	KindGeneric Kind = iota
	// KindValidation is a rejection carrying field-level errors.
	KindValidation
	// KindConflict is a duplicate of a unique field.
	KindConflict
	// KindTransport means no usable response arrived.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindTransport:
		return "transport"
	default:
		return "generic"
	}
}

// ConflictReason names the unique field a conflict is about.
type ConflictReason int

const (
	ConflictUnknown ConflictReason = iota
	ConflictNationalID
	ConflictEmail
)

// Structured codes the backend may send with a conflict.
const (
	CodeDuplicateNationalID = "DUPLICATE_NATIONAL_ID"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeValidation          = "VALIDATION_FAILED"
)

// Error is the single error type returned by backend adapters.
type Error struct {
	Kind        Kind
	Status      int
	Code        string
	Message     string
	FieldErrors map[string]string
	Reason      ConflictReason
	Err         error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s error (status %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("backend %s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries a backend error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}

// Conflict builds a conflict error from a structured code.
func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message, Reason: ReasonFromCode(code)}
}

// ReasonFromCode maps a structured conflict code to its reason.
func ReasonFromCode(code string) ConflictReason {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case CodeDuplicateNationalID:
		return ConflictNationalID
	case CodeDuplicateEmail:
		return ConflictEmail
	default:
		return ConflictUnknown
	}
}

// ReasonFromText is the fallback for backends that only send prose. It
// checks "national ID" before "email", so a message mentioning both is
// reported as a national ID conflict, and any text that merely mentions
// either phrase is treated as a conflict on that field.
func ReasonFromText(text string) ConflictReason {
	switch {
	case strings.Contains(text, "national ID"):
		return ConflictNationalID
	case strings.Contains(text, "email"):
		return ConflictEmail
	default:
		return ConflictUnknown
	}
}

// ClassifyConflict prefers the structured code and falls back to the text
// heuristic only when the code is absent or unknown.
func ClassifyConflict(code, text string) ConflictReason {
	if r := ReasonFromCode(code); r != ConflictUnknown {
		return r
	}
	return ReasonFromText(text)
}
