package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// TransientStoreError represents a store query that failed or timed out.
	// The triggering event is dropped from broadcast; processing continues
	// with the next event for the symbol.
	TransientStoreError ErrorCode = "transient_store_error"
	// MalformedEvent represents an ingested event missing a required field
	// or carrying an inconsistent shape. Rejected at the ingestion boundary,
	// never enters the sequencer.
	MalformedEvent ErrorCode = "malformed_event"
	// UnknownSymbol represents a join or query for a symbol outside the
	// supported set.
	UnknownSymbol ErrorCode = "unknown_symbol"
)

// Severity represents the severity level of an error.
type Severity string

const (
	// SeverityCritical indicates a critical error that requires immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates a high severity error that should be addressed promptly.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates a medium severity error.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a low severity error.
	SeverityLow Severity = "low"
)

// DomainError is an error carrying a code and severity so callers can branch
// on the taxonomy without string matching.
type DomainError struct {
	Code     ErrorCode
	Severity Severity
	Message  string
	Err      error
}

// NewDomainError creates a DomainError with the given code and message.
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:     code,
		Severity: SeverityMedium,
		Message:  message,
	}
}

// WithSeverity sets the severity of the error.
func (e *DomainError) WithSeverity(severity Severity) *DomainError {
	e.Severity = severity
	return e
}

// Wrap attaches an underlying cause.
func (e *DomainError) Wrap(err error) *DomainError {
	e.Err = err
	return e
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from err if it is (or wraps) a DomainError.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if de, ok := err.(*DomainError); ok {
			return de.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// IsCode reports whether err carries the given ErrorCode.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
