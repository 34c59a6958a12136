package scout

import (
	"errors"
	"fmt"
)

// Pipeline error codes. Every failed run reports exactly one of these.
const (
	EWEBSITENOTFOUND = "website_not_found"
	EFETCHFAILED     = "fetch_failed"
	EEMPTYCONTENT    = "empty_content"
	EQUOTA           = "model_quota_exceeded"
	EUNAVAILABLE     = "model_unavailable"
	EUNPARSABLE      = "unparsable_response"
)

// Construction and configuration error codes. These never appear in an
// ExtractionResult.
const (
	EINVALID  = "invalid"
	EINTERNAL = "internal"
)

// Error represents an application-specific error. The Err field holds the
// underlying cause, if any, and is reachable through errors.Unwrap.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scout error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("scout error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code and message that wraps cause.
func WrapError(code string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsPipelineCode reports whether code belongs to the closed set of pipeline
// failure kinds.
func IsPipelineCode(code string) bool {
	switch code {
	case EWEBSITENOTFOUND, EFETCHFAILED, EEMPTYCONTENT, EQUOTA, EUNAVAILABLE, EUNPARSABLE:
		return true
	}
	return false
}

// ErrorKindMessage returns a user-facing sentence for a pipeline failure kind.
func ErrorKindMessage(code string) string {
	switch code {
	case EWEBSITENOTFOUND:
		return "Could not find an official website for this company."
	case EFETCHFAILED:
		return "The company website could not be reached."
	case EEMPTYCONTENT:
		return "The company website did not contain any readable text."
	case EQUOTA:
		return "The AI service quota has been exceeded. Try again later."
	case EUNAVAILABLE:
		return "The AI service is temporarily unavailable."
	case EUNPARSABLE:
		return "The AI service returned an answer that could not be understood."
	}
	return "An internal error occurred."
}
