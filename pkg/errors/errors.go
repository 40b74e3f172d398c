package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure by where it was produced.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindBusiness   Kind = "BUSINESS_REJECTION"
	KindSession    Kind = "SESSION_EXPIRED"
	KindTransport  Kind = "TRANSPORT_ERROR"
	KindServer     Kind = "SERVER_ERROR"
	KindDecode     Kind = "DECODE_ERROR"
)

const (
	MsgSessionExpired = "Your session has expired, please log in again"
	MsgServerError    = "Server error, please try again later"
	MsgRequestFailed  = "Request failed"
)

// AppError is returned by every client call that does not resolve.
// Code carries the envelope code for business and session rejections and
// the HTTP status for transport failures. Raw holds the undecoded envelope.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Code       int    `json:"code,omitempty"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Raw        []byte `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	prefix := string(e.Kind)
	if e.Code != 0 {
		prefix = fmt.Sprintf("%s(%d)", e.Kind, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithRaw(raw []byte) *AppError {
	e.Raw = raw
	return e
}

func (e *AppError) WithStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

func New(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps a local input failure. It never carries a code.
func Validation(err error) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: err.Error(),
		Err:     err,
	}
}

func Business(code int, message string, raw []byte) *AppError {
	if message == "" {
		message = MsgRequestFailed
	}
	return &AppError{
		Kind:       KindBusiness,
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusOK,
		Raw:        raw,
	}
}

func Session(code int, message string, raw []byte) *AppError {
	if message == "" {
		message = MsgSessionExpired
	}
	return &AppError{
		Kind:    KindSession,
		Code:    code,
		Message: message,
		Raw:     raw,
	}
}

// Transport wraps err, the original failure reported by the HTTP layer.
func Transport(err error, status int, message string) *AppError {
	kind := KindTransport
	if status >= http.StatusInternalServerError {
		kind = KindServer
	}
	return &AppError{
		Kind:       kind,
		Code:       status,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

func Decode(err error, raw []byte) *AppError {
	return &AppError{
		Kind:    KindDecode,
		Message: "failed to decode response data",
		Raw:     raw,
		Err:     err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError returns the AppError in err's chain, wrapping err as a
// transport failure when there is none.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Transport(err, 0, err.Error())
}

// CodeOf returns the numeric code carried by err, or 0.
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsSession reports whether err ended the session.
func IsSession(err error) bool {
	return KindOf(err) == KindSession
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
