// Package apperr defines the tagged errors returned by the service layer and
// their translation to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindStoreFailure Kind = iota
	KindNotFound
	KindDuplicateKey
	KindInvalidSort
	KindInvalidPagination
	KindValidationFailed
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindInvalidSort:
		return "invalid_sort"
	case KindInvalidPagination:
		return "invalid_pagination"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "store_failure"
	}
}

// Status is the HTTP status a kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey, KindInvalidSort, KindInvalidPagination, KindValidationFailed:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) error {
	return &Error{Kind: KindDuplicateKey, Msg: fmt.Sprintf(format, args...)}
}

func InvalidSort(field string) error {
	return &Error{Kind: KindInvalidSort, Msg: fmt.Sprintf("Sort parameter '%s' is not supported", field)}
}

func InvalidPagination(param string) error {
	return &Error{Kind: KindInvalidPagination, Msg: fmt.Sprintf("Query parameter '%s' must be a positive integer", param)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidationFailed, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// Store wraps an opaque persistence failure. A nil err yields nil.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStoreFailure, Err: err}
}

// KindOf reports the kind carried by err; untagged errors are store failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStoreFailure
}

func Is(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

func Status(err error) int { return KindOf(err).Status() }

// Message is the text shown to clients for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
