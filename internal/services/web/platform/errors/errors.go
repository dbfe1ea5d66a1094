// Package errors defines the typed failures web handlers render.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies a failure so every handler maps it to the same status.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

var kindStatus = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindUnavailable:  http.StatusServiceUnavailable,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
}

// Error is a classified failure with an optional catalog key.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// E builds an Error without a catalog key.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds an Error whose Key is looked up in the message catalog.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

func asError(err error) (Error, bool) {
	var typed Error
	if err == nil || !stderrors.As(err, &typed) {
		return Error{}, false
	}
	return typed, true
}

// LocalizationKey returns the catalog key carried by err, if any.
func LocalizationKey(err error) string {
	typed, ok := asError(err)
	if !ok {
		return ""
	}
	return strings.TrimSpace(typed.Key)
}

// upstreamStatus is implemented by remote API errors that carry the status
// of the failed response.
type upstreamStatus interface {
	StatusCode() int
}

// HTTPStatus picks the response status for err. Nil maps to 200 and anything
// unclassified to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if typed, ok := asError(err); ok {
		if status, found := kindStatus[typed.Kind]; found {
			return status
		}
		return http.StatusInternalServerError
	}
	if kind, ok := upstreamKind(err); ok {
		if kind == KindInvalidInput {
			return http.StatusBadRequest
		}
		if kind == KindUnavailable && !retryable(err) {
			return http.StatusBadGateway
		}
		return kindStatus[kind]
	}
	return http.StatusInternalServerError
}

// upstreamKind classifies a remote failure by the status it reported.
func upstreamKind(err error) (Kind, bool) {
	var upstream upstreamStatus
	if !stderrors.As(err, &upstream) {
		return "", false
	}
	switch code := upstream.StatusCode(); {
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return KindInvalidInput, true
	case code == http.StatusUnauthorized:
		return KindUnauthorized, true
	case code == http.StatusForbidden:
		return KindForbidden, true
	case code == http.StatusNotFound:
		return KindNotFound, true
	case code == http.StatusConflict:
		return KindConflict, true
	case code == http.StatusServiceUnavailable || code == http.StatusTooManyRequests || code >= 500:
		return KindUnavailable, true
	}
	return "", false
}

// retryable reports whether the upstream asked the caller to back off rather
// than failing outright.
func retryable(err error) bool {
	var upstream upstreamStatus
	if !stderrors.As(err, &upstream) {
		return false
	}
	code := upstream.StatusCode()
	return code == http.StatusServiceUnavailable || code == http.StatusTooManyRequests
}

// UpstreamMapping is the Error MapUpstreamError falls back to when a remote
// failure carries no useful status.
type UpstreamMapping struct {
	FallbackKind    Kind
	FallbackKey     string
	FallbackMessage string
}

var upstreamErrors = map[Kind]Error{
	KindUnauthorized: {Kind: KindUnauthorized, Key: "error.unauthorized", Message: "authentication required"},
	KindForbidden:    {Kind: KindForbidden, Key: "error.forbidden", Message: "access denied"},
	KindNotFound:     {Kind: KindNotFound, Key: "error.not_found", Message: "not found"},
	KindConflict:     {Kind: KindConflict, Key: "error.conflict", Message: "conflict"},
	KindUnavailable:  {Kind: KindUnavailable, Key: "error.unavailable", Message: "service unavailable"},
}

// MapUpstreamError turns a remote API failure into an Error so pages never
// echo the upstream body. Typed errors pass through unchanged.
func MapUpstreamError(err error, mapping UpstreamMapping) error {
	if err == nil {
		return nil
	}
	if typed, ok := asError(err); ok {
		return typed
	}
	if kind, ok := upstreamKind(err); ok {
		if mapped, found := upstreamErrors[kind]; found {
			return mapped
		}
	}
	fallback := Error{Kind: mapping.FallbackKind, Key: strings.TrimSpace(mapping.FallbackKey), Message: mapping.FallbackMessage}
	if fallback.Kind == "" {
		fallback.Kind = KindUnknown
	}
	return fallback
}
