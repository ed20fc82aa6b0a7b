package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the credential was missing, expired or revoked.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError is a 422-style rejection. Field messages are surfaced
// verbatim to the submitting form; they never affect the session.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+1)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, strings.Join(e.Fields[k], " "))
	}

	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, " ")
}

// StatusError is any other non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
