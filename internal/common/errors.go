// Package common defines shared constants and sentinel errors used across
// the Andiamo admin frontend. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session lifecycle errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyRunning   = errors.New("already initialized")
)
