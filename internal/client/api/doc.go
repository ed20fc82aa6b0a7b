// Package api contains the client for the Andiamo backend REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): login,
//     logout, settings, dashboard summary, password change and batch CRUD.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks JSON,
//     tags every request with an X-Request-ID, and maps response statuses
//     to sentinel errors.
//  3. Two authentication strategies behind one interface (AuthTransport):
//     bearer token and cookie session with CSRF priming. The strategy is
//     fixed at startup by configuration; the rest of the app never branches
//     on it.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized. Backend validation
// failures (422) come back as *ValidationError carrying the field messages
// verbatim.
//
// Callers of authenticated operations are expected to treat ErrUnauthorized
// as a dead session and invalidate it before surfacing the error; the one
// deliberate exception is the settings fetch (see the session package).
package api
