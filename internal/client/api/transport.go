package api

import (
	"context"
	"net/http"
)

// CookieSessionCredential is the sentinel persisted as the credential in
// cookie mode, where the server manages session state via an HTTP-only
// cookie and the client never sees a token.
const CookieSessionCredential = "cookie-session"

// AuthTransport is the authentication strategy for outbound requests. The
// token and cookie-session variants are mutually exclusive configurations
// behind this one interface, selected at startup.
type AuthTransport interface {
	// Prime performs any handshake required before login or before a
	// restored session is used (cookie mode fetches the CSRF cookie).
	Prime(ctx context.Context) error

	// Decorate adds the strategy's auth artifacts to an outbound request.
	Decorate(req *http.Request)

	// SetCredential installs a persistable credential. Empty clears it.
	SetCredential(cred string)

	// Credential returns the currently held credential, "" when absent.
	Credential() string

	// LoginCredential maps the token field of a login response to the
	// credential to persist.
	LoginCredential(token string) (string, error)

	// Jar returns the cookie jar the HTTP client must share with the
	// transport, or nil when cookies are not used.
	Jar() http.CookieJar
}
