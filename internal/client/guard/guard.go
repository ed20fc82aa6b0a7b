// Package guard decides whether a protected view may render. The decision
// itself is a pure function of the session state and the requested location;
// the HTTP middleware and the CLI check are thin adapters over it.
package guard

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/andiamoid/andiamo-admin/internal/client/session"
	"github.com/andiamoid/andiamo-admin/internal/common"
)

// LoginPath is where anonymous visitors of protected locations are sent.
const LoginPath = "/admin/login"

// Decision is the outcome of a guard check.
type Decision int

const (
	// DecisionLoading: the restore is still pending. Do not redirect; the
	// visitor would bounce to login even though a valid session may be
	// about to be restored.
	DecisionLoading Decision = iota
	// DecisionRedirect: anonymous. Send to login, preserving the requested
	// location so a successful login can return there.
	DecisionRedirect
	// DecisionAllow: authenticated, render the protected view.
	DecisionAllow
)

// Result carries the decision plus, for redirects, the location to return to
// after login.
type Result struct {
	Decision Decision
	From     string
}

// Decide maps session state and the requested location to a guard outcome.
func Decide(isLoading, isAuthenticated bool, location string) Result {
	switch {
	case isLoading:
		return Result{Decision: DecisionLoading}
	case !isAuthenticated:
		return Result{Decision: DecisionRedirect, From: location}
	default:
		return Result{Decision: DecisionAllow}
	}
}

// RedirectURL renders a redirect result as the login URL with the preserved
// location in the "from" query parameter.
func (r Result) RedirectURL() string {
	if r.From == "" {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(r.From)
}

// StateFunc supplies the current session state. In practice this is
// Manager.Snapshot.
type StateFunc func() session.State

// Middleware protects an HTTP handler. Anonymous requests are redirected to
// the login page; requests arriving before the restore finished get a
// retryable 503 instead of a misleading redirect.
func Middleware(state StateFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := Decide(stateFlags(state(), r.RequestURI))
			switch res.Decision {
			case DecisionLoading:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session restore in progress", http.StatusServiceUnavailable)
			case DecisionRedirect:
				http.Redirect(w, r, res.RedirectURL(), http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func stateFlags(st session.State, location string) (bool, bool, string) {
	return st.IsLoading(), st.IsAuthenticated(), location
}

// RequireAuth is the CLI form of the guard: protected commands call it
// before doing anything. The command name plays the role of the requested
// location in the returned error.
func RequireAuth(st session.State, command string) error {
	res := Decide(st.IsLoading(), st.IsAuthenticated(), command)
	if res.Decision == DecisionAllow {
		return nil
	}
	return fmt.Errorf("%w: %q requires a session, run \"login\" first", common.ErrNotAuthenticated, command)
}
