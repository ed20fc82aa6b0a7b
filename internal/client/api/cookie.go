package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

// csrfCookiePath is resolved against the host root, not the API base path:
// the backend serves it outside the /api prefix.
const csrfCookiePath = "/sanctum/csrf-cookie"

const (
	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

// CookieTransport authenticates with a server-side cookie session. Prime
// fetches the CSRF cookie; state-changing requests echo it back as the
// X-XSRF-TOKEN header (double-submit). The persisted credential is only the
// CookieSessionCredential sentinel — cookies themselves live in the jar for
// the lifetime of the process, and a restored session whose server-side
// cookie has expired simply fails its first call with ErrUnauthorized.
type CookieTransport struct {
	base *url.URL
	jar  http.CookieJar
	hc   *http.Client

	mu     sync.RWMutex
	cred   string
	primed bool
}

func NewCookieTransport(base *url.URL, timeout time.Duration) (*CookieTransport, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &CookieTransport{
		base: base,
		jar:  jar,
		hc:   &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// Prime requests the CSRF cookie. It runs once; later calls are no-ops.
func (t *CookieTransport) Prime(ctx context.Context) error {
	t.mu.Lock()
	if t.primed {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	u := &url.URL{Scheme: t.base.Scheme, Host: t.base.Host, Path: csrfCookiePath}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &StatusError{StatusCode: resp.StatusCode, Message: "CSRF cookie request failed"}
	}

	t.mu.Lock()
	t.primed = true
	t.mu.Unlock()
	return nil
}

func (t *CookieTransport) Decorate(req *http.Request) {
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return
	}
	for _, c := range t.jar.Cookies(t.base) {
		if c.Name == xsrfCookieName {
			// The backend URL-encodes the cookie value; the header wants it raw.
			if v, err := url.QueryUnescape(c.Value); err == nil {
				req.Header.Set(xsrfHeaderName, v)
			} else {
				req.Header.Set(xsrfHeaderName, c.Value)
			}
			return
		}
	}
}

func (t *CookieTransport) SetCredential(cred string) {
	t.mu.Lock()
	t.cred = cred
	t.mu.Unlock()
}

func (t *CookieTransport) Credential() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cred
}

// LoginCredential ignores the token field: cookie-mode logins never carry
// one, the session rides on the Set-Cookie response headers.
func (t *CookieTransport) LoginCredential(string) (string, error) {
	return CookieSessionCredential, nil
}

func (t *CookieTransport) Jar() http.CookieJar { return t.jar }
