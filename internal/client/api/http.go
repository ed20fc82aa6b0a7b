package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/andiamoid/andiamo-admin/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient is the concrete Client over the backend REST API.
type HTTPClient struct {
	base      *url.URL
	hc        *http.Client
	transport AuthTransport
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL (including the /api
// prefix, no trailing slash) using the auth strategy selected by mode.
func NewHTTPClient(baseURL string, mode config.AuthMode, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base URL: %w", err)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	var transport AuthTransport
	switch mode {
	case config.AuthModeCookie:
		transport, err = NewCookieTransport(base, timeout)
		if err != nil {
			return nil, err
		}
	default:
		transport = NewTokenTransport()
	}

	return &HTTPClient{
		base:      base,
		hc:        &http.Client{Jar: transport.Jar(), Timeout: timeout},
		transport: transport,
		log:       log.With("component", "api"),
	}, nil
}

// Transport exposes the active auth strategy (the session manager primes it
// during bootstrap).
func (c *HTTPClient) Transport() AuthTransport { return c.transport }

// SetCredential installs a previously persisted credential on the transport.
func (c *HTTPClient) SetCredential(cred string) { c.transport.SetCredential(cred) }

// Prime delegates to the auth transport.
func (c *HTTPClient) Prime(ctx context.Context) error { return c.transport.Prime(ctx) }

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.transport.Decorate(req)
	return req, nil
}

// do executes the request and maps the response status to the error
// taxonomy. On success the body is decoded into out (when non-nil).
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(req.Context(), "api call",
		"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// 204-style responses carry no body; leave out zero-valued.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) errorFromResponse(resp *http.Response) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch resp.StatusCode {
	// 419 is the backend's "CSRF/session expired" status in cookie mode.
	case http.StatusUnauthorized, 419:
		return fmt.Errorf("%w: %s", ErrUnauthorized, nonEmpty(payload.Message, resp.Status))
	case http.StatusUnprocessableEntity:
		return &ValidationError{Message: payload.Message, Fields: payload.Errors}
	default:
		return &StatusError{StatusCode: resp.StatusCode, Message: payload.Message}
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := c.transport.Prime(ctx); err != nil {
		return nil, fmt.Errorf("prime auth transport: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "admin/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var body loginResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}

	cred, err := c.transport.LoginCredential(body.Token)
	if err != nil {
		return nil, err
	}
	c.transport.SetCredential(cred)

	user := body.User
	if user == nil {
		// Cookie variant: the login response sets the session cookie only;
		// the user record comes from a follow-up call.
		user, err = c.CurrentUser(ctx)
		if err != nil {
			c.transport.SetCredential("")
			return nil, fmt.Errorf("fetch user after login: %w", err)
		}
	}

	return &LoginResult{Credential: cred, User: *user}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "admin/logout", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "user", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Settings(ctx context.Context) (*AdminSettings, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "admin/settings", nil)
	if err != nil {
		return nil, err
	}
	var s AdminSettings
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, s AdminSettings) error {
	req, err := c.newRequest(ctx, http.MethodPut, "admin/settings", s)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "admin/dashboard-summary", nil)
	if err != nil {
		return nil, err
	}
	var s DashboardSummary
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type changePasswordRequest struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, updated, confirm string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "admin/profile/change-password", changePasswordRequest{
		CurrentPassword:      current,
		Password:             updated,
		PasswordConfirmation: confirm,
	})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) ListBatches(ctx context.Context, filter BatchFilter) ([]Batch, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "batches", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	if filter.Region != "" {
		q.Set("region", filter.Region)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	req.URL.RawQuery = q.Encode()

	var batches []Batch
	if err := c.do(req, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (c *HTTPClient) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "batches/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}
	var b Batch
	if err := c.do(req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) CreateBatch(ctx context.Context, b Batch) (*Batch, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "batches", b)
	if err != nil {
		return nil, err
	}
	var created Batch
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateBatch(ctx context.Context, id int64, b Batch) (*Batch, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "batches/"+strconv.FormatInt(id, 10), b)
	if err != nil {
		return nil, err
	}
	var updated Batch
	if err := c.do(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteBatch(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "batches/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
