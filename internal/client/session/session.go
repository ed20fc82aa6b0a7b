package session

import (
	"context"
	"errors"
	"sync"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/store"
	"github.com/andiamoid/andiamo-admin/internal/common"
	"github.com/andiamoid/andiamo-admin/internal/logging"
)

// Keys in the local store: the API credential and the JSON user record.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

// Status is the lifecycle position of the session.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusRestoring     Status = "restoring"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// State is the observable session state. Invariant:
// IsAuthenticated() == (Credential != "" && User != nil).
type State struct {
	Status     Status
	User       *api.User
	Credential string
	Settings   *api.AdminSettings
}

// IsLoading reports whether the initial restore decision is still pending.
// Consumers (the route guard) must not redirect while this is true.
func (s State) IsLoading() bool {
	return s.Status == StatusUninitialized || s.Status == StatusRestoring
}

func (s State) IsAuthenticated() bool { return s.Status == StatusAuthenticated }

// Manager owns the session state. All mutations happen here; views and
// commands only read snapshots.
type Manager struct {
	client api.Client
	kv     *store.KV
	log    logging.Logger

	mu    sync.Mutex
	state State
	// gen increments on every login/logout. A settings fetch started under
	// an older generation discards its result instead of repopulating
	// settings for a session that has since ended.
	gen         uint64
	initialized bool
}

func NewManager(client api.Client, kv *store.KV, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Manager{
		client: client,
		kv:     kv,
		log:    log.With("component", "session"),
		state:  State{Status: StatusUninitialized},
	}
}

// Snapshot returns a copy of the current state. The embedded pointers are
// copies too; mutating them does not affect the session.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.state)
}

func copyState(s State) State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Settings != nil {
		set := *s.Settings
		out.Settings = &set
	}
	return out
}

// Settings returns the cached settings, or nil before the first successful
// fetch. Nil means "use the hardcoded fallback", never an error.
func (m *Manager) Settings() *api.AdminSettings {
	return m.Snapshot().Settings
}

// Initialize restores a previously persisted session. It runs once per
// process start; later calls return common.ErrAlreadyRunning. The state is
// Restoring (IsLoading) for the duration and settles to Authenticated or
// Anonymous regardless of outcome — this method never fails because of a
// missing or corrupt store.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return common.ErrAlreadyRunning
	}
	m.initialized = true
	m.state.Status = StatusRestoring
	m.mu.Unlock()

	// Cookie mode primes its CSRF cookie before the restore is considered
	// complete. A failed prime is logged, not fatal: the restored state is
	// decided by local data, and a dead backend will surface on first use.
	if err := m.client.Prime(ctx); err != nil {
		m.log.Warn(ctx, "auth transport prime failed", "err", err)
	}

	var cred string
	var user api.User
	haveCred := m.kv.Get(ctx, KeyAuthToken, &cred)
	haveUser := m.kv.Get(ctx, KeyUserData, &user)

	if !haveCred || cred == "" || !haveUser {
		m.log.Debug(ctx, "no restorable session in store")
		m.mu.Lock()
		m.state = State{Status: StatusAnonymous}
		m.mu.Unlock()
		return nil
	}

	m.client.SetCredential(cred)

	m.mu.Lock()
	m.state = State{Status: StatusAuthenticated, User: &user, Credential: cred}
	gen := m.gen
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "email", user.Email)
	m.fetchSettingsAsync(ctx, gen)
	return nil
}

// Login authenticates against the backend, persists the credential and user
// record, and commits the authenticated state before the settings fetch is
// triggered. Safe to call while already authenticated (idempotent overwrite).
func (m *Manager) Login(ctx context.Context, email, password string) error {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.kv.SetAll(ctx, map[string]any{
		KeyAuthToken: res.Credential,
		KeyUserData:  res.User,
	})

	user := res.User
	m.mu.Lock()
	m.gen++
	m.state = State{Status: StatusAuthenticated, User: &user, Credential: res.Credential}
	gen := m.gen
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "email", user.Email)
	m.fetchSettingsAsync(ctx, gen)
	return nil
}

// Logout tells the backend to drop the session (best effort — a network
// failure must not block local cleanup), then always clears the persisted
// credential/user and resets the in-memory state to Anonymous with settings
// cleared. It never fails outwardly.
func (m *Manager) Logout(ctx context.Context) {
	if m.Snapshot().IsAuthenticated() {
		if err := m.client.Logout(ctx); err != nil {
			m.log.Warn(ctx, "logout API call failed, proceeding with local cleanup", "err", err)
		}
	}

	m.kv.RemoveAll(ctx, KeyAuthToken, KeyUserData)
	m.client.SetCredential("")

	m.mu.Lock()
	m.gen++
	m.state = State{Status: StatusAnonymous}
	m.mu.Unlock()

	m.log.Info(ctx, "logged out")
}

// InvalidateIfUnauthorized is the hook for every *other* authenticated call
// site: an authorization-denied response means the credential is dead, so
// the session is torn down before the error surfaces and the UI lands on
// the login view instead of a half-authenticated screen. Reports whether it
// logged out.
func (m *Manager) InvalidateIfUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	if !m.Snapshot().IsAuthenticated() {
		return false
	}
	m.log.Warn(ctx, "credential rejected by backend, invalidating session")
	m.Logout(ctx)
	return true
}

// FetchSettings refreshes the cached settings. Without a credential it is a
// no-op. On failure the previous cached value stays and the error is only
// logged; a settings failure deliberately does NOT invalidate the session
// (product decision — unlike other authenticated calls, a broken settings
// endpoint should not log the admin out).
func (m *Manager) FetchSettings(ctx context.Context) {
	m.mu.Lock()
	gen := m.gen
	cred := m.state.Credential
	m.mu.Unlock()

	if cred == "" {
		return
	}
	m.fetchSettings(ctx, gen)
}

func (m *Manager) fetchSettingsAsync(ctx context.Context, gen uint64) {
	go m.fetchSettings(context.WithoutCancel(ctx), gen)
}

func (m *Manager) fetchSettings(ctx context.Context, gen uint64) {
	settings, err := m.client.Settings(ctx)
	if err != nil {
		m.log.Warn(ctx, "settings fetch failed, keeping previous value", "err", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Last write wins: a response from a session that has since logged out
	// (or re-logged-in) is stale and must not repopulate the cache.
	if m.gen != gen || m.state.Credential == "" {
		m.log.Debug(ctx, "discarding stale settings response")
		return
	}
	m.state.Settings = settings
}
