package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// TokenTransport authenticates with an opaque bearer token in the
// Authorization header. The token is the persistable credential itself.
type TokenTransport struct {
	mu    sync.RWMutex
	token string
}

func NewTokenTransport() *TokenTransport {
	return &TokenTransport{}
}

// Prime is a no-op: token mode needs no handshake.
func (t *TokenTransport) Prime(ctx context.Context) error { return nil }

func (t *TokenTransport) Decorate(req *http.Request) {
	t.mu.RLock()
	token := t.token
	t.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (t *TokenTransport) SetCredential(cred string) {
	t.mu.Lock()
	t.token = cred
	t.mu.Unlock()
}

func (t *TokenTransport) Credential() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *TokenTransport) LoginCredential(token string) (string, error) {
	if token == "" {
		return "", errors.New("login response carried no token")
	}
	return token, nil
}

func (t *TokenTransport) Jar() http.CookieJar { return nil }
