package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andiamoid/andiamo-admin/internal/client/config"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, mode config.AuthMode) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(srv.URL+"/api", mode, 5*time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestLogin_TokenMode(t *testing.T) {
	var gotBody loginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"token": "T1",
			"user":  User{ID: 1, Name: "A", Email: "a@b.com"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	res, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, "T1", res.Credential)
	require.Equal(t, "a@b.com", res.User.Email)
	require.Equal(t, loginRequest{Email: "a@b.com", Password: "x"}, gotBody)

	// The token must ride on subsequent authenticated calls.
	require.Equal(t, "T1", c.Transport().Credential())
}

func TestLogin_TokenMode_MissingTokenInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": User{ID: 1}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	require.Empty(t, c.Transport().Credential())
}

func TestLogin_CookieMode_PrimesCSRFAndFetchesUser(t *testing.T) {
	var sawCSRF, sawXSRFHeader bool
	mux := http.NewServeMux()
	mux.HandleFunc("/sanctum/csrf-cookie", func(w http.ResponseWriter, r *http.Request) {
		sawCSRF = true
		// URL-encoded, as the backend sends it.
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok%3D%3D", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, sawCSRF, "login must happen after CSRF priming")
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		if r.Header.Get("X-XSRF-TOKEN") == "tok==" {
			sawXSRFHeader = true
		}
		http.SetCookie(w, &http.Cookie{Name: "andiamo_session", Value: "s1", Path: "/", HttpOnly: true})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/user", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("andiamo_session")
		require.NoError(t, err)
		require.Equal(t, "s1", c.Value)
		json.NewEncoder(w).Encode(User{ID: 7, Name: "A", Email: "a@b.com"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeCookie)
	res, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.True(t, sawXSRFHeader, "login POST must echo the CSRF cookie as a header")
	require.Equal(t, CookieSessionCredential, res.Credential)
	require.Equal(t, int64(7), res.User.ID)
}

func TestDo_MapsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	_, err := c.Settings(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_Maps419ToUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(419)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	err := c.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_MapsValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "The given data was invalid.",
			"errors": map[string][]string{
				"email": {"The email field is required."},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	_, err := c.Login(context.Background(), "", "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "The given data was invalid.", verr.Message)
	require.Contains(t, verr.Error(), "The email field is required.")
}

func TestDo_NetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := newTestClient(t, srv, config.AuthModeToken)
	_, err := c.DashboardSummary(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestListBatches_FilterParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/batches", r.URL.Path)
		require.Equal(t, RegionIndoItali, r.URL.Query().Get("region"))
		require.Equal(t, StatusActive, r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]Batch{{ID: 1, Name: "Milan-Jakarta"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	batches, err := c.ListBatches(context.Background(), BatchFilter{Region: RegionIndoItali, Status: StatusActive})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Equal(t, "Milan-Jakarta", batches[0].Name)
}

func TestListBatches_NoFilterOmitsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode([]Batch{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	_, err := c.ListBatches(context.Background(), BatchFilter{})
	require.NoError(t, err)
}

func TestAuthenticatedCall_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(AdminSettings{DefaultWhatsAppNumber: "+39123", DefaultCTAMessage: "Ciao"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	c.SetCredential("T1")

	s, err := c.Settings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "+39123", s.DefaultWhatsAppNumber)
}

func TestBatchCRUDPaths(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(Batch{ID: 5, Name: "Roma"})
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, config.AuthModeToken)
	ctx := context.Background()

	_, err := c.CreateBatch(ctx, Batch{Name: "Roma"})
	require.NoError(t, err)
	_, err = c.GetBatch(ctx, 5)
	require.NoError(t, err)
	_, err = c.UpdateBatch(ctx, 5, Batch{Name: "Roma", Status: StatusClosed})
	require.NoError(t, err)
	require.NoError(t, c.DeleteBatch(ctx, 5))

	require.Equal(t, []string{
		"POST /api/batches",
		"GET /api/batches/5",
		"PUT /api/batches/5",
		"DELETE /api/batches/5",
	}, calls)
}

func TestNewHTTPClient_RejectsEmptyBaseURL(t *testing.T) {
	_, err := NewHTTPClient("", config.AuthModeToken, time.Second, nil)
	require.Error(t, err)
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{StatusCode: 500}
	require.Contains(t, err.Error(), "500")

	err = &StatusError{StatusCode: 500, Message: "boom"}
	require.Equal(t, "boom", err.Error())
}

func TestValidationError_JoinsFieldsDeterministically(t *testing.T) {
	verr := &ValidationError{
		Message: "invalid",
		Fields: map[string][]string{
			"b": {"second"},
			"a": {"first", "also first"},
		},
	}
	require.Equal(t, "invalid first also first second", verr.Error())

	require.Equal(t, "validation failed", (&ValidationError{}).Error())
	require.False(t, errors.Is(verr, ErrUnauthorized))
}
