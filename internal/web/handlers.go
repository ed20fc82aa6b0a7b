package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
	"github.com/andiamoid/andiamo-admin/internal/client/contact"
	"github.com/andiamoid/andiamo-admin/internal/client/guard"
	"github.com/gorilla/mux"
)

// batchView is a Batch plus its resolved contact link, ready for templates.
type batchView struct {
	api.Batch
	ContactLink string
}

func (s *Server) batchViews(batches []api.Batch) []batchView {
	settings := s.session.Settings()
	views := make([]batchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, batchView{Batch: b, ContactLink: contact.Link(b, settings)})
	}
	return views
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, page, data); err != nil {
		s.log.Error(context.Background(), "template render failed", "page", page, "err", err)
	}
}

// renderAPIError maps a failed backend call to a response. Authorization
// failures tear down the session and land on the login page.
func (s *Server) renderAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if s.session.InvalidateIfUnauthorized(r.Context(), err) {
		http.Redirect(w, r, guard.LoginPath+"?from="+r.URL.Path, http.StatusSeeOther)
		return
	}

	status := http.StatusBadGateway
	var serr *api.StatusError
	if errors.As(err, &serr) {
		status = serr.StatusCode
	}
	s.log.Error(r.Context(), "backend call failed", "path", r.URL.Path, "err", err)
	s.render(w, status, "error.html", map[string]any{"Message": "The backend is unavailable. Try again shortly."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	filter := api.BatchFilter{
		Region: r.URL.Query().Get("region"),
		Status: r.URL.Query().Get("status"),
	}
	batches, err := s.client.ListBatches(r.Context(), filter)
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "catalog.html", map[string]any{
		"Batches": s.batchViews(batches),
		"Region":  filter.Region,
	})
}

func (s *Server) handleBatchDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	b, err := s.client.GetBatch(r.Context(), id)
	if err != nil {
		var serr *api.StatusError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		s.renderAPIError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "batch.html", map[string]any{
		"Batch":       b,
		"ContactLink": contact.Link(*b, s.session.Settings()),
	})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.session.Snapshot().IsAuthenticated() {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login.html", map[string]any{
		"From":  r.URL.Query().Get("from"),
		"Email": "",
		"Error": "",
	})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	from := r.PostFormValue("from")
	err := s.session.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		msg := "Login failed. Try again."
		var verr *api.ValidationError
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			msg = "Invalid email or password."
		case errors.As(err, &verr):
			msg = verr.Error()
		case errors.Is(err, api.ErrUnavailable):
			msg = "The backend is unavailable. Try again shortly."
		}
		s.render(w, http.StatusUnauthorized, "login.html", map[string]any{
			"Error": msg,
			"From":  from,
			"Email": r.PostFormValue("email"),
		})
		return
	}

	http.Redirect(w, r, safeReturnPath(from), http.StatusSeeOther)
}

// safeReturnPath keeps post-login redirects on this site. Anything that is
// not a local absolute path falls back to the dashboard.
func safeReturnPath(from string) string {
	if strings.HasPrefix(from, "/") && !strings.HasPrefix(from, "//") {
		return from
	}
	return "/admin/dashboard"
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.client.DashboardSummary(r.Context())
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "dashboard.html", map[string]any{
		"User":    s.session.Snapshot().User,
		"Summary": summary,
	})
}

func (s *Server) handleAdminBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.client.ListBatches(r.Context(), api.BatchFilter{
		Region: r.URL.Query().Get("region"),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "admin_batches.html", map[string]any{
		"Batches": s.batchViews(batches),
	})
}

func (s *Server) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	settings, err := s.client.Settings(r.Context())
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "settings.html", map[string]any{
		"Settings": settings,
		"Saved":    r.URL.Query().Get("saved") == "1",
	})
}

func (s *Server) handleSettingsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	updated := api.AdminSettings{
		DefaultWhatsAppNumber: r.PostFormValue("whatsapp"),
		DefaultCTAMessage:     r.PostFormValue("message"),
	}
	if err := s.client.UpdateSettings(r.Context(), updated); err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) {
			s.render(w, http.StatusUnprocessableEntity, "settings.html", map[string]any{
				"Settings": &updated,
				"Error":    verr.Error(),
			})
			return
		}
		s.renderAPIError(w, r, err)
		return
	}

	// Contact links on the public pages pick up the new values.
	s.session.FetchSettings(r.Context())

	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}
