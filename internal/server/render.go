package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"entrepreneurawards/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	return s.render(w, r, http.StatusOK, templateName, data)
}

// render executes into a buffer first so a failing template never leaves
// a half written page behind a 200.
func (s *Service) render(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		session := sessionFromContext(r.Context())
		navbar := types.NavbarData{IsAuthenticated: session.Authenticated()}
		if navbar.IsAuthenticated {
			navbar.IsAdmin = session.IsAdmin
			navbar.UserID = session.UserID
			navbar.UserEmail = session.Email
		}
		setter.SetNavbarData(navbar)
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Service) renderStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	if err := s.render(w, r, status, templateName, data); err != nil {
		s.logger.WithError(err).WithField("template", templateName).Error("failed to render page")
		s.internalServerError(w)
	}
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusNotFound, "page.not-found", &types.BasePageData{Title: "Not found"})
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectWithMessage(w, r, path, "notice", notice)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWithMessage(w, r, path, "error", msg)
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, key, msg string) {
	u, err := url.Parse(path)
	if err != nil {
		u = &url.URL{Path: "/"}
	}

	v := u.Query()
	v.Set(key, msg)
	u.RawQuery = v.Encode()

	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// flash copies the notice and error query parameters into page data.
func flash(r *http.Request, data *types.BasePageData) {
	q := r.URL.Query()
	data.Notice = strings.TrimSpace(q.Get("notice"))
	data.Error = strings.TrimSpace(q.Get("error"))
}
