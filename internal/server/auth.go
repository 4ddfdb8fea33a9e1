package server

import (
	"errors"
	"net/http"
	"strings"

	"entrepreneurawards/internal/auth"
	"entrepreneurawards/pkg/types"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if session := sessionFromContext(r.Context()); session.Authenticated() && session.IsAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{BasePageData: types.BasePageData{Title: "Admin sign in"}}
	flash(r, &data.BasePageData)

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/login", "Invalid form submission.")
		return
	}

	var form loginForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.redirectWithError(w, r, "/login", "Invalid form submission.")
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Admin sign in"},
		Email:        strings.TrimSpace(form.Email),
	}

	if !required(form.Email) || !required(form.Password) {
		data.Error = "Email and password are required."
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "page.login", data)
		return
	}

	accessToken, expiresIn, err := s.auth.Login(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			data.Error = "Invalid email or password."
			s.renderStatus(w, r, http.StatusUnauthorized, "page.login", data)
			return
		}

		s.logger.WithError(err).Error("failed to sign in")
		data.Error = "Sign in is unavailable right now. Please try again."
		s.renderStatus(w, r, http.StatusBadGateway, "page.login", data)
		return
	}

	if err := s.setAccessTokenCookie(w, accessToken, expiresIn); err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.internalServerError(w)
		return
	}

	target := redirectTarget(r, "/admin")
	s.clearRedirectCookie(w)

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAccessTokenCookie(w)
	s.redirectWithNotice(w, r, "/", "You have been signed out.")
}

func required(v string) bool {
	return strings.TrimSpace(v) != ""
}
