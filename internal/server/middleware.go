package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"entrepreneurawards/internal"
	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

type contextKey string

const contextKeySession contextKey = "session"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// LoadSession resolves the access token cookie into a session for every
// request. A cookie that no longer verifies is cleared and the request
// continues anonymously.
func (s *Service) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		var accessToken string
		if err := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); err != nil {
			s.logger.WithError(err).Warn("failed to decrypt access token")
			s.clearAccessTokenCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		session, err := s.verifier.Verify(r.Context(), accessToken)
		if err != nil {
			s.logger.WithError(err).Info("access token rejected")
			s.clearAccessTokenCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		s.logger.WithFields(logrus.Fields{
			"user_id": session.UserID,
			"email":   session.Email,
		}).Debug("authenticated user")

		ctx := context.WithValue(r.Context(), contextKeySession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) *types.Session {
	session, _ := ctx.Value(contextKeySession).(*types.Session)
	return session
}

// RequireAdmin sends anonymous visitors to the login page, remembering
// where they were going, and refuses signed-in users outside the admin
// group.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if !session.Authenticated() {
			if r.Method == http.MethodGet {
				s.setRedirectCookie(w, r.URL.RequestURI(), time.Minute*5)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if !session.IsAdmin {
			s.logger.WithField("user_id", session.UserID).Warn("non-admin user denied")
			s.renderStatus(w, r, http.StatusForbidden, "page.forbidden", &types.BasePageData{Title: "Not allowed"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) RateLimitNominations(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r, s.config.TrustedProxyHops)
		if !s.limiter.Allow(client) {
			s.logger.WithField("client", client).Warn("nomination rate limit exceeded")
			data := &NominatePageData{
				BasePageData: types.BasePageData{
					Title: "Nominate an Entrepreneur",
					Error: "Too many nominations from your connection. Please wait a minute and try again.",
				},
			}
			s.renderStatus(w, r, http.StatusTooManyRequests, "page.nominate", data)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
