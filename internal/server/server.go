package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type authenticator interface {
	Login(ctx context.Context, email, password string) (string, int, error)
}

type sessionVerifier interface {
	Verify(ctx context.Context, accessToken string) (*types.Session, error)
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	awards    *awards.Service
	templates *template.Template

	auth     authenticator
	verifier sessionVerifier
	cookie   *securecookie.SecureCookie
	limiter  *clientLimiter

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	awardsService *awards.Service,
	auth authenticator,
	verifier sessionVerifier,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode COOKIE_HASH_KEY: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode COOKIE_BLOCK_KEY: %w", err)
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}

	s := &Service{
		logger:   logger,
		config:   config,
		awards:   awardsService,
		auth:     auth,
		verifier: verifier,
		cookie:   securecookie.New(hashKey, blockKey),
		limiter:  newClientLimiter(config.NominationRatePerMin, config.NominationBurst),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	// flow only applies middleware to matched routes, and a trailing slash
	// never matches
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)
	r.Use(s.LoadSession)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/nominate", s.handleGetNominate, http.MethodGet)
	r.Group(func(r *flow.Mux) {
		r.Use(s.RateLimitNominations)
		r.HandleFunc("/nominate", s.handlePostNominate, http.MethodPost)
	})

	r.HandleFunc("/entrepreneurs", s.handleDirectory, http.MethodGet)
	r.HandleFunc("/entrepreneurs/:id", s.handleEntrepreneurDetail, http.MethodGet)

	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin", s.handleAdminDashboard, http.MethodGet)
		r.HandleFunc("/admin/nominations/:id/status", s.handlePostNominationStatus, http.MethodPost)

		r.HandleFunc("/admin/entrepreneurs/new", s.handleGetEntrepreneurForm, http.MethodGet)
		r.HandleFunc("/admin/entrepreneurs/:id/edit", s.handleGetEntrepreneurForm, http.MethodGet)
		r.HandleFunc("/admin/entrepreneurs", s.handlePostEntrepreneur, http.MethodPost)
		r.HandleFunc("/admin/entrepreneurs/:id/pin", s.handlePostTogglePin, http.MethodPost)
		r.HandleFunc("/admin/entrepreneurs/:id/delete", s.handlePostDeleteEntrepreneur, http.MethodPost)

		r.HandleFunc("/admin/categories", s.handlePostCategory, http.MethodPost)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	r.NotFound = http.HandlerFunc(s.notFound)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil || *s == "" {
				return defaultVal
			}
			return *s
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"whatsappLink": whatsappLink,
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict expects key value pairs")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
		"hasError": func(errs map[string]string, field string) bool {
			_, ok := errs[field]
			return ok
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// whatsappLink builds a wa.me link from a phone number, keeping digits only.
func whatsappLink(phone *string) string {
	if phone == nil {
		return ""
	}

	var b strings.Builder
	for _, r := range *phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}

	return "https://wa.me/" + b.String()
}
