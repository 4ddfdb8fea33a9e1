package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"entrepreneurawards/internal"
	"entrepreneurawards/internal/auth"
	"entrepreneurawards/internal/awards"
	"entrepreneurawards/pkg/types"

	"github.com/gorilla/securecookie"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu            sync.Mutex
	seq           int
	nominations   map[string]*types.Nomination
	entrepreneurs map[string]*types.Entrepreneur
	categories    []*types.IndustryCategory

	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nominations:   make(map[string]*types.Nomination),
		entrepreneurs: make(map[string]*types.Entrepreneur),
	}
}

func (m *memoryStore) next(prefix string) (string, time.Time) {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq), time.Unix(int64(1700000000+m.seq), 0)
}

func (m *memoryStore) Nominations(ctx context.Context) ([]*types.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Nomination, 0, len(m.nominations))
	for _, n := range m.nominations {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) Nomination(ctx context.Context, id string) (*types.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nominations[id]
	if !ok {
		return nil, types.ErrNominationNotFound
	}
	c := *n
	return &c, nil
}

func (m *memoryStore) CreateNomination(ctx context.Context, nomination *types.Nomination) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	nomination.ID, nomination.CreatedAt = m.next("nom")
	c := *nomination
	m.nominations[c.ID] = &c
	return nil
}

func (m *memoryStore) UpdateNominationStatus(ctx context.Context, id string, status types.NominationStatus, notes *string) (*types.Nomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nominations[id]
	if !ok {
		return nil, types.ErrNominationNotFound
	}
	n.Status = status
	if notes != nil {
		v := strings.TrimSpace(*notes)
		n.Notes = &v
	}
	c := *n
	return &c, nil
}

func (m *memoryStore) Entrepreneurs(ctx context.Context) ([]*types.Entrepreneur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Entrepreneur, 0, len(m.entrepreneurs))
	for _, e := range m.entrepreneurs {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryStore) Entrepreneur(ctx context.Context, id string) (*types.Entrepreneur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entrepreneurs[id]
	if !ok {
		return nil, types.ErrEntrepreneurNotFound
	}
	c := *e
	return &c, nil
}

func (m *memoryStore) EntrepreneurByNominationID(ctx context.Context, nominationID string) (*types.Entrepreneur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entrepreneurs {
		if e.NominationID != nil && *e.NominationID == nominationID {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) CreateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}

	entrepreneur.ID, entrepreneur.CreatedAt = m.next("ent")
	entrepreneur.UpdatedAt = entrepreneur.CreatedAt
	c := *entrepreneur
	m.entrepreneurs[c.ID] = &c
	return nil
}

func (m *memoryStore) UpdateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entrepreneurs[entrepreneur.ID]; !ok {
		return types.ErrEntrepreneurNotFound
	}
	c := *entrepreneur
	m.entrepreneurs[c.ID] = &c
	return nil
}

func (m *memoryStore) TogglePinned(ctx context.Context, id string) (*types.Entrepreneur, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entrepreneurs[id]
	if !ok {
		return nil, types.ErrEntrepreneurNotFound
	}
	e.Pinned = !e.Pinned
	c := *e
	return &c, nil
}

func (m *memoryStore) DeleteEntrepreneur(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entrepreneurs[id]; !ok {
		return types.ErrEntrepreneurNotFound
	}
	delete(m.entrepreneurs, id)
	return nil
}

func (m *memoryStore) Categories(ctx context.Context) ([]*types.IndustryCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := append([]*types.IndustryCategory(nil), m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) CategoryByName(ctx context.Context, name string) (*types.IndustryCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) CreateCategory(ctx context.Context, category *types.IndustryCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	category.ID, category.CreatedAt = m.next("cat")
	m.categories = append(m.categories, category)
	return nil
}

func (m *memoryStore) addEntrepreneur(e types.Entrepreneur) *types.Entrepreneur {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID, e.CreatedAt = m.next("ent")
	}
	m.entrepreneurs[e.ID] = &e
	return &e
}

func (m *memoryStore) addNomination(n types.Nomination) *types.Nomination {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.ID, n.CreatedAt = m.next("nom")
	m.nominations[n.ID] = &n
	return &n
}

type memoryBucket struct {
	mu      sync.Mutex
	objects map[string]string
}

func (b *memoryBucket) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = string(data)
	return nil
}

func (b *memoryBucket) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memoryBucket) PublicURL(key string) string {
	return "https://cdn.example.com/images/" + key
}

type nopNotifier struct{}

func (nopNotifier) NotifyNomination(ctx context.Context, nomination types.NominationForm) error {
	return nil
}

type fakeAuth struct {
	password string
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (string, int, error) {
	if password != f.password {
		return "", 0, auth.ErrInvalidCredentials
	}
	return "token-" + email, 3600, nil
}

// fakeVerifier accepts tokens issued by fakeAuth. Emails starting with
// "admin" are administrators.
type fakeVerifier struct{}

func (fakeVerifier) Verify(ctx context.Context, accessToken string) (*types.Session, error) {
	email, ok := strings.CutPrefix(accessToken, "token-")
	if !ok {
		return nil, types.ErrUnauthenticated
	}
	return &types.Session{
		UserID:  "user-" + email,
		Email:   email,
		IsAdmin: strings.HasPrefix(email, "admin"),
	}, nil
}

type testServer struct {
	*Service
	store  *memoryStore
	bucket *memoryBucket
	logs   *logtest.Hook
}

func newTestServer(t *testing.T, mutate ...func(*types.Config)) *testServer {
	t.Helper()

	config := &types.Config{
		Environment:          "development",
		ServerPort:           8080,
		CookieHashKey:        base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
		CookieBlockKey:       base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
		NominationRatePerMin: 60,
		NominationBurst:      20,
	}
	for _, m := range mutate {
		m(config)
	}

	logger, hook := logtest.NewNullLogger()
	store := newMemoryStore()
	bucket := &memoryBucket{objects: make(map[string]string)}

	svc := awards.New(logger, store, store, store, bucket, nopNotifier{}, awards.Options{
		DirectoryPageSize: 2,
		MaxUploadBytes:    1024,
	})
	t.Cleanup(svc.Wait)

	srv, err := New(config, logger, svc, fakeAuth{password: "correct horse"}, fakeVerifier{})
	require.NoError(t, err)

	return &testServer{Service: srv, store: store, bucket: bucket, logs: hook}
}

func (ts *testServer) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	value, err := ts.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, "token-"+email)
	require.NoError(t, err)

	return &http.Cookie{Name: internal.COOKIE_ACCESS_TOKEN_NAME, Value: value}
}
