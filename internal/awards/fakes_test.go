package awards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"entrepreneurawards/pkg/types"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

var errStoreDown = errors.New("connection refused")

type fakeNominations struct {
	mu        sync.Mutex
	rows      map[string]*types.Nomination
	seq       int
	createErr error
	updateErr error
	updates   int
}

func newFakeNominations() *fakeNominations {
	return &fakeNominations{rows: make(map[string]*types.Nomination)}
}

func (f *fakeNominations) Nominations(ctx context.Context) ([]*types.Nomination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*types.Nomination, 0, len(f.rows))
	for _, n := range f.rows {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNominations) Nomination(ctx context.Context, id string) (*types.Nomination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, ok := f.rows[id]
	if !ok {
		return nil, types.ErrNominationNotFound
	}
	c := *n
	return &c, nil
}

func (f *fakeNominations) CreateNomination(ctx context.Context, nomination *types.Nomination) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	f.seq++
	nomination.ID = fmt.Sprintf("nom-%d", f.seq)
	nomination.CreatedAt = time.Unix(int64(1700000000+f.seq), 0)
	c := *nomination
	f.rows[c.ID] = &c
	return nil
}

func (f *fakeNominations) UpdateNominationStatus(ctx context.Context, id string, status types.NominationStatus, notes *string) (*types.Nomination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}

	n, ok := f.rows[id]
	if !ok {
		return nil, types.ErrNominationNotFound
	}

	f.updates++
	n.Status = status
	if notes != nil {
		v := strings.TrimSpace(*notes)
		n.Notes = &v
		if v == "" {
			n.Notes = nil
		}
	}
	c := *n
	return &c, nil
}

func (f *fakeNominations) add(n types.Nomination) *types.Nomination {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	if n.ID == "" {
		n.ID = fmt.Sprintf("nom-%d", f.seq)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Unix(int64(1700000000+f.seq), 0)
	}
	f.rows[n.ID] = &n
	return &n
}

type fakeEntrepreneurs struct {
	mu        sync.Mutex
	rows      map[string]*types.Entrepreneur
	seq       int
	createErr error
	creates   int

	// beforeCreate runs once, before the next insert, to stage a
	// competing write.
	beforeCreate func()
}

func newFakeEntrepreneurs() *fakeEntrepreneurs {
	return &fakeEntrepreneurs{rows: make(map[string]*types.Entrepreneur)}
}

func (f *fakeEntrepreneurs) Entrepreneurs(ctx context.Context) ([]*types.Entrepreneur, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*types.Entrepreneur, 0, len(f.rows))
	for _, e := range f.rows {
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

func (f *fakeEntrepreneurs) Entrepreneur(ctx context.Context, id string) (*types.Entrepreneur, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.rows[id]
	if !ok {
		return nil, types.ErrEntrepreneurNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeEntrepreneurs) EntrepreneurByNominationID(ctx context.Context, nominationID string) (*types.Entrepreneur, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.rows {
		if e.NominationID != nil && *e.NominationID == nominationID {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeEntrepreneurs) CreateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if entrepreneur.NominationID != nil {
		for _, e := range f.rows {
			if e.NominationID != nil && *e.NominationID == *entrepreneur.NominationID {
				return fmt.Errorf("%w: %s", types.ErrEntrepreneurExists, *e.NominationID)
			}
		}
	}

	f.seq++
	f.creates++
	entrepreneur.ID = fmt.Sprintf("ent-%d", f.seq)
	entrepreneur.CreatedAt = time.Unix(int64(1700000000+f.seq), 0)
	entrepreneur.UpdatedAt = entrepreneur.CreatedAt
	c := *entrepreneur
	f.rows[c.ID] = &c
	return nil
}

func (f *fakeEntrepreneurs) UpdateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[entrepreneur.ID]; !ok {
		return types.ErrEntrepreneurNotFound
	}
	c := *entrepreneur
	f.rows[c.ID] = &c
	return nil
}

func (f *fakeEntrepreneurs) TogglePinned(ctx context.Context, id string) (*types.Entrepreneur, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.rows[id]
	if !ok {
		return nil, types.ErrEntrepreneurNotFound
	}
	e.Pinned = !e.Pinned
	c := *e
	return &c, nil
}

func (f *fakeEntrepreneurs) DeleteEntrepreneur(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id]; !ok {
		return types.ErrEntrepreneurNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeEntrepreneurs) add(e types.Entrepreneur) *types.Entrepreneur {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	if e.ID == "" {
		e.ID = fmt.Sprintf("ent-%d", f.seq)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Unix(int64(1700000000+f.seq), 0)
	}
	f.rows[e.ID] = &e
	return &e
}

type fakeCategories struct {
	mu   sync.Mutex
	rows []*types.IndustryCategory
}

func (f *fakeCategories) Categories(ctx context.Context) ([]*types.IndustryCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := append([]*types.IndustryCategory(nil), f.rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) CategoryByName(ctx context.Context, name string) (*types.IndustryCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.rows {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) CreateCategory(ctx context.Context, category *types.IndustryCategory) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	category.ID = fmt.Sprintf("cat-%d", len(f.rows)+1)
	f.rows = append(f.rows, category)
	return nil
}

const fakeStorageBase = "https://storage.example.com/public/images/"

type fakeStorage struct {
	mu           sync.Mutex
	objects      map[string]string
	contentTypes map[string]string
	deleted      []string
	failKeys     map[string]bool
	// closed when an upload starts, if set
	started chan struct{}
	// uploads block until release is closed, if set
	release chan struct{}
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:      make(map[string]string),
		contentTypes: make(map[string]string),
		failKeys:     make(map[string]bool),
	}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for prefix := range f.failKeys {
		if strings.HasPrefix(key, prefix) {
			return errors.New("bucket unavailable")
		}
	}

	f.objects[key] = string(data)
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return fakeStorageBase + key
}

type fakeNotifier struct {
	mu    sync.Mutex
	forms []types.NominationForm
	err   error
}

func (f *fakeNotifier) NotifyNomination(ctx context.Context, nomination types.NominationForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.forms = append(f.forms, nomination)
	return f.err
}

func (f *fakeNotifier) sent() []types.NominationForm {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]types.NominationForm(nil), f.forms...)
}

type testService struct {
	*Service
	nominations   *fakeNominations
	entrepreneurs *fakeEntrepreneurs
	categories    *fakeCategories
	storage       *fakeStorage
	notifier      *fakeNotifier
	logs          *logtest.Hook
}

func newTestService(t *testing.T, opts Options) *testService {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	ts := &testService{
		nominations:   newFakeNominations(),
		entrepreneurs: newFakeEntrepreneurs(),
		categories:    &fakeCategories{},
		storage:       newFakeStorage(),
		notifier:      &fakeNotifier{},
		logs:          hook,
	}

	if opts.Now == nil {
		opts.Now = func() time.Time { return time.UnixMilli(1700000000123) }
	}

	ts.Service = New(logger, ts.nominations, ts.entrepreneurs, ts.categories, ts.storage, ts.notifier, opts)
	t.Cleanup(ts.Wait)
	return ts
}

func janeDoe() types.NominationForm {
	return types.NominationForm{
		EntrepreneurName:  "Jane Doe",
		EntrepreneurPhone: "+1-555-0100",
		BusinessName:      "Doe Bakery",
		BusinessLocation:  "Springfield",
		BusinessType:      "Food & Beverage",
		NominatorName:     "John Smith",
		NominatorPhone:    "+1-555-0200",
	}
}
