// Package awards holds the nomination and entrepreneur workflows that sit
// between the HTTP handlers and the store.
package awards

import (
	"context"
	"io"
	"sync"
	"time"

	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

type NominationStore interface {
	Nominations(ctx context.Context) ([]*types.Nomination, error)
	Nomination(ctx context.Context, id string) (*types.Nomination, error)
	CreateNomination(ctx context.Context, nomination *types.Nomination) error
	UpdateNominationStatus(ctx context.Context, id string, status types.NominationStatus, notes *string) (*types.Nomination, error)
}

type EntrepreneurStore interface {
	Entrepreneurs(ctx context.Context) ([]*types.Entrepreneur, error)
	Entrepreneur(ctx context.Context, id string) (*types.Entrepreneur, error)
	EntrepreneurByNominationID(ctx context.Context, nominationID string) (*types.Entrepreneur, error)
	CreateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error
	UpdateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error
	TogglePinned(ctx context.Context, id string) (*types.Entrepreneur, error)
	DeleteEntrepreneur(ctx context.Context, id string) error
}

type CategoryStore interface {
	Categories(ctx context.Context) ([]*types.IndustryCategory, error)
	CategoryByName(ctx context.Context, name string) (*types.IndustryCategory, error)
	CreateCategory(ctx context.Context, category *types.IndustryCategory) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Notifier interface {
	NotifyNomination(ctx context.Context, nomination types.NominationForm) error
}

type Options struct {
	// Lets an administrator move an approved nomination back to pending.
	AllowResetFromApproved bool
	NotifyTimeout          time.Duration
	DirectoryPageSize      int
	MaxUploadBytes         int64
	Now                    func() time.Time
}

type Service struct {
	logger        *logrus.Logger
	nominations   NominationStore
	entrepreneurs EntrepreneurStore
	categories    CategoryStore
	storage       ObjectStorage
	notifier      Notifier
	opts          Options

	uploads  *UploadTracker
	notifyWG sync.WaitGroup
}

func New(
	logger *logrus.Logger,
	nominations NominationStore,
	entrepreneurs EntrepreneurStore,
	categories CategoryStore,
	storage ObjectStorage,
	notifier Notifier,
	opts Options,
) *Service {
	if opts.NotifyTimeout == 0 {
		opts.NotifyTimeout = 10 * time.Second
	}
	if opts.DirectoryPageSize <= 0 {
		opts.DirectoryPageSize = 10
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		logger:        logger,
		nominations:   nominations,
		entrepreneurs: entrepreneurs,
		categories:    categories,
		storage:       storage,
		notifier:      notifier,
		opts:          opts,
		uploads:       NewUploadTracker(),
	}
}

// Wait blocks until background notifications have finished.
func (s *Service) Wait() {
	s.notifyWG.Wait()
}

func (s *Service) Uploads() *UploadTracker {
	return s.uploads
}

func (s *Service) MaxUploadBytes() int64 {
	return s.opts.MaxUploadBytes
}
