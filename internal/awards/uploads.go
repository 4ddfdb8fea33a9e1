package awards

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadUploading UploadState = "uploading"
	UploadFailed    UploadState = "failed"
)

// image content type -> object key extension
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var allowedFileExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// UploadTracker records the upload state of each image slot per owner. A
// slot that is uploading refuses a second upload until it finishes.
type UploadTracker struct {
	mu     sync.Mutex
	states map[string]map[types.ImageSlot]UploadState
}

func NewUploadTracker() *UploadTracker {
	return &UploadTracker{states: make(map[string]map[types.ImageSlot]UploadState)}
}

func (t *UploadTracker) Begin(owner string, slot types.ImageSlot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	slots, ok := t.states[owner]
	if !ok {
		slots = make(map[types.ImageSlot]UploadState)
		t.states[owner] = slots
	}

	if slots[slot] == UploadUploading {
		return fmt.Errorf("%w: %s", types.ErrUploadInProgress, slot)
	}

	slots[slot] = UploadUploading
	return nil
}

func (t *UploadTracker) Finish(owner string, slot types.ImageSlot, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	slots, ok := t.states[owner]
	if !ok {
		return
	}

	if err != nil {
		slots[slot] = UploadFailed
		return
	}

	delete(slots, slot)
	if len(slots) == 0 {
		delete(t.states, owner)
	}
}

func (t *UploadTracker) State(owner string, slot types.ImageSlot) UploadState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if state, ok := t.states[owner][slot]; ok {
		return state
	}
	return UploadIdle
}

// States returns a snapshot of every slot for owner, idle included.
func (t *UploadTracker) States(owner string) map[types.ImageSlot]UploadState {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[types.ImageSlot]UploadState, len(types.AllImageSlots))
	for _, slot := range types.AllImageSlots {
		out[slot] = UploadIdle
		if state, ok := t.states[owner][slot]; ok {
			out[slot] = state
		}
	}
	return out
}

type ImageUpload struct {
	Slot        types.ImageSlot
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectKey names the stored object {slot}-{unix millis}.{ext}. The
// extension comes from the file name when it is a known image extension
// and from the content type otherwise.
func ObjectKey(slot types.ImageSlot, fileName, contentType string, now time.Time) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !allowedFileExtensions[ext] {
		var ok bool
		ext, ok = imageExtensions[normalizeContentType(contentType)]
		if !ok {
			return "", fmt.Errorf("%w: %s", types.ErrUnsupportedImage, contentType)
		}
	}

	return fmt.Sprintf("%s-%d.%s", slot, now.UnixMilli(), ext), nil
}

func normalizeContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func (s *Service) checkImage(upload ImageUpload) error {
	if !upload.Slot.Valid() {
		return fmt.Errorf("%w: unknown slot %q", types.ErrUnsupportedImage, upload.Slot)
	}

	if _, ok := imageExtensions[normalizeContentType(upload.ContentType)]; !ok {
		return fmt.Errorf("%w: %s", types.ErrUnsupportedImage, upload.ContentType)
	}

	if upload.Size > s.opts.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes", types.ErrImageTooLarge, upload.Size)
	}

	return nil
}

// UploadImage stores one image and returns its public URL.
func (s *Service) UploadImage(ctx context.Context, owner string, upload ImageUpload) (string, error) {
	if err := s.checkImage(upload); err != nil {
		return "", err
	}

	key, err := ObjectKey(upload.Slot, upload.FileName, upload.ContentType, s.opts.Now())
	if err != nil {
		return "", err
	}

	if err := s.uploads.Begin(owner, upload.Slot); err != nil {
		return "", err
	}

	body := io.LimitReader(upload.Body, s.opts.MaxUploadBytes)
	err = s.storage.Upload(ctx, key, body, normalizeContentType(upload.ContentType))
	s.uploads.Finish(owner, upload.Slot, err)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"slot": upload.Slot,
			"key":  key,
		}).Error("failed to upload image")
		return "", fmt.Errorf("failed to upload %s image: %w", upload.Slot, err)
	}

	return s.storage.PublicURL(key), nil
}

// UploadImages stores every upload concurrently and returns the public URL
// per slot. The first failure is returned once all uploads have finished.
func (s *Service) UploadImages(ctx context.Context, owner string, uploads []ImageUpload) (map[types.ImageSlot]string, error) {
	var mu sync.Mutex
	urls := make(map[types.ImageSlot]string, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	for _, upload := range uploads {
		g.Go(func() error {
			url, err := s.UploadImage(gctx, owner, upload)
			if err != nil {
				return err
			}

			mu.Lock()
			urls[upload.Slot] = url
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return urls, err
	}

	return urls, nil
}
