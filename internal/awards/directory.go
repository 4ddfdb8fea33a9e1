package awards

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

// EntrepreneurFromForm converts the submitted admin form. Field errors are
// returned for values that cannot be converted; required fields are
// checked by ValidateEntrepreneur.
func EntrepreneurFromForm(form types.EntrepreneurForm) (*types.Entrepreneur, map[string]string) {
	errs := map[string]string{}

	entrepreneur := &types.Entrepreneur{
		ID:              form.ID,
		Name:            form.Name,
		Industry:        form.Industry,
		Bio:             &form.Bio,
		ProfilePhotoURL: &form.ProfilePhotoURL,
		CompanyLogoURL:  &form.CompanyLogoURL,
		BadgePhotoURL:   &form.BadgePhotoURL,
		WhatsappNumber:  &form.WhatsappNumber,
		Email:           &form.Email,
		CompanyName:     &form.CompanyName,
		Website:         &form.Website,
	}

	if jobs := strings.TrimSpace(form.JobsCreated); jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil || n < 0 {
			errs["jobs_created"] = "Jobs created must be a whole number."
		} else {
			entrepreneur.JobsCreated = n
		}
	}

	switch strings.ToLower(strings.TrimSpace(form.Pinned)) {
	case "true", "on", "1", "yes":
		entrepreneur.Pinned = true
	}

	entrepreneur.Normalize()

	return entrepreneur, errs
}

func ValidateEntrepreneur(entrepreneur *types.Entrepreneur) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(entrepreneur.Name) == "" {
		errs["name"] = "Name is required."
	}
	if strings.TrimSpace(entrepreneur.Industry) == "" {
		errs["industry"] = "Industry is required."
	}
	if entrepreneur.Email != nil {
		if _, err := mail.ParseAddress(*entrepreneur.Email); err != nil {
			errs["email"] = "Email address is not valid."
		}
	}

	return errs
}

// SaveEntrepreneur updates the entrepreneur when its id is known and
// inserts a new one otherwise. created reports which happened.
func (s *Service) SaveEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) (bool, error) {
	entrepreneur.Normalize()

	if errs := ValidateEntrepreneur(entrepreneur); len(errs) > 0 {
		return false, &types.ValidationError{FieldErrors: errs}
	}

	if entrepreneur.ID != "" {
		existing, err := s.entrepreneurs.Entrepreneur(ctx, entrepreneur.ID)
		switch {
		case err == nil:
			entrepreneur.CreatedAt = existing.CreatedAt
			entrepreneur.NominationID = existing.NominationID
			if err := s.entrepreneurs.UpdateEntrepreneur(ctx, entrepreneur); err != nil {
				return false, fmt.Errorf("failed to update entrepreneur: %w", err)
			}

			s.logger.WithField("entrepreneur_id", entrepreneur.ID).Info("entrepreneur updated")
			return false, nil
		case !errors.Is(err, types.ErrEntrepreneurNotFound):
			return false, fmt.Errorf("failed to look up entrepreneur: %w", err)
		}

		entrepreneur.ID = ""
	}

	if err := s.entrepreneurs.CreateEntrepreneur(ctx, entrepreneur); err != nil {
		return false, fmt.Errorf("failed to create entrepreneur: %w", err)
	}

	s.logger.WithField("entrepreneur_id", entrepreneur.ID).Info("entrepreneur created")
	return true, nil
}

// DeleteEntrepreneur removes the entrepreneur and then, best effort, the
// images it references in our bucket.
func (s *Service) DeleteEntrepreneur(ctx context.Context, id string) error {
	entrepreneur, err := s.entrepreneurs.Entrepreneur(ctx, id)
	if err != nil {
		return err
	}

	if err := s.entrepreneurs.DeleteEntrepreneur(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entrepreneur: %w", err)
	}

	s.logger.WithField("entrepreneur_id", id).Info("entrepreneur deleted")

	s.deleteImages(ctx, entrepreneur.ImageURLs(), logrus.Fields{"entrepreneur_id": id})
	return nil
}

// DiscardImages removes freshly uploaded images that never made it onto a
// saved entrepreneur.
func (s *Service) DiscardImages(ctx context.Context, urls map[types.ImageSlot]string) {
	list := make([]string, 0, len(urls))
	for _, url := range urls {
		list = append(list, url)
	}
	s.deleteImages(ctx, list, logrus.Fields{"reason": "discarded upload"})
}

// deleteImages is best effort. URLs outside our bucket are skipped and
// failures are only logged.
func (s *Service) deleteImages(ctx context.Context, urls []string, fields logrus.Fields) {
	prefix := s.storage.PublicURL("")
	for _, url := range urls {
		key, ok := strings.CutPrefix(url, prefix)
		if !ok || key == "" {
			continue
		}

		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithFields(fields).WithField("key", key).Warn("failed to delete entrepreneur image")
		}
	}
}

func (s *Service) TogglePinned(ctx context.Context, id string) (*types.Entrepreneur, error) {
	entrepreneur, err := s.entrepreneurs.TogglePinned(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"entrepreneur_id": id,
		"pinned":          entrepreneur.Pinned,
	}).Info("entrepreneur pin toggled")

	return entrepreneur, nil
}

func (s *Service) Entrepreneur(ctx context.Context, id string) (*types.Entrepreneur, error) {
	return s.entrepreneurs.Entrepreneur(ctx, id)
}

func (s *Service) Entrepreneurs(ctx context.Context) ([]*types.Entrepreneur, error) {
	return s.entrepreneurs.Entrepreneurs(ctx)
}
