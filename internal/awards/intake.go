package awards

import (
	"context"
	"fmt"

	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

var nominationFieldLabels = []struct {
	field string
	label string
	value func(types.NominationForm) string
}{
	{"entrepreneur_name", "Entrepreneur name", func(f types.NominationForm) string { return f.EntrepreneurName }},
	{"entrepreneur_phone", "Entrepreneur phone", func(f types.NominationForm) string { return f.EntrepreneurPhone }},
	{"business_name", "Business name", func(f types.NominationForm) string { return f.BusinessName }},
	{"business_location", "Business location", func(f types.NominationForm) string { return f.BusinessLocation }},
	{"business_type", "Business type", func(f types.NominationForm) string { return f.BusinessType }},
	{"nominator_name", "Your name", func(f types.NominationForm) string { return f.NominatorName }},
	{"nominator_phone", "Your phone", func(f types.NominationForm) string { return f.NominatorPhone }},
}

// ValidateNomination requires every field to hold something other than
// whitespace.
func ValidateNomination(form types.NominationForm) map[string]string {
	errs := map[string]string{}

	form.Trim()
	for _, f := range nominationFieldLabels {
		if f.value(form) == "" {
			errs[f.field] = f.label + " is required."
		}
	}

	return errs
}

// SubmitNomination stores a pending nomination and notifies the
// administrator in the background. Notification failures are logged and
// never undo the nomination.
func (s *Service) SubmitNomination(ctx context.Context, form types.NominationForm) (*types.Nomination, error) {
	form.Trim()

	if errs := ValidateNomination(form); len(errs) > 0 {
		return nil, &types.ValidationError{FieldErrors: errs}
	}

	nomination := &types.Nomination{
		EntrepreneurName:  form.EntrepreneurName,
		EntrepreneurPhone: form.EntrepreneurPhone,
		BusinessName:      form.BusinessName,
		BusinessLocation:  form.BusinessLocation,
		BusinessType:      form.BusinessType,
		NominatorName:     form.NominatorName,
		NominatorPhone:    form.NominatorPhone,
		Status:            types.NominationStatusPending,
	}

	if err := s.nominations.CreateNomination(ctx, nomination); err != nil {
		return nil, fmt.Errorf("failed to submit nomination: %w", err)
	}

	s.logger.WithField("nomination_id", nomination.ID).Info("nomination submitted")

	s.notifyWG.Add(1)
	go s.notifyNomination(context.WithoutCancel(ctx), nomination.ID, form)

	return nomination, nil
}

func (s *Service) notifyNomination(ctx context.Context, nominationID string, form types.NominationForm) {
	defer s.notifyWG.Done()

	ctx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyNomination(ctx, form); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"nomination_id": nominationID,
		}).Warn("failed to send nomination notification")
		return
	}

	s.logger.WithField("nomination_id", nominationID).Debug("nomination notification sent")
}
