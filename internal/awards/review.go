package awards

import (
	"context"
	"errors"
	"fmt"

	"entrepreneurawards/internal/utils"
	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

// nominationTransitions lists the statuses each status may move to. A
// same-status entry means the update only rewrites the notes. Approved to
// pending depends on Options.AllowResetFromApproved and is decided in
// CanTransition.
var nominationTransitions = map[types.NominationStatus]map[types.NominationStatus]bool{
	types.NominationStatusPending: {
		types.NominationStatusPending:  true,
		types.NominationStatusApproved: true,
		types.NominationStatusRejected: true,
	},
	types.NominationStatusApproved: {
		types.NominationStatusApproved: true,
	},
	types.NominationStatusRejected: {
		types.NominationStatusRejected: true,
		types.NominationStatusPending:  true,
	},
}

func CanTransition(from, to types.NominationStatus, allowResetFromApproved bool) bool {
	if from == types.NominationStatusApproved && to == types.NominationStatusPending {
		return allowResetFromApproved
	}
	return nominationTransitions[from][to]
}

// AllowedTransitions returns the targets offered to an administrator for a
// nomination currently in status from, excluding the no-op self transition.
func (s *Service) AllowedTransitions(from types.NominationStatus) []types.NominationStatus {
	out := make([]types.NominationStatus, 0, 2)
	for _, to := range types.AllNominationStatuses {
		if to == from {
			continue
		}
		if CanTransition(from, to, s.opts.AllowResetFromApproved) {
			out = append(out, to)
		}
	}
	return out
}

type ReviewResult struct {
	Nomination *types.Nomination

	// NotesOnly is set when the status did not change. Nothing beyond the
	// notes is written, so a deleted profile is not re-created.
	NotesOnly bool

	// Set when the nomination moved to approved.
	Entrepreneur  *types.Entrepreneur
	Promoted      bool
	AlreadyExists bool

	// PromotionErr is set when the status was saved but the entrepreneur
	// profile could not be created.
	PromotionErr error
}

// UpdateNominationStatus moves a nomination to target and, when it moves to
// approved, promotes it to an entrepreneur unless one already references
// it. A nil notes keeps the stored notes.
func (s *Service) UpdateNominationStatus(ctx context.Context, id string, target types.NominationStatus, notes *string) (*ReviewResult, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidStatus, target)
	}

	current, err := s.nominations.Nomination(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, target, s.opts.AllowResetFromApproved) {
		return nil, fmt.Errorf("%w: %s to %s", types.ErrInvalidTransition, current.Status, target)
	}

	updated, err := s.nominations.UpdateNominationStatus(ctx, id, target, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update nomination status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"nomination_id": id,
		"from":          current.Status,
		"to":            target,
	}).Info("nomination status updated")

	result := &ReviewResult{Nomination: updated, NotesOnly: current.Status == target}
	if result.NotesOnly || target != types.NominationStatusApproved {
		return result, nil
	}

	entrepreneur, existed, err := s.PromoteNomination(ctx, updated)
	if err != nil {
		s.logger.WithError(err).WithField("nomination_id", id).Error("failed to promote nomination")
		result.PromotionErr = err
		return result, nil
	}

	result.Entrepreneur = entrepreneur
	result.AlreadyExists = existed
	result.Promoted = !existed

	return result, nil
}

// PromoteNomination creates the entrepreneur profile for an approved
// nomination. When a profile already references the nomination it is
// returned with existed set and nothing is written. A concurrent approval
// that inserts between the check and the insert trips the unique index on
// nomination_id and is reported the same way.
func (s *Service) PromoteNomination(ctx context.Context, nomination *types.Nomination) (*types.Entrepreneur, bool, error) {
	existing, err := s.entrepreneurs.EntrepreneurByNominationID(ctx, nomination.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for existing entrepreneur: %w", err)
	}

	if existing != nil {
		return existing, true, nil
	}

	entrepreneur := EntrepreneurFromNomination(nomination)
	if err := s.entrepreneurs.CreateEntrepreneur(ctx, entrepreneur); err != nil {
		if !errors.Is(err, types.ErrEntrepreneurExists) {
			return nil, false, fmt.Errorf("failed to create entrepreneur from nomination: %w", err)
		}

		existing, err = s.entrepreneurs.EntrepreneurByNominationID(ctx, nomination.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load concurrently promoted entrepreneur: %w", err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("failed to create entrepreneur from nomination: %w", types.ErrEntrepreneurExists)
		}
		return existing, true, nil
	}

	s.logger.WithFields(logrus.Fields{
		"nomination_id":   nomination.ID,
		"entrepreneur_id": entrepreneur.ID,
	}).Info("nomination promoted to entrepreneur")

	return entrepreneur, false, nil
}

func EntrepreneurFromNomination(nomination *types.Nomination) *types.Entrepreneur {
	return &types.Entrepreneur{
		Name:           nomination.EntrepreneurName,
		Industry:       nomination.BusinessType,
		WhatsappNumber: utils.StringPtr(nomination.EntrepreneurPhone),
		CompanyName:    utils.StringPtr(nomination.BusinessName),
		NominationID:   utils.StringPtr(nomination.ID),
	}
}

func (s *Service) Nominations(ctx context.Context) ([]*types.Nomination, error) {
	return s.nominations.Nominations(ctx)
}
