package awards

import (
	"context"
	"strings"

	"entrepreneurawards/pkg/types"
)

const StatusFilterAll = "all"

type NominationFilter struct {
	Status string
	Query  string
}

// FilterNominations keeps nominations matching the status filter and whose
// entrepreneur name, business name, location or type contains the query,
// ignoring case. An empty or "all" status and an empty query match
// everything. Order is preserved.
func FilterNominations(nominations []*types.Nomination, filter NominationFilter) []*types.Nomination {
	status := strings.ToLower(strings.TrimSpace(filter.Status))
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]*types.Nomination, 0, len(nominations))
	for _, n := range nominations {
		if status != "" && status != StatusFilterAll && string(n.Status) != status {
			continue
		}

		if query != "" && !nominationMatches(n, query) {
			continue
		}

		out = append(out, n)
	}

	return out
}

func nominationMatches(n *types.Nomination, query string) bool {
	for _, field := range []string{n.EntrepreneurName, n.BusinessName, n.BusinessLocation, n.BusinessType} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func CountNominations(nominations []*types.Nomination) types.NominationStatusCounts {
	var counts types.NominationStatusCounts
	for _, n := range nominations {
		counts.Total++
		switch n.Status {
		case types.NominationStatusPending:
			counts.Pending++
		case types.NominationStatusApproved:
			counts.Approved++
		case types.NominationStatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

// FilteredNominations loads every nomination and returns those matching
// filter along with the status counts over the unfiltered set.
func (s *Service) FilteredNominations(ctx context.Context, filter NominationFilter) ([]*types.Nomination, types.NominationStatusCounts, error) {
	nominations, err := s.nominations.Nominations(ctx)
	if err != nil {
		return nil, types.NominationStatusCounts{}, err
	}

	return FilterNominations(nominations, filter), CountNominations(nominations), nil
}
