package awards

import (
	"context"
	"fmt"
	"testing"

	"entrepreneurawards/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrepreneurs(n int, industry string) []*types.Entrepreneur {
	out := make([]*types.Entrepreneur, n)
	for i := range out {
		out[i] = &types.Entrepreneur{ID: fmt.Sprintf("%s-%d", industry, i), Industry: industry, JobsCreated: 2}
	}
	return out
}

func TestPaginate(t *testing.T) {
	all := append(entrepreneurs(23, "Retail"), entrepreneurs(4, "Agriculture")...)

	t.Run("first page", func(t *testing.T) {
		page := Paginate(all, DirectoryQuery{}, 10)
		assert.Len(t, page.Entrepreneurs, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 27, page.Total)
		assert.False(t, page.HasPrev())
		assert.True(t, page.HasNext())
		assert.Equal(t, []string{"Agriculture", "Retail"}, page.Industries)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := Paginate(all, DirectoryQuery{Page: 3}, 10)
		assert.Len(t, page.Entrepreneurs, 7)
		assert.False(t, page.HasNext())
		assert.Equal(t, []int{1, 2, 3}, page.Pages())
	})

	t.Run("out of range clamps", func(t *testing.T) {
		page := Paginate(all, DirectoryQuery{Page: 99}, 10)
		assert.Equal(t, 3, page.Page)

		page = Paginate(all, DirectoryQuery{Page: -1}, 10)
		assert.Equal(t, 1, page.Page)
	})

	t.Run("industry filter", func(t *testing.T) {
		page := Paginate(all, DirectoryQuery{Industry: "Agriculture", Page: 2}, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 4, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		for _, e := range page.Entrepreneurs {
			assert.Equal(t, "Agriculture", e.Industry)
		}
		assert.Equal(t, []string{"Agriculture", "Retail"}, page.Industries)
	})

	t.Run("empty", func(t *testing.T) {
		page := Paginate(nil, DirectoryQuery{Page: 4}, 10)
		assert.Empty(t, page.Entrepreneurs)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestDirectory_PinnedFirst(t *testing.T) {
	svc := newTestService(t, Options{DirectoryPageSize: 2})
	ctx := context.Background()

	svc.entrepreneurs.add(types.Entrepreneur{ID: "old-pinned", Industry: "Retail", Pinned: true})
	svc.entrepreneurs.add(types.Entrepreneur{ID: "middle", Industry: "Retail"})
	svc.entrepreneurs.add(types.Entrepreneur{ID: "newest", Industry: "Agriculture"})

	page, err := svc.Directory(ctx, DirectoryQuery{Page: 1})
	require.NoError(t, err)

	require.Len(t, page.Entrepreneurs, 2)
	assert.Equal(t, "old-pinned", page.Entrepreneurs[0].ID)
	assert.Equal(t, "newest", page.Entrepreneurs[1].ID)
	assert.Equal(t, 2, page.TotalPages)
}

func TestHighlights(t *testing.T) {
	svc := newTestService(t, Options{})
	ctx := context.Background()

	svc.entrepreneurs.add(types.Entrepreneur{Industry: "Retail", JobsCreated: 5})
	svc.entrepreneurs.add(types.Entrepreneur{Industry: "Retail", JobsCreated: 3})
	svc.entrepreneurs.add(types.Entrepreneur{Industry: "Agriculture", JobsCreated: 0})

	h, err := svc.Highlights(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, h.Entrepreneurs)
	assert.Equal(t, 2, h.Industries)
	assert.Equal(t, 8, h.JobsCreated)
	assert.Len(t, h.Featured, 2)
}

func TestFilterNominations(t *testing.T) {
	nominations := []*types.Nomination{
		{ID: "1", EntrepreneurName: "Jane Doe", BusinessName: "Doe Bakery", BusinessLocation: "Springfield", BusinessType: "Food & Beverage", Status: types.NominationStatusPending},
		{ID: "2", EntrepreneurName: "Ali Khan", BusinessName: "Khan Motors", BusinessLocation: "Shelbyville", BusinessType: "Automotive", Status: types.NominationStatusApproved},
		{ID: "3", EntrepreneurName: "Mia Wong", BusinessName: "Bakeshop", BusinessLocation: "Capital City", BusinessType: "Food & Beverage", Status: types.NominationStatusRejected},
	}

	ids := func(ns []*types.Nomination) []string {
		out := []string{}
		for _, n := range ns {
			out = append(out, n.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter NominationFilter
		want   []string
	}{
		{"everything", NominationFilter{}, []string{"1", "2", "3"}},
		{"all status", NominationFilter{Status: "all"}, []string{"1", "2", "3"}},
		{"status only", NominationFilter{Status: "approved"}, []string{"2"}},
		{"query over business type", NominationFilter{Query: "food"}, []string{"1", "3"}},
		{"query over location", NominationFilter{Query: "SHELBY"}, []string{"2"}},
		{"query and status", NominationFilter{Status: "pending", Query: "bake"}, []string{"1"}},
		{"no match", NominationFilter{Query: "zzz"}, []string{}},
		{"nominator fields are not searched", NominationFilter{Query: "John"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterNominations(nominations, tt.filter)))
		})
	}

	assert.Equal(t, types.NominationStatusCounts{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, CountNominations(nominations))
}
