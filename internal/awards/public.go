package awards

import (
	"context"
	"sort"

	"entrepreneurawards/pkg/types"
)

type DirectoryQuery struct {
	Industry string
	Page     int
}

type DirectoryPage struct {
	Entrepreneurs []*types.Entrepreneur
	Industries    []string
	Industry      string
	Page          int
	TotalPages    int
	Total         int
}

func (p DirectoryPage) HasPrev() bool { return p.Page > 1 }
func (p DirectoryPage) HasNext() bool { return p.Page < p.TotalPages }
func (p DirectoryPage) PrevPage() int { return p.Page - 1 }
func (p DirectoryPage) NextPage() int { return p.Page + 1 }

// Pages lists 1..TotalPages for rendering page links.
func (p DirectoryPage) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

type Highlights struct {
	Entrepreneurs int
	Industries    int
	JobsCreated   int
	Featured      []*types.Entrepreneur
}

// DistinctIndustries returns the industries present, sorted by name.
func DistinctIndustries(entrepreneurs []*types.Entrepreneur) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range entrepreneurs {
		if e.Industry == "" || seen[e.Industry] {
			continue
		}
		seen[e.Industry] = true
		out = append(out, e.Industry)
	}
	sort.Strings(out)
	return out
}

// Paginate filters entrepreneurs by exact industry and returns the
// requested page. Pages below 1 become 1 and pages past the end clamp to
// the last page. An empty result still has one page.
func Paginate(entrepreneurs []*types.Entrepreneur, query DirectoryQuery, pageSize int) DirectoryPage {
	filtered := entrepreneurs
	if query.Industry != "" {
		filtered = make([]*types.Entrepreneur, 0, len(entrepreneurs))
		for _, e := range entrepreneurs {
			if e.Industry == query.Industry {
				filtered = append(filtered, e)
			}
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(filtered))

	return DirectoryPage{
		Entrepreneurs: filtered[start:end],
		Industries:    DistinctIndustries(entrepreneurs),
		Industry:      query.Industry,
		Page:          page,
		TotalPages:    totalPages,
		Total:         len(filtered),
	}
}

func (s *Service) Directory(ctx context.Context, query DirectoryQuery) (*DirectoryPage, error) {
	entrepreneurs, err := s.entrepreneurs.Entrepreneurs(ctx)
	if err != nil {
		return nil, err
	}

	page := Paginate(entrepreneurs, query, s.opts.DirectoryPageSize)
	return &page, nil
}

// Highlights summarises the directory for the home page. Featured holds
// the first entrepreneurs in directory order.
func (s *Service) Highlights(ctx context.Context, featured int) (*Highlights, error) {
	entrepreneurs, err := s.entrepreneurs.Entrepreneurs(ctx)
	if err != nil {
		return nil, err
	}

	h := &Highlights{
		Entrepreneurs: len(entrepreneurs),
		Industries:    len(DistinctIndustries(entrepreneurs)),
		Featured:      entrepreneurs[:min(featured, len(entrepreneurs))],
	}
	for _, e := range entrepreneurs {
		h.JobsCreated += e.JobsCreated
	}

	return h, nil
}
