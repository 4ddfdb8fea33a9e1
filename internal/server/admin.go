package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	tabNominations   = "nominations"
	tabEntrepreneurs = "entrepreneurs"
	tabCategories    = "categories"
)

type adminQuery struct {
	Tab    string `form:"tab"`
	Status string `form:"status"`
	Query  string `form:"q"`
}

type NominationRow struct {
	*types.Nomination
	Transitions []types.NominationStatus
}

type AdminPageData struct {
	types.BasePageData
	Tab           string
	Filter        awards.NominationFilter
	Statuses      []types.NominationStatus
	Counts        types.NominationStatusCounts
	Nominations   []NominationRow
	Entrepreneurs []*types.Entrepreneur
	Categories    []*types.IndustryCategory
}

func adminURL(tab string, filter awards.NominationFilter) string {
	v := url.Values{}
	v.Set("tab", tab)
	if filter.Status != "" && filter.Status != awards.StatusFilterAll {
		v.Set("status", filter.Status)
	}
	if filter.Query != "" {
		v.Set("q", filter.Query)
	}
	return "/admin?" + v.Encode()
}

func (s *Service) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var query adminQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		s.logger.WithError(err).Debug("ignoring malformed admin query")
	}

	switch query.Tab {
	case tabNominations, tabEntrepreneurs, tabCategories:
	default:
		query.Tab = tabNominations
	}

	filter := awards.NominationFilter{Status: query.Status, Query: query.Query}
	if filter.Status == "" {
		filter.Status = awards.StatusFilterAll
	}

	nominations, counts, err := s.awards.FilteredNominations(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to load nominations")
		s.internalServerError(w)
		return
	}

	entrepreneurs, err := s.awards.Entrepreneurs(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load entrepreneurs")
		s.internalServerError(w)
		return
	}

	categories, err := s.awards.Categories(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load categories")
		s.internalServerError(w)
		return
	}

	rows := make([]NominationRow, 0, len(nominations))
	for _, n := range nominations {
		rows = append(rows, NominationRow{Nomination: n, Transitions: s.awards.AllowedTransitions(n.Status)})
	}

	data := &AdminPageData{
		BasePageData:  types.BasePageData{Title: "Admin dashboard"},
		Tab:           query.Tab,
		Filter:        filter,
		Statuses:      types.AllNominationStatuses,
		Counts:        counts,
		Nominations:   rows,
		Entrepreneurs: entrepreneurs,
		Categories:    categories,
	}
	flash(r, &data.BasePageData)

	if err := s.renderTemplate(w, r, "page.admin", data); err != nil {
		s.logger.WithError(err).Error("failed to render admin dashboard")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostNominationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, adminURL(tabNominations, awards.NominationFilter{}), "Invalid form submission.")
		return
	}

	back := awards.NominationFilter{
		Status: r.PostForm.Get("filter_status"),
		Query:  r.PostForm.Get("filter_q"),
	}

	status, err := types.ParseNominationStatus(r.PostForm.Get("status"))
	if err != nil {
		s.redirectWithError(w, r, adminURL(tabNominations, back), "Unknown nomination status.")
		return
	}

	var notes *string
	if values, ok := r.PostForm["notes"]; ok && len(values) > 0 {
		notes = &values[0]
	}

	result, err := s.awards.UpdateNominationStatus(ctx, id, status, notes)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrNominationNotFound):
			s.notFound(w, r)
		case errors.Is(err, types.ErrInvalidTransition):
			s.redirectWithError(w, r, adminURL(tabNominations, back), fmt.Sprintf("A nomination cannot move to %s from its current status.", status))
		default:
			s.logger.WithError(err).WithFields(logrus.Fields{
				"nomination_id": id,
				"status":        status,
			}).Error("failed to update nomination status")
			s.redirectWithError(w, r, adminURL(tabNominations, back), "Failed to update the nomination. Please try again.")
		}
		return
	}

	switch {
	case result.NotesOnly:
		s.redirectWithNotice(w, r, adminURL(tabNominations, back), "Notes saved.")
	case result.PromotionErr != nil:
		s.redirectWithError(w, r, adminURL(tabNominations, back), "Nomination approved, but the entrepreneur profile could not be created.")
	case result.Promoted:
		s.redirectWithNotice(w, r, adminURL(tabEntrepreneurs, back), fmt.Sprintf("Nomination approved. %s has been added to the entrepreneurs tab.", result.Entrepreneur.Name))
	case result.AlreadyExists:
		s.redirectWithNotice(w, r, adminURL(tabEntrepreneurs, back), "Nomination approved. An entrepreneur profile already exists for it.")
	default:
		s.redirectWithNotice(w, r, adminURL(tabNominations, back), fmt.Sprintf("Nomination marked %s.", result.Nomination.Status))
	}
}

func (s *Service) handlePostCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	back := adminURL(tabCategories, awards.NominationFilter{})

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, back, "Invalid form submission.")
		return
	}

	var category types.IndustryCategory
	if err := decoder.Decode(&category, r.PostForm); err != nil {
		s.redirectWithError(w, r, back, "Invalid form submission.")
		return
	}

	created, err := s.awards.CreateCategory(ctx, category.Name)
	if err != nil {
		if fieldErrors, ok := types.FieldErrorsOf(err); ok {
			s.redirectWithError(w, r, back, fieldErrors["name"])
			return
		}
		if errors.Is(err, types.ErrCategoryExists) {
			s.redirectWithError(w, r, back, "A category with that name already exists.")
			return
		}

		s.logger.WithError(err).Error("failed to create category")
		s.redirectWithError(w, r, back, "Failed to create the category. Please try again.")
		return
	}

	s.redirectWithNotice(w, r, back, fmt.Sprintf("Category %q added.", created.Name))
}
