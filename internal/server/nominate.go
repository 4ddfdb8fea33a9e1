package server

import (
	"net/http"

	"entrepreneurawards/pkg/types"
)

type NominatePageData struct {
	types.BasePageData
	Form        types.NominationForm
	FieldErrors map[string]string
	Categories  []*types.IndustryCategory
}

func (s *Service) nominatePageData(r *http.Request) *NominatePageData {
	data := &NominatePageData{
		BasePageData: types.BasePageData{Title: "Nominate an Entrepreneur"},
	}

	categories, err := s.awards.Categories(r.Context())
	if err != nil {
		// the form falls back to a free text business type
		s.logger.WithError(err).Warn("failed to load categories for nomination form")
	}
	data.Categories = categories

	return data
}

func (s *Service) handleGetNominate(w http.ResponseWriter, r *http.Request) {
	data := s.nominatePageData(r)
	flash(r, &data.BasePageData)

	if err := s.renderTemplate(w, r, "page.nominate", data); err != nil {
		s.logger.WithError(err).Error("failed to render nominate page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostNominate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/nominate", "Invalid form submission.")
		return
	}

	var form types.NominationForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Warn("failed to decode nomination form")
		s.redirectWithError(w, r, "/nominate", "Invalid form submission.")
		return
	}

	_, err := s.awards.SubmitNomination(ctx, form)
	if err != nil {
		data := s.nominatePageData(r)
		data.Form = form

		if fieldErrors, ok := types.FieldErrorsOf(err); ok {
			data.FieldErrors = fieldErrors
			data.Error = "Please fill in every field."
			s.renderStatus(w, r, http.StatusUnprocessableEntity, "page.nominate", data)
			return
		}

		s.logger.WithError(err).Error("failed to submit nomination")
		data.Error = "We could not save your nomination. Please try again."
		s.renderStatus(w, r, http.StatusInternalServerError, "page.nominate", data)
		return
	}

	s.redirectWithNotice(w, r, "/nominate", "Thank you! Your nomination has been submitted for review.")
}
