package server

import (
	"errors"
	"net/http"
	"strconv"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/pkg/types"
)

const featuredOnHome = 3

type HomePageData struct {
	types.BasePageData
	Highlights *awards.Highlights
}

type DirectoryPageData struct {
	types.BasePageData
	Directory *awards.DirectoryPage
}

type EntrepreneurPageData struct {
	types.BasePageData
	Entrepreneur *types.Entrepreneur
}

type directoryQuery struct {
	Industry string `form:"industry"`
	Page     string `form:"page"`
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	highlights, err := s.awards.Highlights(ctx, featuredOnHome)
	if err != nil {
		s.logger.WithError(err).Error("failed to load home page highlights")
		s.internalServerError(w)
		return
	}

	data := &HomePageData{
		BasePageData: types.BasePageData{Title: "Entrepreneur Awards"},
		Highlights:   highlights,
	}
	flash(r, &data.BasePageData)

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) handleDirectory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var query directoryQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		s.logger.WithError(err).Debug("ignoring malformed directory query")
	}

	page, _ := strconv.Atoi(query.Page)

	directory, err := s.awards.Directory(ctx, awards.DirectoryQuery{
		Industry: query.Industry,
		Page:     page,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to load entrepreneur directory")
		s.internalServerError(w)
		return
	}

	data := &DirectoryPageData{
		BasePageData: types.BasePageData{Title: "Entrepreneurs"},
		Directory:    directory,
	}

	if err := s.renderTemplate(w, r, "page.directory", data); err != nil {
		s.logger.WithError(err).Error("failed to render directory page")
		s.internalServerError(w)
	}
}

func (s *Service) handleEntrepreneurDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	entrepreneur, err := s.awards.Entrepreneur(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrEntrepreneurNotFound) {
			s.notFound(w, r)
			return
		}

		s.logger.WithError(err).WithField("entrepreneur_id", id).Error("failed to fetch entrepreneur")
		s.internalServerError(w)
		return
	}

	data := &EntrepreneurPageData{
		BasePageData: types.BasePageData{Title: entrepreneur.Name},
		Entrepreneur: entrepreneur,
	}

	if err := s.renderTemplate(w, r, "page.entrepreneur", data); err != nil {
		s.logger.WithError(err).Error("failed to render entrepreneur page")
		s.internalServerError(w)
	}
}
