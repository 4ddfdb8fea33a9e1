package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"entrepreneurawards/internal/awards"
	"entrepreneurawards/internal/utils"
	"entrepreneurawards/pkg/types"
)

// multipart overhead on top of the three image slots
const formOverheadBytes = 1 << 20

type ImageSlotField struct {
	Slot  types.ImageSlot
	Label string
	URL   string
	State awards.UploadState
}

type EntrepreneurFormPageData struct {
	types.BasePageData
	IsNew       bool
	Form        types.EntrepreneurForm
	FieldErrors map[string]string
	Categories  []*types.IndustryCategory
	Images      []ImageSlotField
}

var imageSlotLabels = map[types.ImageSlot]string{
	types.ImageSlotProfile: "Profile photo",
	types.ImageSlotLogo:    "Company logo",
	types.ImageSlotBadge:   "Badge photo",
}

func formFromEntrepreneur(e *types.Entrepreneur) types.EntrepreneurForm {
	form := types.EntrepreneurForm{
		ID:              e.ID,
		Name:            e.Name,
		Industry:        e.Industry,
		Bio:             utils.PtrString(e.Bio),
		ProfilePhotoURL: utils.PtrString(e.ProfilePhotoURL),
		CompanyLogoURL:  utils.PtrString(e.CompanyLogoURL),
		BadgePhotoURL:   utils.PtrString(e.BadgePhotoURL),
		WhatsappNumber:  utils.PtrString(e.WhatsappNumber),
		Email:           utils.PtrString(e.Email),
		CompanyName:     utils.PtrString(e.CompanyName),
		Website:         utils.PtrString(e.Website),
		JobsCreated:     strconv.Itoa(e.JobsCreated),
	}
	if e.Pinned {
		form.Pinned = "true"
	}
	return form
}

func (s *Service) entrepreneurFormData(r *http.Request, form types.EntrepreneurForm) *EntrepreneurFormPageData {
	isNew := form.ID == ""
	title := "Edit entrepreneur"
	if isNew {
		title = "Add entrepreneur"
	}

	data := &EntrepreneurFormPageData{
		BasePageData: types.BasePageData{Title: title},
		IsNew:        isNew,
		Form:         form,
	}

	categories, err := s.awards.Categories(r.Context())
	if err != nil {
		s.logger.WithError(err).Warn("failed to load categories for entrepreneur form")
	}
	data.Categories = categories

	var owner string
	if session := sessionFromContext(r.Context()); session != nil {
		owner = session.UserID
	}
	states := s.awards.Uploads().States(owner)

	urls := map[types.ImageSlot]string{
		types.ImageSlotProfile: form.ProfilePhotoURL,
		types.ImageSlotLogo:    form.CompanyLogoURL,
		types.ImageSlotBadge:   form.BadgePhotoURL,
	}
	for _, slot := range types.AllImageSlots {
		data.Images = append(data.Images, ImageSlotField{
			Slot:  slot,
			Label: imageSlotLabels[slot],
			URL:   urls[slot],
			State: states[slot],
		})
	}

	return data
}

func (s *Service) handleGetEntrepreneurForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form types.EntrepreneurForm
	if id := r.PathValue("id"); id != "" {
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
		form = formFromEntrepreneur(entrepreneur)
	}

	data := s.entrepreneurFormData(r, form)
	flash(r, &data.BasePageData)

	if err := s.renderTemplate(w, r, "page.entrepreneur-form", data); err != nil {
		s.logger.WithError(err).Error("failed to render entrepreneur form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostEntrepreneur(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	maxBytes := s.awards.MaxUploadBytes()*int64(len(types.AllImageSlots)) + formOverheadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.logger.WithError(err).Warn("failed to parse entrepreneur form")
		s.redirectWithError(w, r, adminURL(tabEntrepreneurs, awards.NominationFilter{}), "The form could not be read. Images may be too large.")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	var form types.EntrepreneurForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Warn("failed to decode entrepreneur form")
		s.redirectWithError(w, r, adminURL(tabEntrepreneurs, awards.NominationFilter{}), "Invalid form submission.")
		return
	}

	entrepreneur, fieldErrors := awards.EntrepreneurFromForm(form)
	for field, msg := range awards.ValidateEntrepreneur(entrepreneur) {
		fieldErrors[field] = msg
	}
	if len(fieldErrors) > 0 {
		data := s.entrepreneurFormData(r, form)
		data.FieldErrors = fieldErrors
		data.Error = "Please fix the highlighted fields."
		s.renderStatus(w, r, http.StatusUnprocessableEntity, "page.entrepreneur-form", data)
		return
	}

	uploads, closeFiles, err := imageUploads(r.MultipartForm)
	defer closeFiles()
	if err != nil {
		s.logger.WithError(err).Warn("failed to open uploaded image")
		data := s.entrepreneurFormData(r, form)
		data.Error = "An uploaded image could not be read."
		s.renderStatus(w, r, http.StatusBadRequest, "page.entrepreneur-form", data)
		return
	}

	var uploaded map[types.ImageSlot]string
	if len(uploads) > 0 {
		urls, err := s.awards.UploadImages(ctx, session.UserID, uploads)
		uploaded = urls
		for slot, url := range urls {
			entrepreneur.SetImageURL(slot, url)
		}
		if err != nil {
			form = formFromEntrepreneur(entrepreneur)
			data := s.entrepreneurFormData(r, form)
			data.Error = uploadErrorMessage(err)
			s.renderStatus(w, r, uploadErrorStatus(err), "page.entrepreneur-form", data)
			return
		}
	}

	created, err := s.awards.SaveEntrepreneur(ctx, entrepreneur)
	if err != nil {
		if fieldErrors, ok := types.FieldErrorsOf(err); ok {
			data := s.entrepreneurFormData(r, formFromEntrepreneur(entrepreneur))
			data.FieldErrors = fieldErrors
			data.Error = "Please fix the highlighted fields."
			s.renderStatus(w, r, http.StatusUnprocessableEntity, "page.entrepreneur-form", data)
			return
		}

		s.logger.WithError(err).WithField("entrepreneur_id", entrepreneur.ID).Error("failed to save entrepreneur")
		s.awards.DiscardImages(ctx, uploaded)
		s.redirectWithError(w, r, adminURL(tabEntrepreneurs, awards.NominationFilter{}), "Failed to save the entrepreneur. Please try again.")
		return
	}

	notice := fmt.Sprintf("%s updated.", entrepreneur.Name)
	if created {
		notice = fmt.Sprintf("%s added to the directory.", entrepreneur.Name)
	}
	s.redirectWithNotice(w, r, adminURL(tabEntrepreneurs, awards.NominationFilter{}), notice)
}

// imageUploads opens every provided slot file. The returned func closes
// whatever was opened and is safe to call when err is set.
func imageUploads(mf *multipart.Form) ([]awards.ImageUpload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	if mf == nil {
		return nil, closeAll, nil
	}

	uploads := make([]awards.ImageUpload, 0, len(types.AllImageSlots))
	for _, slot := range types.AllImageSlots {
		headers := mf.File[slot.FormField()]
		if len(headers) == 0 || headers[0].Size == 0 {
			continue
		}

		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %s upload: %w", slot, err)
		}
		files = append(files, file)

		uploads = append(uploads, awards.ImageUpload{
			Slot:        slot,
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
	}

	return uploads, closeAll, nil
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, types.ErrUnsupportedImage):
		return "Images must be JPEG, PNG, GIF or WebP files."
	case errors.Is(err, types.ErrImageTooLarge):
		return "An image is larger than the upload limit."
	case errors.Is(err, types.ErrUploadInProgress):
		return "An upload for that image is already in progress. Please wait for it to finish."
	}
	return "An image could not be uploaded. Please try again."
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrUnsupportedImage), errors.Is(err, types.ErrImageTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrUploadInProgress):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

func (s *Service) handlePostTogglePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	back := adminURL(tabEntrepreneurs, awards.NominationFilter{})

	entrepreneur, err := s.awards.TogglePinned(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrEntrepreneurNotFound) {
			s.notFound(w, r)
			return
		}

		s.logger.WithError(err).WithField("entrepreneur_id", id).Error("failed to toggle pin")
		s.redirectWithError(w, r, back, "Failed to update the entrepreneur. Please try again.")
		return
	}

	notice := fmt.Sprintf("%s unpinned.", entrepreneur.Name)
	if entrepreneur.Pinned {
		notice = fmt.Sprintf("%s pinned to the top of the directory.", entrepreneur.Name)
	}
	s.redirectWithNotice(w, r, back, notice)
}

func (s *Service) handlePostDeleteEntrepreneur(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	back := adminURL(tabEntrepreneurs, awards.NominationFilter{})

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, back, "Invalid form submission.")
		return
	}

	if r.PostForm.Get("confirm") != "yes" {
		s.redirectWithError(w, r, back, "Tick the confirmation box to delete an entrepreneur.")
		return
	}

	if err := s.awards.DeleteEntrepreneur(ctx, id); err != nil {
		if errors.Is(err, types.ErrEntrepreneurNotFound) {
			s.notFound(w, r)
			return
		}

		s.logger.WithError(err).WithField("entrepreneur_id", id).Error("failed to delete entrepreneur")
		s.redirectWithError(w, r, back, "Failed to delete the entrepreneur. Please try again.")
		return
	}

	s.redirectWithNotice(w, r, back, "Entrepreneur deleted.")
}
