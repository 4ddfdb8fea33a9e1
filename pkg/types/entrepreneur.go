package types

import (
	"strings"
	"time"
)

type Entrepreneur struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Bio             *string   `db:"bio"`
	Industry        string    `db:"industry"`
	ProfilePhotoURL *string   `db:"profile_photo_url"`
	CompanyLogoURL  *string   `db:"company_logo_url"`
	BadgePhotoURL   *string   `db:"badge_photo_url"`
	WhatsappNumber  *string   `db:"whatsapp_number"`
	Email           *string   `db:"email"`
	CompanyName     *string   `db:"company_name"`
	Website         *string   `db:"website"`
	JobsCreated     int       `db:"jobs_created"`
	Pinned          bool      `db:"pinned"`
	NominationID    *string   `db:"nomination_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// EntrepreneurForm is the admin edit form as submitted. Numbers and flags
// arrive as text and are converted by the handler.
type EntrepreneurForm struct {
	ID              string `form:"id"`
	Name            string `form:"name"`
	Bio             string `form:"bio"`
	Industry        string `form:"industry"`
	ProfilePhotoURL string `form:"profile_photo_url"`
	CompanyLogoURL  string `form:"company_logo_url"`
	BadgePhotoURL   string `form:"badge_photo_url"`
	WhatsappNumber  string `form:"whatsapp_number"`
	Email           string `form:"email"`
	CompanyName     string `form:"company_name"`
	Website         string `form:"website"`
	JobsCreated     string `form:"jobs_created"`
	Pinned          string `form:"pinned"`
}

// ImageSlot names one of the image fields on an entrepreneur profile.
type ImageSlot string

const (
	ImageSlotProfile ImageSlot = "profile"
	ImageSlotLogo    ImageSlot = "logo"
	ImageSlotBadge   ImageSlot = "badge"
)

var AllImageSlots = []ImageSlot{ImageSlotProfile, ImageSlotLogo, ImageSlotBadge}

func (s ImageSlot) Valid() bool {
	switch s {
	case ImageSlotProfile, ImageSlotLogo, ImageSlotBadge:
		return true
	}
	return false
}

// FormField is the multipart field name that carries the slot's file.
func (s ImageSlot) FormField() string {
	return string(s) + "_file"
}

// SetImageURL writes url into the field that backs slot.
func (e *Entrepreneur) SetImageURL(slot ImageSlot, url string) {
	switch slot {
	case ImageSlotProfile:
		e.ProfilePhotoURL = &url
	case ImageSlotLogo:
		e.CompanyLogoURL = &url
	case ImageSlotBadge:
		e.BadgePhotoURL = &url
	}
}

func (e *Entrepreneur) ImageURLs() []string {
	urls := make([]string, 0, 3)
	for _, u := range []*string{e.ProfilePhotoURL, e.CompanyLogoURL, e.BadgePhotoURL} {
		if u != nil && strings.TrimSpace(*u) != "" {
			urls = append(urls, *u)
		}
	}
	return urls
}

// Normalize trims text fields and turns blank optional fields into nil.
func (e *Entrepreneur) Normalize() {
	e.ID = strings.TrimSpace(e.ID)
	e.Name = strings.TrimSpace(e.Name)
	e.Industry = strings.TrimSpace(e.Industry)
	for _, p := range []**string{
		&e.Bio, &e.ProfilePhotoURL, &e.CompanyLogoURL, &e.BadgePhotoURL,
		&e.WhatsappNumber, &e.Email, &e.CompanyName, &e.Website,
	} {
		if *p == nil {
			continue
		}
		v := strings.TrimSpace(**p)
		if v == "" {
			*p = nil
			continue
		}
		*p = &v
	}
	if e.JobsCreated < 0 {
		e.JobsCreated = 0
	}
}
