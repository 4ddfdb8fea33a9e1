package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"entrepreneurawards/pkg/types"
)

var nominationEmailTemplate = template.Must(template.New("nomination").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #1f2937; border-bottom: 2px solid #3b82f6; padding-bottom: 10px;">New Entrepreneur Nomination Received</h1>
  <div style="background-color: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="color: #374151; margin-top: 0;">Entrepreneur Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Name:</td><td style="padding: 8px 0;">{{.Nomination.EntrepreneurName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Phone:</td><td style="padding: 8px 0;">{{.Nomination.EntrepreneurPhone}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Business Name:</td><td style="padding: 8px 0;">{{.Nomination.BusinessName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Business Type:</td><td style="padding: 8px 0;">{{.Nomination.BusinessType}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Location:</td><td style="padding: 8px 0;">{{.Nomination.BusinessLocation}}</td></tr>
    </table>
  </div>
  <div style="background-color: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="color: #374151; margin-top: 0;">Nominator Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Name:</td><td style="padding: 8px 0;">{{.Nomination.NominatorName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold; color: #6b7280;">Phone:</td><td style="padding: 8px 0;">{{.Nomination.NominatorPhone}}</td></tr>
    </table>
  </div>
  <div style="margin: 30px 0; text-align: center;">
    <a href="{{.AdminURL}}" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold;">Review in Admin Dashboard</a>
  </div>
  <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">This nomination was submitted through the Entrepreneur Awards platform and is waiting for your review.</p>
</div>
`))

type Email struct {
	Subject string
	HTML    string
	Text    string
}

// RenderNominationEmail builds the administrator email for a new nomination.
// adminBaseURL is the public site root; the review link points at /admin.
func RenderNominationEmail(nomination types.NominationForm, adminBaseURL string) (*Email, error) {
	data := struct {
		Nomination types.NominationForm
		AdminURL   string
	}{
		Nomination: nomination,
		AdminURL:   strings.TrimRight(adminBaseURL, "/") + "/admin",
	}

	var buf bytes.Buffer
	if err := nominationEmailTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render nomination email: %w", err)
	}

	text := fmt.Sprintf(
		"New entrepreneur nomination\n\nName: %s\nPhone: %s\nBusiness Name: %s\nBusiness Type: %s\nLocation: %s\n\nNominated by %s (%s)\n\nReview: %s\n",
		nomination.EntrepreneurName,
		nomination.EntrepreneurPhone,
		nomination.BusinessName,
		nomination.BusinessType,
		nomination.BusinessLocation,
		nomination.NominatorName,
		nomination.NominatorPhone,
		data.AdminURL,
	)

	return &Email{
		Subject: "New Entrepreneur Nomination: " + nomination.EntrepreneurName,
		HTML:    buf.String(),
		Text:    text,
	}, nil
}
