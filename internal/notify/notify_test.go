package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"entrepreneurawards/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janeDoe() types.NominationForm {
	return types.NominationForm{
		EntrepreneurName:  "Jane Doe",
		EntrepreneurPhone: "+1-555-0100",
		BusinessName:      "Doe Bakery",
		BusinessLocation:  "Springfield",
		BusinessType:      "Food & Beverage",
		NominatorName:     "John Smith",
		NominatorPhone:    "+1-555-0200",
	}
}

func TestRenderNominationEmail(t *testing.T) {
	email, err := RenderNominationEmail(janeDoe(), "https://awards.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "New Entrepreneur Nomination: Jane Doe", email.Subject)
	assert.Contains(t, email.HTML, `href="https://awards.example.com/admin"`)
	assert.Contains(t, email.HTML, "Doe Bakery")
	assert.Contains(t, email.HTML, "Food &amp; Beverage")
	assert.Contains(t, email.HTML, "555-0200")
	assert.Contains(t, email.Text, "Nominated by John Smith (+1-555-0200)")
}

func TestRenderNominationEmail_EscapesInput(t *testing.T) {
	form := janeDoe()
	form.EntrepreneurName = `<script>alert("x")</script>`

	email, err := RenderNominationEmail(form, "https://awards.example.com")
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, f.err
}

func TestSESSender(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, "awards@example.com", "admin@example.com", "https://awards.example.com")

	require.NoError(t, sender.NotifyNomination(context.Background(), janeDoe()))

	require.NotNil(t, client.input)
	assert.Equal(t, "awards@example.com", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"admin@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "New Entrepreneur Nomination: Jane Doe", aws.ToString(client.input.Content.Simple.Subject.Data))
	assert.Contains(t, aws.ToString(client.input.Content.Simple.Body.Html.Data), "Springfield")
}

func TestSESSender_Errors(t *testing.T) {
	t.Run("missing admin email", func(t *testing.T) {
		client := &fakeSES{}
		sender := NewSESSender(client, "awards@example.com", "", "https://awards.example.com")

		require.Error(t, sender.NotifyNomination(context.Background(), janeDoe()))
		assert.Nil(t, client.input)
	})

	t.Run("send failure", func(t *testing.T) {
		sender := NewSESSender(&fakeSES{err: errors.New("throttled")}, "a@example.com", "b@example.com", "")

		err := sender.NotifyNomination(context.Background(), janeDoe())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})
}

func TestFunctionSender(t *testing.T) {
	var got map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	sender := NewFunctionSender(srv.URL, "anon-key")
	require.NoError(t, sender.NotifyNomination(context.Background(), janeDoe()))

	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, map[string]string{
		"entrepreneur_name":  "Jane Doe",
		"entrepreneur_phone": "+1-555-0100",
		"business_name":      "Doe Bakery",
		"business_location":  "Springfield",
		"business_type":      "Food & Beverage",
		"nominator_name":     "John Smith",
		"nominator_phone":    "+1-555-0200",
	}, got)
}

func TestFunctionSender_FailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Admin email not configured"}`))
	}))
	defer srv.Close()

	err := NewFunctionSender(srv.URL, "").NotifyNomination(context.Background(), janeDoe())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLogSender(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	require.NoError(t, NewLogSender(logger).NotifyNomination(context.Background(), janeDoe()))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Jane Doe", hook.LastEntry().Data["entrepreneur_name"])
}
