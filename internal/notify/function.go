package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"entrepreneurawards/pkg/types"
)

// FunctionSender posts the nomination as JSON to a hosted function that
// owns the email delivery.
type FunctionSender struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewFunctionSender(url, apiKey string) *FunctionSender {
	return &FunctionSender{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

func (s *FunctionSender) NotifyNomination(ctx context.Context, nomination types.NominationForm) error {
	payload, err := json.Marshal(nomination)
	if err != nil {
		return fmt.Errorf("failed to encode nomination payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call notification function: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notification function failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
