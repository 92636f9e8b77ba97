package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	"github.com/voxology/assistant-backend/pkg/config"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// TwilioSender posts SMS confirmations using Twilio's REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

var _ providers.SMSSender = (*TwilioSender)(nil)

// NewTwilioSender creates a new Twilio SMS sender.
func NewTwilioSender(cfg *config.TwilioConfig) (*TwilioSender, error) {
	if cfg == nil || cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio credentials are required")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio from number is required")
	}

	return &TwilioSender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
		baseURL:    twilioBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (s *TwilioSender) WithBaseURL(baseURL string) *TwilioSender {
	s.baseURL = baseURL
	return s
}

// SendAppointmentConfirmation dispatches a single plain-text SMS. SMS bodies
// stay short to fit segment limits.
func (s *TwilioSender) SendAppointmentConfirmation(ctx context.Context, toPhone string, confirmation providers.AppointmentConfirmation) error {
	logger := observability.LoggerFromContext(ctx)

	if toPhone == "" {
		return fmt.Errorf("recipient phone number is required")
	}

	body := fmt.Sprintf(
		"Hi %s, your appointment with %s is confirmed for %s. - Voxology Healthcare",
		confirmation.FirstName, confirmation.ProviderName, confirmation.AppointmentTime,
	)

	payload := url.Values{}
	payload.Set("To", toPhone)
	payload.Set("From", s.from)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("to", toPhone).Msg("twilio send failed")
		return fmt.Errorf("twilio send failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().
			Int("status", resp.StatusCode).
			Str("to", toPhone).
			Msg("twilio returned error status")
		return fmt.Errorf("twilio send failed: %s", formatTwilioError(resp.StatusCode, respBody))
	}

	var parsed struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(respBody, &parsed); err == nil && parsed.SID != "" {
		logger.Info().Str("to", toPhone).Str("sid", parsed.SID).Msg("confirmation sms sent")
	} else {
		logger.Info().Str("to", toPhone).Msg("confirmation sms sent")
	}

	return nil
}

func formatTwilioError(statusCode int, body []byte) string {
	var parsed struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return fmt.Sprintf("status %d (code %d): %s", statusCode, parsed.Code, parsed.Message)
	}
	return fmt.Sprintf("status %d", statusCode)
}
