package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	"github.com/voxology/assistant-backend/pkg/config"
)

const confirmationSubject = "Appointment Confirmation - Voxology Healthcare"

// SendGridSender sends appointment confirmation emails via SendGrid.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

var _ providers.EmailSender = (*SendGridSender)(nil)

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(cfg *config.SendGridConfig) (*SendGridSender, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// SendAppointmentConfirmation sends a templated HTML confirmation email.
func (s *SendGridSender) SendAppointmentConfirmation(ctx context.Context, toEmail string, confirmation providers.AppointmentConfirmation) error {
	logger := observability.LoggerFromContext(ctx)

	if toEmail == "" {
		return fmt.Errorf("recipient email is required")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(confirmation.FirstName, toEmail)

	plain := fmt.Sprintf(
		"Dear %s, your appointment with %s is confirmed for %s.",
		confirmation.FirstName, confirmation.ProviderName, confirmation.AppointmentTime,
	)
	html := renderConfirmationHTML(confirmation)

	message := mail.NewSingleEmail(from, confirmationSubject, to, plain, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Error().Err(err).Str("to", toEmail).Msg("sendgrid send failed")
		return fmt.Errorf("sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 400 {
		logger.Error().
			Int("status", response.StatusCode).
			Str("to", toEmail).
			Msg("sendgrid returned error status")
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	logger.Info().Str("to", toEmail).Int("status", response.StatusCode).Msg("confirmation email sent")
	return nil
}

func renderConfirmationHTML(confirmation providers.AppointmentConfirmation) string {
	return fmt.Sprintf(`<html>
<body>
    <h2>Appointment Confirmation</h2>
    <p>Dear %s,</p>

    <p>Your appointment has been successfully booked!</p>

    <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
        <strong>Provider:</strong> %s<br>
        <strong>Date &amp; Time:</strong> %s
    </div>

    <p>If you need to reschedule or cancel, please contact our office.</p>

    <p>Best regards,<br>
    Voxology Healthcare Team</p>
</body>
</html>`, confirmation.FirstName, confirmation.ProviderName, confirmation.AppointmentTime)
}
