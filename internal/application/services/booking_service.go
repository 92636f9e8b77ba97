package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/voxology/assistant-backend/internal/domain/entities"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	apperrors "github.com/voxology/assistant-backend/pkg/errors"
)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "15:04"

	// confirmationLayout is the localized speakable form both channels carry
	confirmationLayout = "Monday, January 2, 2006 at 3:04 PM MST"
)

// BookingService confirms an appointment for a verified caller and fans the
// confirmation out over email and SMS.
type BookingService struct {
	email providers.EmailSender
	sms   providers.SMSSender
}

// NewBookingService creates a new booking service. Either channel may be nil
// when unconfigured; the corresponding sent flag then stays false.
func NewBookingService(email providers.EmailSender, sms providers.SMSSender) *BookingService {
	return &BookingService{email: email, sms: sms}
}

// Book resolves the requested slot into a timezone-aware instant and sends
// both confirmations concurrently. A channel failure is recorded, not fatal:
// the booking stands as long as the timestamp resolved.
func (s *BookingService) Book(ctx context.Context, req *entities.BookingRequest) (*entities.BookingOutcome, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.Book")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	if strings.TrimSpace(req.ProviderName) == "" {
		return nil, apperrors.NewValidationError("provider name is required")
	}
	if req.Identity.UserID == 0 {
		return nil, apperrors.NewValidationError("a verified identity is required to book")
	}

	appointmentAt, err := resolveSlot(req.Date, req.Time, req.Timezone)
	if err != nil {
		return nil, err
	}

	formatted := appointmentAt.Format(confirmationLayout)

	confirmation := providers.AppointmentConfirmation{
		FirstName:       req.Identity.FirstName,
		ProviderName:    req.ProviderName,
		AppointmentTime: formatted,
	}

	var (
		wg        sync.WaitGroup
		emailSent bool
		smsSent   bool
	)

	if s.email != nil && req.Identity.Email != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.email.SendAppointmentConfirmation(ctx, req.Identity.Email, confirmation); err != nil {
				logger.Error().Err(err).Int64("user_id", req.Identity.UserID).Msg("confirmation email failed")
				return
			}
			emailSent = true
		}()
	}

	if s.sms != nil && req.Identity.PhoneNumber != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.sms.SendAppointmentConfirmation(ctx, req.Identity.PhoneNumber, confirmation); err != nil {
				logger.Error().Err(err).Int64("user_id", req.Identity.UserID).Msg("confirmation SMS failed")
				return
			}
			smsSent = true
		}()
	}

	wg.Wait()

	logger.Info().
		Int64("user_id", req.Identity.UserID).
		Str("provider", req.ProviderName).
		Bool("email_sent", emailSent).
		Bool("sms_sent", smsSent).
		Msg("appointment booked")

	return &entities.BookingOutcome{
		Booked:          true,
		AppointmentTime: formatted,
		EmailSent:       emailSent,
		SMSSent:         smsSent,
		Message:         fmt.Sprintf("Appointment with %s confirmed for %s.", req.ProviderName, formatted),
	}, nil
}

// resolveSlot combines the date, time and IANA timezone into one instant.
// Any piece failing to parse rejects the booking before side effects.
func resolveSlot(date, timeOfDay, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil || strings.TrimSpace(timezone) == "" {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("unknown timezone %q", timezone))
	}

	appointmentAt, err := time.ParseInLocation(
		bookingDateLayout+" "+bookingTimeLayout,
		strings.TrimSpace(date)+" "+strings.TrimSpace(timeOfDay),
		loc,
	)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be YYYY-MM-DD and time must be HH:MM (24-hour)")
	}

	return appointmentAt, nil
}
