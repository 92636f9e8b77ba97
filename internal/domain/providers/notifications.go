package providers

import (
	"context"
)

// AppointmentConfirmation is the data both notification channels render
type AppointmentConfirmation struct {
	FirstName       string
	ProviderName    string
	AppointmentTime string
}

// EmailSender sends a templated appointment confirmation email. Fire and
// forget: delivery beyond the initial accept/reject is out of scope.
type EmailSender interface {
	SendAppointmentConfirmation(ctx context.Context, toEmail string, confirmation AppointmentConfirmation) error
}

// SMSSender sends a plain-text appointment confirmation to an E.164 number
type SMSSender interface {
	SendAppointmentConfirmation(ctx context.Context, toPhone string, confirmation AppointmentConfirmation) error
}
