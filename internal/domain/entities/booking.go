package entities

// BookingRequest combines a verified identity, a provider selection and the
// requested appointment slot. Date is "2006-01-02", Time is "15:04" and
// Timezone is an IANA identifier such as "America/New_York".
type BookingRequest struct {
	Identity     VerifiedIdentity `json:"identity"`
	ProviderName string           `json:"provider_name"`
	Specialty    string           `json:"specialty,omitempty"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	Timezone     string           `json:"timezone"`
}

// BookingOutcome reports the result of a booking attempt. Booked is true once
// the appointment instant resolved; notification channels are tracked
// separately so a partial delivery failure never fails the booking.
type BookingOutcome struct {
	Booked          bool   `json:"booked"`
	AppointmentTime string `json:"appointment_time"`
	EmailSent       bool   `json:"email_sent"`
	SMSSent         bool   `json:"sms_sent"`
	Message         string `json:"message"`
}
