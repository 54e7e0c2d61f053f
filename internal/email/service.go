package email

import "context"

type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to, patientName, doctorName, when, reason string) error
	SendAppointmentCancellation(ctx context.Context, to, patientName, when string) error
}

// Noop satisfies Service when SMTP is not configured.
type Noop struct{}

func (Noop) SendAppointmentConfirmation(ctx context.Context, to, patientName, doctorName, when, reason string) error {
	return nil
}

func (Noop) SendAppointmentCancellation(ctx context.Context, to, patientName, when string) error {
	return nil
}
