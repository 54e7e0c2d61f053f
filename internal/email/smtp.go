package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to, patientName, doctorName, when, reason string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with Dr. %s is confirmed for %s.\nReason: %s\n",
		patientName, doctorName, when, reason,
	)
	return s.send(to, "Appointment confirmed", body)
}

func (s *smtpService) SendAppointmentCancellation(ctx context.Context, to, patientName, when string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s has been cancelled.\n",
		patientName, when,
	)
	return s.send(to, "Appointment cancelled", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
