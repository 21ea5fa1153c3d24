package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPSender sends verification emails through a plain-auth SMTP relay.
type SMTPSender struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPSender(host, port, from, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, password: password}
}

func (s *SMTPSender) Send(ctx context.Context, email string, verificationCode string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Email Verification\r\n\r\nYour verification code is: %s\r\n",
		s.from, email, verificationCode)

	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
