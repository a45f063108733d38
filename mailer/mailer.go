package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer delivers transactional mail. The SMTP implementation is the only
// production one; tests substitute a fake.
type Mailer interface {
	SendVerificationCode(to, code string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host       string
	port       string
	username   string
	password   string
	senderName string
}

func NewSMTPMailer(host, port, username, password, senderName string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP host not set")
	}
	if port == "" {
		return nil, fmt.Errorf("SMTP port not set")
	}
	if username == "" {
		return nil, fmt.Errorf("SMTP user not set")
	}
	if password == "" {
		return nil, fmt.Errorf("SMTP password not set")
	}
	return &SMTPMailer{host, port, username, password, senderName}, nil
}

func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Your verification code is %s.\r\n\r\nIt expires in 5 minutes. If you did not create this account, ignore this email.\r\n",
		code,
	)

	msg := []byte(
		"From: " + m.senderName + " <" + m.username + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.username, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
