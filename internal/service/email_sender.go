package service

import (
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/postly/postly/internal/config"
)

// EmailSender delivers a plain-text message to a single recipient.
type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	addr string
	from string
	auth smtp.Auth
}

func NewEmailSender(cfg config.MailConfig) EmailSender {
	s := &smtpSender{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: strings.TrimSpace(cfg.From),
	}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s
}

func (s *smtpSender) Send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg.String()))
}
