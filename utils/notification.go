package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailNotifier sends plain-text notification emails over SMTP.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailNotifierFromEnv builds a notifier from the SMTP_* environment
// variables. A missing or invalid SMTP_PORT falls back to 587.
func NewEmailNotifierFromEnv() *EmailNotifier {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Warning: invalid SMTP_PORT value, using default 587")
		port = 587
	}
	return &EmailNotifier{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     os.Getenv("SMTP_USER"),
	}
}

// Send delivers a single email. Delivery failures are returned to the
// caller; retrying is the caller's decision.
func (n *EmailNotifier) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.host, n.port, n.username, n.password)
	return d.DialAndSend(m)
}
