package utils

import (
	"os"
	"strconv"

	"school-records-backend/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Initialize the SMTP mailer once and store it in a global variable
var mailer *gomail.Dialer

// InitializeMailer sets up the mailer using environment variables
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		config.Logger.Error("Invalid SMTP_PORT value, defaulting to port 25",
			zap.String("provided_port", mailPort),
			zap.Error(err),
		)
		port = 25
	}

	mailer = gomail.NewDialer(mailHost, port, mailUser, mailPassword)
	config.Logger.Info("Mailer initialized successfully")
}

// GetMailer returns the initialized mailer
func GetMailer() *gomail.Dialer {
	return mailer
}

// SendEmail sends a plain-text email with an optional download link
// appended to the body.
func SendEmail(recipient, message, subject, attachmentPath, downloadLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)

	body := message
	if downloadLink != "" {
		body += "\n\nDownload: " + downloadLink
	}
	m.SetBody("text/plain", body)

	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	return mailer.DialAndSend(m)
}
