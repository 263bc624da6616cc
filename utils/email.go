package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const senderName = "HomeKaro"

// SendEmail delivers an HTML mail through the configured SMTP relay.
func SendEmail(to, subject, body string) error {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, reading SMTP config from environment")
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	user := os.Getenv("EMAIL_USER")

	m := gomail.NewMessage()
	m.SetAddressHeader("From", user, senderName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, user, os.Getenv("EMAIL_PASS"))
	return d.DialAndSend(m)
}
