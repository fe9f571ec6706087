package service

import "log"

// EmailSender delivers account verification codes. The real delivery channel
// lives outside this service.
type EmailSender interface {
	SendVerification(username, code string) error
}

// LogEmailSender writes verification codes to the process log instead of
// sending mail. Default sender until an SMTP integration exists.
type LogEmailSender struct{}

// SendVerification logs the code.
func (LogEmailSender) SendVerification(username, code string) error {
	log.Printf("verification code for %s: %s", username, code)
	return nil
}
