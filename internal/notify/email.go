// Package notify delivers appointment emails through SendGrid, SES or a logging stub.
package notify

import (
	"context"
	"strings"
)

// EmailSender delivers one email.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is a plain-text email with an optional HTML part.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

// Email providers accepted by SelectProvider.
const (
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
	ProviderAuto     = "auto"
)

const defaultFromName = "MedChat Appointments"

// SelectProvider resolves the configured provider. "auto" (or anything
// unrecognised) prefers SendGrid when a key exists, then SES when a sender
// address exists, else the stub.
func SelectProvider(configured string, hasSendGridKey, hasSESFrom bool) string {
	switch strings.ToLower(strings.TrimSpace(configured)) {
	case ProviderSendGrid:
		if hasSendGridKey {
			return ProviderSendGrid
		}
		return ProviderStub
	case ProviderSES:
		if hasSESFrom {
			return ProviderSES
		}
		return ProviderStub
	case ProviderStub:
		return ProviderStub
	}
	switch {
	case hasSendGridKey:
		return ProviderSendGrid
	case hasSESFrom:
		return ProviderSES
	default:
		return ProviderStub
	}
}
