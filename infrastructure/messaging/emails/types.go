package emails

import "context"

type EmailServiceType interface {
	SendEmail(ctx context.Context, toEmail string, subject string, templateName string, opts interface{}) bool
}

// EmailService is nil when no resend key is configured.
var EmailService EmailServiceType
