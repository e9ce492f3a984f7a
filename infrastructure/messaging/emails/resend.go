package emails

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type ResendService struct {
	client *resend.Client
	from   string
}

func NewResendService(cfg *env.Config) *ResendService {
	return &ResendService{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.ResendDefaultEmail,
	}
}

// InitialiseEmailService wires resend in when an api key is present.
func InitialiseEmailService(cfg *env.Config) {
	if cfg.ResendAPIKey == "" {
		logger.Warning("resend api key missing. emails disabled")
		return
	}
	EmailService = NewResendService(cfg)
}

func (rs *ResendService) SendEmail(ctx context.Context, toEmail string, subject string, templateName string, opts interface{}) bool {
	html := RenderTemplate(templateName, opts)
	if html == nil {
		logger.Error("failed to load email template", logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		}, logger.LoggerOptions{
			Key:  "toEmail",
			Data: toEmail,
		})
		return false
	}

	params := &resend.SendEmailRequest{
		From:    rs.from,
		To:      []string{toEmail},
		Subject: subject,
		Html:    *html,
	}

	_, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		logger.Error("an error occured while trying to send email using resend service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "toEmail",
			Data: toEmail,
		}, logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		})
		return false
	}
	logger.Info(fmt.Sprintf("successfully sent email to %s", toEmail), logger.LoggerOptions{
		Key:  "templateName",
		Data: templateName,
	}, logger.LoggerOptions{
		Key:  "service",
		Data: "resend",
	})
	return true
}

func RenderTemplate(templateName string, opts interface{}) *string {
	var buffer bytes.Buffer
	err := templates.ExecuteTemplate(&buffer, templateName+".html", opts)
	if err != nil {
		logger.Error("failed to execute email template", logger.LoggerOptions{
			Key:  "templateName",
			Data: templateName,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	templateString := buffer.String()
	return &templateString
}
