package email

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Sender delivers one message and returns the provider's message id.
type Sender interface {
	Send(params *resend.SendEmailRequest) (string, error)
}

type resendSender struct {
	client *resend.Client
}

func (r resendSender) Send(params *resend.SendEmailRequest) (string, error) {
	resp, err := r.client.Emails.Send(params)
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}

type EmailService struct {
	sender   Sender
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return NewEmailServiceWithSender(resendSender{client: resend.NewClient(apiKey)}, from, fromName, logger)
}

func NewEmailServiceWithSender(sender Sender, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		sender:   sender,
		from:     from,
		fromName: fromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	s.logger.Info("sending welcome email", zap.String("to", email))

	templateData := map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Error("failed to render welcome template", zap.String("to", email), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to Topex School!",
		Html:    html,
	}

	id, err := s.sender.Send(params)
	if err != nil {
		s.logger.Error("failed to send welcome email", zap.String("to", email), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("to", email), zap.String("id", id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
