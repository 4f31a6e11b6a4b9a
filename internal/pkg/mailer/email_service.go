package mailer

import (
	"fmt"
	"html"

	"edumate-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail string) error
	SendRoadmapReady(toEmail, track string, weeks int) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	senderName  string
	clientURL   string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string, log logger.ILogger) IEmailService {
	return newEmailService(gomail.NewDialer(host, port, username, password), username, senderName, clientURL, log)
}

func newEmailService(d sender, senderEmail, senderName, clientURL string, log logger.ILogger) *emailService {
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		clientURL:   clientURL,
		logger:      log,
	}
}

func (s *emailService) SendWelcome(toEmail string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>🎓 Welcome to EduMate AI!</h2>
			<p>Before you begin your journey, pick a learning roadmap to get the most personalized experience.</p>
			<a href="%s/roadmap" style="background-color: #6366F1; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">🚀 Choose Your Roadmap</a>
		</div>
	`, s.clientURL)

	return s.send(toEmail, "Welcome to EduMate AI", body)
}

func (s *emailService) SendRoadmapReady(toEmail, track string, weeks int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>🎯 Roadmap Set!</h2>
			<p>Your %d-week roadmap for <b>%s</b> is ready.</p>
			<p><a href="%s/tasks">See today's tasks</a></p>
		</div>
	`, weeks, html.EscapeString(track), s.clientURL)

	return s.send(toEmail, "Your roadmap is ready", body)
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send email", map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("Mailer", "Email sent", map[string]interface{}{"to": toEmail, "subject": subject})
	return nil
}

// NopEmailService is used when SMTP is not configured.
type NopEmailService struct{}

func (NopEmailService) SendWelcome(string) error                  { return nil }
func (NopEmailService) SendRoadmapReady(string, string, int) error { return nil }
