package email

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for ticket links (e.g., "http://localhost:8080")
}

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	sender Sender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return NewSMTPEmailServiceWithSender(config, dialer)
}

func NewSMTPEmailServiceWithSender(config SMTPConfig, sender Sender) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		sender: sender,
	}
}

// QueueNotice describes a ticket that just landed in the internal queue.
type QueueNotice struct {
	IssueKey string
	Title    string
	Reason   string
	Note     string
}

func (s *SMTPEmailService) ticketURL(issueKey string) string {
	return fmt.Sprintf("%s/tickets/%s", strings.TrimRight(s.config.BaseURL, "/"), issueKey)
}

func (s *SMTPEmailService) SendTicketEscalatedEmail(to string, n QueueNotice) error {
	url := s.ticketURL(n.IssueKey)
	subject := fmt.Sprintf("[%s] Escalated: %s", n.IssueKey, n.Title)

	note := ""
	if n.Note != "" {
		note = fmt.Sprintf("<p><strong>Note:</strong> %s</p>", html.EscapeString(n.Note))
	}
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket %s was escalated</h2>
			<p><strong>%s</strong></p>
			<p><strong>Reason:</strong> %s</p>
			%s
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(n.IssueKey), html.EscapeString(n.Title), html.EscapeString(n.Reason), note, url)

	plainBody := fmt.Sprintf(`
Ticket %s was escalated

%s
Reason: %s
Note: %s

Open the ticket: %s
	`, n.IssueKey, n.Title, n.Reason, n.Note, url)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketReassignedEmail(to string, n QueueNotice) error {
	url := s.ticketURL(n.IssueKey)
	subject := fmt.Sprintf("[%s] Needs internal review", n.IssueKey)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket %s needs internal review</h2>
			<p>A client ticket was handed to the internal team.</p>
			<p><a href="%s">Open the ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(n.IssueKey), url)

	plainBody := fmt.Sprintf(`
Ticket %s needs internal review

A client ticket was handed to the internal team.

Open the ticket: %s
	`, n.IssueKey, url)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
