// pkg/email/smtp.go
package email

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	htmltemplate "html/template"
	"net/smtp"
	"text/template"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// SMTPService implements Service using SMTP.
type SMTPService struct {
	config   *Config
	reminder Template
	auth     smtp.Auth
}

// NewSMTPService creates a new SMTP email service.
func NewSMTPService(config *Config) *SMTPService {
	auth := smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPHost)

	return &SMTPService{
		config:   config,
		reminder: NewReminderTemplate(),
		auth:     auth,
	}
}

// SendTaskReminder sends a due-soon reminder for a task to its assignee.
func (s *SMTPService) SendTaskReminder(ctx context.Context, task models.ReminderTask) error {
	data := &ReminderData{
		Task:         task.Task,
		AssigneeName: task.AssigneeName,
		AppName:      s.config.AppName,
		TasksURL:     fmt.Sprintf("%s/tasks", s.config.BaseURL),
		Year:         time.Now().Year(),
	}
	if due, err := time.Parse(models.DateLayout, task.DueDate); err == nil {
		data.DueDateLong = due.Format("Monday, January 2, 2006")
	} else {
		data.DueDateLong = task.DueDate
	}

	return s.sendEmail(task.AssigneeEmail, s.reminder, data)
}

// sendEmail renders the template and sends the message over SMTP.
func (s *SMTPService) sendEmail(to string, tmpl Template, data *ReminderData) error {
	subjectTmpl, err := template.New("subject").Parse(tmpl.Subject)
	if err != nil {
		return fmt.Errorf("parse subject template: %w", err)
	}
	var subjectBuf bytes.Buffer
	if err := subjectTmpl.Execute(&subjectBuf, data); err != nil {
		return fmt.Errorf("execute subject template: %w", err)
	}

	htmlTmpl, err := htmltemplate.New("html").Parse(tmpl.HTMLBody)
	if err != nil {
		return fmt.Errorf("parse HTML template: %w", err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return fmt.Errorf("execute HTML template: %w", err)
	}

	textTmpl, err := template.New("text").Parse(tmpl.TextBody)
	if err != nil {
		return fmt.Errorf("parse text template: %w", err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return fmt.Errorf("execute text template: %w", err)
	}

	boundary := generateBoundary()
	message := buildMIMEMessage(
		s.config.FromEmail,
		s.config.FromName,
		to,
		subjectBuf.String(),
		textBuf.String(),
		htmlBuf.String(),
		boundary,
	)

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	if err := smtp.SendMail(addr, s.auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

// generateBoundary generates a random boundary for MIME messages.
func generateBoundary() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// buildMIMEMessage builds a MIME email message with both text and HTML parts.
func buildMIMEMessage(from, fromName, to, subject, textBody, htmlBody, boundary string) []byte {
	message := fmt.Sprintf(`From: %s <%s>
To: %s
Subject: %s
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="%s"

--%s
Content-Type: text/plain; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s
Content-Type: text/html; charset=UTF-8
Content-Transfer-Encoding: 7bit

%s

--%s--
`, fromName, from, to, subject, boundary, boundary, textBody, boundary, htmlBody, boundary)

	return []byte(message)
}

// TestConnection tests the SMTP connection.
func (s *SMTPService) TestConnection(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.Auth(s.auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	return nil
}
