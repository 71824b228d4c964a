// pkg/email/service.go
package email

import (
	"context"

	"github.com/serviceops/maintdesk/internal/models"
)

// Service defines the interface for the outbound mail transport. The
// reminder scheduler treats it as an opaque sink: a send either succeeds or
// fails, and failures carry no retry semantics.
type Service interface {
	SendTaskReminder(ctx context.Context, task models.ReminderTask) error
}

// Config holds email transport configuration.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	BaseURL      string
	AppName      string
}

// Template represents an email template with a subject line and both body
// variants.
type Template struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// ReminderData contains data for reminder template rendering.
type ReminderData struct {
	Task          models.Task
	AssigneeName  string
	DueDateLong   string
	AppName       string
	TasksURL      string
	Year          int
}

// NewReminderTemplate creates the due-soon reminder template.
func NewReminderTemplate() Template {
	return Template{
		Subject: "{{.AppName}} Reminder: {{.Task.Title}} - Due Soon",
		HTMLBody: `
<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Maintenance Task Reminder</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #d32f2f; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { background: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .task-details { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #d32f2f; }
        .priority { display: inline-block; padding: 4px 12px; border-radius: 20px; font-size: 12px; font-weight: bold; text-transform: uppercase; }
        .priority.high { background: #ffebee; color: #c62828; }
        .priority.medium { background: #fff3e0; color: #ef6c00; }
        .priority.low { background: #e8f5e8; color: #2e7d32; }
        .button { display: inline-block; background: #d32f2f; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .footer { background: #333; color: white; padding: 20px; text-align: center; font-size: 12px; border-radius: 0 0 8px 8px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.AppName}}</h1>
        <div>Service Department</div>
    </div>

    <div class="content">
        <h2>Maintenance Task Reminder</h2>

        <p>Hello {{.AssigneeName}},</p>

        <p>This is a friendly reminder that you have a maintenance task due soon:</p>

        <div class="task-details">
            <h3>{{.Task.Title}}</h3>
            <p><strong>Due Date:</strong> {{.DueDateLong}}</p>
            <p><strong>Priority:</strong> <span class="priority {{.Task.Priority}}">{{.Task.Priority}}</span></p>
            {{if .Task.Location}}<p><strong>Location:</strong> {{.Task.Location}}</p>{{end}}
            {{if .Task.EquipmentID}}<p><strong>Equipment:</strong> {{.Task.EquipmentID}}</p>{{end}}
            {{if .Task.EstimatedHours}}<p><strong>Estimated Time:</strong> {{.Task.EstimatedHours}} hours</p>{{end}}

            <h4>Description:</h4>
            <p>{{if .Task.Description}}{{.Task.Description}}{{else}}No description provided.{{end}}</p>
        </div>

        <p>Please ensure this task is completed by the due date to maintain our service standards.</p>

        <a href="{{.TasksURL}}" class="button">View Task Details</a>

        <p><em>This is an automated reminder from the {{.AppName}} system.</em></p>
    </div>

    <div class="footer">
        <p>&copy; {{.Year}} {{.AppName}}</p>
        <p>This email was sent automatically. Please do not reply to this email.</p>
    </div>
</body>
</html>`,
		TextBody: `Maintenance Task Reminder

Hello {{.AssigneeName}},

This is a friendly reminder that you have a maintenance task due soon:

{{.Task.Title}}
Due Date: {{.DueDateLong}}
Priority: {{.Task.Priority}}
{{if .Task.Location}}Location: {{.Task.Location}}
{{end}}{{if .Task.EquipmentID}}Equipment: {{.Task.EquipmentID}}
{{end}}{{if .Task.EstimatedHours}}Estimated Time: {{.Task.EstimatedHours}} hours
{{end}}
Description:
{{if .Task.Description}}{{.Task.Description}}{{else}}No description provided.{{end}}

Please ensure this task is completed by the due date to maintain our service standards.

View your tasks: {{.TasksURL}}

This is an automated reminder from the {{.AppName}} system. Please do not reply to this email.`,
	}
}
