// pkg/email/template_test.go
package email

import (
	"bytes"
	htmltemplate "html/template"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/models"
)

func TestReminderTemplateRenders(t *testing.T) {
	hours := 4
	data := &ReminderData{
		Task: models.Task{
			Title:          "Monthly Generator Inspection",
			Description:    "Check oil levels and battery condition.",
			Priority:       models.PriorityHigh,
			Location:       "Building A - Basement",
			EquipmentID:    "GEN-001",
			EstimatedHours: &hours,
		},
		AssigneeName: "Tech",
		DueDateLong:  "Monday, September 7, 2026",
		AppName:      "MaintDesk",
		TasksURL:     "http://localhost:8080/tasks",
		Year:         2026,
	}

	tmpl := NewReminderTemplate()

	subjectTmpl, err := template.New("subject").Parse(tmpl.Subject)
	require.NoError(t, err)
	var subject bytes.Buffer
	require.NoError(t, subjectTmpl.Execute(&subject, data))
	assert.Equal(t, "MaintDesk Reminder: Monthly Generator Inspection - Due Soon", subject.String())

	htmlTmpl, err := htmltemplate.New("html").Parse(tmpl.HTMLBody)
	require.NoError(t, err)
	var html bytes.Buffer
	require.NoError(t, htmlTmpl.Execute(&html, data))
	assert.Contains(t, html.String(), "Monday, September 7, 2026")
	assert.Contains(t, html.String(), "GEN-001")
	assert.Contains(t, html.String(), "Hello Tech,")

	textTmpl, err := template.New("text").Parse(tmpl.TextBody)
	require.NoError(t, err)
	var text bytes.Buffer
	require.NoError(t, textTmpl.Execute(&text, data))
	assert.Contains(t, text.String(), "Monthly Generator Inspection")
	assert.Contains(t, text.String(), "Estimated Time: 4 hours")
}

func TestReminderTemplateOmitsEmptyOptionalFields(t *testing.T) {
	data := &ReminderData{
		Task:         models.Task{Title: "Bare Task", Priority: models.PriorityLow},
		AssigneeName: "Tech",
		DueDateLong:  "Friday, September 4, 2026",
		AppName:      "MaintDesk",
	}

	tmpl := NewReminderTemplate()
	textTmpl, err := template.New("text").Parse(tmpl.TextBody)
	require.NoError(t, err)
	var text bytes.Buffer
	require.NoError(t, textTmpl.Execute(&text, data))

	assert.NotContains(t, text.String(), "Location:")
	assert.NotContains(t, text.String(), "Equipment:")
	assert.Contains(t, text.String(), "No description provided.")
}
