package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/jonathan/careers-portal/internal/types"
)

// Placeholders used when the job an application refers to no longer exists.
const (
	UnknownJobSubject = "Open Role"
	UnknownJobBody    = "N/A"
)

const wrapperStyle = "font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0;"

type statusTemplate struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

type statusData struct {
	Name     string
	JobTitle string
}

func mustStatus(subject, html, text string) statusTemplate {
	return statusTemplate{
		subject: subject,
		html:    htmltemplate.Must(htmltemplate.New("html").Parse(html)),
		text:    texttemplate.Must(texttemplate.New("text").Parse(text)),
	}
}

var statusTemplates = map[types.ApplicationStatus]statusTemplate{
	types.StatusAccepted: mustStatus(
		"Congratulations! Your application for %s has been accepted",
		`<div style="` + wrapperStyle + `">
  <h2 style="color: #059669;">Congratulations, {{.Name}}!</h2>
  <p>We are pleased to inform you that your application for <strong>{{.JobTitle}}</strong> has been accepted!</p>
  <p>Our team will contact you shortly for next steps.</p>
</div>`,
		"Congratulations, {{.Name}}!\n\nWe are pleased to inform you that your application for {{.JobTitle}} has been accepted!\nOur team will contact you shortly for next steps.\n",
	),
	types.StatusShortlisted: mustStatus(
		"Update on your application for %s",
		`<div style="` + wrapperStyle + `">
  <h2 style="color: #10b981;">Application Update</h2>
  <p>Dear {{.Name}},</p>
  <p>Your application for <strong>{{.JobTitle}}</strong> has been shortlisted! We will contact you soon regarding the next steps.</p>
</div>`,
		"Dear {{.Name}},\n\nYour application for {{.JobTitle}} has been shortlisted! We will contact you soon regarding the next steps.\n",
	),
	types.StatusRejected: mustStatus(
		"Update on your application for %s",
		`<div style="` + wrapperStyle + `">
  <h2 style="color: #dc2626;">Application Update</h2>
  <p>Dear {{.Name}},</p>
  <p>After careful consideration, we have decided to move forward with other candidates for the <strong>{{.JobTitle}}</strong> position.</p>
  <p>We encourage you to apply for future roles with us.</p>
</div>`,
		"Dear {{.Name}},\n\nAfter careful consideration, we have decided to move forward with other candidates for the {{.JobTitle}} position.\nWe encourage you to apply for future roles with us.\n",
	),
	types.StatusApplied: mustStatus(
		"Application Received for %s",
		`<div style="` + wrapperStyle + `">
  <h2 style="color: #2563eb;">Application Received</h2>
  <p>Dear {{.Name}},</p>
  <p>Thank you for applying for the <strong>{{.JobTitle}}</strong> position.</p>
  <p>We have received your application and will review it carefully. You will hear from us soon.</p>
</div>`,
		"Dear {{.Name}},\n\nThank you for applying for the {{.JobTitle}} position.\nWe have received your application and will review it carefully. You will hear from us soon.\n",
	),
}

// RenderStatus renders the candidate email for a status. The recipient is left
// empty for the caller to fill in. Statuses without a template are an error.
func RenderStatus(status types.ApplicationStatus, candidateName, jobTitle string) (Message, error) {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return Message{}, fmt.Errorf("no email template for status %q", status)
	}

	data := statusData{Name: candidateName, JobTitle: jobTitle}

	var html, text bytes.Buffer
	if err := tmpl.html.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s email: %w", status, err)
	}
	if err := tmpl.text.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s email: %w", status, err)
	}

	return Message{
		Subject: sanitizeHeader(fmt.Sprintf(tmpl.subject, jobTitle)),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// StaffNotice describes a newly submitted application.
type StaffNotice struct {
	CandidateName string
	Email         string
	JobID         string
	JobTitle      *string // nil when the job does not exist
	Message       *string
	ResumeURL     string
}

var staffNoticeHTML = htmltemplate.Must(htmltemplate.New("staff").Parse(
	`<div style="font-family: sans-serif; color: #333; max-width: 600px; border: 1px solid #eee; padding: 20px;">
  <h2 style="color: #1e293b;">New Application Received</h2>
  <hr />
  <p><strong>Candidate:</strong> {{.CandidateName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Role:</strong> {{.Role}} (ID: {{.JobID}})</p>
  <p><strong>Message:</strong> {{.Message}}</p>
  <div style="margin-top: 30px;">
    <a href="{{.ResumeURL}}" style="background: #1e293b; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: bold; display: inline-block;">View Resume</a>
  </div>
</div>`))

var staffNoticeText = texttemplate.Must(texttemplate.New("staff").Parse(
	"New Application Received\n\nCandidate: {{.CandidateName}}\nEmail: {{.Email}}\nRole: {{.Role}} (ID: {{.JobID}})\nMessage: {{.Message}}\nResume: {{.ResumeURL}}\n"))

// RenderStaffNotice renders the new-application notice sent to staff.
func RenderStaffNotice(to string, n StaffNotice) (Message, error) {
	subjectTitle, role := UnknownJobSubject, UnknownJobBody
	if n.JobTitle != nil && *n.JobTitle != "" {
		subjectTitle, role = *n.JobTitle, *n.JobTitle
	}
	message := ""
	if n.Message != nil {
		message = *n.Message
	}

	data := struct {
		StaffNotice
		Role    string
		Message string
	}{StaffNotice: n, Role: role, Message: message}

	var html, text bytes.Buffer
	if err := staffNoticeHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render staff notice: %w", err)
	}
	if err := staffNoticeText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render staff notice: %w", err)
	}

	return Message{
		To:      to,
		Subject: sanitizeHeader(fmt.Sprintf("New Application: %s for %s", n.CandidateName, subjectTitle)),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// sanitizeHeader removes line breaks so user input cannot inject headers.
func sanitizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}
