package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"

	"complaint_flow_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Notification bodies are small enough to keep inline; they are parsed once
// at startup and executed per message.
var (
	complaintAssignedHTML = template.Must(template.New("complaint_assigned_html").Parse(`
<p>Dear {{.AssigneeName}},</p>
<p>Complaint <strong>{{.ComplaintCode}}</strong> ({{.Nature}}) has been assigned to you for review.</p>
<p>Current status: <strong>{{.Status}}</strong></p>
<p><a href="{{.ComplaintURL}}">Open the complaint</a></p>
`))
	complaintAssignedText = template.Must(template.New("complaint_assigned_text").Parse(
		`Dear {{.AssigneeName}},

Complaint {{.ComplaintCode}} ({{.Nature}}) has been assigned to you for review.
Current status: {{.Status}}

Open the complaint: {{.ComplaintURL}}
`))

	noticeDecisionHTML = template.Must(template.New("notice_decision_html").Parse(`
<p>Dear {{.RecipientName}},</p>
<p>Notice <strong>{{.NoticeNumber}}</strong> on complaint <strong>{{.ComplaintCode}}</strong> was <strong>{{.Decision}}</strong> at the {{.Stage}} stage by {{.DecidedBy}}.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p><a href="{{.ComplaintURL}}">Open the complaint</a></p>
`))
	noticeDecisionText = template.Must(template.New("notice_decision_text").Parse(
		`Dear {{.RecipientName}},

Notice {{.NoticeNumber}} on complaint {{.ComplaintCode}} was {{.Decision}} at the {{.Stage}} stage by {{.DecidedBy}}.
{{if .Reason}}Reason: {{.Reason}}
{{end}}
Open the complaint: {{.ComplaintURL}}
`))
)

func renderEmail(htmlTmpl, textTmpl *template.Template, data interface{}, toEmail string) *Email {
	var htmlBuf, textBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		log.Printf("Error rendering %s: %v", htmlTmpl.Name(), err)
	}
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		log.Printf("Error rendering %s: %v", textTmpl.Name(), err)
	}
	return &Email{
		To:       []string{toEmail},
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode, not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine.
// This is the recommended method for sending emails in handlers to avoid
// blocking HTTP responses.
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// ComplaintAssignedEmailData contains data for the assignment notification
type ComplaintAssignedEmailData struct {
	AssigneeName  string
	ComplaintCode string
	Nature        string
	Status        string
	ComplaintURL  string
}

// BuildComplaintAssignedEmail notifies the next approver that a complaint
// landed on their desk.
func BuildComplaintAssignedEmail(assigneeEmail string, data ComplaintAssignedEmailData) *Email {
	email := renderEmail(complaintAssignedHTML, complaintAssignedText, data, assigneeEmail)
	email.Subject = fmt.Sprintf("Complaint %s assigned to you", data.ComplaintCode)
	return email
}

// NoticeDecisionEmailData contains data for the notice approval/rejection notification
type NoticeDecisionEmailData struct {
	RecipientName string
	NoticeNumber  string
	ComplaintCode string
	Decision      string // "approved" or "rejected"
	Stage         string
	DecidedBy     string
	Reason        string
	ComplaintURL  string
}

// BuildNoticeDecisionEmail notifies the complaint creator of a notice stage
// decision.
func BuildNoticeDecisionEmail(recipientEmail string, data NoticeDecisionEmailData) *Email {
	email := renderEmail(noticeDecisionHTML, noticeDecisionText, data, recipientEmail)
	email.Subject = fmt.Sprintf("Notice %s %s on complaint %s", data.NoticeNumber, data.Decision, data.ComplaintCode)
	return email
}
