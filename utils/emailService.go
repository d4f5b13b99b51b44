package utils

import (
	"fmt"
	"html"
	"sync"

	"marrynow/models"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier tells users about admin approvals. Calls return immediately;
// delivery happens in the background and failures are only logged.
// Wait blocks until every message handed over so far has been attempted.
type Notifier interface {
	ContactApproved(request models.ContactRequest, biodata *models.Biodata)
	PremiumApproved(biodata models.Biodata)
	Wait()
}

// NewNotifier picks SendGrid when an API key is configured and falls back
// to writing the messages to the log.
func NewNotifier(apiKey, sender string) Notifier {
	if apiKey == "" {
		return LogNotifier{}
	}
	return &SendGridNotifier{client: sendgrid.NewSendClient(apiKey), sender: sender}
}

type SendGridNotifier struct {
	client  *sendgrid.Client
	sender  string
	pending sync.WaitGroup
}

// SendEmail delivers one HTML message synchronously.
func (n *SendGridNotifier) SendEmail(to, subject, htmlBody string) error {
	from := mail.NewEmail("Marry Now", n.sender)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", htmlBody)

	// Send writes the body onto the client, so concurrent sends each use a copy.
	client := *n.client
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func (n *SendGridNotifier) send(to, subject, htmlBody string) {
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		if err := n.SendEmail(to, subject, htmlBody); err != nil {
			log.Error().Err(err).Str("to", to).Msg("failed to send email")
		}
	}()
}

func (n *SendGridNotifier) Wait() { n.pending.Wait() }

func (n *SendGridNotifier) ContactApproved(request models.ContactRequest, biodata *models.Biodata) {
	subject, body := contactApprovedEmail(request, biodata)
	n.send(request.UserEmail, subject, body)
}

func (n *SendGridNotifier) PremiumApproved(biodata models.Biodata) {
	subject, body := premiumApprovedEmail(biodata)
	n.send(biodata.Email, subject, body)
}

// LogNotifier only records what would have been sent.
type LogNotifier struct{}

func (LogNotifier) ContactApproved(request models.ContactRequest, _ *models.Biodata) {
	log.Info().Str("to", request.UserEmail).Int("biodataId", request.BiodataID.Int()).Msg("contact request approved (email not configured)")
}

func (LogNotifier) Wait() {}

func (LogNotifier) PremiumApproved(biodata models.Biodata) {
	log.Info().Str("to", biodata.Email).Int("biodataId", biodata.BiodataID).Msg("premium approved (email not configured)")
}

func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body style="font-family: Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0;">
		<div style="max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px;">
			<div style="background-color: #8B1E3F; padding: 30px; text-align: center;">
				<h1 style="color: #FFFFFF; margin: 0; font-size: 24px;">MARRY NOW</h1>
			</div>
			<div style="padding: 40px 30px; color: #333333; line-height: 1.6;">
				<h2 style="margin-top: 0;">%s</h2>
				%s
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

func contactApprovedEmail(request models.ContactRequest, biodata *models.Biodata) (string, string) {
	name := "the requested profile"
	if biodata != nil && biodata.Name != "" {
		name = html.EscapeString(biodata.Name)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your contact request for biodata <b>#%d</b> (%s) has been approved.</p>
		<p>The contact details are now visible on your dashboard.</p>`,
		html.EscapeString(request.UserName), request.BiodataID, name)
	return "Contact Request Approved", getEmailTemplate("Contact Request Approved", body)
}

func premiumApprovedEmail(biodata models.Biodata) (string, string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your biodata <b>#%d</b> is now a premium profile.</p>`,
		html.EscapeString(biodata.Name), biodata.BiodataID)
	return "Premium Membership Approved", getEmailTemplate("Premium Membership Approved", body)
}
