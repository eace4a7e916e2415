package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// MailMessage is one rendered email.
type MailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// MailResult is the provider's answer for one message. Err carries the
// provider's failure reason; ID is the provider-issued message identifier.
type MailResult struct {
	ID  string
	Err string
}

// Mailer dispatches one email through the configured provider.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) MailResult
}

// httpMailer talks to a Resend-style JSON email API.
type httpMailer struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

// newMailerFromEnv returns nil when the provider key or sender address is
// missing; callers treat nil as a configuration error before attempting any
// send.
func newMailerFromEnv() Mailer {
	apiKey := os.Getenv("MAIL_API_KEY")
	from := os.Getenv("MAIL_FROM")
	if apiKey == "" || from == "" {
		return nil
	}
	apiURL := os.Getenv("MAIL_API_URL")
	if apiURL == "" {
		apiURL = "https://api.resend.com/emails"
	}
	return &httpMailer{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *httpMailer) Send(ctx context.Context, msg MailMessage) MailResult {
	payload, err := json.Marshal(map[string]interface{}{
		"from":    m.from,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
		"text":    msg.Text,
	})
	if err != nil {
		return MailResult{Err: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(payload))
	if err != nil {
		return MailResult{Err: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return MailResult{Err: err.Error()}
	}
	defer resp.Body.Close()

	var body struct {
		ID    string `json:"id"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return MailResult{Err: fmt.Sprintf("decode provider response: %v", err)}
	}
	// The provider reports some failures as a 200 with an error field.
	if body.Error != nil && body.Error.Message != "" {
		return MailResult{Err: body.Error.Message}
	}
	if resp.StatusCode >= 300 {
		reason := body.Message
		if reason == "" {
			reason = resp.Status
		}
		return MailResult{Err: reason}
	}
	return MailResult{ID: body.ID}
}

// NewsletterInput is the admin compose payload.
type NewsletterInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Style   string `json:"style"`
}

// BatchResult is the aggregate outcome of one batch send. Details holds up
// to five sample failure reasons for display.
type BatchResult struct {
	Ok      bool     `json:"ok"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Total   int      `json:"total"`
	Details []string `json:"details,omitempty"`
}

// SendOutcome is one recipient's result.
type SendOutcome struct {
	Email  string
	Ok     bool
	Reason string
}

const maxFailureDetails = 5

// errMailerNotConfigured distinguishes a missing provider config from a
// bad compose payload, so the API can answer 503 instead of 422.
var errMailerNotConfigured = errors.New("newsletter provider not configured: set MAIL_API_KEY and MAIL_FROM")

var errNoSubscribers = errors.New("no subscribers")

// SendCampaign dispatches one email per subscriber, all in flight together,
// and collects the outcomes after every send has settled. Individual
// failures never abort sibling sends; there is no retry. Re-running a batch
// re-sends to subscribers that already succeeded, there is no per-recipient
// idempotency key.
func SendCampaign(ctx context.Context, mailer Mailer, siteURL string, in NewsletterInput, subs []Subscriber) (*BatchResult, []SendOutcome, error) {
	if mailer == nil {
		return nil, nil, errMailerNotConfigured
	}
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, nil, fmt.Errorf("subject and message are required")
	}
	if len(subs) == 0 {
		return nil, nil, errNoSubscribers
	}

	outcomes := make([]SendOutcome, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub Subscriber) {
			defer wg.Done()
			unsubURL := siteURL + "/api/newsletter/unsubscribe?token=" + sub.Token
			htmlBody, textBody := renderNewsletter(in.Style, in.Subject, in.Message, unsubURL)
			res := mailer.Send(ctx, MailMessage{
				To:      sub.Email,
				Subject: in.Subject,
				HTML:    htmlBody,
				Text:    textBody,
			})
			switch {
			case res.Err != "":
				outcomes[i] = SendOutcome{Email: sub.Email, Reason: res.Err}
			case res.ID == "":
				outcomes[i] = SendOutcome{Email: sub.Email, Reason: "provider did not confirm delivery"}
			default:
				outcomes[i] = SendOutcome{Email: sub.Email, Ok: true}
			}
		}(i, sub)
	}
	wg.Wait()

	return summarizeOutcomes(outcomes), outcomes, nil
}

func summarizeOutcomes(outcomes []SendOutcome) *BatchResult {
	result := &BatchResult{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Ok {
			result.Sent++
			continue
		}
		result.Failed++
		if len(result.Details) < maxFailureDetails {
			result.Details = append(result.Details, o.Email+": "+o.Reason)
		}
	}
	result.Ok = result.Failed == 0
	return result
}

// SendNewsletter is the full admin operation: load active subscribers, track
// the campaign row through DRAFT→SENDING→{SENT,FAILED}, run the batch and
// persist per-recipient logs.
func SendNewsletter(ctx context.Context, db *sql.DB, mailer Mailer, siteURL string, in NewsletterInput) (*BatchResult, error) {
	subs, err := ActiveSubscribers(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	// Nobody to mail is not a campaign; report it without minting a
	// FAILED row that would look like a batch needing retry.
	if len(subs) == 0 {
		return nil, errNoSubscribers
	}

	campaign, err := InsertCampaign(ctx, db, in.Subject, in.Style)
	if err != nil {
		return nil, err
	}
	if err := UpdateCampaignStatus(ctx, db, campaign.ID, CampaignSending, 0, 0, len(subs)); err != nil {
		return nil, err
	}

	result, outcomes, err := SendCampaign(ctx, mailer, siteURL, in, subs)
	if err != nil {
		_ = UpdateCampaignStatus(ctx, db, campaign.ID, CampaignFailed, 0, 0, len(subs))
		return nil, err
	}

	for _, o := range outcomes {
		if logErr := InsertSendLog(ctx, db, campaign.ID, o.Email, o.Ok, o.Reason); logErr != nil {
			// The batch already ran; a log failure must not flip its result.
			log.Printf("send log: %v", logErr)
		}
	}

	status := CampaignSent
	if result.Failed > 0 {
		status = CampaignFailed
	}
	if err := UpdateCampaignStatus(ctx, db, campaign.ID, status, result.Sent, result.Failed, result.Total); err != nil {
		return nil, err
	}
	return result, nil
}

// renderNewsletter builds the HTML and text bodies for a style key. Unknown
// styles fall back to classic.
func renderNewsletter(style, subject, message, unsubURL string) (string, string) {
	safeSubject := html.EscapeString(subject)
	paragraphs := strings.Split(strings.TrimSpace(message), "\n\n")
	var buf strings.Builder
	for _, p := range paragraphs {
		buf.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(p), "\n", "<br>") + "</p>\n")
	}
	body := buf.String()

	var page string
	switch style {
	case "bold":
		page = fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;background:#111;color:#fff;padding:24px">
<h1 style="color:#e63946">%s</h1>
%s
<hr style="border-color:#333">
<p style="font-size:12px;color:#888"><a href="%s" style="color:#888">Unsubscribe</a></p>
</body></html>`, safeSubject, body, unsubURL)
	case "plain":
		page = fmt.Sprintf(`<html><body style="font-family:Georgia,serif;padding:24px">
<h2>%s</h2>
%s
<p style="font-size:12px"><a href="%s">Unsubscribe</a></p>
</body></html>`, safeSubject, body, unsubURL)
	default: // classic
		page = fmt.Sprintf(`<html><body style="font-family:Helvetica,Arial,sans-serif;background:#f4f4f4;padding:24px">
<div style="max-width:560px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
<h2 style="color:#1d3557">%s</h2>
%s
</div>
<p style="text-align:center;font-size:12px;color:#999"><a href="%s" style="color:#999">Unsubscribe</a></p>
</body></html>`, safeSubject, body, unsubURL)
	}

	text := strings.TrimSpace(message) + "\n\nUnsubscribe: " + unsubURL
	return page, text
}
