package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer records every send and fails or drops the provider ID for
// selected recipients. Sends run concurrently, so all state is mutex-guarded.
type fakeMailer struct {
	mu      sync.Mutex
	calls   int
	sent    []MailMessage
	failFor map[string]string
	noIDFor map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, msg MailMessage) MailResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.sent = append(m.sent, msg)
	if reason, ok := m.failFor[msg.To]; ok {
		return MailResult{Err: reason}
	}
	if m.noIDFor[msg.To] {
		return MailResult{}
	}
	return MailResult{ID: "msg-" + msg.To}
}

func testSubscribers(n int) []Subscriber {
	subs := make([]Subscriber, n)
	for i := range subs {
		subs[i] = Subscriber{
			Email: fmt.Sprintf("fan%02d@example.com", i),
			Token: fmt.Sprintf("tok-%02d", i),
		}
	}
	return subs
}

func TestSendCampaignPartialFailure(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]string{
		"fan02@example.com": "mailbox full",
		"fan05@example.com": "bounced",
		"fan08@example.com": "bounced",
	}}
	in := NewsletterInput{Subject: "New drops", Message: "Fresh kits are in."}

	result, outcomes, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, testSubscribers(10))
	require.NoError(t, err)

	assert.Equal(t, 7, result.Sent)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, 10, result.Total)
	assert.False(t, result.Ok)
	assert.Len(t, result.Details, 3)
	assert.Len(t, outcomes, 10)
	assert.Equal(t, 10, mailer.calls)

	// Outcomes stay aligned with the subscriber order despite the
	// concurrent dispatch.
	assert.Equal(t, "fan02@example.com", outcomes[2].Email)
	assert.False(t, outcomes[2].Ok)
	assert.Equal(t, "mailbox full", outcomes[2].Reason)
	assert.True(t, outcomes[0].Ok)
}

func TestSendCampaignAllDelivered(t *testing.T) {
	mailer := &fakeMailer{}
	in := NewsletterInput{Subject: "Hello", Message: "World"}

	result, _, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, testSubscribers(4))
	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Equal(t, 4, result.Sent)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Details)
}

// Zero subscribers is an error, reported before any provider call is made.
func TestSendCampaignNoSubscribers(t *testing.T) {
	mailer := &fakeMailer{}
	in := NewsletterInput{Subject: "Hello", Message: "World"}

	_, _, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoSubscribers)
	assert.Zero(t, mailer.calls)
}

func TestSendCampaignNilMailer(t *testing.T) {
	in := NewsletterInput{Subject: "Hello", Message: "World"}

	_, _, err := SendCampaign(context.Background(), nil, "https://shop.test", in, testSubscribers(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errMailerNotConfigured)
}

func TestSendCampaignRejectsEmptyCompose(t *testing.T) {
	mailer := &fakeMailer{}

	_, _, err := SendCampaign(context.Background(), mailer, "https://shop.test", NewsletterInput{Subject: "  ", Message: "x"}, testSubscribers(1))
	require.Error(t, err)
	_, _, err = SendCampaign(context.Background(), mailer, "https://shop.test", NewsletterInput{Subject: "x", Message: ""}, testSubscribers(1))
	require.Error(t, err)
	assert.Zero(t, mailer.calls)
}

// A 200 without a provider message ID counts as a failure, not a success.
func TestSendCampaignMissingProviderID(t *testing.T) {
	mailer := &fakeMailer{noIDFor: map[string]bool{"fan00@example.com": true}}
	in := NewsletterInput{Subject: "Hello", Message: "World"}

	result, outcomes, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, testSubscribers(2))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "provider did not confirm delivery", outcomes[0].Reason)
}

func TestSendCampaignDetailsCapped(t *testing.T) {
	failFor := make(map[string]string)
	for i := 0; i < 8; i++ {
		failFor[fmt.Sprintf("fan%02d@example.com", i)] = "bounced"
	}
	mailer := &fakeMailer{failFor: failFor}
	in := NewsletterInput{Subject: "Hello", Message: "World"}

	result, _, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, testSubscribers(8))
	require.NoError(t, err)
	assert.Equal(t, 8, result.Failed)
	assert.Len(t, result.Details, maxFailureDetails)
}

func TestSendCampaignRendersUnsubscribeLink(t *testing.T) {
	mailer := &fakeMailer{}
	in := NewsletterInput{Subject: "Hello", Message: "World", Style: "bold"}

	_, _, err := SendCampaign(context.Background(), mailer, "https://shop.test", in, testSubscribers(1))
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Contains(t, msg.HTML, "https://shop.test/api/newsletter/unsubscribe?token=tok-00")
	assert.Contains(t, msg.Text, "Unsubscribe: https://shop.test/api/newsletter/unsubscribe?token=tok-00")
	assert.Equal(t, "fan00@example.com", msg.To)
}

func TestRenderNewsletterEscapesHTML(t *testing.T) {
	page, text := renderNewsletter("classic", `Sale <b>now</b>`, "Line one\n\nLine <two>", "https://shop.test/u")
	assert.Contains(t, page, "Sale &lt;b&gt;now&lt;/b&gt;")
	assert.Contains(t, page, "Line &lt;two&gt;")
	assert.NotContains(t, page, "<b>now</b>")
	assert.True(t, strings.HasSuffix(text, "Unsubscribe: https://shop.test/u"))
}
