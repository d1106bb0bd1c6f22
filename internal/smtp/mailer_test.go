package smtp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeClient struct {
	calls int
	fail  int
	sent  []*mail.Msg
}

func (c *fakeClient) DialAndSend(msgs ...*mail.Msg) error {
	c.calls++
	if c.calls <= c.fail {
		return errors.New("connection refused")
	}
	c.sent = append(c.sent, msgs...)
	return nil
}

func TestMailer_SendRendersTemplates(t *testing.T) {
	client := &fakeClient{}
	mailer := NewMailerWithClient(client, "Bank <no_reply@example.org>")

	data := map[string]any{"Name": "asha kumar", "Decision": "rejected"}
	err := mailer.Send("asha@example.com", data, "kyc-decision.tmpl")
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	var buf bytes.Buffer
	_, err = client.sent[0].WriteTo(&buf)
	require.NoError(t, err)

	body := buf.String()
	require.Contains(t, body, "Your KYC verification was rejected")
	require.Contains(t, body, "Hi Asha Kumar")
	require.Contains(t, body, "REJECTED")
}

func TestMailer_SendRetries(t *testing.T) {
	client := &fakeClient{fail: 2}
	mailer := NewMailerWithClient(client, "no_reply@example.org")

	err := mailer.Send("asha@example.com", map[string]any{"Name": "asha"}, "account-locked.tmpl")
	require.NoError(t, err)
	require.Equal(t, 3, client.calls)
}

func TestMailer_SendGivesUp(t *testing.T) {
	client := &fakeClient{fail: 5}
	mailer := NewMailerWithClient(client, "no_reply@example.org")

	err := mailer.Send("asha@example.com", map[string]any{"Name": "asha"}, "account-locked.tmpl")
	require.Error(t, err)
	require.Equal(t, 3, client.calls)
}

func TestMailer_SendUnknownTemplate(t *testing.T) {
	mailer := NewMailerWithClient(&fakeClient{}, "no_reply@example.org")

	err := mailer.Send("asha@example.com", nil, "missing.tmpl")
	require.Error(t, err)
}
