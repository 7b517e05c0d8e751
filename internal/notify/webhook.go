package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// doer abstracts *http.Client for tests.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookChannel posts the notification to a provider endpoint. The provider
// itself is opaque: any 2xx answer counts as delivered. An empty endpoint
// means the channel is not configured.
type webhookChannel struct {
	name      string
	endpoint  string
	apiKey    string
	recipient func(Message) string
	client    doer
}

func (c *webhookChannel) Name() string { return c.name }

func (c *webhookChannel) Configured() bool { return c.endpoint != "" }

type webhookPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
}

func (c *webhookChannel) Send(ctx context.Context, msg Message) error {
	to := c.recipient(msg)
	if to == "" {
		return fmt.Errorf("%s: no recipient for order %s", c.name, msg.OrderID)
	}

	raw, err := json.Marshal(webhookPayload{
		Recipient: to,
		Subject:   fmt.Sprintf("Order %s", msg.OrderID),
		Body:      msg.Body,
	})
	if err != nil {
		return fmt.Errorf("%s: encode payload: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: provider replied %d", c.name, resp.StatusCode)
	}
	return nil
}

// ChannelConfig stores one provider endpoint.
type ChannelConfig struct {
	Endpoint string
	APIKey   string
}

// NewAlertChannel creates the message/alert channel addressed to the customer.
func NewAlertChannel(cfg ChannelConfig, client *http.Client) Channel {
	return newWebhookChannel("alert", cfg, client, func(m Message) string { return m.CustomerPhone })
}

// NewSMSChannel creates the short-text channel addressed to the customer.
func NewSMSChannel(cfg ChannelConfig, client *http.Client) Channel {
	return newWebhookChannel("sms", cfg, client, func(m Message) string { return m.CustomerPhone })
}

// NewPushChannel creates the push channel addressed to the partner.
func NewPushChannel(cfg ChannelConfig, client *http.Client) Channel {
	return newWebhookChannel("push", cfg, client, func(m Message) string { return m.PartnerID })
}

func newWebhookChannel(name string, cfg ChannelConfig, client *http.Client, recipient func(Message) string) Channel {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookChannel{
		name:      name,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		recipient: recipient,
		client:    client,
	}
}
