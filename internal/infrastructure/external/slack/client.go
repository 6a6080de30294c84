package slack

import (
	"context"
	"net/http"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/johnquangdev/fathom-relay/errors"
	"github.com/johnquangdev/fathom-relay/pkg/config"
)

// Delivery modes
const (
	ModeBot     = "bot"
	ModeWebhook = "webhook"
	ModeNone    = "none"
)

// Message is a chat message with Block Kit content and a plain-text fallback
type Message struct {
	Text   string
	Blocks []slackapi.Block
}

// Client posts messages either through chat.postMessage with a bot token
// or through an incoming webhook URL
type Client struct {
	api        *slackapi.Client
	channel    string
	webhookURL string
	httpClient *http.Client
	mode       string
}

// NewClient creates a Slack client. A bot token is only used together with
// a channel; otherwise the webhook URL is used when present.
func NewClient(cfg *config.SlackConfig) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	c := &Client{
		channel:    cfg.Channel,
		webhookURL: cfg.WebhookURL,
		httpClient: httpClient,
		mode:       ModeNone,
	}

	switch {
	case cfg.BotToken != "" && cfg.Channel != "":
		opts := []slackapi.Option{slackapi.OptionHTTPClient(httpClient)}
		if cfg.APIURL != "" {
			apiURL := cfg.APIURL
			if !strings.HasSuffix(apiURL, "/") {
				apiURL += "/"
			}
			opts = append(opts, slackapi.OptionAPIURL(apiURL))
		}
		c.api = slackapi.New(cfg.BotToken, opts...)
		c.mode = ModeBot
	case cfg.WebhookURL != "":
		c.mode = ModeWebhook
	}

	return c
}

// Configured reports whether the client has a delivery target
func (c *Client) Configured() bool {
	return c.mode != ModeNone
}

// Mode returns the delivery mode
func (c *Client) Mode() string {
	return c.mode
}

// Channel returns the destination channel id
func (c *Client) Channel() string {
	return c.channel
}

// Post delivers msg and returns the message timestamp when the API reports
// one. Webhook deliveries have no timestamp.
func (c *Client) Post(ctx context.Context, msg Message) (string, error) {
	switch c.mode {
	case ModeBot:
		_, ts, err := c.api.PostMessageContext(ctx, c.channel,
			slackapi.MsgOptionText(msg.Text, false),
			slackapi.MsgOptionBlocks(msg.Blocks...),
		)
		if err != nil {
			return "", errors.ErrExternalAPIFailed("slack chat.postMessage", err)
		}
		return ts, nil
	case ModeWebhook:
		payload := &slackapi.WebhookMessage{
			Channel: c.channel,
			Text:    msg.Text,
			Blocks:  &slackapi.Blocks{BlockSet: msg.Blocks},
		}
		if err := slackapi.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, payload); err != nil {
			return "", errors.ErrExternalAPIFailed("slack webhook", err)
		}
		return "", nil
	default:
		return "", errors.ErrInvalidArgument("slack delivery is not configured")
	}
}
