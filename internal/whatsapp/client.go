// Package whatsapp is a thin client for the WhatsApp Cloud (Graph) API:
// outbound text messages and inbound media downloads. Message delivery is
// best-effort by contract; callers log and swallow failures.
package whatsapp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://graph.facebook.com/v17.0"

type Client struct {
	http    *resty.Client
	phoneID string
	token   string
}

type ClientOption func(*Client)

// WithBaseURL points the client at a different Graph endpoint (tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

func NewClient(phoneID, token string, opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second),
		phoneID: phoneID,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// SendText delivers a plain text message to the given phone number.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetBody(textMessage{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             textBody{Body: body},
		}).
		Post(fmt.Sprintf("/%s/messages", c.phoneID))
	if err != nil {
		return fmt.Errorf("send text to %s: %w", to, err)
	}
	if resp.IsError() {
		return fmt.Errorf("send text to %s: graph api status %d", to, resp.StatusCode())
	}
	return nil
}

type mediaInfo struct {
	URL string `json:"url"`
}

// DownloadMedia resolves a media ID to its download URL, then fetches the
// bytes. Both hops require the bearer token.
func (c *Client) DownloadMedia(ctx context.Context, mediaID string) ([]byte, error) {
	var info mediaInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetResult(&info).
		Get("/" + mediaID)
	if err != nil {
		return nil, fmt.Errorf("resolve media %s: %w", mediaID, err)
	}
	if resp.IsError() || info.URL == "" {
		return nil, fmt.Errorf("resolve media %s: graph api status %d", mediaID, resp.StatusCode())
	}

	dl, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		Get(info.URL)
	if err != nil {
		return nil, fmt.Errorf("download media %s: %w", mediaID, err)
	}
	if dl.IsError() {
		return nil, fmt.Errorf("download media %s: status %d", mediaID, dl.StatusCode())
	}
	return dl.Body(), nil
}
