package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v21.0"

// Client sends messages through the WhatsApp Cloud API Graph endpoint.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	phoneNumberID string
	logger        *slog.Logger
}

// NewClient creates a Graph API client for the given business phone.
func NewClient(token, phoneNumberID string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       defaultGraphBaseURL,
		token:         token,
		phoneNumberID: phoneNumberID,
		logger:        logger,
	}
}

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

// SendText delivers a text message to a chat.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             sendText{Body: body},
	})
}

type readPayload struct {
	MessagingProduct string           `json:"messaging_product"`
	Status           string           `json:"status"`
	MessageID        string           `json:"message_id"`
	TypingIndicator  *typingIndicator `json:"typing_indicator,omitempty"`
}

type typingIndicator struct {
	Type string `json:"type"`
}

// MarkReadWithTyping marks the inbound message as read and shows the
// typing indicator while the reply is being produced.
func (c *Client) MarkReadWithTyping(ctx context.Context, messageID string) error {
	return c.post(ctx, readPayload{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
		TypingIndicator:  &typingIndicator{Type: "text"},
	})
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("graph request failed: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

// TypingDelay scales the pause before replying with the reply length,
// clamped between 500ms and 3s so short answers still feel typed and
// long reports do not stall the chat.
func TypingDelay(reply string) time.Duration {
	d := time.Duration(len(reply)) * 10 * time.Millisecond
	if d < 500*time.Millisecond {
		d = 500 * time.Millisecond
	}
	if d > 3*time.Second {
		d = 3 * time.Second
	}
	return d
}
