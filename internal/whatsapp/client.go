package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

// Client sends messages through the WhatsApp Cloud API.
type Client struct {
	baseURL       string
	accessToken   string
	phoneNumberID string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient builds a Client. baseURL is the Graph API root, e.g.
// https://graph.facebook.com/v16.0.
func NewClient(baseURL, accessToken, phoneNumberID string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
	}
}

type textPayload struct {
	Body string `json:"body"`
}

type imagePayload struct {
	Link string `json:"link"`
}

type interactivePayload struct {
	Type   string         `json:"type"`
	Body   bodyPayload    `json:"body"`
	Action map[string]any `json:"action"`
}

type bodyPayload struct {
	Text string `json:"text"`
}

type messagePayload struct {
	MessagingProduct string              `json:"messaging_product"`
	To               string              `json:"to"`
	Type             string              `json:"type,omitempty"`
	Text             *textPayload        `json:"text,omitempty"`
	Image            *imagePayload       `json:"image,omitempty"`
	Interactive      *interactivePayload `json:"interactive,omitempty"`
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             &textPayload{Body: body},
	})
}

// SendImage delivers an image by URL.
func (c *Client) SendImage(ctx context.Context, to, imageURL string) error {
	return c.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "image",
		Image:            &imagePayload{Link: imageURL},
	})
}

// SendButtons delivers an interactive message with reply buttons.
func (c *Client) SendButtons(ctx context.Context, to, body string, buttons []domain.Button) error {
	replies := make([]map[string]any, 0, len(buttons))
	for _, b := range buttons {
		replies = append(replies, map[string]any{
			"type":  "reply",
			"reply": map[string]string{"id": b.ID, "title": b.Title},
		})
	}
	return c.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &interactivePayload{
			Type:   "button",
			Body:   bodyPayload{Text: body},
			Action: map[string]any{"buttons": replies},
		},
	})
}

// SendList delivers an interactive list message grouped into sections.
func (c *Client) SendList(ctx context.Context, to, body, buttonLabel string, sections []domain.ListSection) error {
	outSections := make([]map[string]any, 0, len(sections))
	for _, section := range sections {
		rows := make([]map[string]string, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, map[string]string{"id": row.ID, "title": row.Title})
		}
		outSections = append(outSections, map[string]any{
			"title": section.Title,
			"rows":  rows,
		})
	}
	return c.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &interactivePayload{
			Type:   "list",
			Body:   bodyPayload{Text: body},
			Action: map[string]any{"button": buttonLabel, "sections": outSections},
		},
	})
}

func (c *Client) post(ctx context.Context, payload messagePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send message: status %d: %s", resp.StatusCode, snippet)
	}

	c.logger.Debug("message sent", zap.String("to", payload.To), zap.String("type", payload.Type))
	return nil
}
