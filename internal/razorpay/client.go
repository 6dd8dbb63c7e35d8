package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client creates Razorpay payment links over the REST API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient builds a Client. baseURL is the API root, e.g.
// https://api.razorpay.com/v1.
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Customer identifies the payer on a payment link.
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email,omitempty"`
}

// CreateLinkInput describes a payment link request. Amount is in paise.
type CreateLinkInput struct {
	Amount      int64    `json:"amount"`
	Currency    string   `json:"currency"`
	ReferenceID string   `json:"reference_id"`
	Description string   `json:"description,omitempty"`
	Customer    Customer `json:"customer"`
	CallbackURL string   `json:"callback_url,omitempty"`
}

type createLinkRequest struct {
	CreateLinkInput
	AcceptPartial bool            `json:"accept_partial"`
	Notify        map[string]bool `json:"notify"`
}

// PaymentLink is the subset of the created link the bot needs.
type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
}

// CreatePaymentLink requests a payable link for the given amount and
// reference id.
func (c *Client) CreatePaymentLink(ctx context.Context, in CreateLinkInput) (*PaymentLink, error) {
	body := createLinkRequest{
		CreateLinkInput: in,
		AcceptPartial:   false,
		Notify:          map[string]bool{"sms": false, "email": false},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal payment link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("create payment link: status %d: %s", resp.StatusCode, snippet)
	}

	var link PaymentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("parse payment link response: %w", err)
	}
	if link.ShortURL == "" {
		return nil, fmt.Errorf("payment link response missing short_url")
	}
	return &link, nil
}
