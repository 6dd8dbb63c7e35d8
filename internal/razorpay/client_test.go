package razorpay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreatePaymentLink(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment_links" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Errorf("unexpected basic auth %q %q", user, pass)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Fatalf("parse request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"plink_1","short_url":"https://rzp.io/i/abc"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "secret", 2*time.Second)
	link, err := client.CreatePaymentLink(context.Background(), CreateLinkInput{
		Amount:      70000,
		Currency:    "INR",
		ReferenceID: "ab12cd34",
		Customer:    Customer{Name: "Sanket", Contact: "919900112233"},
	})
	if err != nil {
		t.Fatalf("create payment link: %v", err)
	}
	if link.ShortURL != "https://rzp.io/i/abc" || link.ID != "plink_1" {
		t.Fatalf("unexpected link: %+v", link)
	}

	if gotBody["amount"] != float64(70000) || gotBody["currency"] != "INR" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if gotBody["reference_id"] != "ab12cd34" {
		t.Fatalf("reference id not sent: %v", gotBody)
	}
	if gotBody["accept_partial"] != false {
		t.Fatalf("accept_partial should be false: %v", gotBody)
	}
}

func TestCreatePaymentLinkErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"auth failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "bad", 2*time.Second)
	if _, err := client.CreatePaymentLink(context.Background(), CreateLinkInput{Amount: 100, Currency: "INR"}); err == nil {
		t.Fatalf("expected error on auth failure")
	}
}

func TestCreatePaymentLinkMissingShortURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"plink_1"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "secret", 2*time.Second)
	if _, err := client.CreatePaymentLink(context.Background(), CreateLinkInput{Amount: 100, Currency: "INR"}); err == nil {
		t.Fatalf("expected error when short_url is absent")
	}
}

func TestWebhookEventParsing(t *testing.T) {
	raw := `{"event":"payment_link.paid","payload":{"payment_link":{"entity":{
		"id":"pay_ABC","reference_id":"ab12cd34","amount":70000}}}}`
	var ev WebhookEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("parse webhook: %v", err)
	}
	if ev.Event != EventPaymentLinkPaid {
		t.Fatalf("unexpected event: %s", ev.Event)
	}
	entity := ev.Payload.PaymentLink.Entity
	if entity.ReferenceID != "ab12cd34" || entity.Amount != 70000 || entity.ID != "pay_ABC" {
		t.Fatalf("unexpected entity: %+v", entity)
	}
}
