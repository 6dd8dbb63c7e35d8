package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/service/conversation"
)

type stubConversation struct {
	calls []struct {
		userID string
		ev     conversation.Event
	}
	err error
}

func (s *stubConversation) HandleMessage(_ context.Context, userID string, ev conversation.Event) error {
	s.calls = append(s.calls, struct {
		userID string
		ev     conversation.Event
	}{userID, ev})
	return s.err
}

type stubPayments struct {
	events []razorpay.WebhookEvent
	err    error
}

func (s *stubPayments) HandlePaid(_ context.Context, ev razorpay.WebhookEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

func newTestRouter(t *testing.T, conv *stubConversation, payments *stubPayments) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(zap.NewNop(), nil, Deps{
		Conversation: conv,
		Payments:     payments,
		VerifyToken:  "secret-token",
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestVerifyChallenge(t *testing.T) {
	router := newTestRouter(t, &stubConversation{}, &stubPayments{})

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.verify_token=secret-token&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "12345" {
		t.Fatalf("expected challenge echo, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestVerifyTokenMismatch(t *testing.T) {
	router := newTestRouter(t, &stubConversation{}, &stubPayments{})

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.verify_token=wrong&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMessageWebhookDispatch(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		wantKind conversation.EventKind
		wantVal  string
	}{
		{
			name:     "plain text",
			message:  `{"from":"u1","type":"text","text":{"body":"hello"}}`,
			wantKind: conversation.EventText,
			wantVal:  "hello",
		},
		{
			name:     "button reply",
			message:  `{"from":"u1","type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":"confirm_order","title":"✅ Confirm Order"}}}`,
			wantKind: conversation.EventButton,
			wantVal:  "confirm_order",
		},
		{
			name:     "list reply",
			message:  `{"from":"u1","type":"interactive","interactive":{"type":"list_reply","list_reply":{"id":"mug_1","title":"Handcrafted Mug - ₹250"}}}`,
			wantKind: conversation.EventList,
			wantVal:  "mug_1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conv := &stubConversation{}
			router := newTestRouter(t, conv, &stubPayments{})

			body := `{"entry":[{"changes":[{"value":{"messages":[` + tc.message + `]}}]}]}`
			rec := postJSON(router, "/webhook", body)

			if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
				t.Fatalf("expected 200 OK, got %d %q", rec.Code, rec.Body.String())
			}
			if len(conv.calls) != 1 {
				t.Fatalf("expected one engine call, got %d", len(conv.calls))
			}
			call := conv.calls[0]
			if call.userID != "u1" || call.ev.Kind != tc.wantKind || call.ev.Value != tc.wantVal {
				t.Fatalf("unexpected dispatch: %+v", call)
			}
		})
	}
}

func TestMessageWebhookAlwaysAcks(t *testing.T) {
	cases := []struct {
		name string
		conv *stubConversation
		body string
	}{
		{"garbage body", &stubConversation{}, `not json`},
		{"no messages", &stubConversation{}, `{"entry":[{"changes":[{"value":{}}]}]}`},
		{"engine error", &stubConversation{err: errors.New("boom")},
			`{"entry":[{"changes":[{"value":{"messages":[{"from":"u1","type":"text","text":{"body":"hi"}}]}}]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, tc.conv, &stubPayments{})
			rec := postJSON(router, "/webhook", tc.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("webhook must always ack 200, got %d", rec.Code)
			}
		})
	}
}

func TestPaymentWebhook(t *testing.T) {
	payments := &stubPayments{}
	router := newTestRouter(t, &stubConversation{}, payments)

	body := `{"event":"payment_link.paid","payload":{"payment_link":{"entity":{"id":"pay_1","reference_id":"ab12cd34","amount":70000}}}}`
	rec := postJSON(router, "/payment/webhook", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(payments.events) != 1 {
		t.Fatalf("expected one reconciler call, got %d", len(payments.events))
	}
	entity := payments.events[0].Payload.PaymentLink.Entity
	if entity.ReferenceID != "ab12cd34" || entity.Amount != 70000 {
		t.Fatalf("unexpected event: %+v", payments.events[0])
	}
}

func TestPaymentWebhookAcksOnError(t *testing.T) {
	router := newTestRouter(t, &stubConversation{}, &stubPayments{err: errors.New("boom")})
	body := `{"event":"payment_link.paid","payload":{"payment_link":{"entity":{"reference_id":"x","amount":100}}}}`
	if rec := postJSON(router, "/payment/webhook", body); rec.Code != http.StatusOK {
		t.Fatalf("provider must always get 200, got %d", rec.Code)
	}
}

func TestStatusEndpoints(t *testing.T) {
	router := newTestRouter(t, &stubConversation{}, &stubPayments{})
	for _, path := range []string{"/", "/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
