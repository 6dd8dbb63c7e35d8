package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/observability"
	cartrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/cart"
	refrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/reference"
	sessionrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/session"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
)

type sent struct {
	to   string
	body string
}

type stubNotifier struct {
	sent    []sent
	sendErr error
}

func (n *stubNotifier) SendText(_ context.Context, to, body string) error {
	n.sent = append(n.sent, sent{to: to, body: body})
	return n.sendErr
}

func (n *stubNotifier) sentTo(to string) []sent {
	var out []sent
	for _, m := range n.sent {
		if m.to == to {
			out = append(out, m)
		}
	}
	return out
}

type stubOrders struct {
	appended []domain.Order
	err      error
}

func (o *stubOrders) Append(_ context.Context, order domain.Order) error {
	if o.err != nil {
		return o.err
	}
	o.appended = append(o.appended, order)
	return nil
}

const (
	user   = "919900112233"
	seller = "917719436134"
)

type fixture struct {
	svc      *Service
	notifier *stubNotifier
	orders   *stubOrders
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notifier := &stubNotifier{}
	orders := &stubOrders{}
	deps := Deps{
		Carts:    cartrepo.NewMemory(),
		Refs:     refrepo.NewMemory(),
		Sessions: sessionrepo.NewMemory(),
		Orders:   orders,
		Notifier: notifier,
		Metrics:  observability.NewMetrics(),
		Logger:   zap.NewNop(),
	}
	svc := New(deps, Settings{
		SellerNumber:    seller,
		CustomerName:    "Sanket",
		CustomerAddress: "Bhupeshnagar, Nagpur",
	})
	return &fixture{svc: svc, notifier: notifier, orders: orders, deps: deps}
}

func paidEvent(ref, paymentID string, amountPaise int64) razorpay.WebhookEvent {
	var ev razorpay.WebhookEvent
	ev.Event = razorpay.EventPaymentLinkPaid
	ev.Payload.PaymentLink.Entity = razorpay.PaymentLinkEntity{
		ID:          paymentID,
		ReferenceID: ref,
		Amount:      amountPaise,
	}
	return ev
}

func TestIgnoresOtherEventTypes(t *testing.T) {
	f := newFixture(t)
	ev := paidEvent("ref1", "pay_1", 70000)
	ev.Event = "payment_link.partially_paid"
	if err := f.svc.HandlePaid(context.Background(), ev); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(f.orders.appended) != 0 || len(f.notifier.sent) != 0 {
		t.Fatalf("non-paid events must be acknowledged untouched")
	}
}

func TestUnknownReferenceIsAcknowledged(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.HandlePaid(context.Background(), paidEvent("ghost", "pay_1", 70000)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(f.orders.appended) != 0 {
		t.Fatalf("unknown reference must produce no order")
	}
	if len(f.notifier.sent) != 0 {
		t.Fatalf("unknown reference must not message anyone")
	}
}

func TestEmptyCartSendsOrderNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.deps.Refs.Put(ctx, "ref1", user); err != nil {
		t.Fatalf("put ref: %v", err)
	}

	if err := f.svc.HandlePaid(ctx, paidEvent("ref1", "pay_1", 70000)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(f.orders.appended) != 0 {
		t.Fatalf("empty cart must not fabricate an order")
	}
	msgs := f.notifier.sentTo(user)
	if len(msgs) != 1 || !strings.Contains(msgs[0].body, "could not be found") {
		t.Fatalf("expected order-not-found notice, got %+v", msgs)
	}
}

func TestPaidCallbackFinalizesOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.deps.Refs.Put(ctx, "ab12cd34", user); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	for _, line := range []domain.CartLine{
		{Name: "Wool Scarf", Price: 450},
		{Name: "Handcrafted Mug", Price: 250},
	} {
		if err := f.deps.Carts.Append(ctx, user, line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := f.deps.Sessions.Set(ctx, user, domain.StateAwaitingMenuOrConfirm); err != nil {
		t.Fatalf("set session: %v", err)
	}

	if err := f.svc.HandlePaid(ctx, paidEvent("ab12cd34", "pay_ABC", 70000)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(f.orders.appended) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(f.orders.appended))
	}
	order := f.orders.appended[0]
	if order.OrderID != "ab12cd34" || order.PaymentID != "pay_ABC" {
		t.Fatalf("unexpected order ids: %+v", order)
	}
	if order.Total != 700 || len(order.Lines) != 2 {
		t.Fatalf("unexpected order contents: %+v", order)
	}

	lines, _ := f.deps.Carts.Lines(ctx, user)
	if len(lines) != 0 {
		t.Fatalf("cart must be cleared after finalization")
	}
	state, _ := f.deps.Sessions.Get(ctx, user)
	if state != domain.StateIdle {
		t.Fatalf("session must be reset, got %v", state)
	}

	receipts := f.notifier.sentTo(user)
	if len(receipts) != 1 {
		t.Fatalf("expected one receipt, got %+v", receipts)
	}
	receipt := receipts[0].body
	for _, want := range []string{"Order Receipt", "ab12cd34", "pay_ABC", "Wool Scarf: ₹450", "*Total Paid: ₹700*"} {
		if !strings.Contains(receipt, want) {
			t.Fatalf("receipt missing %q: %q", want, receipt)
		}
	}

	sellerMsgs := f.notifier.sentTo(seller)
	if len(sellerMsgs) != 1 {
		t.Fatalf("seller must be notified exactly once, got %+v", sellerMsgs)
	}
	if !strings.Contains(sellerMsgs[0].body, "pay_ABC") {
		t.Fatalf("seller notice missing payment id: %q", sellerMsgs[0].body)
	}
}

func TestDuplicateCallbackProducesOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.deps.Refs.Put(ctx, "ref1", user); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	if err := f.deps.Carts.Append(ctx, user, domain.CartLine{Name: "Decorative Bowl", Price: 500}); err != nil {
		t.Fatalf("append: %v", err)
	}

	ev := paidEvent("ref1", "pay_1", 50000)
	if err := f.svc.HandlePaid(ctx, ev); err != nil {
		t.Fatalf("first callback: %v", err)
	}
	if err := f.svc.HandlePaid(ctx, ev); err != nil {
		t.Fatalf("second callback: %v", err)
	}

	if len(f.orders.appended) != 1 {
		t.Fatalf("duplicate callback must not duplicate the order, got %d", len(f.orders.appended))
	}
	// The reference was consumed, so the replay resolved to no user and
	// the customer saw a single receipt.
	if got := f.notifier.sentTo(user); len(got) != 1 {
		t.Fatalf("expected one receipt only, got %+v", got)
	}
}

func TestOrderStoreFailureStillNotifies(t *testing.T) {
	f := newFixture(t)
	f.orders.err = errors.New("disk full")
	ctx := context.Background()

	if err := f.deps.Refs.Put(ctx, "ref1", user); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	if err := f.deps.Carts.Append(ctx, user, domain.CartLine{Name: "Embroidery Hoop", Price: 650}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := f.svc.HandlePaid(ctx, paidEvent("ref1", "pay_1", 65000)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(f.notifier.sentTo(user)) != 1 || len(f.notifier.sentTo(seller)) != 1 {
		t.Fatalf("receipt and seller notice must still go out: %+v", f.notifier.sent)
	}
}
