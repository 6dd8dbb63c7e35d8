package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/observability"
	cartrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/cart"
	orderrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/order"
	refrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/reference"
	sessionrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/session"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/service/conversation"
)

// Notifier delivers text messages to a chat user.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
}

// Settings carries the reconciler's per-deployment knobs.
type Settings struct {
	SellerNumber    string
	CustomerName    string
	CustomerAddress string
}

// Deps are the reconciler's collaborators.
type Deps struct {
	Carts    cartrepo.Repository
	Refs     refrepo.Repository
	Sessions sessionrepo.Repository
	Orders   orderrepo.Repository
	Notifier Notifier
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// Service maps a provider reference id back to the originating user and
// finalizes the order when a paid callback arrives.
type Service struct {
	deps     Deps
	settings Settings
}

func New(deps Deps, settings Settings) *Service {
	return &Service{deps: deps, settings: settings}
}

// HandlePaid processes one provider webhook event. Every event is
// acknowledged; only payment_link.paid triggers reconciliation.
func (s *Service) HandlePaid(ctx context.Context, ev razorpay.WebhookEvent) error {
	if ev.Event != razorpay.EventPaymentLinkPaid {
		s.deps.Logger.Debug("ignoring payment event", zap.String("event", ev.Event))
		return nil
	}

	entity := ev.Payload.PaymentLink.Entity
	userID, ok, err := s.deps.Refs.Resolve(ctx, entity.ReferenceID)
	if err != nil {
		return fmt.Errorf("resolve payment reference: %w", err)
	}
	if !ok {
		s.deps.Metrics.StalePaymentRefs.Inc()
		s.deps.Logger.Warn("no user for payment reference", zap.String("reference", entity.ReferenceID))
		return nil
	}

	// Take is atomic, so a duplicate callback racing this one sees an
	// empty cart and cannot produce a second order.
	lines, err := s.deps.Carts.Take(ctx, userID)
	if err != nil {
		return fmt.Errorf("take cart: %w", err)
	}
	if len(lines) == 0 {
		s.notifyText(ctx, userID, "⚠️ Your order could not be found after payment.")
		return nil
	}
	if err := s.deps.Sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	order := domain.Order{
		OrderID:      entity.ReferenceID,
		UserID:       userID,
		CustomerName: s.settings.CustomerName,
		Address:      s.settings.CustomerAddress,
		Timestamp:    time.Now(),
		Lines:        lines,
		Total:        entity.Amount / 100,
		PaymentID:    entity.ID,
	}
	if err := s.deps.Orders.Append(ctx, order); err != nil {
		// Keep going: the receipt and seller notice still carry the order.
		s.deps.Logger.Error("append order", zap.String("order", order.OrderID), zap.Error(err))
	} else {
		s.deps.Metrics.OrdersFinalized.Inc()
	}

	// Consume the reference so a replayed callback resolves to no user.
	if err := s.deps.Refs.Delete(ctx, entity.ReferenceID); err != nil {
		s.deps.Logger.Warn("delete payment reference", zap.String("reference", entity.ReferenceID), zap.Error(err))
	}

	s.notifyText(ctx, userID, formatReceipt(order))
	s.notifyText(ctx, s.settings.SellerNumber, conversation.FormatSellerNotice(order))
	return nil
}

func (s *Service) notifyText(ctx context.Context, to, body string) {
	if err := s.deps.Notifier.SendText(ctx, to, body); err != nil {
		s.deps.Metrics.NotifierFailures.Inc()
		s.deps.Logger.Warn("message delivery failed", zap.String("to", to), zap.Error(err))
	}
}

func formatReceipt(order domain.Order) string {
	var b strings.Builder
	b.WriteString("🧾 *Mahila Udyam - Order Receipt*\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.OrderID)
	fmt.Fprintf(&b, "Payment ID: %s\n", order.PaymentID)
	fmt.Fprintf(&b, "Date: %s\n\n", order.Timestamp.Format("02-01-2006 15:04:05"))
	b.WriteString("Items:\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "- %s: ₹%d\n", line.Name, line.Price)
	}
	fmt.Fprintf(&b, "\n*Total Paid: ₹%d*\n✅ Payment Successful.", order.Total)
	return b.String()
}
