package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/catalog"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/observability"
	cartrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/cart"
	orderrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/order"
	refrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/reference"
	sessionrepo "github.com/sankezzz/UdyamSakhi-Backend/internal/repository/session"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
)

// Notifier delivers messages to a chat user. Delivery is best effort; the
// engine logs failures and keeps going.
type Notifier interface {
	SendText(ctx context.Context, to, body string) error
	SendButtons(ctx context.Context, to, body string, buttons []domain.Button) error
	SendList(ctx context.Context, to, body, buttonLabel string, sections []domain.ListSection) error
	SendImage(ctx context.Context, to, imageURL string) error
}

// PaymentLinks creates payable links with the payment provider.
type PaymentLinks interface {
	CreatePaymentLink(ctx context.Context, in razorpay.CreateLinkInput) (*razorpay.PaymentLink, error)
}

// Settings carries the engine's per-deployment knobs.
type Settings struct {
	SellerNumber    string
	WelcomeImageURL string
	// StaticPaymentLink is used when Payments is nil: the bill is followed
	// by this link and a "Payment Done" button instead of a live link.
	StaticPaymentLink  string
	PaymentCallbackURL string
	CustomerName       string
	CustomerAddress    string
}

// Deps are the engine's collaborators.
type Deps struct {
	Catalog  *catalog.Catalog
	Carts    cartrepo.Repository
	Refs     refrepo.Repository
	Sessions sessionrepo.Repository
	Orders   orderrepo.Repository
	Notifier Notifier
	// Payments may be nil; see Settings.StaticPaymentLink.
	Payments PaymentLinks
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// Service interprets inbound events against per-user state and drives the
// order conversation: welcome, menu, cart, bill, payment, seller notice.
type Service struct {
	deps     Deps
	settings Settings
}

func New(deps Deps, settings Settings) *Service {
	return &Service{deps: deps, settings: settings}
}

// HandleMessage dispatches one inbound event for a user. It returns an
// error only for faults the caller should log; user-facing soft failures
// are answered in chat and reported as nil.
func (s *Service) HandleMessage(ctx context.Context, userID string, ev Event) error {
	s.deps.Metrics.EventsTotal.WithLabelValues(ev.Kind.String()).Inc()

	switch ev.Kind {
	case EventText:
		return s.handleText(ctx, userID, ev.Value)
	case EventButton:
		return s.handleButton(ctx, userID, ev.Value)
	case EventList:
		return s.handleSelection(ctx, userID, ev.Value)
	default:
		s.deps.Logger.Debug("ignoring event of unknown kind", zap.String("user", userID))
		return nil
	}
}

func (s *Service) handleText(ctx context.Context, userID, body string) error {
	state, err := s.deps.Sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if state == domain.StateAwaitingMenuOrConfirm {
		switch strings.ToLower(strings.TrimSpace(body)) {
		case "confirm":
			return s.generateBill(ctx, userID)
		case "menu":
			if err := s.deps.Sessions.Set(ctx, userID, domain.StateIdle); err != nil {
				return fmt.Errorf("set session: %w", err)
			}
			s.sendMenu(ctx, userID)
		default:
			s.notifyText(ctx, userID, invalidReplyText)
		}
		return nil
	}

	// First contact or idle chatter: greet and offer the entry points.
	if err := s.deps.Notifier.SendImage(ctx, userID, s.settings.WelcomeImageURL); err != nil {
		s.noteDeliveryFailure("welcome image", userID, err)
	}
	if err := s.deps.Notifier.SendButtons(ctx, userID, welcomeText, []domain.Button{
		{ID: ButtonMenu, Title: "📜 View items"},
		{ID: ButtonContact, Title: "📞 Contact Us"},
	}); err != nil {
		s.noteDeliveryFailure("welcome buttons", userID, err)
	}
	return nil
}

func (s *Service) handleButton(ctx context.Context, userID, buttonID string) error {
	switch buttonID {
	case ButtonMenu, ButtonAddMore:
		s.sendMenu(ctx, userID)
		return nil
	case ButtonContact:
		s.notifyText(ctx, userID, contactText)
		return nil
	case ButtonConfirm:
		return s.generateBill(ctx, userID)
	case ButtonPaymentDone:
		return s.handlePaymentDone(ctx, userID)
	default:
		s.deps.Logger.Debug("ignoring unknown button",
			zap.String("user", userID), zap.String("button", buttonID))
		return nil
	}
}

func (s *Service) handleSelection(ctx context.Context, userID, itemID string) error {
	item, ok := s.deps.Catalog.Lookup(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownItem, itemID)
	}

	if err := s.deps.Carts.Append(ctx, userID, domain.CartLine{Name: item.Name, Price: item.Price}); err != nil {
		return fmt.Errorf("append cart line: %w", err)
	}
	if err := s.deps.Sessions.Set(ctx, userID, domain.StateAwaitingMenuOrConfirm); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	if err := s.deps.Notifier.SendButtons(ctx, userID, addMoreOrConfirmText, []domain.Button{
		{ID: ButtonAddMore, Title: "➕ Add More"},
		{ID: ButtonConfirm, Title: "✅ Confirm Order"},
	}); err != nil {
		s.noteDeliveryFailure("add-more buttons", userID, err)
	}
	return nil
}

// generateBill itemizes the cart, requests a payment link, and keeps the
// cart untouched so a failed link creation can be retried.
func (s *Service) generateBill(ctx context.Context, userID string) error {
	lines, err := s.deps.Carts.Lines(ctx, userID)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		s.notifyText(ctx, userID, emptyCartText)
		return nil
	}

	total := domain.CartTotal(lines)
	orderID := shortID()
	s.notifyText(ctx, userID, FormatBill(orderID, s.settings.CustomerName, s.settings.CustomerAddress, lines, total))

	if s.deps.Payments == nil {
		s.notifyText(ctx, userID, "💳 Please make the payment here:\n"+s.settings.StaticPaymentLink)
		if err := s.deps.Notifier.SendButtons(ctx, userID, markPaidPromptText, []domain.Button{
			{ID: ButtonPaymentDone, Title: "✅ Payment Done"},
		}); err != nil {
			s.noteDeliveryFailure("payment-done button", userID, err)
		}
		return nil
	}

	// Record the mapping before the provider call; a failed call leaves an
	// orphaned reference id, which is harmless.
	if err := s.deps.Refs.Put(ctx, orderID, userID); err != nil {
		return fmt.Errorf("record payment reference: %w", err)
	}

	link, err := s.deps.Payments.CreatePaymentLink(ctx, razorpay.CreateLinkInput{
		Amount:      total * 100,
		Currency:    "INR",
		ReferenceID: orderID,
		Description: "Mahila Udyam Order Payment",
		Customer:    razorpay.Customer{Name: s.settings.CustomerName, Contact: userID},
		CallbackURL: s.settings.PaymentCallbackURL,
	})
	if err != nil {
		s.deps.Metrics.PaymentLinkFailures.Inc()
		s.deps.Logger.Error("create payment link",
			zap.String("user", userID), zap.String("reference", orderID), zap.Error(err))
		s.notifyText(ctx, userID, payLinkFailureText)
		return nil
	}

	s.notifyText(ctx, userID, "💳 Please make the payment here:\n"+link.ShortURL)
	s.notifyText(ctx, userID, autoConfirmText)
	return nil
}

// handlePaymentDone finalizes the order from the current cart when the
// user taps the manual confirmation button (static-link mode).
func (s *Service) handlePaymentDone(ctx context.Context, userID string) error {
	s.notifyText(ctx, userID, paymentConfirmedText)

	lines, err := s.deps.Carts.Take(ctx, userID)
	if err != nil {
		return fmt.Errorf("take cart: %w", err)
	}
	if len(lines) == 0 {
		s.deps.Logger.Info("payment confirmed with empty cart", zap.String("user", userID))
		return nil
	}
	if err := s.deps.Sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	order := domain.Order{
		OrderID:      shortID(),
		UserID:       userID,
		CustomerName: s.settings.CustomerName,
		Address:      s.settings.CustomerAddress,
		Timestamp:    time.Now(),
		Lines:        lines,
		Total:        domain.CartTotal(lines),
	}
	if err := s.deps.Orders.Append(ctx, order); err != nil {
		// Keep going: the seller notice below still carries the order.
		s.deps.Logger.Error("append order", zap.String("order", order.OrderID), zap.Error(err))
	} else {
		s.deps.Metrics.OrdersFinalized.Inc()
	}

	s.notifyText(ctx, s.settings.SellerNumber, FormatSellerNotice(order))
	return nil
}

func (s *Service) sendMenu(ctx context.Context, userID string) {
	if err := s.deps.Notifier.SendList(ctx, userID, menuBodyText, menuButtonLabel, s.deps.Catalog.Sections()); err != nil {
		s.noteDeliveryFailure("menu list", userID, err)
	}
}

func (s *Service) notifyText(ctx context.Context, to, body string) {
	if err := s.deps.Notifier.SendText(ctx, to, body); err != nil {
		s.noteDeliveryFailure("text", to, err)
	}
}

func (s *Service) noteDeliveryFailure(kind, to string, err error) {
	s.deps.Metrics.NotifierFailures.Inc()
	s.deps.Logger.Warn("message delivery failed",
		zap.String("kind", kind), zap.String("to", to), zap.Error(err))
}

// shortID returns an 8-char reference id, short enough for a bill header.
func shortID() string {
	return uuid.NewString()[:8]
}
