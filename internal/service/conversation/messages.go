package conversation

import (
	"fmt"
	"strings"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

const (
	welcomeText = "Welcome to our small business! We offer handcrafted goods made with love. How can we assist you?"

	contactText = "*📞 Contact Information:*\n\n" +
		"👩‍💼 *Owner:* Aarti Creations\n" +
		"📍 *Location:* Bhupeshnagar, Nagpur\n" +
		"📱 *Phone:* +91 7719436134\n" +
		"📧 *Email:* support@aarticreations.in\n" +
		"🕒 *Working Hours:* 10 AM - 6 PM (Mon - Sat)"

	menuBodyText    = "*✨ Our Handmade Collection:*\nSelect items one by one."
	menuButtonLabel = "Choose Items"

	addMoreOrConfirmText = "Do you want to add more items or confirm your order?"
	invalidReplyText     = "Invalid input. Please reply with 'menu' or 'confirm'."

	emptyCartText        = "*🛒 Your cart is empty!* Please select items from the menu."
	payLinkFailureText   = "⚠️ Failed to generate payment link. Please try again later."
	autoConfirmText      = "📌 Once payment is complete, you'll get a confirmation automatically."
	markPaidPromptText   = "✅ Once paid, click below to confirm your payment."
	paymentConfirmedText = "*✅ Payment Confirmed!* Thank you for your order! 🙏"
)

// FormatBill renders the itemized order summary sent before payment.
func FormatBill(orderID, customerName, address string, lines []domain.CartLine, total int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*✨ Your Order Summary:*\nOrder ID: %s\nUserName: %s\nAddress: %s\n", orderID, customerName, address)
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s: ₹%d\n", line.Name, line.Price)
	}
	fmt.Fprintf(&b, "\n*Total: ₹%d*", total)
	return b.String()
}

// FormatSellerNotice renders the message sent to the seller when an order
// is finalized. Shared with the payment reconciler.
func FormatSellerNotice(order domain.Order) string {
	paymentID := order.PaymentID
	if paymentID == "" {
		paymentID = "N/A"
	}
	var b strings.Builder
	b.WriteString("🧾 *New Order Received!*\n")
	fmt.Fprintf(&b, "👤 Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "🏠 Address: %s\n", order.Address)
	fmt.Fprintf(&b, "🕒 Time: %s\n", order.Timestamp.Format("02-01-2006 15:04:05"))
	fmt.Fprintf(&b, "🧾 Payment ID: %s\n\n", paymentID)
	b.WriteString("*🛍️ Items:*\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "- %s: ₹%d\n", line.Name, line.Price)
	}
	fmt.Fprintf(&b, "\n💰 *Total: ₹%d*\nOrder to be prepared in 5 days", order.Total)
	return b.String()
}
