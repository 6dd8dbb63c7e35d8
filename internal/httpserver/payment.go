package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
)

// paymentWebhookHandler feeds provider callbacks to the reconciler. The
// provider is always acknowledged with 200 to stop redelivery.
func paymentWebhookHandler(logger *zap.Logger, payments PaymentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ev razorpay.WebhookEvent
		if err := c.ShouldBindJSON(&ev); err != nil {
			logger.Warn("malformed payment webhook payload", zap.Error(err))
			c.Status(http.StatusOK)
			return
		}

		if err := payments.HandlePaid(c.Request.Context(), ev); err != nil {
			logger.Error("handle payment callback",
				zap.String("event", ev.Event),
				zap.String("reference", ev.Payload.PaymentLink.Entity.ReferenceID),
				zap.Error(err))
		}
		c.Status(http.StatusOK)
	}
}
