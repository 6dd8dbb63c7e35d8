package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/observability"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/razorpay"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/service/conversation"
)

// ConversationHandler drives the order conversation for one inbound event.
type ConversationHandler interface {
	HandleMessage(ctx context.Context, userID string, ev conversation.Event) error
}

// PaymentHandler reconciles payment-provider callbacks.
type PaymentHandler interface {
	HandlePaid(ctx context.Context, ev razorpay.WebhookEvent) error
}

// Deps carries the wired services for the router.
type Deps struct {
	Conversation ConversationHandler
	Payments     PaymentHandler
	VerifyToken  string
	Metrics      *observability.Metrics
}

// buildRouter wires routes for the bot.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Conversation == nil || deps.Payments == nil {
		return nil, errors.New("httpserver: conversation and payment handlers are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), cors.Default())

	router.GET("/", statusHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/webhook", verifyHandler(deps.VerifyToken))
	router.POST("/webhook", messageWebhookHandler(logger, deps.Conversation))
	router.POST("/payment/webhook", paymentWebhookHandler(logger, deps.Payments))

	return router, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
