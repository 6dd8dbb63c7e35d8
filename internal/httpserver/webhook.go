package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/service/conversation"
	"github.com/sankezzz/UdyamSakhi-Backend/internal/whatsapp"
)

// verifyHandler answers the platform's GET challenge using the shared
// verify token.
func verifyHandler(verifyToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("hub.verify_token") == verifyToken {
			c.String(http.StatusOK, c.Query("hub.challenge"))
			return
		}
		c.String(http.StatusForbidden, "Invalid verification token")
	}
}

// messageWebhookHandler feeds inbound messages to the conversation engine.
// It always acknowledges with 200 so the platform does not redeliver;
// internal failures are logged and, where user-facing, answered in chat.
func messageWebhookHandler(logger *zap.Logger, conv ConversationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var env whatsapp.Envelope
		if err := c.ShouldBindJSON(&env); err != nil {
			logger.Warn("malformed webhook payload", zap.Error(err))
			c.String(http.StatusOK, "OK")
			return
		}

		msg, ok := env.FirstMessage()
		if !ok {
			// Status updates and other non-message changes.
			c.String(http.StatusOK, "OK")
			return
		}

		if err := conv.HandleMessage(c.Request.Context(), msg.From, eventFromMessage(msg)); err != nil {
			logger.Error("handle message", zap.String("from", msg.From), zap.Error(err))
		}
		c.String(http.StatusOK, "OK")
	}
}

func eventFromMessage(msg whatsapp.Message) conversation.Event {
	if msg.Interactive != nil {
		if reply := msg.Interactive.ButtonReply; reply != nil {
			return conversation.Event{Kind: conversation.EventButton, Value: reply.ID}
		}
		if reply := msg.Interactive.ListReply; reply != nil {
			return conversation.Event{Kind: conversation.EventList, Value: reply.ID}
		}
	}
	body := ""
	if msg.Text != nil {
		body = msg.Text.Body
	}
	return conversation.Event{Kind: conversation.EventText, Value: body}
}
