package realtime

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/localkart/core-api/models"
	"github.com/localkart/core-api/utils"
)

// Authorize upgrades only authenticated booking participants. Browsers cannot
// set headers on websocket requests, so the bearer token travels in the
// "token" query parameter.
func (h *Hub) Authorize(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token, err := jwt.Parse(c.Query("token"), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid or expired token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid token claims")
		}
		rawID, ok := claims["userId"].(float64)
		if !ok {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "Invalid user ID in token")
		}
		userID := uint(rawID)

		var user models.User
		if err := h.db.First(&user, userID).Error; err != nil || !user.IsActive {
			return utils.Fail(c, fiber.StatusUnauthorized, utils.CodeAuth, "User not found")
		}

		var booking models.Booking
		if err := h.db.Preload("Provider").First(&booking, c.Params("id")).Error; err != nil {
			return utils.Fail(c, fiber.StatusNotFound, utils.CodeNotFound, "Booking not found")
		}
		if booking.CustomerID != userID && booking.Provider.UserID != userID {
			return utils.Fail(c, fiber.StatusForbidden, utils.CodeForbidden, "Access denied to this booking")
		}

		receiverID := booking.Provider.UserID
		if userID == booking.Provider.UserID {
			receiverID = booking.CustomerID
		}

		c.Locals("userID", userID)
		c.Locals("bookingID", booking.ID)
		c.Locals("receiverID", receiverID)
		return c.Next()
	}
}

type socketError struct {
	Error string `json:"error"`
}

// HandleConn runs one websocket connection: joins the booking room, pumps
// outbound payloads, and relays inbound messages until the peer goes away.
func (h *Hub) HandleConn(conn *websocket.Conn) {
	cl := &client{
		bookingID:  conn.Locals("bookingID").(uint),
		userID:     conn.Locals("userID").(uint),
		receiverID: conn.Locals("receiverID").(uint),
		send:       make(chan []byte, sendBuffer),
	}
	h.join(cl)
	h.log.Infow("relay client joined", "bookingId", cl.bookingID, "userId", cl.userID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for payload := range cl.send {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	// All writes go through cl.send so the connection has a single writer.
	errPayload, _ := json.Marshal(socketError{Error: "Failed to send message"})

	ctx := context.Background()
	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			break
		}
		if err := h.handleInbound(ctx, cl, in); err != nil {
			h.log.Warnw("relay message rejected", "bookingId", cl.bookingID, "userId", cl.userID, "error", err)
			select {
			case cl.send <- errPayload:
			default:
			}
		}
	}

	h.leave(cl)
	<-done
	h.log.Infow("relay client left", "bookingId", cl.bookingID, "userId", cl.userID)
}
