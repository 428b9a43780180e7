package ws

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Handler runs the read pump for one upgraded connection. Identity is
// resolved during the upgrade (token query param) and carried in the
// connection locals.
type Handler struct {
	hub *Hub
	log *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

func (h *Handler) Serve(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(uint)
	name, _ := conn.Locals("name").(string)
	role, _ := conn.Locals("role").(string)

	session := h.hub.NewSession(conn, userID, name, role)
	h.log.Info("websocket connected", zap.Uint("user_id", userID))

	defer func() {
		h.hub.Drop(session)
		conn.Close()
		h.log.Info("websocket disconnected", zap.Uint("user_id", userID))
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		switch env.Event {
		case EventJoinClaim:
			h.hub.Join(env.ClaimID, session)
		case EventLeaveClaim:
			h.hub.Leave(env.ClaimID, session)
		case EventSendComment:
			if env.Comment == nil {
				continue
			}
			// Stamp the author from the authenticated session so a
			// client cannot broadcast under someone else's name. The
			// durable copy of the comment arrives via the REST write.
			comment := *env.Comment
			comment.ClaimID = env.ClaimID
			comment.AuthorID = session.UserID
			comment.AuthorName = session.Name
			comment.AuthorRole = session.Role
			h.hub.BroadcastComment(env.ClaimID, &comment)
		default:
			h.log.Debug("unknown websocket event", zap.String("event", env.Event))
		}
	}
}
