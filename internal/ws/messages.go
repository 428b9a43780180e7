package ws

import "timeclass-backend/internal/model"

// Wire events on the claim channel. Clients join/leave per-claim
// rooms and broadcast comments; the server relays receive-comment to
// every member of the room. send-comment is fire-and-forget.
const (
	EventJoinClaim      = "join-claim"
	EventLeaveClaim     = "leave-claim"
	EventSendComment    = "send-comment"
	EventReceiveComment = "receive-comment"
)

type Envelope struct {
	Event   string         `json:"event"`
	ClaimID uint           `json:"claim_id,omitempty"`
	Comment *model.Comment `json:"comment,omitempty"`
}
