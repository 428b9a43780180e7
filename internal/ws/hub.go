package ws

import (
	"sync"

	"timeclass-backend/internal/model"

	"go.uber.org/zap"
)

// jsonConn is the slice of the websocket connection the hub needs.
// Both gofiber's websocket.Conn and test doubles satisfy it.
type jsonConn interface {
	WriteJSON(v interface{}) error
}

// Session wraps one websocket connection. Writes are serialized
// because broadcasts originate from REST handler goroutines as well
// as from other connections' read pumps.
type Session struct {
	UserID uint
	Name   string
	Role   string

	conn jsonConn
	mu   sync.Mutex
}

func (s *Session) send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Hub owns the per-claim rooms. It is constructed once in main and
// handed to the websocket handler and the comment handler; there is
// no package-level instance.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Session]struct{}
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Session]struct{}),
		log:   log,
	}
}

func (h *Hub) NewSession(conn jsonConn, userID uint, name, role string) *Session {
	return &Session{UserID: userID, Name: name, Role: role, conn: conn}
}

func (h *Hub) Join(claimID uint, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[claimID]
	if !ok {
		room = make(map[*Session]struct{})
		h.rooms[claimID] = room
	}
	room[s] = struct{}{}
	h.log.Debug("session joined claim room",
		zap.Uint("claim_id", claimID), zap.Uint("user_id", s.UserID))
}

func (h *Hub) Leave(claimID uint, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(claimID, s)
}

// Drop removes the session from every room. Called when the
// underlying connection closes.
func (h *Hub) Drop(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for claimID := range h.rooms {
		h.removeLocked(claimID, s)
	}
}

func (h *Hub) removeLocked(claimID uint, s *Session) {
	room, ok := h.rooms[claimID]
	if !ok {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, claimID)
	}
}

// BroadcastComment fans a comment out to every member of the claim's
// room. Delivery failures are logged and skipped; viewers reconcile
// through the durable comment history.
func (h *Hub) BroadcastComment(claimID uint, comment *model.Comment) {
	env := Envelope{Event: EventReceiveComment, ClaimID: claimID, Comment: comment}

	h.mu.RLock()
	members := make([]*Session, 0, len(h.rooms[claimID]))
	for s := range h.rooms[claimID] {
		members = append(members, s)
	}
	h.mu.RUnlock()

	for _, s := range members {
		if err := s.send(env); err != nil {
			h.log.Warn("broadcast failed",
				zap.Uint("claim_id", claimID), zap.Uint("user_id", s.UserID), zap.Error(err))
		}
	}
}

// RoomSize reports the member count of a claim room.
func (h *Hub) RoomSize(claimID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[claimID])
}
