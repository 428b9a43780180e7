package ws

import (
	"sync"
	"testing"

	"timeclass-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu     sync.Mutex
	writes []Envelope
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, v.(Envelope))
	return nil
}

func (f *fakeConn) received() []Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Envelope, len(f.writes))
	copy(out, f.writes)
	return out
}

func newTestHub() *Hub {
	return NewHub(zap.NewNop())
}

func comment(u string) *model.Comment {
	return &model.Comment{UUID: u, Content: "hello"}
}

func TestBroadcastReachesOnlyRoomMembers(t *testing.T) {
	hub := newTestHub()

	viewerConn, strangerConn := &fakeConn{}, &fakeConn{}
	viewer := hub.NewSession(viewerConn, 1, "Maria", model.RoleTeacher)
	stranger := hub.NewSession(strangerConn, 2, "Admin", model.RoleAdmin)

	hub.Join(7, viewer)
	hub.Join(9, stranger)

	hub.BroadcastComment(7, comment("c-1"))

	require.Len(t, viewerConn.received(), 1)
	got := viewerConn.received()[0]
	assert.Equal(t, EventReceiveComment, got.Event)
	assert.Equal(t, uint(7), got.ClaimID)
	assert.Equal(t, "c-1", got.Comment.UUID)

	assert.Empty(t, strangerConn.received())
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := newTestHub()

	conn := &fakeConn{}
	s := hub.NewSession(conn, 1, "Maria", model.RoleTeacher)

	hub.Join(7, s)
	hub.BroadcastComment(7, comment("c-1"))
	hub.Leave(7, s)
	hub.BroadcastComment(7, comment("c-2"))

	require.Len(t, conn.received(), 1)
	assert.Equal(t, "c-1", conn.received()[0].Comment.UUID)
}

func TestDropRemovesFromAllRooms(t *testing.T) {
	hub := newTestHub()

	conn := &fakeConn{}
	s := hub.NewSession(conn, 1, "Maria", model.RoleTeacher)

	hub.Join(7, s)
	hub.Join(9, s)
	assert.Equal(t, 1, hub.RoomSize(7))
	assert.Equal(t, 1, hub.RoomSize(9))

	hub.Drop(s)
	assert.Equal(t, 0, hub.RoomSize(7))
	assert.Equal(t, 0, hub.RoomSize(9))

	hub.BroadcastComment(7, comment("c-1"))
	hub.BroadcastComment(9, comment("c-2"))
	assert.Empty(t, conn.received())
}

func TestBroadcastToMultipleMembers(t *testing.T) {
	hub := newTestHub()

	conns := []*fakeConn{{}, {}, {}}
	for i, c := range conns {
		hub.Join(7, hub.NewSession(c, uint(i+1), "user", model.RoleTeacher))
	}

	hub.BroadcastComment(7, comment("c-1"))

	for _, c := range conns {
		require.Len(t, c.received(), 1)
	}
}
