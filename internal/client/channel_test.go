package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timeclass-backend/internal/model"
	"timeclass-backend/internal/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// wsTestServer is a minimal claim channel endpoint: it records every
// frame the client sends and lets tests push events back.
type wsTestServer struct {
	*httptest.Server
	frames chan ws.Envelope
	conns  chan *websocket.Conn
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()
	srv := &wsTestServer{
		frames: make(chan ws.Envelope, 16),
		conns:  make(chan *websocket.Conn, 1),
	}

	upgrader := websocket.Upgrader{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		srv.conns <- conn

		go func() {
			for {
				var env ws.Envelope
				if err := conn.ReadJSON(&env); err != nil {
					return
				}
				srv.frames <- env
			}
		}()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *wsTestServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func (s *wsTestServer) conn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case c := <-s.conns:
		return c
	case <-time.After(time.Second):
		t.Fatal("no websocket connection arrived")
		return nil
	}
}

func (s *wsTestServer) expectFrame(t *testing.T, event string, claimID uint) {
	t.Helper()
	select {
	case env := <-s.frames:
		assert.Equal(t, event, env.Event)
		assert.Equal(t, claimID, env.ClaimID)
	case <-time.After(time.Second):
		t.Fatalf("expected %s frame for claim %d, got none", event, claimID)
	}
}

func (s *wsTestServer) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case env := <-s.frames:
		t.Fatalf("unexpected frame: %+v", env)
	case <-time.After(100 * time.Millisecond):
	}
}

func pushComment(t *testing.T, conn *websocket.Conn, claimID uint, uuid string) {
	t.Helper()
	cm := &model.Comment{UUID: uuid, ClaimID: claimID, Content: "hi"}
	require.NoError(t, conn.WriteJSON(ws.Envelope{
		Event: ws.EventReceiveComment, ClaimID: claimID, Comment: cm,
	}))
}

func connectedClient(t *testing.T, srv *wsTestServer) *ChannelClient {
	t.Helper()
	c := NewChannelClient(srv.wsURL(), "test-token", zap.NewNop())
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestJoinSendsOneWireJoinPerClaim(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	sink := func(model.Comment) {}

	first, err := c.Join(7, nil, sink)
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	// Second viewer of the same claim: membership is shared, no
	// second wire join
	second, err := c.Join(7, nil, sink)
	require.NoError(t, err)
	srv.expectSilence(t)

	// First leave keeps the room alive for the other viewer
	require.NoError(t, first.Leave())
	srv.expectSilence(t)

	// Last leave releases the room
	require.NoError(t, second.Leave())
	srv.expectFrame(t, ws.EventLeaveClaim, 7)
}

func TestOpenCloseOpenYieldsSingleSubscription(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	received := make(chan model.Comment, 8)
	handler := func(cm model.Comment) { received <- cm }

	sub, err := c.Join(7, nil, handler)
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	require.NoError(t, sub.Leave())
	srv.expectFrame(t, ws.EventLeaveClaim, 7)

	_, err = c.Join(7, nil, handler)
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	// Exactly one live subscription: one delivery per event
	pushComment(t, srv.conn(t), 7, "c-1")
	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("comment not delivered")
	}
	select {
	case cm := <-received:
		t.Fatalf("duplicate delivery: %+v", cm)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDeliveryDedupedByUUID(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	received := make(chan model.Comment, 8)
	_, err := c.Join(7, nil, func(cm model.Comment) { received <- cm })
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	conn := srv.conn(t)

	// The same comment arrives twice (REST fan-out plus peer echo)
	pushComment(t, conn, 7, "c-1")
	pushComment(t, conn, 7, "c-1")
	pushComment(t, conn, 7, "c-2")

	var got []string
	deadline := time.After(time.Second)
	for len(got) < 2 {
		select {
		case cm := <-received:
			got = append(got, cm.UUID)
		case <-deadline:
			t.Fatalf("expected 2 deliveries, got %v", got)
		}
	}
	assert.Equal(t, []string{"c-1", "c-2"}, got)

	select {
	case cm := <-received:
		t.Fatalf("duplicate delivery: %+v", cm)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSeededHistoryNotRedelivered(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	received := make(chan model.Comment, 8)
	_, err := c.Join(7, []string{"h-1", "h-2"}, func(cm model.Comment) { received <- cm })
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	conn := srv.conn(t)
	pushComment(t, conn, 7, "h-1") // already in the fetched history
	pushComment(t, conn, 7, "c-3")

	select {
	case cm := <-received:
		assert.Equal(t, "c-3", cm.UUID)
	case <-time.After(time.Second):
		t.Fatal("live comment not delivered")
	}
	select {
	case cm := <-received:
		t.Fatalf("history comment redelivered: %+v", cm)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLeaveStopsEventDelivery(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	received := make(chan model.Comment, 8)
	sub, err := c.Join(7, nil, func(cm model.Comment) { received <- cm })
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	require.NoError(t, sub.Leave())
	srv.expectFrame(t, ws.EventLeaveClaim, 7)

	// A straggler event for the left claim must not reach the handler
	pushComment(t, srv.conn(t), 7, "c-1")
	select {
	case cm := <-received:
		t.Fatalf("event delivered after leave: %+v", cm)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEventsForOtherClaimsIgnored(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	received := make(chan model.Comment, 8)
	_, err := c.Join(7, nil, func(cm model.Comment) { received <- cm })
	require.NoError(t, err)
	srv.expectFrame(t, ws.EventJoinClaim, 7)

	conn := srv.conn(t)
	pushComment(t, conn, 9, "other")
	pushComment(t, conn, 7, "mine")

	select {
	case cm := <-received:
		assert.Equal(t, "mine", cm.UUID)
	case <-time.After(time.Second):
		t.Fatal("comment not delivered")
	}
}

func TestSendCommentReachesWire(t *testing.T) {
	srv := newWSTestServer(t)
	c := connectedClient(t, srv)

	cm := model.Comment{UUID: "c-1", ClaimID: 7, Content: "hello"}
	require.NoError(t, c.SendComment(7, cm))

	select {
	case env := <-srv.frames:
		assert.Equal(t, ws.EventSendComment, env.Event)
		assert.Equal(t, uint(7), env.ClaimID)
		require.NotNil(t, env.Comment)
		assert.Equal(t, "c-1", env.Comment.UUID)
		assert.Equal(t, "hello", env.Comment.Content)
	case <-time.After(time.Second):
		t.Fatal("send-comment frame not received")
	}
}

func TestJoinWithoutConnect(t *testing.T) {
	c := NewChannelClient("ws://127.0.0.1:0", "t", zap.NewNop())
	_, err := c.Join(7, nil, func(model.Comment) {})
	assert.ErrorIs(t, err, ErrNotConnected)
}

// stallConn blocks inside WriteJSON until released, then fails the
// write. Lets a test interleave a second Join while the first wire
// join is still in flight.
type stallConn struct {
	entered chan struct{}
	release chan struct{}
}

func (s *stallConn) WriteJSON(v interface{}) error {
	s.entered <- struct{}{}
	<-s.release
	return errors.New("broken pipe")
}

func (s *stallConn) ReadJSON(v interface{}) error { select {} }
func (s *stallConn) Close() error                 { return nil }

func TestFailedWireJoinTearsDownAllSubscribers(t *testing.T) {
	sc := &stallConn{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewChannelClient("ws://unused", "t", zap.NewNop())
	c.conn = sc

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Join(7, nil, func(model.Comment) {})
		firstErr <- err
	}()
	<-sc.entered // the first join is on the wire

	// A second subscriber arrives while the join is still in flight
	received := make(chan model.Comment, 1)
	sub2, err := c.Join(7, nil, func(cm model.Comment) { received <- cm })
	require.NoError(t, err)

	close(sc.release)
	require.Error(t, <-firstErr)

	// The server never saw a join; the second subscriber must not
	// stay registered and silently receive nothing
	c.dispatch(ws.Envelope{Event: ws.EventReceiveComment, ClaimID: 7, Comment: &model.Comment{UUID: "c-1"}})
	select {
	case cm := <-received:
		t.Fatalf("orphaned subscriber got an event: %+v", cm)
	case <-time.After(100 * time.Millisecond):
	}

	// Leave of the torn-down subscription is a no-op, no wire leave
	require.NoError(t, sub2.Leave())
}
