package client

import (
	"context"
	"errors"
	"sync"

	"timeclass-backend/internal/model"
	"timeclass-backend/internal/ws"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var ErrNotConnected = errors.New("channel client not connected")

// wsConn is the slice of *websocket.Conn the client uses.
type wsConn interface {
	WriteJSON(v interface{}) error
	ReadJSON(v interface{}) error
	Close() error
}

// CommentHandler receives live comments for a joined claim.
type CommentHandler func(model.Comment)

// Subscription is one view's membership in a claim room. Each
// subscription de-duplicates by comment UUID so history, the local
// optimistic append, and the channel echo collapse into one entry.
type Subscription struct {
	claimID uint
	client  *ChannelClient
	handler CommentHandler
	seen    map[string]struct{} // guarded by client.mu
	closed  bool                // guarded by client.mu
}

func (s *Subscription) ClaimID() uint { return s.claimID }

// MarkSeen records a UUID so a later channel echo is dropped.
func (s *Subscription) MarkSeen(commentUUID string) {
	if commentUUID == "" {
		return
	}
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	s.seen[commentUUID] = struct{}{}
}

// Leave detaches the subscription. The wire leave-claim goes out only
// when the last subscription for that claim is gone, so a second view
// of the same claim keeps receiving events.
func (s *Subscription) Leave() error {
	return s.client.leave(s)
}

// ChannelClient owns one persistent websocket connection shared by
// every claim view of the process. It is constructed and connected
// explicitly; nothing happens at package load.
type ChannelClient struct {
	url   string
	token string
	log   *zap.Logger

	mu   sync.Mutex
	conn wsConn
	subs map[uint][]*Subscription
	done chan struct{}

	writeMu sync.Mutex
}

func NewChannelClient(url, token string, log *zap.Logger) *ChannelClient {
	return &ChannelClient{
		url:   url,
		token: token,
		log:   log,
		subs:  make(map[uint][]*Subscription),
	}
}

// Connect dials the claim channel endpoint and starts the read pump.
func (c *ChannelClient) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url+"?token="+c.token, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.readPump(conn, done)
	return nil
}

func (c *ChannelClient) Close() error {
	c.mu.Lock()
	conn := c.conn
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.conn = nil
	c.subs = make(map[uint][]*Subscription)
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// Join subscribes a handler to a claim room. seenUUIDs seeds the
// de-duplication set (normally the already-fetched comment history)
// inside the same critical section, so an event racing the join can
// not duplicate a history entry. The wire join-claim is sent only for
// the first subscription of a claim.
func (c *ChannelClient) Join(claimID uint, seenUUIDs []string, handler CommentHandler) (*Subscription, error) {
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}

	sub := &Subscription{
		claimID: claimID,
		client:  c,
		handler: handler,
		seen:    make(map[string]struct{}, len(seenUUIDs)),
	}
	for _, id := range seenUUIDs {
		if id != "" {
			sub.seen[id] = struct{}{}
		}
	}

	first := len(c.subs[claimID]) == 0
	c.subs[claimID] = append(c.subs[claimID], sub)
	c.mu.Unlock()

	if first {
		if err := c.writeJSON(ws.Envelope{Event: ws.EventJoinClaim, ClaimID: claimID}); err != nil {
			c.dropClaim(claimID)
			return nil, err
		}
	}
	return sub, nil
}

// dropClaim tears down every subscription of a claim. Used when the
// wire join fails: subscriptions added while that join was in flight
// never got a server-side membership either, so none of them may stay
// registered.
func (c *ChannelClient) dropClaim(claimID uint) {
	c.mu.Lock()
	for _, s := range c.subs[claimID] {
		s.closed = true
	}
	delete(c.subs, claimID)
	c.mu.Unlock()
}

func (c *ChannelClient) leave(sub *Subscription) error {
	c.mu.Lock()
	if sub.closed {
		c.mu.Unlock()
		return nil
	}
	sub.closed = true

	subs := c.subs[sub.claimID]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	last := len(subs) == 0
	if last {
		delete(c.subs, sub.claimID)
	} else {
		c.subs[sub.claimID] = subs
	}
	connected := c.conn != nil
	c.mu.Unlock()

	if last && connected {
		return c.writeJSON(ws.Envelope{Event: ws.EventLeaveClaim, ClaimID: sub.claimID})
	}
	return nil
}

// SendComment broadcasts a comment to the other members of the claim
// room. Fire-and-forget: the durable copy travels through the REST
// write, which carries the same UUID.
func (c *ChannelClient) SendComment(claimID uint, comment model.Comment) error {
	c.mu.Lock()
	connected := c.conn != nil
	c.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}
	return c.writeJSON(ws.Envelope{Event: ws.EventSendComment, ClaimID: claimID, Comment: &comment})
}

func (c *ChannelClient) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	return conn.WriteJSON(v)
}

func (c *ChannelClient) readPump(conn wsConn, done chan struct{}) {
	for {
		var env ws.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			select {
			case <-done:
			default:
				c.log.Warn("claim channel read failed", zap.Error(err))
			}
			return
		}
		c.dispatch(env)
	}
}

// dispatch fans a received comment out to the live subscriptions of
// that claim. Handlers run outside the lock so they may join or leave
// freely.
func (c *ChannelClient) dispatch(env ws.Envelope) {
	if env.Event != ws.EventReceiveComment || env.Comment == nil {
		return
	}
	comment := *env.Comment

	c.mu.Lock()
	var handlers []CommentHandler
	for _, sub := range c.subs[env.ClaimID] {
		if comment.UUID != "" {
			if _, dup := sub.seen[comment.UUID]; dup {
				continue
			}
			sub.seen[comment.UUID] = struct{}{}
		}
		handlers = append(handlers, sub.handler)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(comment)
	}
}
