package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"timeclass-backend/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ViewState int

const (
	ViewClosed ViewState = iota
	ViewOpening
	ViewOpen
)

var ErrViewNotOpen = errors.New("claim view is not open")

// Author identifies the local commenter.
type Author struct {
	ID   uint
	Name string
	Role string
}

// ClaimView keeps one claim's comment thread consistent while it is
// on screen: CLOSED -> OPENING (fetch in flight) -> OPEN (subscribed)
// -> CLOSED (left the room, local state cleared). Events that arrive
// after Close never mutate state.
type ClaimView struct {
	api     *API
	channel *ChannelClient
	author  Author
	log     *zap.Logger

	mu       sync.Mutex
	state    ViewState
	claim    *model.Claim
	comments []model.Comment
	sub      *Subscription
	onAppend func(model.Comment)
}

func NewClaimView(api *API, channel *ChannelClient, author Author, log *zap.Logger) *ClaimView {
	return &ClaimView{api: api, channel: channel, author: author, log: log}
}

// OnAppend registers the hook called for every newly appended comment
// (the UI scrolls to the newest entry from here).
func (v *ClaimView) OnAppend(fn func(model.Comment)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onAppend = fn
}

func (v *ClaimView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ClaimView) Claim() *model.Claim {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.claim
}

func (v *ClaimView) Comments() []model.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Comment, len(v.comments))
	copy(out, v.comments)
	return out
}

// Open loads the claim for a work-hour record, loads its comment
// history and joins the claim room. On any fetch failure the view
// stays closed and empty rather than showing a stale thread.
func (v *ClaimView) Open(ctx context.Context, workHourID uint) error {
	v.mu.Lock()
	if v.state != ViewClosed {
		v.mu.Unlock()
		return fmt.Errorf("claim view already open")
	}
	v.state = ViewOpening
	v.mu.Unlock()

	claim, err := v.api.ClaimByWorkHour(ctx, workHourID)
	if err != nil {
		v.abortOpen()
		return err
	}

	history, err := v.api.Comments(ctx, claim.ID)
	if err != nil {
		v.abortOpen()
		return err
	}

	seen := make([]string, 0, len(history))
	for _, cm := range history {
		seen = append(seen, cm.UUID)
	}

	sub, err := v.channel.Join(claim.ID, seen, v.appendLive)
	if err != nil {
		v.abortOpen()
		return err
	}

	v.mu.Lock()
	v.state = ViewOpen
	v.claim = claim
	v.comments = history
	v.sub = sub
	v.mu.Unlock()
	return nil
}

func (v *ClaimView) abortOpen() {
	v.mu.Lock()
	v.state = ViewClosed
	v.claim = nil
	v.comments = nil
	v.sub = nil
	v.mu.Unlock()
}

// Send authors a comment: appended locally right away, broadcast on
// the channel and written durably through REST. All three paths carry
// the same UUID so no viewer ends up with duplicates. A channel
// failure is logged but does not block the durable write.
func (v *ClaimView) Send(ctx context.Context, content string) error {
	v.mu.Lock()
	if v.state != ViewOpen || v.claim == nil {
		v.mu.Unlock()
		return ErrViewNotOpen
	}
	claimID := v.claim.ID
	sub := v.sub
	v.mu.Unlock()

	comment := model.Comment{
		UUID:       uuid.NewString(),
		ClaimID:    claimID,
		AuthorID:   v.author.ID,
		AuthorName: v.author.Name,
		AuthorRole: v.author.Role,
		Content:    content,
	}
	comment.CreatedAt = time.Now()

	sub.MarkSeen(comment.UUID)
	v.append(comment)

	if err := v.channel.SendComment(claimID, comment); err != nil {
		v.log.Warn("channel broadcast failed", zap.Uint("claim_id", claimID), zap.Error(err))
	}

	if _, err := v.api.PostComment(ctx, claimID, comment.UUID, content); err != nil {
		return fmt.Errorf("durable comment write: %w", err)
	}
	return nil
}

// Close leaves the claim room and clears local comment state.
func (v *ClaimView) Close() error {
	v.mu.Lock()
	if v.state != ViewOpen {
		v.state = ViewClosed
		v.mu.Unlock()
		return nil
	}
	sub := v.sub
	v.state = ViewClosed
	v.claim = nil
	v.comments = nil
	v.sub = nil
	v.mu.Unlock()

	return sub.Leave()
}

// appendLive handles channel events. Anything arriving for a claim no
// longer on screen is dropped.
func (v *ClaimView) appendLive(cm model.Comment) {
	v.mu.Lock()
	if v.state != ViewOpen || v.claim == nil || cm.ClaimID != v.claim.ID {
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()
	v.append(cm)
}

func (v *ClaimView) append(cm model.Comment) {
	v.mu.Lock()
	if v.state != ViewOpen {
		v.mu.Unlock()
		return
	}
	v.comments = append(v.comments, cm)
	fn := v.onAppend
	v.mu.Unlock()

	if fn != nil {
		fn(cm)
	}
}
