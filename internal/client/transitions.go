package client

import (
	"context"
	"errors"
	"fmt"

	"timeclass-backend/internal/model"
)

var (
	ErrUnknownRecord     = errors.New("record not in store")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Workflow orchestrates the two ways a PENDING record leaves that
// state. The same state machine the server enforces is checked
// locally first, so obviously invalid actions fail without a round
// trip.
type Workflow struct {
	api   *API
	store *Store
}

func NewWorkflow(api *API, store *Store) *Workflow {
	return &Workflow{api: api, store: store}
}

// Refresh reloads the teacher's records into the store.
func (w *Workflow) Refresh(ctx context.Context, teacherID uint) error {
	list, err := w.api.WorkHoursByTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	w.store.ReplaceAll(list)
	return nil
}

// Confirm is the "I agree with these hours" action: PENDING or
// REJECTED moves to ACCEPTED and the cached record is updated from
// the response without a full refetch.
func (w *Workflow) Confirm(ctx context.Context, id uint) (*model.WorkHour, error) {
	rec, ok := w.store.Get(id)
	if !ok {
		return nil, ErrUnknownRecord
	}
	if !model.CanTransition(rec.Status, model.StatusAccepted, rec.Claim != nil) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.Status, model.StatusAccepted)
	}

	updated, err := w.api.UpdateStatus(ctx, id, model.StatusAccepted)
	if err != nil {
		return nil, err
	}
	w.store.Apply(ctx, *updated)
	return updated, nil
}

// Dispute files a claim against a PENDING record. The server performs
// claim creation and the PENDING->REJECTED flip atomically, so there
// is no window where a claim exists next to a still-PENDING record.
func (w *Workflow) Dispute(ctx context.Context, id uint, title, description string) (*model.Claim, error) {
	rec, ok := w.store.Get(id)
	if !ok {
		return nil, ErrUnknownRecord
	}
	if rec.Status != model.StatusPending || rec.Claim != nil {
		return nil, fmt.Errorf("%w: cannot dispute %s record", ErrInvalidTransition, rec.Status)
	}

	claim, updated, err := w.api.CreateClaim(ctx, ClaimDraft{
		TeacherID:   rec.TeacherID,
		WorkHourID:  rec.ID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	w.store.Apply(ctx, *updated)
	return claim, nil
}
