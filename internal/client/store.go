package client

import (
	"context"
	"sync"

	"timeclass-backend/internal/model"
)

// Store is the read-mostly cache of work-hour records. Mutations come
// back from the REST layer and are applied in place; the socket
// channel never writes here.
type Store struct {
	mu      sync.RWMutex
	records map[uint]model.WorkHour
}

func NewStore() *Store {
	return &Store{records: make(map[uint]model.WorkHour)}
}

func (s *Store) ReplaceAll(list []model.WorkHour) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[uint]model.WorkHour, len(list))
	for _, wh := range list {
		s.records[wh.ID] = wh
	}
}

// Apply updates a single cached record from a mutation response.
// A response whose originating context was already cancelled is
// dropped so a torn-down view cannot write stale state.
func (s *Store) Apply(ctx context.Context, wh model.WorkHour) bool {
	if ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[wh.ID] = wh
	return true
}

func (s *Store) Get(id uint) (model.WorkHour, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wh, ok := s.records[id]
	return wh, ok
}

func (s *Store) All() []model.WorkHour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]model.WorkHour, 0, len(s.records))
	for _, wh := range s.records {
		list = append(list, wh)
	}
	return list
}

func (s *Store) Pending() []model.WorkHour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []model.WorkHour
	for _, wh := range s.records {
		if wh.Status == model.StatusPending {
			list = append(list, wh)
		}
	}
	return list
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
