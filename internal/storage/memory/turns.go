// Package memory keeps conversation turns in process memory, for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/tuskshop/internal/core"
)

type TurnStore struct {
	mu     sync.RWMutex
	nextID int64
	turns  map[string][]core.Turn
	now    func() time.Time
}

func NewTurnStore() *TurnStore {
	return &TurnStore{
		turns: make(map[string][]core.Turn),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *TurnStore) Append(_ context.Context, sessionID, role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.turns[sessionID] = append(s.turns[sessionID], core.Turn{
		ID:        s.nextID,
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		CreatedAt: s.now(),
	})
	return nil
}

func (s *TurnStore) FetchLast(_ context.Context, sessionID string, exchanges int) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	arr := s.turns[sessionID]
	limit := exchanges * 2
	if len(arr) == 0 || limit <= 0 {
		return nil, nil
	}
	if limit > len(arr) {
		limit = len(arr)
	}

	out := make([]core.Turn, limit)
	copy(out, arr[len(arr)-limit:])
	return out, nil
}
