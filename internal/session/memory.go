package session

import (
	"context"
	"sync"
	"time"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
	"cardadvisor/pkg/logger"
)

// MemoryStore keeps sessions in a process-local map. Entries untouched for
// longer than the retention window are removed by a periodic sweep.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*domain.Session
	retention time.Duration

	sweepStop chan struct{}
	sweepOnce sync.Once
}

func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[string]*domain.Session),
		retention: retention,
		sweepStop: make(chan struct{}),
	}
}

// StartSweeper runs the eviction loop until Close. Call at most once.
func (s *MemoryStore) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed := s.SweepExpired(time.Now())
				if removed > 0 {
					logger.Info("Swept expired sessions", "removed", removed)
				}
			case <-s.sweepStop:
				return
			}
		}
	}()
}

func (s *MemoryStore) Close() error {
	s.sweepOnce.Do(func() { close(s.sweepStop) })
	return nil
}

// SweepExpired removes every session whose updatedAt precedes
// now-retention. Returns the number of removed sessions.
func (s *MemoryStore) SweepExpired(now time.Time) int {
	cutoff := now.Add(-s.retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Create(ctx context.Context, id string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	sess := newSession(id, time.Now())

	s.mu.Lock()
	s.sessions[id] = &sess
	s.mu.Unlock()

	return cloneSession(sess), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, apperr.NewNotFound("session '%s' not found", id)
	}

	return cloneSession(*sess), nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, apperr.NewNotFound("session '%s' not found", id)
	}

	applyUpdate(&sess.Profile, update)
	sess.IsProfileComplete = sess.Profile.IsComplete()
	sess.UpdatedAt = time.Now()

	return cloneSession(*sess), nil
}

func (s *MemoryStore) SetStep(ctx context.Context, id string, step domain.Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return apperr.NewNotFound("session '%s' not found", id)
	}

	sess.CurrentStep = step
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) AppendMessage(ctx context.Context, id string, role domain.MessageRole, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return apperr.NewNotFound("session '%s' not found", id)
	}

	sess.ChatHistory = append(sess.ChatHistory, domain.ChatMessage{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) MarkQuestionAsked(ctx context.Context, id string, question string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return apperr.NewNotFound("session '%s' not found", id)
	}

	for _, q := range sess.QuestionsAsked {
		if q == question {
			return nil
		}
	}
	sess.QuestionsAsked = append(sess.QuestionsAsked, question)
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) SetRecommendations(ctx context.Context, id string, recs []domain.ScoredCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return apperr.NewNotFound("session '%s' not found", id)
	}

	sess.Recommendations = recs
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Stats(ctx context.Context) (domain.SessionStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionStats{}, err
	}

	hourAgo := time.Now().Add(-time.Hour)

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.SessionStats{TotalSessions: len(s.sessions)}
	for _, sess := range s.sessions {
		if sess.UpdatedAt.After(hourAgo) {
			stats.ActiveInLastHour++
		}
		if sess.IsProfileComplete {
			stats.CompletedProfiles++
		}
	}
	return stats, nil
}
