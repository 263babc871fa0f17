package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions in redis with the retention window as the
// key TTL, so eviction needs no sweep of its own. Every write refreshes
// the TTL.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		retention: retention,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisStore) save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (s *RedisStore) load(ctx context.Context, id string) (domain.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, apperr.NewNotFound("session '%s' not found", id)
		}
		return domain.Session{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return domain.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return sess, nil
}

func (s *RedisStore) Create(ctx context.Context, id string) (domain.Session, error) {
	sess := newSession(id, time.Now())
	if err := s.save(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.load(ctx, id)
}

func (s *RedisStore) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (domain.Session, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	applyUpdate(&sess.Profile, update)
	sess.IsProfileComplete = sess.Profile.IsComplete()
	sess.UpdatedAt = time.Now()

	if err := s.save(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *RedisStore) SetStep(ctx context.Context, id string, step domain.Step) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	sess.CurrentStep = step
	sess.UpdatedAt = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) AppendMessage(ctx context.Context, id string, role domain.MessageRole, text string) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	sess.ChatHistory = append(sess.ChatHistory, domain.ChatMessage{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	sess.UpdatedAt = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) MarkQuestionAsked(ctx context.Context, id string, question string) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	for _, q := range sess.QuestionsAsked {
		if q == question {
			return nil
		}
	}
	sess.QuestionsAsked = append(sess.QuestionsAsked, question)
	sess.UpdatedAt = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) SetRecommendations(ctx context.Context, id string, recs []domain.ScoredCard) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	sess.Recommendations = recs
	sess.UpdatedAt = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Stats(ctx context.Context) (domain.SessionStats, error) {
	var stats domain.SessionStats
	hourAgo := time.Now().Add(-time.Hour)

	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		val, err := s.client.Get(ctx, iter.Val()).Result()
		if err != nil {
			continue
		}

		var sess domain.Session
		if err := json.Unmarshal([]byte(val), &sess); err != nil {
			continue
		}

		stats.TotalSessions++
		if sess.UpdatedAt.After(hourAgo) {
			stats.ActiveInLastHour++
		}
		if sess.IsProfileComplete {
			stats.CompletedProfiles++
		}
	}
	if err := iter.Err(); err != nil {
		return domain.SessionStats{}, fmt.Errorf("failed to scan sessions: %w", err)
	}

	return stats, nil
}
