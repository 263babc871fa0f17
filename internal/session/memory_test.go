package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, domain.StepGreeting, sess.CurrentStep)
	assert.Empty(t, sess.ChatHistory)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = store.Get(ctx, "nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestMemoryStoreCreateOverwrites(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "s1")
	require.NoError(t, err)
	income := 50000
	_, err = store.UpdateProfile(ctx, "s1", ProfileUpdate{MonthlyIncome: &income})
	require.NoError(t, err)

	fresh, err := store.Create(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Profile.MonthlyIncome)
}

func TestMemoryStoreUpdateProfileMerges(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "s1")
	require.NoError(t, err)

	income := 50000
	_, err = store.UpdateProfile(ctx, "s1", ProfileUpdate{
		MonthlyIncome:  &income,
		SpendingHabits: map[string]int{"dining": 5000},
	})
	require.NoError(t, err)

	// second update touches other fields only; earlier values survive
	score := domain.CreditScore{Value: 750}
	sess, err := store.UpdateProfile(ctx, "s1", ProfileUpdate{
		CreditScore:    &score,
		SpendingHabits: map[string]int{"fuel": 3000},
		Preferences:    &domain.Preferences{RewardType: domain.RewardCashback},
	})
	require.NoError(t, err)

	assert.Equal(t, 50000, sess.Profile.MonthlyIncome)
	assert.Equal(t, 5000, sess.Profile.SpendingHabits["dining"])
	assert.Equal(t, 3000, sess.Profile.SpendingHabits["fuel"])
	assert.Equal(t, 750, sess.Profile.CreditScore.Value)
	assert.Equal(t, domain.RewardCashback, sess.Profile.Preferences.RewardType)
	assert.True(t, sess.IsProfileComplete)

	// preference sub-fields merge independently
	fee := 1000
	sess, err = store.UpdateProfile(ctx, "s1", ProfileUpdate{
		Preferences: &domain.Preferences{MaxAnnualFee: &fee},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RewardCashback, sess.Profile.Preferences.RewardType)
	require.NotNil(t, sess.Profile.Preferences.MaxAnnualFee)
	assert.Equal(t, 1000, *sess.Profile.Preferences.MaxAnnualFee)
}

func TestMemoryStoreReturnsClones(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "s1")
	require.NoError(t, err)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	got.Profile.SpendingHabits["dining"] = 99999

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Profile.SpendingHabits["dining"])
}

func TestMemoryStoreMarkQuestionAskedDeduplicates(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, store.MarkQuestionAsked(ctx, "s1", "income"))
	require.NoError(t, store.MarkQuestionAsked(ctx, "s1", "income"))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"income"}, sess.QuestionsAsked)
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "old")
	require.NoError(t, err)
	_, err = store.Create(ctx, "fresh")
	require.NoError(t, err)

	// only "old" has fallen out of the retention window
	removed := store.SweepExpired(time.Now())
	assert.Equal(t, 0, removed)

	store.mu.Lock()
	store.sessions["old"].UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	removed = store.SweepExpired(time.Now())
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "old")
	assert.True(t, apperr.IsNotFound(err))
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStoreStats(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "a")
	require.NoError(t, err)
	_, err = store.Create(ctx, "b")
	require.NoError(t, err)

	income := 50000
	score := domain.CreditScore{Unknown: true}
	_, err = store.UpdateProfile(ctx, "a", ProfileUpdate{
		MonthlyIncome:  &income,
		CreditScore:    &score,
		SpendingHabits: map[string]int{"online": 8000},
		Preferences:    &domain.Preferences{RewardType: domain.RewardPoints},
	})
	require.NoError(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 2, stats.ActiveInLastHour)
	assert.Equal(t, 1, stats.CompletedProfiles)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(24 * time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperr.IsNotFound(err))

	// deleting a missing session is not an error
	assert.NoError(t, store.Delete(ctx, "s1"))
}
