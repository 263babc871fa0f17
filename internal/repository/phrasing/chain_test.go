package phrasing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardadvisor/domain"
)

type fakeProvider struct {
	name      string
	available bool
	err       error
	calls     int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Available(_ context.Context) bool { return f.available }

func (f *fakeProvider) GenerateResponse(_ context.Context, _ []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error) {
	f.calls++
	if f.err != nil {
		return Reply{}, f.err
	}
	return Reply{Message: f.name + " says hi", NextStep: domain.NextStep(profile, step)}, nil
}

func (f *fakeProvider) GenerateRecommendationExplanation(_ context.Context, _ []domain.ScoredCard, _ domain.UserProfile) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.name + " explanation", nil
}

func TestChainFirstSuccessWins(t *testing.T) {
	first := &fakeProvider{name: "first", available: true}
	second := &fakeProvider{name: "second", available: true}
	chain := NewChain(time.Second, first, second)

	reply, err := chain.GenerateResponse(context.Background(), nil, domain.NewUserProfile(), domain.StepGreeting)
	require.NoError(t, err)
	assert.Equal(t, "first says hi", reply.Message)
	assert.Equal(t, 0, second.calls)
}

func TestChainFallsThroughOnError(t *testing.T) {
	broken := &fakeProvider{name: "broken", available: true, err: errors.New("model offline")}
	working := &fakeProvider{name: "working", available: true}
	chain := NewChain(time.Second, broken, working)

	reply, err := chain.GenerateResponse(context.Background(), nil, domain.NewUserProfile(), domain.StepGreeting)
	require.NoError(t, err)
	assert.Equal(t, "working says hi", reply.Message)
	assert.Equal(t, 1, broken.calls)
}

func TestChainSkipsUnavailable(t *testing.T) {
	down := &fakeProvider{name: "down", available: false}
	chain := NewChain(time.Second, down)

	// the terminal static provider always answers
	reply, err := chain.GenerateResponse(context.Background(), nil, domain.NewUserProfile(), domain.StepGreeting)
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Message)
	assert.Equal(t, 0, down.calls)
	assert.Equal(t, domain.StepIncome, reply.NextStep)
}

func TestChainAlwaysEndsInStatic(t *testing.T) {
	chain := NewChain(time.Second)

	text, err := chain.GenerateRecommendationExplanation(context.Background(), nil, domain.NewUserProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	current, available := chain.Status(context.Background())
	assert.Equal(t, "static", current)
	assert.Equal(t, []string{"static"}, available)
}

func TestChainStatusPrefersFirstAvailable(t *testing.T) {
	down := &fakeProvider{name: "down", available: false}
	up := &fakeProvider{name: "up", available: true}
	chain := NewChain(time.Second, down, up)

	current, available := chain.Status(context.Background())
	assert.Equal(t, "up", current)
	assert.Equal(t, []string{"up", "static"}, available)
}

func TestStaticProviderRotatesDeterministically(t *testing.T) {
	p := NewStaticProvider()
	profile := domain.NewUserProfile()

	short := []domain.ChatMessage{{Role: domain.RoleUser, Text: "hi"}}
	longer := append(short, domain.ChatMessage{Role: domain.RoleAssistant, Text: "hello"})

	a, err := p.GenerateResponse(context.Background(), short, profile, domain.StepIncome)
	require.NoError(t, err)
	b, err := p.GenerateResponse(context.Background(), short, profile, domain.StepIncome)
	require.NoError(t, err)
	c, err := p.GenerateResponse(context.Background(), longer, profile, domain.StepIncome)
	require.NoError(t, err)

	assert.Equal(t, a.Message, b.Message)
	assert.NotEqual(t, a.Message, c.Message)
	assert.Equal(t, domain.StepCreditScore, a.NextStep)
	assert.NotEmpty(t, a.Suggestions)
}

func TestStaticExplanationMentionsTopCard(t *testing.T) {
	p := NewStaticProvider()

	cards := []domain.ScoredCard{{
		Card:                  domain.Card{Name: "Starter Card", Issuer: "SBI"},
		Score:                 82.5,
		EstimatedAnnualReward: 6000,
		ReasonsToChoose:       []string{"Lifetime free with no annual fee"},
	}}

	text, err := p.GenerateRecommendationExplanation(context.Background(), cards, domain.NewUserProfile())
	require.NoError(t, err)
	assert.Contains(t, text, "Starter Card")
	assert.Contains(t, text, "₹6000")
}
