package phrasing

import (
	"context"
	"fmt"
	"strings"

	"cardadvisor/domain"
)

var stepMessages = map[domain.Step][]string{
	domain.StepGreeting: {
		"Hi! I'm your credit card advisor. I'll ask a few quick questions and find the cards that fit you best. To start, what's your monthly income?",
		"Hello! Let's find you the right credit card. First up, roughly how much do you earn per month?",
	},
	domain.StepIncome: {
		"Got it. Do you know your credit score? A rough number is fine, or just say you don't know.",
		"Thanks! What about your credit score? If you're not sure, that's okay too.",
	},
	domain.StepCreditScore: {
		"Great. Now tell me about your monthly spending. For example, how much do you spend on dining, travel, fuel or groceries?",
		"Noted. Where does your money usually go each month? Dining, travel, fuel, groceries, online shopping?",
	},
	domain.StepSpending: {
		"Almost there. Do you prefer cashback or reward points? Any benefits you care about, like lounge access?",
		"Last question: cashback or points? And are there perks you'd love, such as airport lounge access?",
	},
	domain.StepPreferences: {
		"Perfect, I have everything I need. Let me pull up your recommendations.",
	},
	domain.StepAnnualFee: {
		"One more thing. What's the maximum annual fee you'd be comfortable paying? You can also say free.",
	},
	domain.StepComplete: {
		"Your profile is complete! Ask me anything about the recommended cards, or say reset to start over.",
	},
}

var stepSuggestions = map[domain.Step][]string{
	domain.StepGreeting:    {"₹50,000 per month", "₹1 lakh per month", "₹30,000 per month"},
	domain.StepIncome:      {"My score is 750", "Around 650", "I don't know my score"},
	domain.StepCreditScore: {"₹10,000 on dining and ₹5,000 on fuel", "₹15,000 on travel", "₹8,000 on groceries"},
	domain.StepSpending:    {"Cashback", "Reward points", "Points with lounge access"},
	domain.StepPreferences: {"Show my recommendations"},
	domain.StepAnnualFee:   {"Free cards only", "Up to ₹1,000", "Up to ₹5,000"},
	domain.StepComplete:    {"Compare my top cards", "Why this card?", "Reset"},
}

// Suggestions returns the quick-reply chips shown for a step.
func Suggestions(step domain.Step) []string {
	return stepSuggestions[step]
}

// StaticProvider serves canned phrasing and never fails. It sits at the end
// of every chain so conversations keep moving when no LLM is reachable.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) Available(_ context.Context) bool { return true }

func (p *StaticProvider) GenerateResponse(_ context.Context, history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) (Reply, error) {
	next := domain.NextStep(profile, step)
	messages := stepMessages[step]
	if len(messages) == 0 {
		messages = stepMessages[domain.StepComplete]
	}
	// Rotate by history length so repeated turns on the same step vary while
	// staying reproducible for a given conversation.
	msg := messages[len(history)%len(messages)]
	return Reply{
		Message:     msg,
		NextStep:    next,
		Suggestions: stepSuggestions[step],
	}, nil
}

func (p *StaticProvider) GenerateRecommendationExplanation(_ context.Context, cards []domain.ScoredCard, profile domain.UserProfile) (string, error) {
	if len(cards) == 0 {
		return "I couldn't find cards matching your profile yet. Try adjusting your preferences and I'll look again.", nil
	}
	top := cards[0]
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your profile, %s from %s is my top pick with a match score of %.0f%%.", top.Name, top.Issuer, top.Score)
	if top.EstimatedAnnualReward > 0 {
		fmt.Fprintf(&b, " You could earn around ₹%d in rewards every year.", top.EstimatedAnnualReward)
	}
	if len(top.ReasonsToChoose) > 0 {
		fmt.Fprintf(&b, " Highlights: %s.", strings.Join(top.ReasonsToChoose, "; "))
	}
	if len(cards) > 1 {
		fmt.Fprintf(&b, " I've also listed %d more options worth a look.", len(cards)-1)
	}
	return b.String(), nil
}
