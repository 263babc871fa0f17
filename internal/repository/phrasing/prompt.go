package phrasing

import (
	"fmt"
	"strings"

	"cardadvisor/domain"
)

var stepGoals = map[domain.Step]string{
	domain.StepGreeting:    "Greet the user warmly and ask for their monthly income.",
	domain.StepIncome:      "Acknowledge the income and ask for their credit score, allowing them to say they don't know.",
	domain.StepCreditScore: "Ask how much they spend per month across categories like dining, travel, fuel and groceries.",
	domain.StepSpending:    "Ask whether they prefer cashback or reward points, and which benefits matter to them.",
	domain.StepPreferences: "Tell the user their profile is complete and recommendations are coming up.",
	domain.StepAnnualFee:   "Ask the maximum annual fee they are willing to pay.",
	domain.StepComplete:    "Answer follow-up questions about the recommended cards.",
}

func conversationPrompt(history []domain.ChatMessage, profile domain.UserProfile, step domain.Step) string {
	var b strings.Builder
	b.WriteString("You are a friendly credit card advisor for the Indian market. ")
	b.WriteString("Reply in at most two short sentences, no markdown.\n\n")
	fmt.Fprintf(&b, "Current goal: %s\n\n", stepGoals[step])
	b.WriteString(profileSummary(profile))
	if n := len(history); n > 0 {
		b.WriteString("\nRecent conversation:\n")
		start := n - 6
		if start < 0 {
			start = 0
		}
		for _, m := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
		}
	}
	b.WriteString("\nadvisor:")
	return b.String()
}

func explanationPrompt(cards []domain.ScoredCard, profile domain.UserProfile) string {
	var b strings.Builder
	b.WriteString("You are a credit card advisor. Explain the following recommendations to the user ")
	b.WriteString("in a short, friendly paragraph. Mention the top card by name with its estimated annual reward.\n\n")
	b.WriteString(profileSummary(profile))
	b.WriteString("\nRecommended cards:\n")
	for i, c := range cards {
		fmt.Fprintf(&b, "%d. %s (%s), score %.0f, estimated annual reward ₹%d, reasons: %s\n",
			i+1, c.Name, c.Issuer, c.Score, c.EstimatedAnnualReward, strings.Join(c.ReasonsToChoose, "; "))
	}
	return b.String()
}

func profileSummary(profile domain.UserProfile) string {
	var b strings.Builder
	b.WriteString("User profile so far:\n")
	if profile.MonthlyIncome > 0 {
		fmt.Fprintf(&b, "- monthly income: ₹%d\n", profile.MonthlyIncome)
	}
	if profile.CreditScore.IsSet() {
		fmt.Fprintf(&b, "- credit score: %s\n", profile.CreditScore.String())
	}
	for _, cat := range domain.SpendingCategories {
		if amt := profile.SpendingHabits[cat]; amt > 0 {
			fmt.Fprintf(&b, "- spends ₹%d monthly on %s\n", amt, cat)
		}
	}
	if profile.Preferences.RewardType != "" {
		fmt.Fprintf(&b, "- prefers %s\n", profile.Preferences.RewardType)
	}
	if len(profile.Preferences.Benefits) > 0 {
		fmt.Fprintf(&b, "- wants benefits: %s\n", strings.Join(profile.Preferences.Benefits, ", "))
	}
	return b.String()
}
