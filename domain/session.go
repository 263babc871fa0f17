package domain

import "time"

// Step is the conversation position. Progression is strictly sequential
// along StepOrder until the profile is complete.
type Step string

const (
	StepGreeting    Step = "greeting"
	StepIncome      Step = "income"
	StepCreditScore Step = "creditScore"
	StepSpending    Step = "spending"
	StepPreferences Step = "preferences"
	StepAnnualFee   Step = "annualFee"
	StepComplete    Step = "complete"
)

// StepOrder is the fixed question sequence. The state machine advances one
// position per message regardless of which field the answer filled.
var StepOrder = []Step{StepGreeting, StepIncome, StepCreditScore, StepSpending, StepPreferences}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// Session is the per-conversation state. Owned by exactly one session
// store entry; callers must not retain mutable references across messages.
type Session struct {
	ID                string        `json:"id"`
	Profile           UserProfile   `json:"userProfile"`
	ChatHistory       []ChatMessage `json:"chatHistory"`
	QuestionsAsked    []string      `json:"questionsAsked"`
	CurrentStep       Step          `json:"currentStep"`
	IsProfileComplete bool          `json:"isProfileComplete"`
	Recommendations   []ScoredCard  `json:"recommendations,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// NextStep advances one position along StepOrder from the current step,
// jumping straight to complete the moment the profile satisfies all four
// completeness predicates. Progression never moves backward.
func NextStep(profile UserProfile, current Step) Step {
	if profile.IsComplete() {
		return StepComplete
	}
	for i, s := range StepOrder {
		if s == current {
			if i < len(StepOrder)-1 {
				return StepOrder[i+1]
			}
			return StepComplete
		}
	}
	return StepComplete
}

// SessionStats is the aggregate view served on the stats endpoint.
type SessionStats struct {
	TotalSessions     int `json:"totalSessions"`
	ActiveInLastHour  int `json:"activeSessions"`
	CompletedProfiles int `json:"completedProfiles"`
}
