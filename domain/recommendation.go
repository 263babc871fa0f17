package domain

// ScoredCard is a catalog card annotated with the engine's personalized
// metrics. Derived per profile, persisted only on the session snapshot.
type ScoredCard struct {
	Card
	Score                 float64  `json:"score"`
	EstimatedAnnualReward int      `json:"estimatedAnnualReward"`
	NetValue              int      `json:"netValue"`
	ReasonsToChoose       []string `json:"reasonsToChoose"`
}

// CompareInsights aggregates the best performers out of a compared set.
type CompareInsights struct {
	BestValue    *ScoredCard `json:"bestValue"`
	BestRewards  *ScoredCard `json:"bestRewards"`
	LowestFee    *ScoredCard `json:"lowestFee"`
	HighestScore *ScoredCard `json:"highestScore"`
	Summary      []string    `json:"summary"`
}

// RewardBreakdown is the per-category detail of a reward calculation.
type RewardBreakdown struct {
	Category string  `json:"category"`
	Spending int     `json:"monthlySpending"`
	Rate     string  `json:"rate"`
	Reward   float64 `json:"estimatedReward"`
}
