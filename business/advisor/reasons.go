package advisor

import (
	"fmt"
	"sort"
	"strings"

	"cardadvisor/business/catalog"
	"cardadvisor/domain"
)

const maxReasons = 4

// generateReasons produces up to 4 ordered reason tags: strong rates on
// the user's top spending categories, fee callouts, headline perks, net
// value, and preference alignment.
func generateReasons(card domain.Card, profile domain.UserProfile) []string {
	reasons := make([]string, 0, maxReasons)

	for _, category := range topSpendingCategories(profile.SpendingHabits, 2) {
		rate, ok := card.RewardRate[category]
		if !ok || category == domain.DefaultRateKey {
			continue
		}
		numeric := catalog.NumericRate(rate)
		if numeric < 3 {
			continue
		}
		unit := "x"
		if card.RewardType == domain.RewardCashback {
			unit = "%"
		}
		reasons = append(reasons, fmt.Sprintf("Excellent %g%s rewards on %s", numeric, unit, category))
	}

	if card.AnnualFee == 0 {
		reasons = append(reasons, "Lifetime free with no annual fee")
	} else if card.FeeWaiver != "" && card.FeeWaiver != "None" {
		reasons = append(reasons, fmt.Sprintf("Annual fee waived with %s", strings.ToLower(card.FeeWaiver)))
	}

	if card.HasPerk("lounge") {
		reasons = append(reasons, "Airport lounge access included")
	}
	if card.HasPerk("welcome") {
		reasons = append(reasons, "Attractive welcome bonus")
	}

	netValue := catalog.AnnualReward(card, profile.SpendingHabits) - card.AnnualFee
	if netValue > 5000 {
		reasons = append(reasons, fmt.Sprintf("High value card with ₹%d annual benefit", netValue))
	}

	if rt := profile.Preferences.RewardType; rt != "" && card.RewardType == rt {
		reasons = append(reasons, fmt.Sprintf("Matches your preference for %s", strings.ToLower(string(rt))))
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// topSpendingCategories lists the n highest positive spending categories,
// descending by amount, category name as the deterministic tie-break.
func topSpendingCategories(spending map[string]int, n int) []string {
	type entry struct {
		category string
		amount   int
	}

	entries := make([]entry, 0, len(spending))
	for category, amount := range spending {
		if amount > 0 {
			entries = append(entries, entry{category, amount})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].category < entries[j].category
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.category
	}
	return out
}
