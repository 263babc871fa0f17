// Package extract parses typed profile fields out of free-text chat
// messages. Every extractor is a pure function; a missed match is the only
// failure mode, reported through the ok return.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"cardadvisor/domain"
)

const (
	incomeFloor   = 15000
	incomeCeiling = 10000000
)

var (
	incomeCurrencyRe = regexp.MustCompile(`(?i)(\d{1,6})\s*(?:rupees?|rs|₹)`)
	incomeSymbolRe   = regexp.MustCompile(`₹\s*(\d{1,6})`)
	incomeThousandRe = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:k|thousand)`)
	incomeLakhRe     = regexp.MustCompile(`(?i)(\d{1,2})\s*lakh`)
	incomeBareRe     = regexp.MustCompile(`\b(\d{4,6})\b`)
)

// Income pulls a monthly income in rupees out of the message. Patterns are
// tried most-specific first; a bare 4-6 digit number is the last resort.
// Values outside [15000, 10000000] are treated as misses.
func Income(text string) (int, bool) {
	amount := 0

	if m := incomeCurrencyRe.FindStringSubmatch(text); m != nil {
		amount, _ = strconv.Atoi(m[1])
	}
	if amount == 0 {
		if m := incomeSymbolRe.FindStringSubmatch(text); m != nil {
			amount, _ = strconv.Atoi(m[1])
		}
	}
	if amount == 0 {
		if m := incomeThousandRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			amount = n * 1000
		}
	}
	if amount == 0 {
		if m := incomeLakhRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			amount = n * 100000
		}
	}
	if amount == 0 {
		if m := incomeBareRe.FindStringSubmatch(text); m != nil {
			amount, _ = strconv.Atoi(m[1])
		}
	}

	if amount >= incomeFloor && amount <= incomeCeiling {
		return amount, true
	}

	return 0, false
}

var dontKnowPhrases = []string{"don't know", "unknown", "not sure", "no idea"}

var scoreAdjectives = []struct {
	keyword string
	score   int
}{
	// "very good" must outrank the plain "good" check
	{"excellent", 800},
	{"very good", 800},
	{"good", 700},
	{"fair", 600},
	{"average", 600},
	{"poor", 500},
	{"bad", 500},
}

var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{3})\b`),
	regexp.MustCompile(`(?i)score.*?(\d{3})`),
	regexp.MustCompile(`(?i)around.*?(\d{3})`),
	regexp.MustCompile(`(?i)(\d{3}).*?range`),
}

// CreditScore reads a credit score: an "I don't know" phrase yields the
// unknown sentinel, a descriptive adjective maps to a fixed point, and
// otherwise the first 3-digit number in [300,900] wins.
func CreditScore(text string) (domain.CreditScore, bool) {
	lower := strings.ToLower(text)

	for _, phrase := range dontKnowPhrases {
		if strings.Contains(lower, phrase) {
			return domain.CreditScore{Unknown: true}, true
		}
	}

	for _, adj := range scoreAdjectives {
		if strings.Contains(lower, adj.keyword) {
			return domain.CreditScore{Value: adj.score}, true
		}
	}

	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		score, _ := strconv.Atoi(m[1])
		if score >= 300 && score <= 900 {
			return domain.CreditScore{Value: score}, true
		}
	}

	return domain.CreditScore{}, false
}

// The grouped branch requires at least one comma group so plain numbers
// fall through to \d+ (alternation in Go regexp is leftmost-first, not
// longest).
var spendingAmountRe = regexp.MustCompile(`₹?\s*(\d{1,3}(?:,\d{3})+|\d+)`)

var categoryRes = buildCategoryRes()

func buildCategoryRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, category := range domain.SpendingCategories {
		if category == domain.DefaultRateKey {
			continue
		}
		res[category] = regexp.MustCompile(`(?i)` + category + `[^\d]*₹?\s*(\d{1,3}(?:,\d{3})+|\d+)`)
	}
	return res
}

// Spending scans for each known category keyword followed by an amount.
// When no category keyword matches at all, the first bare amount in the
// message is attributed to the default bucket.
func Spending(text string) (map[string]int, bool) {
	spending := make(map[string]int)

	for category, re := range categoryRes {
		if m := re.FindStringSubmatch(text); m != nil {
			spending[category] = parseGrouped(m[1])
		}
	}

	if len(spending) == 0 {
		if m := spendingAmountRe.FindStringSubmatch(text); m != nil {
			spending[domain.DefaultRateKey] = parseGrouped(m[1])
		}
	}

	if len(spending) == 0 {
		return nil, false
	}

	return spending, true
}

var benefitKeywords = []string{"lounge", "travel", "dining", "fuel"}

// Preferences spots reward-type and benefit keywords. "cashback" beats
// "points"/"travel" for the reward type; benefit keywords accumulate
// independently.
func Preferences(text string) (domain.Preferences, bool) {
	lower := strings.ToLower(text)
	var prefs domain.Preferences

	if strings.Contains(lower, "cashback") {
		prefs.RewardType = domain.RewardCashback
	} else if strings.Contains(lower, "points") || strings.Contains(lower, "travel") {
		prefs.RewardType = domain.RewardPoints
	}

	for _, keyword := range benefitKeywords {
		if strings.Contains(lower, keyword) {
			prefs.Benefits = append(prefs.Benefits, keyword)
		}
	}

	if prefs.RewardType == "" && len(prefs.Benefits) == 0 {
		return domain.Preferences{}, false
	}

	return prefs, true
}

// AnnualFee reads a fee ceiling: "free"/"no fee" means zero, otherwise the
// first monetary amount in the message.
func AnnualFee(text string) (int, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "free") || strings.Contains(lower, "no fee") {
		return 0, true
	}

	if m := spendingAmountRe.FindStringSubmatch(text); m != nil {
		return parseGrouped(m[1]), true
	}

	return 0, false
}

func parseGrouped(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}
