package classifier

import "strings"

var baseAdvice = []string{
	"Do not share OTPs, passwords, PINs, or card details.",
	"Do not click on suspicious links or download unknown attachments.",
	"Do not send money, gift cards, or crypto to unknown people.",
	"Verify requests through official channels (bank app, company website, phone number from their official site).",
	"If unsure, ignore the message and do not reply.",
}

type adviceGroup struct {
	keywords []string
	tip      string
}

// adviceGroups are tried in order; a reason picks up at most one tip.
var adviceGroups = []adviceGroup{
	{
		keywords: []string{"otp", "password", "pin"},
		tip:      "Legitimate companies and banks will never ask for OTPs or full passwords over chat.",
	},
	{
		keywords: []string{"won", "lottery", "prize"},
		tip:      "Random messages telling you that you won money or prizes are almost always scams.",
	},
	{
		keywords: []string{"send money", "gift card", "bitcoin", "crypto"},
		tip:      "Never send money or gift cards to someone you only know through chat.",
	},
	{
		keywords: []string{"url shortener"},
		tip:      "Shortened links can hide the real website; open them only if you fully trust the sender.",
	},
}

// BaseAdvice returns a copy of the generic safety tips.
func BaseAdvice() []string {
	return append([]string(nil), baseAdvice...)
}

// BuildAdvice returns the baseline tips followed by tips targeted at the
// given reasons, without duplicates.
func BuildAdvice(reasons []string) []string {
	advice := BaseAdvice()

	for _, reason := range reasons {
		for _, group := range adviceGroups {
			if containsAny(reason, group.keywords) {
				advice = append(advice, group.tip)
				break
			}
		}
	}

	return dedup(advice)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

const (
	RiskHigh   = "high risk"
	RiskMedium = "medium risk"

	highRiskScore = 7
)

// RiskLabel maps a score to the label shown on warnings. Anything below the
// high threshold, including 5 and 6, is labelled medium.
func RiskLabel(score int) string {
	if score >= highRiskScore {
		return RiskHigh
	}
	return RiskMedium
}
