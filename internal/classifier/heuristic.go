package classifier

import (
	"context"
	"net/url"
	"strings"

	"scamguard/internal/domain"
)

// Verdict is the outcome of classifying one text.
type Verdict struct {
	Suspicious bool     `json:"suspicious"`
	Reasons    []string `json:"reasons"`
	URLs       []string `json:"urls"`
	Score      int      `json:"score"`
}

// Classify scores text against the rule table, the money-amount pattern and
// the shortener list. It is a pure function and never fails.
func Classify(text string) Verdict {
	lowered := strings.ToLower(text)

	var reasons []string
	score := 0

	for _, rule := range Rules {
		for _, phrase := range rule.Phrases {
			if strings.Contains(lowered, phrase) {
				reasons = append(reasons, phrase)
				score += rule.Score
				break
			}
		}
	}

	if moneyAmount.MatchString(text) {
		reasons = append(reasons, MoneyAmountReason)
		score += MoneyAmountScore
	}

	urls := urlExtractor.FindAllString(text, -1)
	if urls == nil {
		urls = []string{}
	}

	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		host := strings.ToLower(u.Hostname())
		for _, shortener := range Shorteners {
			if host == shortener || strings.HasSuffix(host, "."+shortener) {
				reasons = append(reasons, shortenerReason(shortener))
				score += ShortenerScore
			}
		}
	}

	return Verdict{
		Suspicious: score >= SuspiciousThreshold,
		Reasons:    dedup(reasons),
		URLs:       urls,
		Score:      score,
	}
}

func shortenerReason(shortener string) string {
	return "link via url shortener (" + shortener + ")"
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Heuristic adapts Classify to the Classifier interface.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Classify(_ context.Context, msg domain.Message) (*Result, error) {
	if strings.TrimSpace(msg.Content) == "" {
		return nil, ErrEmptyText
	}

	verdict := Classify(msg.Content)

	return &Result{
		Verdict:   verdict,
		RiskLabel: RiskLabel(verdict.Score),
		Advice:    BuildAdvice(verdict.Reasons),
	}, nil
}
