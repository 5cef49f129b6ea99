package classifier

import (
	"context"
	"errors"

	"scamguard/internal/domain"
)

// ErrEmptyText is returned for messages with no text to classify.
var ErrEmptyText = errors.New("empty message text")

// Result is a Verdict with its risk label and safety advice.
type Result struct {
	Verdict
	RiskLabel string   `json:"riskLabel"`
	Advice    []string `json:"advice"`
}

// Classifier scores a single message.
type Classifier interface {
	Classify(ctx context.Context, msg domain.Message) (*Result, error)
}
