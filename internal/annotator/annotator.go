package annotator

import (
	"strings"

	"scamguard/internal/classifier"
)

// Annotator applies verdicts to message elements. A checked element is
// never classified or decorated again.
type Annotator struct {
	classify func(string) classifier.Verdict
}

func New() *Annotator {
	return &Annotator{classify: classifier.Classify}
}

// Check classifies text and annotates el with the result. Empty text and
// already checked elements are skipped.
func (a *Annotator) Check(el Element, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return OutcomeSkipped, nil
	}
	if el.IsChecked() {
		return OutcomeAlreadyChecked, nil
	}
	return a.Annotate(el, a.classify(text))
}

// Annotate marks el as checked and flags it when v is suspicious.
func (a *Annotator) Annotate(el Element, v classifier.Verdict) (Outcome, error) {
	if el.IsChecked() {
		return OutcomeAlreadyChecked, nil
	}

	el.MarkChecked()

	if !v.Suspicious {
		return OutcomeClean, nil
	}

	if err := el.Flag(NewWarning(v)); err != nil {
		return OutcomeClean, err
	}
	return OutcomeFlagged, nil
}

type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeAlreadyChecked
	OutcomeClean
	OutcomeFlagged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAlreadyChecked:
		return "already_checked"
	case OutcomeClean:
		return "clean"
	case OutcomeFlagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// Stats counts outcomes over a scan.
type Stats struct {
	Skipped        int `json:"skipped"`
	AlreadyChecked int `json:"alreadyChecked"`
	Clean          int `json:"clean"`
	Flagged        int `json:"flagged"`
}

func (s *Stats) add(o Outcome) {
	switch o {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeAlreadyChecked:
		s.AlreadyChecked++
	case OutcomeClean:
		s.Clean++
	case OutcomeFlagged:
		s.Flagged++
	}
}

func (s *Stats) Merge(o Stats) {
	s.Skipped += o.Skipped
	s.AlreadyChecked += o.AlreadyChecked
	s.Clean += o.Clean
	s.Flagged += o.Flagged
}
