package annotator

import (
	"bytes"
	"html/template"
	"strings"

	"scamguard/internal/classifier"
)

var warningTmpl = template.Must(template.New("warning").Parse(`<div class="scam-guard-warning" style="border: 1px solid #e53935; border-radius: 6px; padding: 6px 8px; margin-top: 4px; background-color: rgba(229,57,53,0.08); font-size: 12px; color: #b71c1c; max-width: 320px;">` +
	`<div style="font-weight: 600; margin-bottom: 4px;">{{.Title}}</div>` +
	`{{if .Reasons}}<div style="margin-bottom: 4px;">{{.ReasonsLine}}</div>{{end}}` +
	`<ul style="padding-left: 18px; margin: 0;">{{range .Advice}}<li>{{.}}</li>{{end}}</ul>` +
	`</div>`))

// Warning is the visual annotation attached to a suspicious message.
type Warning struct {
	RiskLabel string
	Score     int
	Reasons   []string
	Advice    []string
}

func NewWarning(v classifier.Verdict) Warning {
	return Warning{
		RiskLabel: classifier.RiskLabel(v.Score),
		Score:     v.Score,
		Reasons:   v.Reasons,
		Advice:    classifier.BuildAdvice(v.Reasons),
	}
}

func (w Warning) Title() string {
	return "Scam Guard: " + w.RiskLabel + " message"
}

func (w Warning) ReasonsLine() string {
	if len(w.Reasons) == 0 {
		return ""
	}
	return "Suspicious because: " + strings.Join(w.Reasons, ", ")
}

func (w Warning) HTML() (string, error) {
	var buf bytes.Buffer
	if err := warningTmpl.Execute(&buf, w); err != nil {
		return "", err
	}
	return buf.String(), nil
}
