package annotator

import (
	"bytes"
	"html/template"

	"github.com/PuerkitoBio/goquery"

	"scamguard/internal/classifier"
	"scamguard/internal/domain"
)

var bubbleTmpl = template.Must(template.New("bubble").Parse(
	`<div class="message-in" data-source="{{.Source}}" data-author="{{.Username}}"><span dir="auto">{{.Content}}</span></div>`))

// Bubble renders msg as a chat bubble annotated with v, ready to be pushed
// to a live page.
func (a *Annotator) Bubble(msg domain.Message, v classifier.Verdict) (string, error) {
	var buf bytes.Buffer
	if err := bubbleTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", err
	}

	sel := doc.Find("div.message-in").First()
	if _, err := a.Annotate(bubble{sel: sel}, v); err != nil {
		return "", err
	}

	return goquery.OuterHtml(sel)
}
