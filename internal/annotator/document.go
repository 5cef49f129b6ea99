package annotator

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	CheckedAttr = "data-scam-guard-checked"
	BannerID    = "scam-guard-active-banner"

	containerSelector = `div[role="row"] div[data-testid="msg-container"], div.message-in, div.message-out`
	textSelector      = `span[dir="ltr"], span[dir="auto"], span.selectable-text`

	flaggedStyle = "border: 2px solid #e53935; border-radius: 8px;"
	bannerHTML   = `<div id="` + BannerID + `" data-dismiss-after="5000" style="position: fixed; bottom: 12px; right: 12px; z-index: 99999; background-color: rgba(25,118,210,0.9); color: #ffffff; padding: 6px 10px; border-radius: 4px; font-size: 12px; box-shadow: 0 2px 6px rgba(0,0,0,0.3);">Scam Guard is active on this page</div>`
)

// Document is an HTML chat page held in memory. It is not safe for
// concurrent use; a Watcher owns it while running.
type Document struct {
	doc       *goquery.Document
	annotator *Annotator
}

func NewDocument(r io.Reader, a *Annotator) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc, annotator: a}, nil
}

// Scan checks every message already present in the page.
func (d *Document) Scan() (Stats, error) {
	return d.check(d.doc.Selection)
}

// ShowBanner adds the "active" banner unless the page already has one.
func (d *Document) ShowBanner() {
	if d.doc.Find("#"+BannerID).Length() > 0 {
		return
	}
	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return
	}
	body.AppendHtml(bannerHTML)
}

// Append inserts markup under the first element matching target and checks
// the messages inside the inserted nodes. An empty target means body.
func (d *Document) Append(target, markup string) (Stats, error) {
	if target == "" {
		target = "body"
	}
	parent := d.doc.Find(target).First()
	if parent.Length() == 0 {
		return Stats{}, &TargetError{Target: target}
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), parent.Get(0))
	if err != nil {
		return Stats{}, err
	}
	parent.AppendNodes(nodes...)

	var stats Stats
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		s, err := d.check(d.doc.FindNodes(n))
		stats.Merge(s)
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// Body returns the inner HTML of the body element.
func (d *Document) Body() (string, error) {
	return d.doc.Find("body").First().Html()
}

func (d *Document) check(root *goquery.Selection) (Stats, error) {
	var (
		stats Stats
		err   error
	)
	FindMessageTextElements(root).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		b := bubbleFor(span)
		if b.Length() == 0 {
			return true
		}
		var outcome Outcome
		outcome, err = d.annotator.Check(bubble{sel: b}, span.Text())
		stats.add(outcome)
		return err == nil
	})
	return stats, err
}

// FindMessageTextElements returns the text spans of all message bubbles
// below root.
func FindMessageTextElements(root *goquery.Selection) *goquery.Selection {
	return root.Find(containerSelector).Find(textSelector)
}

func bubbleFor(span *goquery.Selection) *goquery.Selection {
	if b := span.Closest(`div[data-testid="msg-container"]`); b.Length() > 0 {
		return b
	}
	if b := span.Closest("div.message-in, div.message-out"); b.Length() > 0 {
		return b
	}
	return span.Parent()
}

type bubble struct {
	sel *goquery.Selection
}

func (b bubble) IsChecked() bool {
	_, ok := b.sel.Attr(CheckedAttr)
	return ok
}

func (b bubble) MarkChecked() {
	b.sel.SetAttr(CheckedAttr, "true")
}

func (b bubble) Flag(w Warning) error {
	markup, err := w.HTML()
	if err != nil {
		return err
	}

	style := strings.TrimSpace(b.sel.AttrOr("style", ""))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	b.sel.SetAttr("style", strings.TrimSpace(style+" "+flaggedStyle))
	b.sel.AppendHtml(markup)
	return nil
}

type TargetError struct {
	Target string
}

func (e *TargetError) Error() string {
	return "no element matches " + e.Target
}
