package annotator

import (
	"errors"
	"strings"
	"testing"
)

const chatPage = `<html><body><div id="chat">
<div role="row"><div data-testid="msg-container"><span dir="auto">Hi, lunch tomorrow?</span></div></div>
<div role="row"><div data-testid="msg-container" style="padding: 2px"><span dir="auto">Share your OTP and cvv now</span></div></div>
<div class="message-in"><span class="selectable-text">   </span></div>
</div></body></html>`

func newTestDocument(t *testing.T, page string) *Document {
	t.Helper()
	doc, err := NewDocument(strings.NewReader(page), New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestDocument_Scan(t *testing.T) {
	doc := newTestDocument(t, chatPage)

	stats, err := doc.Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Stats{Skipped: 1, Clean: 1, Flagged: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	checked := doc.doc.Find("[" + CheckedAttr + `="true"]`)
	if checked.Length() != 2 {
		t.Errorf("checked bubbles = %d, want 2", checked.Length())
	}

	warnings := doc.doc.Find(".scam-guard-warning")
	if warnings.Length() != 1 {
		t.Fatalf("warnings = %d, want 1", warnings.Length())
	}

	flagged := warnings.Parent()
	style := flagged.AttrOr("style", "")
	if !strings.HasPrefix(style, "padding: 2px;") || !strings.Contains(style, flaggedStyle) {
		t.Errorf("style = %q", style)
	}
	if !strings.Contains(warnings.Text(), "Scam Guard: high risk message") {
		t.Errorf("warning text = %q", warnings.Text())
	}
}

func TestDocument_ScanTwiceDoesNotRedecorate(t *testing.T) {
	doc := newTestDocument(t, chatPage)

	if _, err := doc.Scan(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, err := doc.Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Stats{Skipped: 1, AlreadyChecked: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if n := doc.doc.Find(".scam-guard-warning").Length(); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

func TestDocument_BubbleFallbacks(t *testing.T) {
	page := `<html><body>
<div class="message-out"><div><span dir="ltr">send money by bitcoin</span></div></div>
</body></html>`
	doc := newTestDocument(t, page)

	stats, err := doc.Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Flagged != 1 {
		t.Errorf("flagged = %d, want 1", stats.Flagged)
	}
	if _, ok := doc.doc.Find("div.message-out").Attr(CheckedAttr); !ok {
		t.Error("message-out bubble not marked")
	}
}

func TestDocument_IgnoresSpansOutsideMessages(t *testing.T) {
	page := `<html><body><span dir="auto">otp cvv bitcoin</span></body></html>`
	doc := newTestDocument(t, page)

	stats, err := doc.Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestDocument_ShowBanner(t *testing.T) {
	doc := newTestDocument(t, chatPage)

	doc.ShowBanner()
	doc.ShowBanner()

	banner := doc.doc.Find("#" + BannerID)
	if banner.Length() != 1 {
		t.Fatalf("banners = %d, want 1", banner.Length())
	}
	if banner.Text() != "Scam Guard is active on this page" {
		t.Errorf("banner text = %q", banner.Text())
	}
}

func TestDocument_Append(t *testing.T) {
	doc := newTestDocument(t, chatPage)

	stats, err := doc.Append("#chat", `<div role="row"><div data-testid="msg-container"><span dir="ltr">Congratulations you won! http://tinyurl.com/abc</span></div></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Flagged != 1 {
		t.Errorf("stats = %+v, want one flagged", stats)
	}
	// Existing messages are left for Scan.
	if n := doc.doc.Find("[" + CheckedAttr + "]").Length(); n != 1 {
		t.Errorf("checked bubbles = %d, want 1", n)
	}

	body, err := doc.Body()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "tinyurl.com") {
		t.Error("appended markup missing from body")
	}
}

func TestDocument_AppendUnknownTarget(t *testing.T) {
	doc := newTestDocument(t, chatPage)

	_, err := doc.Append("#nope", `<div></div>`)
	var te *TargetError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TargetError", err)
	}
	if te.Target != "#nope" {
		t.Errorf("target = %q", te.Target)
	}
}
