// Package annotator marks chat message elements after classification and
// attaches a warning to the suspicious ones. The host page is reached only
// through the Element capability, so the same rules apply to any tree that
// can tag a node as checked and append markup to it.
package annotator

// Element is a message bubble in the host tree.
type Element interface {
	// IsChecked reports whether the bubble was already processed.
	IsChecked() bool
	// MarkChecked tags the bubble as processed.
	MarkChecked()
	// Flag highlights the bubble and attaches the warning.
	Flag(w Warning) error
}
