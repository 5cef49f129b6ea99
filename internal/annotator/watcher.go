package annotator

import (
	"context"

	"go.uber.org/zap"
)

// Mutation is one insertion into the page: markup appended under the first
// element matching Target.
type Mutation struct {
	Target string `json:"target"`
	HTML   string `json:"html"`
}

// Watcher applies batches of mutations to a Document on a single goroutine
// and checks the messages they add.
type Watcher struct {
	doc *Document
	log *zap.SugaredLogger
}

func NewWatcher(doc *Document, log *zap.SugaredLogger) *Watcher {
	return &Watcher{doc: doc, log: log}
}

// Run consumes batches until the channel is closed or ctx is done. A
// mutation that cannot be applied is logged and skipped.
func (w *Watcher) Run(ctx context.Context, batches <-chan []Mutation) (Stats, error) {
	var total Stats
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case batch, ok := <-batches:
			if !ok {
				return total, nil
			}
			total.Merge(w.apply(batch))
		}
	}
}

func (w *Watcher) apply(batch []Mutation) Stats {
	var stats Stats
	for _, m := range batch {
		s, err := w.doc.Append(m.Target, m.HTML)
		stats.Merge(s)
		if err != nil {
			w.log.Warnw("mutation skipped", "target", m.Target, "error", err)
		}
	}
	if stats.Flagged > 0 {
		w.log.Debugw("batch annotated", "flagged", stats.Flagged, "clean", stats.Clean)
	}
	return stats
}
