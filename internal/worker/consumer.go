package worker

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"scamguard/internal/annotator"
	"scamguard/internal/classifier"
	"scamguard/internal/domain"
	"scamguard/internal/notifier"
	"scamguard/internal/queue"
)

type Broadcaster interface {
	Broadcast(msg string)
}

// Consumer classifies queued messages. Suspicious ones are pushed to the
// live feed as annotated bubbles and raise a notification. Nothing is
// stored.
type Consumer struct {
	consumer    queue.Consumer
	classifier  classifier.Classifier
	annotator   *annotator.Annotator
	notifier    notifier.Notifier
	broadcaster Broadcaster
	log         *zap.SugaredLogger
}

func NewConsumer(c queue.Consumer, cl classifier.Classifier, an *annotator.Annotator, n notifier.Notifier, b Broadcaster, log *zap.SugaredLogger) *Consumer {
	return &Consumer{
		consumer:    c,
		classifier:  cl,
		annotator:   an,
		notifier:    n,
		broadcaster: b,
		log:         log,
	}
}

func (w *Consumer) Start(ctx context.Context) error {
	return w.consumer.Consume(ctx, func(msg domain.Message) error {
		return w.handleMessage(ctx, msg)
	})
}

func (w *Consumer) handleMessage(ctx context.Context, msg domain.Message) error {
	w.log.Debugw("received", "id", msg.ID, "author", msg.Username, "content", truncate(msg.Content, 60))

	result, err := w.classifier.Classify(ctx, msg)
	if errors.Is(err, classifier.ErrEmptyText) {
		return nil
	}
	if err != nil {
		w.log.Errorw("classify failed", "id", msg.ID, "error", err)
		return err
	}

	if !result.Suspicious {
		return nil
	}

	w.log.Infow("detected", "id", msg.ID, "score", result.Score, "risk", result.RiskLabel, "reasons", result.Reasons)

	if w.broadcaster != nil {
		markup, err := w.annotator.Bubble(msg, result.Verdict)
		if err != nil {
			w.log.Errorw("render failed", "id", msg.ID, "error", err)
		} else {
			w.broadcaster.Broadcast(markup)
		}
	}

	if err := w.notifier.Notify(ctx, notifier.Notification{
		Message: msg,
		Result:  *result,
	}); err != nil {
		w.log.Errorw("notify failed", "id", msg.ID, "error", err)
	}

	return nil
}
