package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/relayhq/relay/internal/message"
	"github.com/relayhq/relay/internal/message/event"
)

// Worker consumes message.created events from the hub and runs the
// processor for each one. It owns a single goroutine started by Start
// and stopped by Stop.
type Worker struct {
	logger    *slog.Logger
	hub       *event.Hub
	processor *Processor

	unsubscribe func()
	done        chan struct{}
}

func NewWorker(log *slog.Logger, hub *event.Hub, processor *Processor) *Worker {
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		logger:    log.With(slog.String("service", "pipeline-worker")),
		hub:       hub,
		processor: processor,
	}
}

// Start subscribes to the hub and begins processing events in the
// background. ctx bounds the processing of individual events, not the
// subscription.
func (w *Worker) Start(ctx context.Context) {
	events, unsubscribe := w.hub.Subscribe()
	w.unsubscribe = unsubscribe
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		for e := range events {
			w.handle(ctx, e)
		}
	}()
	w.logger.Info("pipeline worker started")
}

// Stop unsubscribes from the hub and waits for the in-flight event, if
// any, to finish.
func (w *Worker) Stop() {
	if w.unsubscribe == nil {
		return
	}
	w.unsubscribe()
	<-w.done
	w.logger.Info("pipeline worker stopped")
}

func (w *Worker) handle(ctx context.Context, e event.Event) {
	if e.Type != event.EventTypeMessageCreated {
		return
	}
	var m message.Message
	if err := json.Unmarshal(e.Data, &m); err != nil {
		w.logger.Error("decoding message event failed",
			slog.String("chat_id", e.ChatID),
			slog.Any("error", err),
		)
		return
	}
	w.processor.Process(ctx, m)
}
