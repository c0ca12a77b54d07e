package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
)

// ChangeEvent is the decoded product-change notification carried on the CDC
// stream. The cdc listener and the backfill job both publish this shape.
type ChangeEvent struct {
	Table string `json:"table"`
	Kind  string `json:"kind"`
	ID    uint64 `json:"id"`
}

// WorkerPool fans product-change messages out to a bounded set of embedding
// workers. The pool owns the message lifecycle: malformed payloads are acked
// and dropped (redelivery cannot fix them), handler failures are nacked so
// the message is redelivered.
type WorkerPool struct {
	jobs    chan *nats.Msg
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler func(ctx context.Context, event ChangeEvent) error
}

func NewWorkerPool(ctx context.Context, maxWorkers, queueSize int, handler func(ctx context.Context, event ChangeEvent) error) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		jobs:    make(chan *nats.Msg, queueSize),
		ctx:     poolCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (w *WorkerPool) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case msg, ok := <-w.jobs:
			if !ok {
				return
			}
			w.processMessage(msg)
		}
	}
}

func (w *WorkerPool) processMessage(msg *nats.Msg) {
	var event ChangeEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.Error("discarding malformed change message", "err", err)
		w.ack(msg)
		return
	}
	if event.ID == 0 {
		slog.Error("discarding change message without product id", "table", event.Table)
		w.ack(msg)
		return
	}

	if err := w.handler(w.ctx, event); err != nil {
		slog.Error("failed to handle product change", "id", event.ID, "err", err)
		if err := msg.Nak(); err != nil {
			slog.Error("failed to nak message", "err", err)
		}
		return
	}

	w.ack(msg)
}

func (w *WorkerPool) ack(msg *nats.Msg) {
	if err := msg.Ack(); err != nil {
		slog.Error("failed to ack message", "err", err)
	}
}

// Submit sends a message to the worker pool. Blocks if queue is full
// (backpressure). Returns false if context is cancelled.
func (w *WorkerPool) Submit(ctx context.Context, msg *nats.Msg) bool {
	select {
	case w.jobs <- msg:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

func (w *WorkerPool) Stop() {
	w.cancel()
	close(w.jobs)
}

func (w *WorkerPool) Wait() {
	w.wg.Wait()
}
