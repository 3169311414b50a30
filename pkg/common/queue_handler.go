package common

import (
	"iter"
	"slices"
	"sync"
	"time"
)

type QueueProcessor[V any] func(items []V)

// QueueHandler collects items and hands them to the processor in chunks from a
// background goroutine.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	interval  time.Duration
	done      chan struct{}
	stopped   chan struct{}
}

func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int, interval time.Duration) *QueueHandler[V] {
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: max(chunkSize, 1),
		interval:  interval,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go q.processQueue()
	return q
}

func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, item...)
}

func (h *QueueHandler[V]) AddIter(item iter.Seq[V]) {
	h.Add(slices.Collect(item)...)
}

func (h *QueueHandler[V]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

func (h *QueueHandler[V]) next() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := slices.Clone(h.queue[:min(h.chunkSize, len(h.queue))])
	h.queue = h.queue[len(items):]
	return items
}

// Flush processes everything queued so far on the calling goroutine.
func (h *QueueHandler[V]) Flush() {
	for items := h.next(); items != nil; items = h.next() {
		h.processor(items)
	}
}

func (h *QueueHandler[V]) processQueue() {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.Flush()
		}
	}
}

// Close stops the background goroutine and processes what is left.
func (h *QueueHandler[V]) Close() {
	close(h.done)
	<-h.stopped
	h.Flush()
}
