// Package fifo provides an unbounded first-in first-out channel.
//
// A plain buffered channel either drops or blocks once full. The producers
// feeding a Queue include OS hook callbacks, which must never block, so the
// backlog lives in a slice and only the consumer side is a channel.
package fifo

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrQueueClosed is returned by Push after Close has been called.
var ErrQueueClosed = errors.New("queue closed")

// Queue is an unbounded FIFO. Push never blocks; values are delivered on Out
// in push order. Out is closed once the queue is closed and fully drained.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{}
	out    chan T
}

// New creates a queue and starts its delivery goroutine.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		notify: make(chan struct{}, 1),
		out:    make(chan T),
	}
	go q.pump()
	return q
}

// Push appends v to the queue.
func (q *Queue[T]) Push(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.wake()
	return nil
}

// Out returns the receive side of the queue.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Len reports the number of values waiting to be received.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting new values. Values already pushed are still
// delivered before Out is closed. Close is safe to call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wake()
}

func (q *Queue[T]) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue[T]) pump() {
	defer close(q.out)

	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.notify
			continue
		}

		item := q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		q.mu.Unlock()

		q.out <- item
	}
}
