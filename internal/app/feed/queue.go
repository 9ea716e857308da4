package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/bradenaw/juniper/container/deque"
)

// ErrQueueClosed is returned by Queue operations after Close.
var ErrQueueClosed = errors.New("update queue closed")

// Queue is an unbounded FIFO of updates.
// Push never blocks; Pop blocks until an update is available, the context is done, or
// the queue is closed.
type Queue struct {
	mu     sync.Mutex
	items  deque.Deque[Update]
	closed bool

	// wake is closed and replaced on every state change to release blocked Pop calls.
	wake chan struct{}
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{})}
}

// Push appends u to the tail.
func (q *Queue) Push(u Update) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.items.PushBack(u)
	q.signalLocked()
	return nil
}

// Unpop returns u to the head, ahead of everything already queued.
func (q *Queue) Unpop(u Update) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.items.PushFront(u)
	q.signalLocked()
	return nil
}

// Pop removes and returns the head of the queue, waiting for one if it is empty.
// It returns ctx.Err() when ctx is done first and ErrQueueClosed once the queue is closed.
func (q *Queue) Pop(ctx context.Context) (Update, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Update{}, err
		}

		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return Update{}, ErrQueueClosed
		}
		if q.items.Len() > 0 {
			u := q.items.PopFront()
			q.mu.Unlock()
			return u, nil
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return Update{}, ctx.Err()
		}
	}
}

// Len returns the number of queued updates.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Close discards queued updates and releases every blocked Pop. Closing twice is a no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	for q.items.Len() > 0 {
		q.items.PopFront()
	}
	close(q.wake)
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) signalLocked() {
	close(q.wake)
	q.wake = make(chan struct{})
}
