package bot

import "sync"

// dispatcher runs queued tasks strictly in arrival order per user while
// distinct users run concurrently. Enqueueing happens on the receive loop,
// so per-user order follows the order updates arrive in.
type dispatcher struct {
	mu sync.Mutex
	// pending holds each user's queued tasks. A key is present exactly
	// while a worker goroutine is draining that user's queue.
	pending map[int64][]func()
}

func newDispatcher() *dispatcher {
	return &dispatcher{pending: make(map[int64][]func())}
}

// enqueue appends fn to the user's queue, starting a worker for the user if
// none is draining it.
func (d *dispatcher) enqueue(userID int64, fn func()) {
	d.mu.Lock()
	queue, active := d.pending[userID]
	d.pending[userID] = append(queue, fn)
	d.mu.Unlock()
	if !active {
		go d.drain(userID)
	}
}

// drain runs the user's tasks one at a time until the queue is empty, then
// removes the queue so the next enqueue starts a fresh worker.
func (d *dispatcher) drain(userID int64) {
	for {
		d.mu.Lock()
		queue := d.pending[userID]
		if len(queue) == 0 {
			delete(d.pending, userID)
			d.mu.Unlock()
			return
		}
		fn := queue[0]
		d.pending[userID] = queue[1:]
		d.mu.Unlock()
		fn()
	}
}
