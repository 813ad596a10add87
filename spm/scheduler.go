package spm

import "github.com/emirpasic/gods/queues/circularbuffer"

// scheduler is the FIFO worklist with at most one pending entry per vertex.
// The dirty bit of v is set exactly while v is queued, so the buffer never
// holds more than |V| entries and never overwrites.
type scheduler struct {
	queue *circularbuffer.Queue
	dirty []bool
}

func newScheduler(n int) *scheduler {
	size := n
	if size < 1 {
		size = 1
	}

	return &scheduler{
		queue: circularbuffer.New(size),
		dirty: make([]bool, n),
	}
}

// pushIfAbsent queues v unless it is already pending.
func (q *scheduler) pushIfAbsent(v int) {
	if q.dirty[v] {
		return
	}
	q.dirty[v] = true
	q.queue.Enqueue(v)
}

// pop removes the oldest pending vertex.
func (q *scheduler) pop() (int, bool) {
	x, ok := q.queue.Dequeue()
	if !ok {
		return none, false
	}
	v := x.(int)
	q.dirty[v] = false

	return v, true
}

func (q *scheduler) empty() bool { return q.queue.Empty() }
