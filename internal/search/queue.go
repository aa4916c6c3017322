package search

import "container/heap"

// item is a queue entry. Entries are never updated in place; stale ones are
// skipped when popped.
type item struct {
	priority float64
	seq      uint64
	node     int64
	parent   int64
	cost     float64
}

// queue is a min-heap ordered by (priority, seq), so equal priorities pop in
// push order.
type queue struct {
	items []item
	seq   uint64
}

func (q *queue) Len() int { return len(q.items) }

func (q *queue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}

	return a.seq < b.seq
}

func (q *queue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push is called by heap.Push.
func (q *queue) Push(x any) { q.items = append(q.items, x.(item)) }

// Pop is called by heap.Pop.
func (q *queue) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]

	return it
}

func (q *queue) push(it item) {
	it.seq = q.seq
	q.seq++
	heap.Push(q, it)
}

func (q *queue) pop() item {
	return heap.Pop(q).(item)
}
