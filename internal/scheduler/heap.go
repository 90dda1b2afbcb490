package scheduler

import (
	"container/heap"
	"time"
)

// Event is a pending job firing kept in the scheduler heap.
type Event struct {
	// Key names the job passed to the trigger callback.
	Key string
	// TriggerAt is the wall-clock time the job fires.
	TriggerAt time.Time
	// CronExpr re-arms the event after it fires. Empty means one-shot.
	CronExpr string
}

// eventHeap orders events by TriggerAt, earliest first.
type eventHeap []Event

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func heapPush(h *eventHeap, e Event) {
	heap.Push(h, e)
}

// heapPop removes the earliest event. Panics if the heap is empty.
func heapPop(h *eventHeap) Event {
	return heap.Pop(h).(Event)
}

// heapRemoveKey removes every event with the given key and reports
// whether any was found.
func heapRemoveKey(h *eventHeap, key string) bool {
	removed := false
	for i := 0; i < h.Len(); {
		if (*h)[i].Key == key {
			heap.Remove(h, i)
			removed = true
			continue
		}
		i++
	}
	return removed
}
