package scheduler

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
)

const maxSleepCap = 60 * time.Second

var ErrInvalidCron = errors.New("invalid cron expression")

// Scheduler runs the event loop. It sleeps until the earliest event is
// due, then calls the trigger callback with the event's key.
type Scheduler struct {
	addChan    chan Event
	removeChan chan string
	ctx        context.Context
	done       chan struct{}
}

// New creates and starts a Scheduler. onTrigger runs on the scheduler
// goroutine, so it should hand long work off. The goroutine exits when
// ctx is cancelled.
func New(ctx context.Context, onTrigger func(key string)) *Scheduler {
	s := &Scheduler{
		addChan:    make(chan Event, 64),
		removeChan: make(chan string, 64),
		ctx:        ctx,
		done:       make(chan struct{}),
	}
	go s.run(onTrigger)
	return s
}

// Add enqueues an event.
func (s *Scheduler) Add(event Event) {
	select {
	case s.addChan <- event:
	case <-s.ctx.Done():
	}
}

// AddCron registers a recurring job whose first firing is the next
// occurrence of expr after now.
func (s *Scheduler) AddCron(key, expr string) (time.Time, error) {
	next, err := NextOccurrence(expr, time.Now())
	if err != nil {
		return time.Time{}, err
	}
	s.Add(Event{Key: key, TriggerAt: next, CronExpr: expr})
	return next, nil
}

// Remove cancels every pending event with the given key.
func (s *Scheduler) Remove(key string) {
	select {
	case s.removeChan <- key:
	case <-s.ctx.Done():
	}
}

// Done is closed once the scheduler goroutine has returned.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) run(onTrigger func(string)) {
	defer close(s.done)
	h := &eventHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			return nil
		}
		dur := time.Until((*h)[0].TriggerAt)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event := <-s.addChan:
			heapPush(h, event)
			timerCh = resetTimer()

		case key := <-s.removeChan:
			heapRemoveKey(h, key)
			timerCh = resetTimer()

		case <-timerCh:
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].TriggerAt.After(now) {
				event := heapPop(h)
				onTrigger(event.Key)
				if event.CronExpr == "" {
					continue
				}
				next, err := NextOccurrence(event.CronExpr, time.Now())
				if err == nil {
					heapPush(h, Event{Key: event.Key, TriggerAt: next, CronExpr: event.CronExpr})
				}
			}
			timerCh = resetTimer()
		}
	}
}

// NextOccurrence returns the first time strictly after start at which
// expr fires.
func NextOccurrence(expr string, start time.Time) (time.Time, error) {
	if !gronx.IsValid(expr) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCron, expr)
	}
	return gronx.NextTickAfter(expr, start, false)
}
