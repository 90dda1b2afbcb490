package screen

import (
	"context"
	"fmt"
	"sync"

	"github.com/colsched/colsched/pkg/collegeapi"
)

// fakeSource is a scripted collegeapi.Source recording its calls.
type fakeSource struct {
	mu            sync.Mutex
	listFn        func(ctx context.Context) ([]collegeapi.Group, error)
	scheduleFn    func(ctx context.Context, name string) ([]collegeapi.ScheduleDay, error)
	listCalls     int
	scheduleCalls []string
}

func (f *fakeSource) ListGroups(ctx context.Context) ([]collegeapi.Group, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func (f *fakeSource) GetSchedule(ctx context.Context, name string) ([]collegeapi.ScheduleDay, error) {
	f.mu.Lock()
	f.scheduleCalls = append(f.scheduleCalls, name)
	fn := f.scheduleFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, name)
}

func (f *fakeSource) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scheduleCalls...)
}

func groupsOf(names ...string) []collegeapi.Group {
	out := make([]collegeapi.Group, 0, len(names))
	for _, n := range names {
		out = append(out, collegeapi.Group{GroupName: n})
	}
	return out
}

func daysOf(n int) []collegeapi.ScheduleDay {
	out := make([]collegeapi.ScheduleDay, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, collegeapi.ScheduleDay{LessonDate: fmt.Sprintf("2026-09-%02d", i+1)})
	}
	return out
}

func staticGroups(names ...string) func(context.Context) ([]collegeapi.Group, error) {
	return func(context.Context) ([]collegeapi.Group, error) {
		return groupsOf(names...), nil
	}
}

func staticDays(n int) func(context.Context, string) ([]collegeapi.ScheduleDay, error) {
	return func(context.Context, string) ([]collegeapi.ScheduleDay, error) {
		return daysOf(n), nil
	}
}

// eventRecorder collects events delivered from any goroutine.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *eventRecorder) has(kind EventKind) bool {
	for _, k := range r.kinds() {
		if k == kind {
			return true
		}
	}
	return false
}
