package screen

import (
	"context"
	"errors"
	"time"

	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/colsched/colsched/pkg/logger"
)

// DefaultGroupName is selected after the group list loads, when present.
const DefaultGroupName = "ИС-12"

const (
	groupsErrorPrefix   = "Ошибка загрузки групп: "
	scheduleErrorPrefix = "Ошибка загрузки расписания: "
)

var ErrNoSelection = errors.New("no group selected")

// DefaultSelection picks the group named by the first preferred name
// present in groups, else the first group. Empty names are skipped. It
// returns nil for an empty list.
func DefaultSelection(groups []collegeapi.Group, preferred ...string) *collegeapi.Group {
	if len(groups) == 0 {
		return nil
	}
	for _, name := range preferred {
		if name == "" {
			continue
		}
		for i := range groups {
			if groups[i].GroupName == name {
				g := groups[i]
				return &g
			}
		}
	}
	g := groups[0]
	return &g
}

// Loader fetches the group list and schedules into the store.
type Loader struct {
	store        *Store
	src          collegeapi.Source
	log          logger.Logger
	defaultGroup string
	requested    string
	timeout      time.Duration
}

// NewLoader creates a Loader. A zero timeout leaves fetches bounded
// only by the caller's context.
func NewLoader(store *Store, src collegeapi.Source, l logger.Logger, defaultGroup string, timeout time.Duration) *Loader {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if defaultGroup == "" {
		defaultGroup = DefaultGroupName
	}
	return &Loader{
		store:        store,
		src:          src,
		log:          l,
		defaultGroup: defaultGroup,
		timeout:      timeout,
	}
}

func (l *Loader) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout > 0 {
		return context.WithTimeout(ctx, l.timeout)
	}
	return context.WithCancel(ctx)
}

// LoadGroups fetches the group list once. On success it applies the
// default selection unless a group is already selected, which in turn
// notifies selection listeners. On failure the group error is set and
// no selection is made.
func (l *Loader) LoadGroups(ctx context.Context) error {
	l.store.update(EventGroupsLoading, func(s *State) bool {
		s.GroupsLoading = true
		s.Phase = PhaseLoadingGroups
		return true
	})

	fctx, cancel := l.fetchContext(ctx)
	groups, err := l.src.ListGroups(fctx)
	cancel()
	if err != nil {
		l.log.Error("list groups: %v", err)
		l.store.update(EventGroupsFailed, func(s *State) bool {
			s.GroupsLoading = false
			s.GroupsError = groupsErrorPrefix + err.Error()
			s.Phase = PhaseGroupsFailed
			return true
		})
		return err
	}

	l.log.Info("loaded %d groups", len(groups))
	snap, _ := l.store.update(EventGroupsLoaded, func(s *State) bool {
		s.Groups = append([]collegeapi.Group{}, groups...)
		s.GroupsLoading = false
		s.GroupsError = ""
		s.Phase = PhaseGroupsLoaded
		return true
	})
	if snap.Selected != nil {
		return nil
	}
	def := DefaultSelection(groups, l.requested, l.defaultGroup)
	if def == nil {
		l.log.Warning("group list is empty, nothing to select")
		return nil
	}
	if l.requested != "" && def.GroupName != l.requested {
		l.log.Debug("group %s not found", l.requested)
	}
	if def.GroupName != l.requested && def.GroupName != l.defaultGroup {
		l.log.Debug("group %s not found, selecting %s", l.defaultGroup, def.GroupName)
	}
	selectGroup(l.store, *def)
	return nil
}

// LoadSchedule fetches the schedule of group. Loading is set and the
// error cleared before the fetch; a failure stores the prefixed reason
// and clears the schedule. Loading is reset on every exit path unless a
// newer fetch is in flight, in which case this response is discarded.
func (l *Loader) LoadSchedule(ctx context.Context, group collegeapi.Group) error {
	return l.loadSchedule(ctx, l.store.issueTicket(), group)
}

// loadSchedule runs the fetch reserved under ticket. A ticket superseded
// before the fetch begins is dropped without contacting the source.
func (l *Loader) loadSchedule(ctx context.Context, ticket uint64, group collegeapi.Group) error {
	_, ok := l.store.update(EventScheduleLoading, func(s *State) bool {
		if s.ticket != ticket {
			return false
		}
		s.Loading = true
		s.Error = ""
		s.Phase = PhaseLoadingSchedule
		return true
	})
	if !ok {
		l.discard(ticket, group)
		return nil
	}
	return l.fetchSchedule(ctx, ticket, group, scheduleErrorPrefix)
}

// Retry re-fetches the selected group's schedule. Unlike LoadSchedule
// it keeps the previous error until the fetch succeeds and stores the
// raw failure reason without a prefix.
func (l *Loader) Retry(ctx context.Context) error {
	ticket, group, err := l.beginRetry()
	if err != nil {
		return err
	}
	return l.fetchSchedule(ctx, ticket, group, "")
}

// beginRetry marks the retry as in flight and returns its ticket.
func (l *Loader) beginRetry() (uint64, collegeapi.Group, error) {
	var (
		ticket uint64
		group  collegeapi.Group
	)
	_, ok := l.store.update(EventScheduleLoading, func(s *State) bool {
		if s.Selected == nil {
			return false
		}
		group = *s.Selected
		s.ticket++
		ticket = s.ticket
		s.Loading = true
		s.Phase = PhaseLoadingSchedule
		return true
	})
	if !ok {
		return 0, group, ErrNoSelection
	}
	l.log.Info("retrying schedule of %s", group.GroupName)
	return ticket, group, nil
}

func (l *Loader) discard(ticket uint64, group collegeapi.Group) {
	l.log.Debug("discarding schedule #%d of %s: superseded", ticket, group.GroupName)
	l.store.update(EventStaleDiscarded, func(*State) bool { return true })
}

func (l *Loader) fetchSchedule(ctx context.Context, ticket uint64, group collegeapi.Group, errPrefix string) error {
	fctx, cancel := l.fetchContext(ctx)
	days, err := l.src.GetSchedule(fctx, group.GroupName)
	cancel()

	kind := EventScheduleLoaded
	if err != nil {
		kind = EventScheduleFailed
	}
	var stale bool
	l.store.update(kind, func(s *State) bool {
		if s.ticket != ticket {
			stale = true
			return false
		}
		s.Loading = false
		if err != nil {
			s.Error = errPrefix + err.Error()
			s.Schedule = []collegeapi.ScheduleDay{}
			s.Phase = PhaseScheduleFailed
			return true
		}
		s.Error = ""
		s.Schedule = append([]collegeapi.ScheduleDay{}, days...)
		s.Phase = PhaseScheduleLoaded
		return true
	})
	if stale {
		l.discard(ticket, group)
		return nil
	}
	if err != nil {
		l.log.Error("schedule of %s: %v", group.GroupName, err)
		return err
	}
	l.log.Info("loaded %d days for %s", len(days), group.GroupName)
	return nil
}
