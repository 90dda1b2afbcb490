package screen

import (
	"fmt"

	"github.com/colsched/colsched/pkg/collegeapi"
)

// Phase is the loader's position in the groups-then-schedule workflow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingGroups
	PhaseGroupsLoaded
	PhaseGroupsFailed
	PhaseLoadingSchedule
	PhaseScheduleLoaded
	PhaseScheduleFailed
)

var phaseNames = [...]string{
	PhaseIdle:            "idle",
	PhaseLoadingGroups:   "loading_groups",
	PhaseGroupsLoaded:    "groups_loaded",
	PhaseGroupsFailed:    "groups_failed",
	PhaseLoadingSchedule: "loading_schedule",
	PhaseScheduleLoaded:  "schedule_loaded",
	PhaseScheduleFailed:  "schedule_failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// View is what a front end should display for a State.
type View int

const (
	// ViewLoading shows a progress indicator.
	ViewLoading View = iota
	// ViewError shows the schedule error with a retry control.
	ViewError
	// ViewGroupsError shows the group list error. There is no retry.
	ViewGroupsError
	// ViewLoadingGroups shows the "Загрузка групп..." placeholder.
	ViewLoadingGroups
	// ViewNoGroups is shown when the group list loaded empty.
	ViewNoGroups
	// ViewSchedule shows the schedule of the selected group.
	ViewSchedule
)

var viewNames = [...]string{
	ViewLoading:       "loading",
	ViewError:         "error",
	ViewGroupsError:   "groups_error",
	ViewLoadingGroups: "loading_groups",
	ViewNoGroups:      "no_groups",
	ViewSchedule:      "schedule",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// State is a snapshot of the screen. Snapshots handed out by the Store
// are deep copies and may be retained freely.
type State struct {
	// Version increases by one with every store mutation. Consumers
	// receiving snapshots from several goroutines keep the highest one.
	Version uint64 `json:"version"`
	Phase   Phase  `json:"phase"`

	Groups     []collegeapi.Group `json:"groups"`
	Selected   *collegeapi.Group  `json:"selected,omitempty"`
	FilterText string             `json:"filterText"`

	GroupsLoading bool   `json:"groupsLoading"`
	GroupsError   string `json:"groupsError,omitempty"`

	// Loading is true exactly while a schedule fetch is in flight.
	Loading  bool                     `json:"loading"`
	Error    string                   `json:"error,omitempty"`
	Schedule []collegeapi.ScheduleDay `json:"schedule"`

	ticket uint64
}

func (s State) clone() State {
	c := s
	if s.Groups != nil {
		c.Groups = append(make([]collegeapi.Group, 0, len(s.Groups)), s.Groups...)
	}
	if s.Selected != nil {
		g := *s.Selected
		c.Selected = &g
	}
	if s.Schedule != nil {
		c.Schedule = cloneDays(s.Schedule)
	}
	return c
}

// cloneDays copies days down to the lesson parts. Nil slices and maps stay
// nil and empty ones stay empty.
func cloneDays(days []collegeapi.ScheduleDay) []collegeapi.ScheduleDay {
	out := make([]collegeapi.ScheduleDay, len(days))
	for i, d := range days {
		out[i] = d
		if d.Lessons == nil {
			continue
		}
		out[i].Lessons = make([]collegeapi.Lesson, len(d.Lessons))
		for j, les := range d.Lessons {
			if les.GroupParts != nil {
				parts := make(map[collegeapi.LessonGroupPart]*collegeapi.LessonPart, len(les.GroupParts))
				for k, p := range les.GroupParts {
					if p != nil {
						cp := *p
						p = &cp
					}
					parts[k] = p
				}
				les.GroupParts = parts
			}
			out[i].Lessons[j] = les
		}
	}
	return out
}

// SelectedName returns the selected group's name or "".
func (s State) SelectedName() string {
	if s.Selected == nil {
		return ""
	}
	return s.Selected.GroupName
}

// View derives what should be displayed. A schedule fetch in flight
// takes precedence over everything, then the schedule error, then the
// group list error.
func (s State) View() View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewError
	case s.GroupsError != "":
		return ViewGroupsError
	case s.Selected == nil && len(s.Groups) == 0:
		if s.Phase == PhaseGroupsLoaded {
			return ViewNoGroups
		}
		return ViewLoadingGroups
	}
	return ViewSchedule
}

// FilteredGroups applies the state's filter text to its groups.
func (s State) FilteredGroups() []collegeapi.Group {
	return FilterGroups(s.Groups, s.FilterText)
}
