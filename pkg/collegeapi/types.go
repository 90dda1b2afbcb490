// Package collegeapi is the data-access layer of colsched: the Source
// interface consumed by the screen state machine and its HTTP and
// fixture-file implementations.
package collegeapi

import "context"

// Source lists student groups and fetches a group's schedule.
// Both methods fail with a *FetchError carrying a human-readable reason.
type Source interface {
	ListGroups(ctx context.Context) ([]Group, error)
	GetSchedule(ctx context.Context, groupName string) ([]ScheduleDay, error)
}

// Group is a named cohort whose schedule can be queried.
// GroupName is unique and serves as both display text and lookup key.
type Group struct {
	GroupName string `json:"groupName"`
}

// LessonGroupPart identifies which part of a group attends a lesson.
type LessonGroupPart string

const (
	PartFull LessonGroupPart = "FULL"
	PartSub1 LessonGroupPart = "SUB1"
	PartSub2 LessonGroupPart = "SUB2"
)

// Parts lists lesson group parts in display order.
var Parts = []LessonGroupPart{PartFull, PartSub1, PartSub2}

// LessonPart describes the lesson held for one group part.
type LessonPart struct {
	Subject         string `json:"subject"`
	Teacher         string `json:"teacher"`
	TeacherPosition string `json:"teacherPosition,omitempty"`
	Classroom       string `json:"classroom"`
	Building        string `json:"building"`
	Address         string `json:"address,omitempty"`
}

// Lesson is one numbered slot of a day. A nil entry in GroupParts
// means that part of the group has no lesson in this slot.
type Lesson struct {
	LessonNumber int                             `json:"lessonNumber"`
	Time         string                          `json:"time"`
	GroupParts   map[LessonGroupPart]*LessonPart `json:"groupParts"`
}

// ScheduleDay is the schedule for one date.
type ScheduleDay struct {
	LessonDate string   `json:"lessonDate"`
	Weekday    string   `json:"weekday"`
	Lessons    []Lesson `json:"lessons"`
}
