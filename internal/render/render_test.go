package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
)

func mathDay() collegeapi.ScheduleDay {
	return collegeapi.ScheduleDay{
		LessonDate: "2026-09-01",
		Weekday:    "Вторник",
		Lessons: []collegeapi.Lesson{{
			LessonNumber: 1,
			Time:         "08:30-10:00",
			GroupParts: map[collegeapi.LessonGroupPart]*collegeapi.LessonPart{
				collegeapi.PartFull: {Subject: "Математика", Teacher: "Иванов И.И.", Classroom: "101"},
			},
		}},
	}
}

func TestDay_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Day(buf, mathDay()); err != nil {
		t.Fatalf("Day: %v", err)
	}
	want := "Вторник, 2026-09-01\n" +
		"№ | Время       | Подгруппа  | Предмет    | Преподаватель | Аудитория\n" +
		"--+-" + strings.Repeat("-", 11) + "-+-" + strings.Repeat("-", 10) + "-+-" +
		strings.Repeat("-", 10) + "-+-" + strings.Repeat("-", 13) + "-+-" + strings.Repeat("-", 9) + "\n" +
		"1 | 08:30-10:00 | вся группа | Математика | Иванов И.И.   | 101\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestDay_SubgroupsInPartOrder(t *testing.T) {
	day := collegeapi.ScheduleDay{
		LessonDate: "2026-09-02",
		Weekday:    "Среда",
		Lessons: []collegeapi.Lesson{{
			LessonNumber: 2,
			Time:         "10:10-11:40",
			GroupParts: map[collegeapi.LessonGroupPart]*collegeapi.LessonPart{
				collegeapi.PartSub2: {Subject: "Английский", Teacher: "Смит", Classroom: "12", Building: "Корпус Б"},
				collegeapi.PartSub1: {Subject: "Немецкий", Teacher: "Шмидт", TeacherPosition: "доцент", Classroom: "14"},
				collegeapi.PartFull: nil,
			},
		}},
	}
	buf := &bytes.Buffer{}
	if err := Day(buf, day); err != nil {
		t.Fatalf("Day: %v", err)
	}
	out := buf.String()
	sub1 := strings.Index(out, "1 подгруппа")
	sub2 := strings.Index(out, "2 подгруппа")
	if sub1 < 0 || sub2 < 0 || sub1 > sub2 {
		t.Fatalf("expected SUB1 row before SUB2 row, got:\n%s", out)
	}
	if strings.Contains(out, "вся группа") {
		t.Errorf("nil FULL part must not be rendered:\n%s", out)
	}
	for _, s := range []string{"Шмидт (доцент)", "12, Корпус Б"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %q in output:\n%s", s, out)
		}
	}
}

func TestDay_NoLessons(t *testing.T) {
	buf := &bytes.Buffer{}
	day := collegeapi.ScheduleDay{LessonDate: "2026-09-06", Weekday: "Воскресенье"}
	if err := Day(buf, day); err != nil {
		t.Fatalf("Day: %v", err)
	}
	if got := buf.String(); got != "Воскресенье, 2026-09-06\nНет занятий\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDay_TruncatesLongCells(t *testing.T) {
	day := mathDay()
	day.Lessons[0].GroupParts[collegeapi.PartFull].Subject = strings.Repeat("Я", maxCellWidth+10)
	buf := &bytes.Buffer{}
	if err := Day(buf, day); err != nil {
		t.Fatalf("Day: %v", err)
	}
	if !strings.Contains(buf.String(), strings.Repeat("Я", maxCellWidth-1)+"…") {
		t.Errorf("expected truncated subject, got:\n%s", buf.String())
	}
}

func TestSchedule_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Schedule(buf, nil); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if got := buf.String(); got != "Нет занятий\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestSchedule_SeparatesDays(t *testing.T) {
	second := mathDay()
	second.LessonDate = "2026-09-02"
	second.Weekday = "Среда"
	buf := &bytes.Buffer{}
	if err := Schedule(buf, []collegeapi.ScheduleDay{mathDay(), second}); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !strings.Contains(buf.String(), "101\n\nСреда, 2026-09-02\n") {
		t.Errorf("expected blank line between days, got:\n%s", buf.String())
	}
}

func TestGroups(t *testing.T) {
	groups := make([]collegeapi.Group, 0, 10)
	for _, n := range []string{"ИС-11", "ИС-12", "ИС-21", "ПК-11", "ПК-12", "ПК-21", "ПК-22", "ЭК-11", "ЭК-12", "ЭК-21"} {
		groups = append(groups, collegeapi.Group{GroupName: n})
	}
	buf := &bytes.Buffer{}
	if err := Groups(buf, groups, "ИС-12"); err != nil {
		t.Fatalf("Groups: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if lines[0] != "   1. ИС-11" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "*  2. ИС-12" {
		t.Errorf("expected selected marker, got: %q", lines[1])
	}
	if lines[9] != "  10. ЭК-21" {
		t.Errorf("unexpected last line: %q", lines[9])
	}
}

func TestGroups_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Groups(buf, nil, ""); err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if got := buf.String(); got != "Группа не найдена\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestPartLabel(t *testing.T) {
	tests := []struct {
		part collegeapi.LessonGroupPart
		want string
	}{
		{collegeapi.PartFull, "вся группа"},
		{collegeapi.PartSub1, "1 подгруппа"},
		{collegeapi.PartSub2, "2 подгруппа"},
		{"SUB3", "SUB3"},
	}
	for _, tt := range tests {
		if got := PartLabel(tt.part); got != tt.want {
			t.Errorf("PartLabel(%s) = %q, want %q", tt.part, got, tt.want)
		}
	}
}

func TestScreen_Views(t *testing.T) {
	selected := &collegeapi.Group{GroupName: "ИС-12"}
	tests := []struct {
		name  string
		state screen.State
		want  string
	}{
		{
			name:  "loading groups",
			state: screen.State{Phase: screen.PhaseLoadingGroups, GroupsLoading: true},
			want:  "Загрузка групп...\n",
		},
		{
			name:  "loading schedule",
			state: screen.State{Selected: selected, Loading: true, Error: "old"},
			want:  "Группа: ИС-12\nЗагрузка...\n",
		},
		{
			name:  "schedule error",
			state: screen.State{Selected: selected, Error: "Ошибка загрузки расписания: boom"},
			want:  "Группа: ИС-12\nОшибка: Ошибка загрузки расписания: boom\n[Повторить]\n",
		},
		{
			name:  "groups error",
			state: screen.State{Phase: screen.PhaseGroupsFailed, GroupsError: "Ошибка загрузки групп: boom"},
			want:  "Группа: —\nОшибка: Ошибка загрузки групп: boom\n",
		},
		{
			name:  "no groups",
			state: screen.State{Phase: screen.PhaseGroupsLoaded, Groups: []collegeapi.Group{}},
			want:  "Группа: —\nСписок групп пуст\n",
		},
		{
			name:  "empty schedule",
			state: screen.State{Phase: screen.PhaseScheduleLoaded, Selected: selected, Schedule: []collegeapi.ScheduleDay{}},
			want:  "Группа: ИС-12\nНет занятий\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Screen(buf, tt.state); err != nil {
				t.Fatalf("Screen: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestScreen_PropagatesWriteErrors(t *testing.T) {
	st := screen.State{Selected: &collegeapi.Group{GroupName: "ИС-12"}, Schedule: []collegeapi.ScheduleDay{mathDay()}}
	if err := Screen(failingWriter{}, st); err == nil {
		t.Fatal("expected write error")
	}
}
