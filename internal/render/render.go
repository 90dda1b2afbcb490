// Package render draws screen states as plain text for the terminal
// front ends. Column widths are measured in terminal cells, so Cyrillic
// and wide characters line up.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/mattn/go-runewidth"
)

// Texts shown to the user.
const (
	TextGroupLabel    = "Группа"
	TextLoadingGroups = "Загрузка групп..."
	TextLoading       = "Загрузка..."
	TextErrorPrefix   = "Ошибка: "
	TextRetry         = "Повторить"
	TextGroupNotFound = "Группа не найдена"
	TextNoLessons     = "Нет занятий"
	TextNoGroups      = "Список групп пуст"
	TextNoSelection   = "—"
)

// maxCellWidth caps a table column; longer values are truncated.
const maxCellWidth = 40

var columns = []string{"№", "Время", "Подгруппа", "Предмет", "Преподаватель", "Аудитория"}

// PartLabel returns the display name of a lesson group part.
func PartLabel(p collegeapi.LessonGroupPart) string {
	switch p {
	case collegeapi.PartFull:
		return "вся группа"
	case collegeapi.PartSub1:
		return "1 подгруппа"
	case collegeapi.PartSub2:
		return "2 подгруппа"
	}
	return string(p)
}

// Header writes the selector line, "Группа: <name>", or the loading
// placeholder while the group list is on its way.
func Header(w io.Writer, st screen.State) error {
	if st.Selected == nil {
		if st.View() == screen.ViewLoadingGroups {
			_, err := fmt.Fprintln(w, TextLoadingGroups)
			return err
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", TextGroupLabel, TextNoSelection)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", TextGroupLabel, st.Selected.GroupName)
	return err
}

// Groups writes a numbered group list, marking the selected group.
// An empty list prints the not-found line.
func Groups(w io.Writer, groups []collegeapi.Group, selected string) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, TextGroupNotFound)
		return err
	}
	width := len(strconv.Itoa(len(groups)))
	for i, g := range groups {
		mark := " "
		if g.GroupName == selected {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %*d. %s\n", mark, width, i+1, g.GroupName); err != nil {
			return err
		}
	}
	return nil
}

// Screen writes the header and the body matching st.View().
func Screen(w io.Writer, st screen.State) error {
	if err := Header(w, st); err != nil {
		return err
	}
	var err error
	switch st.View() {
	case screen.ViewLoading:
		_, err = fmt.Fprintln(w, TextLoading)
	case screen.ViewError:
		_, err = fmt.Fprintf(w, "%s%s\n[%s]\n", TextErrorPrefix, st.Error, TextRetry)
	case screen.ViewGroupsError:
		_, err = fmt.Fprintf(w, "%s%s\n", TextErrorPrefix, st.GroupsError)
	case screen.ViewLoadingGroups:
	case screen.ViewNoGroups:
		_, err = fmt.Fprintln(w, TextNoGroups)
	case screen.ViewSchedule:
		err = Schedule(w, st.Schedule)
	}
	return err
}

// Schedule writes one table per day.
func Schedule(w io.Writer, days []collegeapi.ScheduleDay) error {
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, TextNoLessons)
		return err
	}
	for i, d := range days {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := Day(w, d); err != nil {
			return err
		}
	}
	return nil
}

// Day writes the title line of a day followed by its lesson table.
func Day(w io.Writer, d collegeapi.ScheduleDay) error {
	if _, err := fmt.Fprintf(w, "%s, %s\n", d.Weekday, d.LessonDate); err != nil {
		return err
	}
	rows := lessonRows(d.Lessons)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, TextNoLessons)
		return err
	}
	return table(w, columns, rows)
}

// lessonRows flattens lessons into one row per attending group part.
func lessonRows(lessons []collegeapi.Lesson) [][]string {
	var rows [][]string
	for _, l := range lessons {
		for _, p := range collegeapi.Parts {
			part := l.GroupParts[p]
			if part == nil {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(l.LessonNumber),
				l.Time,
				PartLabel(p),
				part.Subject,
				teacherCell(part),
				classroomCell(part),
			})
		}
	}
	return rows
}

func teacherCell(p *collegeapi.LessonPart) string {
	if p.TeacherPosition == "" {
		return p.Teacher
	}
	return p.Teacher + " (" + p.TeacherPosition + ")"
}

func classroomCell(p *collegeapi.LessonPart) string {
	switch {
	case p.Building == "":
		return p.Classroom
	case p.Classroom == "":
		return p.Building
	}
	return p.Classroom + ", " + p.Building
}

func table(w io.Writer, head []string, rows [][]string) error {
	widths := make([]int, len(head))
	measure := func(row []string) {
		for i, c := range row {
			if n := runewidth.StringWidth(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(head)
	for _, r := range rows {
		measure(r)
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}

	line := func(row []string) error {
		var b strings.Builder
		for i, c := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			c = runewidth.Truncate(c, widths[i], "…")
			if i == len(row)-1 {
				b.WriteString(c)
				continue
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
		}
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	if err := line(head); err != nil {
		return err
	}
	sep := make([]string, len(head))
	for i, n := range widths {
		sep[i] = strings.Repeat("-", n)
	}
	if _, err := io.WriteString(w, strings.Join(sep, "-+-")+"\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := line(r); err != nil {
			return err
		}
	}
	return nil
}
