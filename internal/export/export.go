// Package export writes schedules to Excel workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/colsched/colsched/internal/render"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/xuri/excelize/v2"
)

// Header is the first row of the schedule sheet.
var Header = []string{
	"Дата",
	"День недели",
	"№",
	"Время",
	"Подгруппа",
	"Предмет",
	"Преподаватель",
	"Должность",
	"Аудитория",
	"Корпус",
	"Адрес",
}

const maxSheetName = 31

// SheetName turns a group name into a valid worksheet name.
func SheetName(group string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(group))
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if name == "" {
		name = "Расписание"
	}
	return name
}

// Rows flattens days into sheet rows: one row per attending lesson part
// and a single "Нет занятий" row for a day without lessons.
func Rows(days []collegeapi.ScheduleDay) [][]interface{} {
	var rows [][]interface{}
	for _, d := range days {
		n := len(rows)
		for _, l := range d.Lessons {
			for _, p := range collegeapi.Parts {
				part := l.GroupParts[p]
				if part == nil {
					continue
				}
				rows = append(rows, []interface{}{
					d.LessonDate, d.Weekday, l.LessonNumber, l.Time,
					render.PartLabel(p), part.Subject, part.Teacher, part.TeacherPosition,
					part.Classroom, part.Building, part.Address,
				})
			}
		}
		if len(rows) == n {
			rows = append(rows, []interface{}{d.LessonDate, d.Weekday, "", "", "", render.TextNoLessons})
		}
	}
	return rows
}

// Workbook builds a workbook holding the schedule of group on one sheet.
// The caller closes the returned file.
func Workbook(group string, days []collegeapi.ScheduleDay) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := SheetName(group)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := fill(f, sheet, days); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, sheet string, days []collegeapi.ScheduleDay) error {
	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for r, row := range Rows(days) {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Header))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

// Write streams the workbook for group to w.
func Write(w io.Writer, group string, days []collegeapi.ScheduleDay) error {
	f, err := Workbook(group, days)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteFile saves the workbook for group at path.
func WriteFile(path, group string, days []collegeapi.ScheduleDay) error {
	f, err := Workbook(group, days)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
