package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/canadaclubjp/quiz-app/internal/sheets"
)

const (
	studentNumberHeader = "Student Number"
	courseNumberHeader  = "Course Number"
)

// Roster answers whether a student is enrolled in a course. Backed by a
// spreadsheet tab maintained by course staff.
type Roster interface {
	Verify(ctx context.Context, studentNumber, courseNumber string) (bool, error)
}

type worksheetRoster struct {
	sheets sheets.Worksheets
	tab    string
	logger *slog.Logger
}

func NewWorksheetRoster(ws sheets.Worksheets, tab string, logger *slog.Logger) Roster {
	return &worksheetRoster{
		sheets: ws,
		tab:    tab,
		logger: logger,
	}
}

func (r *worksheetRoster) Verify(ctx context.Context, studentNumber, courseNumber string) (bool, error) {
	rows, err := r.sheets.Rows(ctx, r.tab)
	if err != nil {
		return false, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(rows) == 0 {
		r.logger.Warn("roster sheet is empty", "tab", r.tab)
		return false, nil
	}

	studentCol, courseCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case studentNumberHeader:
			studentCol = i
		case courseNumberHeader:
			courseCol = i
		}
	}
	if studentCol < 0 || courseCol < 0 {
		return false, fmt.Errorf("roster tab %s is missing %q or %q columns",
			r.tab, studentNumberHeader, courseNumberHeader)
	}

	wantStudent := strings.TrimSpace(studentNumber)
	wantCourse := sheets.CourseSheetKey(courseNumber)

	for _, row := range rows[1:] {
		if studentCol >= len(row) || courseCol >= len(row) {
			continue
		}
		if strings.TrimSpace(row[studentCol]) != wantStudent {
			continue
		}
		if sheets.CourseSheetKey(row[courseCol]) == wantCourse {
			return true, nil
		}
	}
	return false, nil
}
