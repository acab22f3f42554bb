package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MasterSheet collects every submission; each course additionally gets its
// own "Course_<n>" tab keyed by the course number with leading zeros
// stripped.
const MasterSheet = "AllQuizResponses"

// SubmissionHeader is the fixed header row of every mirrored tab.
var SubmissionHeader = []string{
	"Timestamp", "StudentNumber", "FirstNameEnglish", "LastNameEnglish",
	"CourseNumber", "QuizID", "QuizTitle", "Answers", "Score", "Total",
}

// SubmissionRow is one scored submission to mirror.
type SubmissionRow struct {
	Timestamp     time.Time
	StudentNumber string
	FirstName     string
	LastName      string
	CourseNumber  string
	QuizID        uint
	QuizTitle     string
	AnswersJSON   string
	Score         int
	Total         int
}

// Mirror appends scored submissions into the audit spreadsheet. Mirroring
// runs strictly after the score is committed to the primary store; callers
// treat a returned error as a warning, never as a reason to unwind the
// score.
type Mirror interface {
	AppendSubmission(ctx context.Context, row SubmissionRow) error
}

type worksheetMirror struct {
	sheets     Worksheets
	logger     *slog.Logger
	loc        *time.Location
	maxRetries uint64
}

func NewMirror(ws Worksheets, logger *slog.Logger, loc *time.Location) Mirror {
	if loc == nil {
		loc = time.UTC
	}
	return &worksheetMirror{
		sheets:     ws,
		logger:     logger,
		loc:        loc,
		maxRetries: 4,
	}
}

func (m *worksheetMirror) AppendSubmission(ctx context.Context, row SubmissionRow) error {
	course := CourseSheetKey(row.CourseNumber)
	values := []interface{}{
		row.Timestamp.In(m.loc).Format("2006-01-02 15:04:05"),
		SanitizeCell(row.StudentNumber),
		SanitizeCell(row.FirstName),
		SanitizeCell(row.LastName),
		course,
		strconv.FormatUint(uint64(row.QuizID), 10),
		SanitizeCell(row.QuizTitle),
		row.AnswersJSON,
		strconv.Itoa(row.Score),
		strconv.Itoa(row.Total),
	}

	for _, sheet := range []string{MasterSheet, "Course_" + course} {
		if err := m.append(ctx, sheet, values); err != nil {
			return fmt.Errorf("failed to mirror submission to %s: %w", sheet, err)
		}
		m.logger.Info("Mirrored submission",
			"sheet", sheet,
			"student_number", row.StudentNumber,
			"quiz_id", row.QuizID)
	}
	return nil
}

func (m *worksheetMirror) append(ctx context.Context, sheet string, values []interface{}) error {
	if err := m.sheets.EnsureSheet(ctx, sheet, headerRow()); err != nil {
		return err
	}

	header, err := m.sheets.Header(ctx, sheet)
	if err != nil {
		m.logger.Warn("failed to read sheet header", "sheet", sheet, "error", err)
	} else if !slices.Equal(header, SubmissionHeader) {
		// A mismatched header is a data-quality warning, not a write failure.
		m.logger.Warn("sheet header mismatch",
			"sheet", sheet,
			"expected", SubmissionHeader,
			"found", header)
	}

	operation := func() error {
		err := m.sheets.AppendRow(ctx, sheet, values)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), m.maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

func headerRow() []string {
	return slices.Clone(SubmissionHeader)
}

// SanitizeCell trims a value and strips the characters that corrupt a
// spreadsheet row (commas and newlines).
func SanitizeCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// CourseSheetKey normalizes a course number for worksheet naming and roster
// comparison: sanitized with leading zeros stripped, so "0042" and "42" land
// on the same tab.
func CourseSheetKey(courseNumber string) string {
	return strings.TrimLeft(SanitizeCell(courseNumber), "0")
}
