package sheets

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type fakeWorksheets struct {
	tabs        map[string][][]string
	appendCalls int
	appendErrs  []error
}

func newFakeWorksheets() *fakeWorksheets {
	return &fakeWorksheets{tabs: make(map[string][][]string)}
}

func (f *fakeWorksheets) Header(_ context.Context, sheet string) ([]string, error) {
	rows, ok := f.tabs[sheet]
	if !ok || len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (f *fakeWorksheets) EnsureSheet(_ context.Context, sheet string, header []string) error {
	if _, ok := f.tabs[sheet]; !ok {
		f.tabs[sheet] = [][]string{append([]string{}, header...)}
	}
	return nil
}

func (f *fakeWorksheets) AppendRow(_ context.Context, sheet string, row []interface{}) error {
	f.appendCalls++
	if len(f.appendErrs) > 0 {
		err := f.appendErrs[0]
		f.appendErrs = f.appendErrs[1:]
		if err != nil {
			return err
		}
	}
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = v.(string)
	}
	f.tabs[sheet] = append(f.tabs[sheet], cells)
	return nil
}

func (f *fakeWorksheets) Rows(_ context.Context, sheet string) ([][]string, error) {
	return f.tabs[sheet], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sampleRow() SubmissionRow {
	return SubmissionRow{
		Timestamp:     time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
		StudentNumber: " s1234567 ",
		FirstName:     "Hanako,",
		LastName:      "Yama\nda",
		CourseNumber:  "0042",
		QuizID:        7,
		QuizTitle:     "Geography, Week 1",
		AnswersJSON:   `{"1":"B: Tokyo"}`,
		Score:         4,
		Total:         5,
	}
}

func TestAppendSubmission_WritesMasterAndCourseTabs(t *testing.T) {
	ws := newFakeWorksheets()
	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	m := NewMirror(ws, testLogger(), jst)

	require.NoError(t, m.AppendSubmission(context.Background(), sampleRow()))

	for _, sheet := range []string{MasterSheet, "Course_42"} {
		rows := ws.tabs[sheet]
		require.Len(t, rows, 2, "sheet %s", sheet)
		assert.Equal(t, SubmissionHeader, rows[0])
		assert.Equal(t, []string{
			"2025-04-01 18:30:00",
			"s1234567",
			"Hanako",
			"Yamada",
			"42",
			"7",
			"Geography Week 1",
			`{"1":"B: Tokyo"}`,
			"4",
			"5",
		}, rows[1])
	}
}

func TestAppendSubmission_HeaderMismatchStillAppends(t *testing.T) {
	ws := newFakeWorksheets()
	ws.tabs[MasterSheet] = [][]string{{"Wrong", "Header"}}
	m := NewMirror(ws, testLogger(), time.UTC)

	require.NoError(t, m.AppendSubmission(context.Background(), sampleRow()))
	assert.Len(t, ws.tabs[MasterSheet], 2)
}

func TestAppendSubmission_RetriesTransientErrors(t *testing.T) {
	ws := newFakeWorksheets()
	ws.appendErrs = []error{
		&googleapi.Error{Code: 429},
	}
	m := NewMirror(ws, testLogger(), time.UTC)

	require.NoError(t, m.AppendSubmission(context.Background(), sampleRow()))
	// One failed attempt on the master tab, then a retry, then the course tab.
	assert.Equal(t, 3, ws.appendCalls)
}

func TestAppendSubmission_PermanentErrorFailsFast(t *testing.T) {
	ws := newFakeWorksheets()
	ws.appendErrs = []error{errors.New("spreadsheet deleted")}
	m := NewMirror(ws, testLogger(), time.UTC)

	err := m.AppendSubmission(context.Background(), sampleRow())
	require.Error(t, err)
	assert.Equal(t, 1, ws.appendCalls)
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "ab", SanitizeCell(" a,b\n "))
	assert.Equal(t, "plain", SanitizeCell("plain"))
	assert.Equal(t, "", SanitizeCell(" ,\n"))
}

func TestCourseSheetKey(t *testing.T) {
	assert.Equal(t, "42", CourseSheetKey("0042"))
	assert.Equal(t, "42", CourseSheetKey(" 42 "))
	assert.Equal(t, "105", CourseSheetKey("105"))
	assert.Equal(t, "", CourseSheetKey("000"))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&googleapi.Error{Code: 429}))
	assert.True(t, IsTransient(&googleapi.Error{Code: 503}))
	assert.False(t, IsTransient(&googleapi.Error{Code: 404}))
	assert.False(t, IsTransient(errors.New("boom")))
}
