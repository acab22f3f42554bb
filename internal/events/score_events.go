package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// ScoreRecordedEvent is emitted after a submission is scored and its result
// committed. Downstream consumers (grade exporters, dashboards) read it from
// the score topic.
type ScoreRecordedEvent struct {
	ID            string    `json:"id"`
	QuizID        uint      `json:"quiz_id"`
	QuizTitle     string    `json:"quiz_title"`
	StudentNumber string    `json:"student_number"`
	CourseNumber  string    `json:"course_number"`
	Score         int       `json:"score"`
	Total         int       `json:"total"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewScoreRecordedEvent(quizID uint, quizTitle, studentNumber, courseNumber string, score, total int) *ScoreRecordedEvent {
	return &ScoreRecordedEvent{
		ID:            watermill.NewUUID(),
		QuizID:        quizID,
		QuizTitle:     quizTitle,
		StudentNumber: studentNumber,
		CourseNumber:  courseNumber,
		Score:         score,
		Total:         total,
		OccurredAt:    time.Now().UTC(),
	}
}
