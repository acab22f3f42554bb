package models

import (
	"time"
)

// Score is the durable outcome of one student's one attempt at one quiz.
// The composite unique index is what actually enforces at-most-once per
// (student, quiz); the service-level existence check only short-circuits the
// common path.
type Score struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentNumber string `json:"student_number" gorm:"not null;size:50;uniqueIndex:idx_scores_student_quiz" validate:"required"`
	QuizID        uint   `json:"quiz_id" gorm:"not null;uniqueIndex:idx_scores_student_quiz"`

	Score          int `json:"score" gorm:"not null"`
	TotalQuestions int `json:"total_questions" gorm:"not null"`

	// Student metadata captured at submission time
	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`
	CourseNumber string `json:"course_number" gorm:"size:50;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (Score) TableName() string {
	return "scores"
}
