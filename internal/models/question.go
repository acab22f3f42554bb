package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Question stores its option list and correct-answer set as JSON arrays.
// CorrectAnswers is always written in canonical array form; the scoring
// layer still accepts the older pipe-joined and bare-string encodings when
// reading rows authored by previous revisions.
type Question struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	QuizID uint `json:"quiz_id" gorm:"not null;index"`

	QuestionText   string         `json:"question_text" gorm:"type:text;not null" validate:"required,min=1"`
	Options        datatypes.JSON `json:"options" gorm:"type:jsonb"` // []string, empty for free-text
	CorrectAnswers datatypes.JSON `json:"-" gorm:"type:jsonb"`       // []string, never serialized to students
	IsTextInput    bool           `json:"is_text_input" gorm:"default:false"`

	// Optional media attachments
	ImageURL string `json:"image_url" gorm:"size:500"`
	AudioURL string `json:"audio_url" gorm:"size:500"`
	VideoURL string `json:"video_url" gorm:"size:500"`

	// Relations
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList decodes the stored option JSON. A missing or null column is an
// empty list, not an error.
func (q *Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// AnswerList decodes the stored correct-answer JSON into the raw stored
// strings, without normalization.
func (q *Question) AnswerList() []string {
	if len(q.CorrectAnswers) == 0 {
		return nil
	}
	var answers []string
	if err := json.Unmarshal(q.CorrectAnswers, &answers); err != nil {
		// Legacy rows may hold a bare string instead of an array.
		var single string
		if err := json.Unmarshal(q.CorrectAnswers, &single); err != nil {
			return nil
		}
		return []string{single}
	}
	return answers
}
