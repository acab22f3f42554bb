package models

// CreateQuestionRequest is one authored question. CorrectAnswers entries may
// be delimiter-joined ("Paris|paris city"); they are split into canonical
// array form before storage.
type CreateQuestionRequest struct {
	QuestionText   string   `json:"question_text" validate:"required,min=1"`
	Options        []string `json:"options"`
	CorrectAnswers []string `json:"correct_answers" validate:"required,min=1"`
	IsTextInput    bool     `json:"is_text_input"`
	ImageURL       string   `json:"image_url"`
	AudioURL       string   `json:"audio_url"`
	VideoURL       string   `json:"video_url"`
}

// CreateQuizRequest creates or fully replaces a quiz and its questions.
type CreateQuizRequest struct {
	Title       string                  `json:"title" validate:"required,min=1,max=200"`
	Description *string                 `json:"description" validate:"omitempty,max=1000"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// SubmissionRequest carries one student's answers for a whole quiz. Answer
// values are either a single string or a list of strings, keyed by the
// question id rendered as a string.
type SubmissionRequest struct {
	StudentNumber string         `json:"student_number" validate:"required"`
	FirstName     string         `json:"first_name_english" validate:"required"`
	LastName      string         `json:"last_name_english" validate:"required"`
	CourseNumber  string         `json:"course_number" validate:"required"`
	Answers       map[string]any `json:"answers" validate:"required"`
}

// VerifyStudentRequest checks roster membership for a course.
type VerifyStudentRequest struct {
	StudentNumber string `json:"student_number" validate:"required"`
	CourseNumber  string `json:"course_number" validate:"required"`
}
