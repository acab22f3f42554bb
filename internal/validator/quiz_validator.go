package validator

import (
	"fmt"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/scoring"
)

// QuizValidator enforces the authoring rules that keep every stored question
// scoreable. A question that slips past these checks can silently become
// unanswerable (empty answer key) or unanswerable-as-presented (a correct
// answer no listed option normalizes to), so they are rejected at creation
// time rather than discovered during scoring.
type QuizValidator struct{}

func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// Validate applies all quiz-level and question-level authoring rules.
func (v *QuizValidator) Validate(req *models.CreateQuizRequest) ValidationErrors {
	var errs ValidationErrors

	if len(req.Questions) == 0 {
		errs = append(errs, *NewValidationErrorWithRule(
			"questions", "must contain at least one question", "quiz_questions", nil))
		return errs
	}

	for i, q := range req.Questions {
		errs = append(errs, v.validateQuestion(i, &q)...)
	}
	return errs
}

func (v *QuizValidator) validateQuestion(index int, q *models.CreateQuestionRequest) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("questions[%d].%s", index, name)
	}

	key := scoring.ParseAnswerKey(q.CorrectAnswers)
	if key.Empty() {
		errs = append(errs, *NewValidationErrorWithRule(
			field("correct_answers"),
			"must contain at least one correct answer after parsing",
			"correct_answers", q.CorrectAnswers))
	}

	if q.IsTextInput {
		if len(q.Options) > 0 {
			errs = append(errs, *NewValidationErrorWithRule(
				field("options"),
				"free-text questions must not list options",
				"option_count", q.Options))
		}
		return errs
	}

	if len(q.Options) < 2 || len(q.Options) > scoring.MaxOptions {
		errs = append(errs, *NewValidationErrorWithRule(
			field("options"),
			"choice questions must list between 2 and 26 options",
			"option_count", q.Options))
		return errs
	}

	// Every correct answer must be reachable through some listed option,
	// compared in normalized form.
	listed := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		listed[scoring.Normalize(opt)] = struct{}{}
	}
	for _, answer := range key.Values() {
		if _, ok := listed[answer]; !ok {
			errs = append(errs, *NewValidationErrorWithRule(
				field("correct_answers"),
				fmt.Sprintf("correct answer %q does not match any listed option", answer),
				"option_match", answer))
		}
	}
	return errs
}
