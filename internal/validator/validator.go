package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canadaclubjp/quiz-app/internal/models"
)

// Validator combines struct-tag validation with quiz authoring rules.
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Report JSON field names in error messages
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuiz performs complete authoring validation: struct tags plus the
// per-question business rules (non-empty answer key, option counts, answers
// matching options).
func (v *Validator) ValidateQuiz(req *models.CreateQuizRequest) error {
	if err := v.ValidateStruct(req); err != nil {
		return err
	}
	if errs := v.quizValidator.Validate(req); len(errs) > 0 {
		return errs
	}
	return nil
}
