package repositories

import (
	"context"
	"errors"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates access to the persistent store. WithTransaction runs
// fn against a transactional Repository; returning an error rolls back.
type Repository interface {
	Quiz() QuizRepository
	Question() QuestionRepository
	Score() ScoreRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Quiz, error)
}

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.Question, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
	DeleteByQuiz(ctx context.Context, quizID uint) error
}

type ScoreRepository interface {
	Create(ctx context.Context, score *models.Score) error
	GetByStudentAndQuiz(ctx context.Context, studentNumber string, quizID uint) (*models.Score, error)
	ExistsForStudentAndQuiz(ctx context.Context, studentNumber string, quizID uint) (bool, error)
	DeleteByQuiz(ctx context.Context, quizID uint) error
	DeleteAll(ctx context.Context) error
}

// IsNotFoundError reports whether err is the store's record-not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a unique-constraint violation,
// which is how concurrent duplicate submissions lose the race.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
