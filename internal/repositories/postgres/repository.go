package postgres

import (
	"context"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	db       *gorm.DB
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	score    repositories.ScoreRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		db:       db,
		quiz:     NewQuizPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		score:    NewScorePostgreSQL(db),
	}
}

func (r *gormRepository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *gormRepository) Question() repositories.QuestionRepository { return r.question }
func (r *gormRepository) Score() repositories.ScoreRepository       { return r.score }

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *gormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the schema for all domain tables, including
// the (student_number, quiz_id) uniqueness that backs the retake gate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Score{},
	)
}
