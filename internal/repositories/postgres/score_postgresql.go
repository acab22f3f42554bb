package postgres

import (
	"context"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"gorm.io/gorm"
)

type ScorePostgreSQL struct {
	db *gorm.DB
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db}
}

func (s *ScorePostgreSQL) Create(ctx context.Context, score *models.Score) error {
	return s.db.WithContext(ctx).Create(score).Error
}

func (s *ScorePostgreSQL) GetByStudentAndQuiz(ctx context.Context, studentNumber string, quizID uint) (*models.Score, error) {
	var score models.Score
	if err := s.db.WithContext(ctx).
		Where("student_number = ? AND quiz_id = ?", studentNumber, quizID).
		First(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *ScorePostgreSQL) ExistsForStudentAndQuiz(ctx context.Context, studentNumber string, quizID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("student_number = ? AND quiz_id = ?", studentNumber, quizID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ScorePostgreSQL) DeleteByQuiz(ctx context.Context, quizID uint) error {
	return s.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Delete(&models.Score{}).Error
}

func (s *ScorePostgreSQL) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Score{}).Error
}
