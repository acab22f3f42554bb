package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/canadaclubjp/quiz-app/internal/repositories"
)

// ScoreService reads recorded results and supports the administrative bulk
// reset between terms.
type ScoreService interface {
	Get(ctx context.Context, studentNumber string, quizID uint) (*ScoreResponse, error)
	Clear(ctx context.Context) error
}

type ScoreResponse struct {
	StudentNumber string `json:"student_number"`
	QuizID        uint   `json:"quiz_id"`
	Score         int    `json:"score"`
	// Total reflects the quiz's current question count, which can drift from
	// the count at submission time if the quiz was edited since.
	Total int `json:"total"`
}

type scoreService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewScoreService(repo repositories.Repository, logger *slog.Logger) ScoreService {
	return &scoreService{
		repo:   repo,
		logger: logger,
	}
}

func (s *scoreService) Get(ctx context.Context, studentNumber string, quizID uint) (*ScoreResponse, error) {
	score, err := s.repo.Score().GetByStudentAndQuiz(ctx, studentNumber, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	total, err := s.repo.Question().CountByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	return &ScoreResponse{
		StudentNumber: score.StudentNumber,
		QuizID:        score.QuizID,
		Score:         score.Score,
		Total:         int(total),
	}, nil
}

func (s *scoreService) Clear(ctx context.Context) error {
	if err := s.repo.Score().DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	s.logger.Info("Cleared all scores")
	return nil
}
