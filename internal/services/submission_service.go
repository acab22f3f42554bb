package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/canadaclubjp/quiz-app/internal/events"
	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"github.com/canadaclubjp/quiz-app/internal/roster"
	"github.com/canadaclubjp/quiz-app/internal/scoring"
	"github.com/canadaclubjp/quiz-app/internal/sheets"
	"github.com/canadaclubjp/quiz-app/internal/validator"
)

// SubmissionService scores a student's answers against one quiz and records
// the result. Admin submissions are scored but never gated or persisted.
type SubmissionService interface {
	Submit(ctx context.Context, quizID uint, req *models.SubmissionRequest, admin bool) (*SubmissionResult, error)
}

type SubmissionResult struct {
	QuizID uint `json:"quiz_id"`
	Score  int  `json:"score"`
	Total  int  `json:"total"`
}

type submissionService struct {
	repo      repositories.Repository
	roster    roster.Roster
	mirror    sheets.Mirror
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubmissionService(
	repo repositories.Repository,
	rosterCheck roster.Roster,
	mirror sheets.Mirror,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		roster:    rosterCheck,
		mirror:    mirror,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *submissionService) Submit(ctx context.Context, quizID uint, req *models.SubmissionRequest, admin bool) (*SubmissionResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !admin {
		enrolled, err := s.roster.Verify(ctx, req.StudentNumber, req.CourseNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to verify roster: %w", err)
		}
		if !enrolled {
			return nil, ErrStudentNotInRoster
		}
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if !admin {
		// Cheap existence probe on the common path; the stored row is only
		// fetched when the quiz was already taken, for the replayed result.
		taken, err := s.repo.Score().ExistsForStudentAndQuiz(ctx, req.StudentNumber, quizID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing score: %w", err)
		}
		if taken {
			existing, err := s.repo.Score().GetByStudentAndQuiz(ctx, req.StudentNumber, quizID)
			if err != nil {
				return nil, fmt.Errorf("failed to read existing score: %w", err)
			}
			s.logger.Info("Duplicate submission short-circuited",
				"student_number", req.StudentNumber,
				"quiz_id", quizID)
			return nil, &AlreadyTakenError{Score: existing.Score, Total: existing.TotalQuestions}
		}
	}

	total := len(quiz.Questions)
	score := s.scoreAnswers(quiz.Questions, req.Answers)

	result := &SubmissionResult{QuizID: quizID, Score: score, Total: total}

	if admin {
		s.logger.Info("Scored admin submission without recording",
			"quiz_id", quizID,
			"score", score,
			"total", total)
		return result, nil
	}

	record := &models.Score{
		StudentNumber:  req.StudentNumber,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CourseNumber:   req.CourseNumber,
	}
	if err := s.repo.Score().Create(ctx, record); err != nil {
		if repositories.IsDuplicateError(err) {
			// Lost a race against a concurrent submission from the same
			// student. The unique index decided; return the stored result.
			stored, readErr := s.repo.Score().GetByStudentAndQuiz(ctx, req.StudentNumber, quizID)
			if readErr != nil {
				return nil, fmt.Errorf("failed to read winning score: %w", readErr)
			}
			return nil, &AlreadyTakenError{Score: stored.Score, Total: stored.TotalQuestions}
		}
		return nil, fmt.Errorf("failed to record score: %w", err)
	}

	s.logger.Info("Recorded score",
		"student_number", req.StudentNumber,
		"quiz_id", quizID,
		"score", score,
		"total", total)

	// The score is committed; mirroring and event publishing run best-effort
	// and never unwind it.
	s.mirrorSubmission(ctx, quiz, record, req.Answers)
	s.publishScore(ctx, quiz, record)

	return result, nil
}

func (s *submissionService) scoreAnswers(questions []models.Question, answers map[string]any) int {
	results := make([]scoring.Result, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		submitted := answers[strconv.FormatUint(uint64(q.ID), 10)]
		key := scoring.ParseAnswerKey(q.AnswerList())
		results = append(results, scoring.ScoreQuestion(q.IsTextInput, key, submitted))
	}
	return scoring.TotalScore(results)
}

func (s *submissionService) mirrorSubmission(ctx context.Context, quiz *models.Quiz, record *models.Score, answers map[string]any) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		s.logger.Warn("failed to encode answers for mirroring", "error", err)
		answersJSON = []byte("{}")
	}

	row := sheets.SubmissionRow{
		Timestamp:     time.Now(),
		StudentNumber: record.StudentNumber,
		FirstName:     record.FirstName,
		LastName:      record.LastName,
		CourseNumber:  record.CourseNumber,
		QuizID:        record.QuizID,
		QuizTitle:     quiz.Title,
		AnswersJSON:   string(answersJSON),
		Score:         record.Score,
		Total:         record.TotalQuestions,
	}
	if err := s.mirror.AppendSubmission(ctx, row); err != nil {
		s.logger.Error("Failed to mirror submission",
			"student_number", record.StudentNumber,
			"quiz_id", record.QuizID,
			"error", err)
	}
}

func (s *submissionService) publishScore(ctx context.Context, quiz *models.Quiz, record *models.Score) {
	event := events.NewScoreRecordedEvent(
		record.QuizID, quiz.Title,
		record.StudentNumber, record.CourseNumber,
		record.Score, record.TotalQuestions)
	if err := s.publisher.PublishScoreRecorded(ctx, event); err != nil {
		s.logger.Error("Failed to publish score event",
			"quiz_id", record.QuizID,
			"error", err)
	}
}
