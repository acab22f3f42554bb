package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"github.com/canadaclubjp/quiz-app/internal/roster"
	"github.com/canadaclubjp/quiz-app/internal/scoring"
	"github.com/canadaclubjp/quiz-app/internal/validator"
)

// QuizService covers quiz authoring plus the two retrieval paths: the
// student-facing presentation (shuffled, labelled, no answer key) and the
// privileged details view.
type QuizService interface {
	Create(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error)
	Update(ctx context.Context, id uint, req *models.CreateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]QuizSummary, error)
	GetForStudent(ctx context.Context, id uint, studentNumber, courseNumber string, admin bool) (*StudentQuizResponse, error)
	GetDetails(ctx context.Context, id uint) (*models.Quiz, error)
}

// QuizSummary is one row of the quiz listing.
type QuizSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// StudentQuestionView is one question as a student sees it. Options are
// already shuffled and labelled; the answer key is deliberately absent.
type StudentQuestionView struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	IsTextInput  bool     `json:"is_text_input"`
	ImageURL     string   `json:"image_url,omitempty"`
	AudioURL     string   `json:"audio_url,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"`
}

type StudentQuizResponse struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	Questions   []StudentQuestionView `json:"questions"`
}

type quizService struct {
	repo      repositories.Repository
	roster    roster.Roster
	logger    *slog.Logger
	validator *validator.Validator
	assembler *scoring.Assembler
}

func NewQuizService(repo repositories.Repository, rosterCheck roster.Roster, logger *slog.Logger, v *validator.Validator, assembler *scoring.Assembler) QuizService {
	return &quizService{
		repo:      repo,
		roster:    rosterCheck,
		logger:    logger,
		validator: v,
		assembler: assembler,
	}
}

// ===== AUTHORING OPERATIONS =====

func (s *quizService) Create(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.ValidateQuiz(req); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Quiz().Create(ctx, quiz); err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		questions, err := buildQuestions(quiz.ID, req.Questions)
		if err != nil {
			return err
		}
		if err := tx.Question().CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created quiz",
		"quiz_id", quiz.ID,
		"title", quiz.Title,
		"question_count", len(req.Questions))

	return s.repo.Quiz().GetByIDWithQuestions(ctx, quiz.ID)
}

func (s *quizService) Update(ctx context.Context, id uint, req *models.CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.ValidateQuiz(req); err != nil {
		return nil, err
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	quiz.Title = req.Title
	quiz.Description = req.Description

	// An update replaces the whole question set rather than patching rows.
	// Old question ids disappear, which is why scoring always runs against
	// the question set current at submission time.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Quiz().Update(ctx, quiz); err != nil {
			return fmt.Errorf("failed to update quiz: %w", err)
		}
		if err := tx.Question().DeleteByQuiz(ctx, id); err != nil {
			return fmt.Errorf("failed to delete old questions: %w", err)
		}
		questions, err := buildQuestions(id, req.Questions)
		if err != nil {
			return err
		}
		if err := tx.Question().CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Updated quiz", "quiz_id", id, "question_count", len(req.Questions))

	return s.repo.Quiz().GetByIDWithQuestions(ctx, id)
}

func (s *quizService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Quiz().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Score().DeleteByQuiz(ctx, id); err != nil {
			return fmt.Errorf("failed to delete scores: %w", err)
		}
		if err := tx.Question().DeleteByQuiz(ctx, id); err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}
		if err := tx.Quiz().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete quiz: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deleted quiz", "quiz_id", id)
	return nil
}

func (s *quizService) List(ctx context.Context) ([]QuizSummary, error) {
	quizzes, err := s.repo.Quiz().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		count, err := s.repo.Question().CountByQuiz(ctx, quiz.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count questions for quiz %d: %w", quiz.ID, err)
		}
		summaries = append(summaries, QuizSummary{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Description:   quiz.Description,
			QuestionCount: int(count),
			CreatedAt:     quiz.CreatedAt,
		})
	}
	return summaries, nil
}

// ===== RETRIEVAL OPERATIONS =====

func (s *quizService) GetForStudent(ctx context.Context, id uint, studentNumber, courseNumber string, admin bool) (*StudentQuizResponse, error) {
	if !admin {
		enrolled, err := s.roster.Verify(ctx, studentNumber, courseNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to verify roster: %w", err)
		}
		if !enrolled {
			return nil, ErrStudentNotInRoster
		}

		existing, err := s.repo.Score().GetByStudentAndQuiz(ctx, studentNumber, id)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check existing score: %w", err)
		}
		if existing != nil {
			return nil, &AlreadyTakenError{Score: existing.Score, Total: existing.TotalQuestions}
		}
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	resp := &StudentQuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]StudentQuestionView, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		resp.Questions = append(resp.Questions, StudentQuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      s.assembler.Present(q.OptionList(), q.IsTextInput),
			IsTextInput:  q.IsTextInput,
			ImageURL:     q.ImageURL,
			AudioURL:     q.AudioURL,
			VideoURL:     q.VideoURL,
		})
	}
	return resp, nil
}

func (s *quizService) GetDetails(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// buildQuestions converts authored questions to storage rows. Answer keys
// are stored in canonical array form, with delimiter-joined entries split.
func buildQuestions(quizID uint, reqs []models.CreateQuestionRequest) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(reqs))
	for _, req := range reqs {
		options, err := json.Marshal(req.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		answers, err := json.Marshal(scoring.SplitAnswers(req.CorrectAnswers))
		if err != nil {
			return nil, fmt.Errorf("failed to encode answers: %w", err)
		}
		questions = append(questions, &models.Question{
			QuizID:         quizID,
			QuestionText:   req.QuestionText,
			Options:        datatypes.JSON(options),
			CorrectAnswers: datatypes.JSON(answers),
			IsTextInput:    req.IsTextInput,
			ImageURL:       req.ImageURL,
			AudioURL:       req.AudioURL,
			VideoURL:       req.VideoURL,
		})
	}
	return questions, nil
}
