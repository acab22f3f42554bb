package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/canadaclubjp/quiz-app/internal/events"
	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"github.com/canadaclubjp/quiz-app/internal/roster"
	"github.com/canadaclubjp/quiz-app/internal/scoring"
	"github.com/canadaclubjp/quiz-app/internal/sheets"
	"github.com/canadaclubjp/quiz-app/internal/validator"
)

// RosterService exposes the roster gate as its own endpoint so the frontend
// can verify a student before loading a quiz.
type RosterService interface {
	Verify(ctx context.Context, req *models.VerifyStudentRequest) (bool, error)
}

type rosterService struct {
	roster    roster.Roster
	validator *validator.Validator
}

func NewRosterService(rosterCheck roster.Roster, v *validator.Validator) RosterService {
	return &rosterService{
		roster:    rosterCheck,
		validator: v,
	}
}

func (s *rosterService) Verify(ctx context.Context, req *models.VerifyStudentRequest) (bool, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return false, err
	}
	enrolled, err := s.roster.Verify(ctx, req.StudentNumber, req.CourseNumber)
	if err != nil {
		return false, fmt.Errorf("failed to verify roster: %w", err)
	}
	return enrolled, nil
}

// ServiceManager wires every service over one repository and one set of
// external clients.
type ServiceManager struct {
	Quiz       QuizService
	Submission SubmissionService
	Score      ScoreService
	Roster     RosterService
}

func NewServiceManager(
	repo repositories.Repository,
	rosterCheck roster.Roster,
	mirror sheets.Mirror,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) *ServiceManager {
	assembler := scoring.NewAssembler()
	return &ServiceManager{
		Quiz:       NewQuizService(repo, rosterCheck, logger, v, assembler),
		Submission: NewSubmissionService(repo, rosterCheck, mirror, publisher, logger, v),
		Score:      NewScoreService(repo, logger),
		Roster:     NewRosterService(rosterCheck, v),
	}
}
