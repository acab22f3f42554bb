package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/repositories"
	"github.com/canadaclubjp/quiz-app/internal/sheets"
)

// In-memory repository fakes shared by the service tests.

type fakeRepo struct {
	quizzes   map[uint]*models.Quiz
	questions map[uint][]*models.Question
	scores    map[string]*models.Score

	nextQuizID     uint
	nextQuestionID uint
	nextScoreID    uint

	// onCreateScore, when set, intercepts score inserts. Used to simulate
	// losing a race against a concurrent submission.
	onCreateScore func(*models.Score) error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quizzes:   make(map[uint]*models.Quiz),
		questions: make(map[uint][]*models.Question),
		scores:    make(map[string]*models.Score),
	}
}

func scoreKey(studentNumber string, quizID uint) string {
	return fmt.Sprintf("%s|%d", studentNumber, quizID)
}

func (f *fakeRepo) Quiz() repositories.QuizRepository         { return &fakeQuizRepo{f} }
func (f *fakeRepo) Question() repositories.QuestionRepository { return &fakeQuestionRepo{f} }
func (f *fakeRepo) Score() repositories.ScoreRepository       { return &fakeScoreRepo{f} }

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }
func (f *fakeRepo) Close() error                   { return nil }

type fakeQuizRepo struct{ f *fakeRepo }

func (r *fakeQuizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	r.f.nextQuizID++
	quiz.ID = r.f.nextQuizID
	stored := *quiz
	r.f.quizzes[quiz.ID] = &stored
	return nil
}

func (r *fakeQuizRepo) GetByID(_ context.Context, id uint) (*models.Quiz, error) {
	quiz, ok := r.f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (r *fakeQuizRepo) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quiz.Questions = nil
	for _, q := range r.f.questions[id] {
		quiz.Questions = append(quiz.Questions, *q)
	}
	return quiz, nil
}

func (r *fakeQuizRepo) Update(_ context.Context, quiz *models.Quiz) error {
	if _, ok := r.f.quizzes[quiz.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *quiz
	r.f.quizzes[quiz.ID] = &stored
	return nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, id uint) error {
	delete(r.f.quizzes, id)
	return nil
}

func (r *fakeQuizRepo) List(_ context.Context) ([]*models.Quiz, error) {
	out := make([]*models.Quiz, 0, len(r.f.quizzes))
	for id := uint(1); id <= r.f.nextQuizID; id++ {
		if quiz, ok := r.f.quizzes[id]; ok {
			copied := *quiz
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeQuestionRepo struct{ f *fakeRepo }

func (r *fakeQuestionRepo) CreateBatch(_ context.Context, questions []*models.Question) error {
	for _, q := range questions {
		r.f.nextQuestionID++
		q.ID = r.f.nextQuestionID
		stored := *q
		r.f.questions[q.QuizID] = append(r.f.questions[q.QuizID], &stored)
	}
	return nil
}

func (r *fakeQuestionRepo) GetByQuiz(_ context.Context, quizID uint) ([]*models.Question, error) {
	return r.f.questions[quizID], nil
}

func (r *fakeQuestionRepo) CountByQuiz(_ context.Context, quizID uint) (int64, error) {
	return int64(len(r.f.questions[quizID])), nil
}

func (r *fakeQuestionRepo) DeleteByQuiz(_ context.Context, quizID uint) error {
	delete(r.f.questions, quizID)
	return nil
}

type fakeScoreRepo struct{ f *fakeRepo }

func (r *fakeScoreRepo) Create(_ context.Context, score *models.Score) error {
	if r.f.onCreateScore != nil {
		if err := r.f.onCreateScore(score); err != nil {
			return err
		}
	}
	key := scoreKey(score.StudentNumber, score.QuizID)
	if _, ok := r.f.scores[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.f.nextScoreID++
	score.ID = r.f.nextScoreID
	stored := *score
	r.f.scores[key] = &stored
	return nil
}

func (r *fakeScoreRepo) GetByStudentAndQuiz(_ context.Context, studentNumber string, quizID uint) (*models.Score, error) {
	score, ok := r.f.scores[scoreKey(studentNumber, quizID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *score
	return &copied, nil
}

func (r *fakeScoreRepo) ExistsForStudentAndQuiz(_ context.Context, studentNumber string, quizID uint) (bool, error) {
	_, ok := r.f.scores[scoreKey(studentNumber, quizID)]
	return ok, nil
}

func (r *fakeScoreRepo) DeleteByQuiz(_ context.Context, quizID uint) error {
	for key, score := range r.f.scores {
		if score.QuizID == quizID {
			delete(r.f.scores, key)
		}
	}
	return nil
}

func (r *fakeScoreRepo) DeleteAll(_ context.Context) error {
	r.f.scores = make(map[string]*models.Score)
	return nil
}

type fakeRoster struct {
	enrolled map[string]bool
	err      error
}

func (f *fakeRoster) Verify(_ context.Context, studentNumber, courseNumber string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.enrolled[studentNumber+"|"+courseNumber], nil
}

type fakeMirror struct {
	rows []sheets.SubmissionRow
	err  error
}

func (f *fakeMirror) AppendSubmission(_ context.Context, row sheets.SubmissionRow) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}

// seedQuiz stores a quiz with one single-choice, one multi-choice and one
// free-text question and returns the quiz id.
func seedQuiz(f *fakeRepo) uint {
	quiz := &models.Quiz{Title: "Geography"}
	_ = f.Quiz().Create(context.Background(), quiz)
	_ = f.Question().CreateBatch(context.Background(), []*models.Question{
		{
			QuizID:         quiz.ID,
			QuestionText:   "Capital of Japan?",
			Options:        mustJSON([]string{"Osaka", "Tokyo"}),
			CorrectAnswers: mustJSON([]string{"Tokyo"}),
		},
		{
			QuizID:         quiz.ID,
			QuestionText:   "Which are animals?",
			Options:        mustJSON([]string{"Dog", "Fish", "Rock"}),
			CorrectAnswers: mustJSON([]string{"Dog", "Fish"}),
		},
		{
			QuizID:         quiz.ID,
			QuestionText:   "Capital of France?",
			CorrectAnswers: mustJSON([]string{"Paris|paris city"}),
			IsTextInput:    true,
		},
	})
	return quiz.ID
}
