package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canadaclubjp/quiz-app/internal/media"
	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeQuizService struct {
	quizzes map[uint]*models.Quiz

	studentResp *services.StudentQuizResponse
	studentErr  error
}

func (f *fakeQuizService) Create(_ context.Context, req *models.CreateQuizRequest) (*models.Quiz, error) {
	if len(req.Questions) == 0 {
		return nil, services.ValidationErrors{
			services.ValidationError{Field: "questions", Message: "at least one question is required"},
		}
	}
	quiz := &models.Quiz{ID: 1, Title: req.Title, Description: req.Description}
	f.quizzes[quiz.ID] = quiz
	return quiz, nil
}

func (f *fakeQuizService) Update(_ context.Context, id uint, req *models.CreateQuizRequest) (*models.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, services.ErrQuizNotFound
	}
	quiz.Title = req.Title
	return quiz, nil
}

func (f *fakeQuizService) Delete(_ context.Context, id uint) error {
	if _, ok := f.quizzes[id]; !ok {
		return services.ErrQuizNotFound
	}
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizService) List(_ context.Context) ([]services.QuizSummary, error) {
	out := make([]services.QuizSummary, 0, len(f.quizzes))
	for _, quiz := range f.quizzes {
		out = append(out, services.QuizSummary{ID: quiz.ID, Title: quiz.Title})
	}
	return out, nil
}

func (f *fakeQuizService) GetForStudent(_ context.Context, id uint, _, _ string, _ bool) (*services.StudentQuizResponse, error) {
	if f.studentErr != nil {
		return nil, f.studentErr
	}
	if f.studentResp != nil {
		return f.studentResp, nil
	}
	if _, ok := f.quizzes[id]; !ok {
		return nil, services.ErrQuizNotFound
	}
	return &services.StudentQuizResponse{ID: id}, nil
}

func (f *fakeQuizService) GetDetails(_ context.Context, id uint) (*models.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, services.ErrQuizNotFound
	}
	return quiz, nil
}

type fakeSubmissionService struct {
	result *services.SubmissionResult
	err    error
}

func (f *fakeSubmissionService) Submit(_ context.Context, quizID uint, _ *models.SubmissionRequest, _ bool) (*services.SubmissionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeScoreService struct {
	resp *services.ScoreResponse
	err  error
}

func (f *fakeScoreService) Get(context.Context, string, uint) (*services.ScoreResponse, error) {
	return f.resp, f.err
}

func (f *fakeScoreService) Clear(context.Context) error { return f.err }

type fakeRosterService struct {
	valid bool
	err   error
}

func (f *fakeRosterService) Verify(context.Context, *models.VerifyStudentRequest) (bool, error) {
	return f.valid, f.err
}

type fixture struct {
	router     *gin.Engine
	quiz       *fakeQuizService
	submission *fakeSubmissionService
	score      *fakeScoreService
	roster     *fakeRosterService
}

func newFixture() *fixture {
	f := &fixture{
		quiz:       &fakeQuizService{quizzes: map[uint]*models.Quiz{}},
		submission: &fakeSubmissionService{},
		score:      &fakeScoreService{},
		roster:     &fakeRosterService{},
	}
	manager := &services.ServiceManager{
		Quiz:       f.quiz,
		Submission: f.submission,
		Score:      f.score,
		Roster:     f.roster,
	}
	f.router = gin.New()
	NewHandlerManager(manager, media.NewProxy(nil), "https://quiz.example.com", utils.NewDevelopmentLogger()).SetupRoutes(f.router)
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCreateQuiz(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/quizzes", gin.H{
		"title": "Geography",
		"questions": []gin.H{{
			"question_text":   "Capital of Japan?",
			"options":         []string{"Osaka", "Tokyo"},
			"correct_answers": []string{"Tokyo"},
		}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var quiz models.Quiz
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quiz))
	assert.Equal(t, "Geography", quiz.Title)
}

func TestCreateQuiz_ValidationError(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/api/v1/quizzes", gin.H{"title": "Empty"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestGetQuiz_NotFound(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/quizzes/404?student_number=s1&course_number=42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuiz_BadID(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/quizzes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuiz_RosterRejection(t *testing.T) {
	f := newFixture()
	f.quiz.studentErr = services.ErrStudentNotInRoster

	w := f.do(http.MethodGet, "/api/v1/quizzes/1?student_number=s1&course_number=42", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetQuiz_AlreadyTakenReturnsStoredScore(t *testing.T) {
	f := newFixture()
	f.quiz.studentErr = &services.AlreadyTakenError{Score: 3, Total: 5}

	w := f.do(http.MethodGet, "/api/v1/quizzes/1?student_number=s1&course_number=42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AlreadyTakenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, alreadyTakenMessage, resp.Message)
	assert.Equal(t, 3, resp.Score)
	assert.Equal(t, 5, resp.Total)
}

func TestSubmitQuiz(t *testing.T) {
	f := newFixture()
	f.submission.result = &services.SubmissionResult{QuizID: 1, Score: 4, Total: 5}

	w := f.do(http.MethodPost, "/api/v1/quizzes/1/submissions", gin.H{
		"student_number":     "s1000001",
		"first_name_english": "Taro",
		"last_name_english":  "Yamada",
		"course_number":      "42",
		"answers":            gin.H{"1": "B: Tokyo"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result services.SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 5, result.Total)
}

func TestSubmitQuiz_Duplicate(t *testing.T) {
	f := newFixture()
	f.submission.err = &services.AlreadyTakenError{Score: 2, Total: 5}

	w := f.do(http.MethodPost, "/api/v1/quizzes/1/submissions", gin.H{
		"student_number":     "s1000001",
		"first_name_english": "Taro",
		"last_name_english":  "Yamada",
		"course_number":      "42",
		"answers":            gin.H{},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), alreadyTakenMessage)
}

func TestSubmitQuiz_RosterRejection(t *testing.T) {
	f := newFixture()
	f.submission.err = services.ErrStudentNotInRoster

	w := f.do(http.MethodPost, "/api/v1/quizzes/1/submissions", gin.H{
		"student_number":     "s9",
		"first_name_english": "X",
		"last_name_english":  "Y",
		"course_number":      "42",
		"answers":            gin.H{},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetScore(t *testing.T) {
	f := newFixture()
	f.score.resp = &services.ScoreResponse{StudentNumber: "s1", QuizID: 1, Score: 4, Total: 5}

	w := f.do(http.MethodGet, "/api/v1/scores/s1/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score":4`)
}

func TestGetScore_NotFound(t *testing.T) {
	f := newFixture()
	f.score.err = services.ErrScoreNotFound

	w := f.do(http.MethodGet, "/api/v1/scores/s1/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearScores(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodDelete, "/api/v1/scores", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyStudent(t *testing.T) {
	f := newFixture()
	f.roster.valid = true

	w := f.do(http.MethodPost, "/api/v1/roster/verify", gin.H{
		"student_number": "s1000001",
		"course_number":  "42",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}

func TestGetQuizQR(t *testing.T) {
	f := newFixture()
	f.quiz.quizzes[1] = &models.Quiz{ID: 1, Title: "Geography"}

	w := f.do(http.MethodGet, "/api/v1/quizzes/1/qr?course_number=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestGetQuizQR_UnknownQuiz(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/quizzes/9/qr", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProxyMedia(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer upstream.Close()

	f := newFixture()
	w := f.do(http.MethodGet, "/api/v1/media/proxy?url="+url.QueryEscape(upstream.URL), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "inline", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestProxyMedia_MissingURL(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/api/v1/media/proxy", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
