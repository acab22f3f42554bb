package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/qr"
	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

// QuizHandler serves quiz authoring and both retrieval paths. The plain GET
// is the student path and never exposes the answer key; /details is the
// privileged authoring view.
type QuizHandler struct {
	BaseHandler
	quizService     services.QuizService
	frontendBaseURL string
}

func NewQuizHandler(quizService services.QuizService, frontendBaseURL string, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:     NewBaseHandler(logger),
		quizService:     quizService,
		frontendBaseURL: frontendBaseURL,
	}
}

// CreateQuiz handles POST /api/v1/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req models.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes handles GET /api/v1/quizzes
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	summaries, err := h.quizService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetQuiz handles GET /api/v1/quizzes/:id
//
// Student-facing: options arrive shuffled and labelled, the answer key is
// absent, and the roster gate applies unless admin=true.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.quizService.GetForStudent(c.Request.Context(), id,
		c.Query("student_number"), c.Query("course_number"), adminFlag(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetQuizDetails handles GET /api/v1/quizzes/:id/details
func (h *QuizHandler) GetQuizDetails(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailsResponse(quiz))
}

// UpdateQuiz handles PUT /api/v1/quizzes/:id
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz handles DELETE /api/v1/quizzes/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz deleted"})
}

// GetQuizQR handles GET /api/v1/quizzes/:id/qr
//
// Renders a PNG QR code pointing at the frontend quiz page, for projecting
// in class.
func (h *QuizHandler) GetQuizQR(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.quizService.GetDetails(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	png, err := qr.QuizPNG(h.frontendBaseURL, id, c.Query("course_number"))
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code", err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// detailsResponse shapes the privileged view. correct_answers is only ever
// serialized here; the model's own JSON encoding hides it everywhere else.
func detailsResponse(quiz *models.Quiz) gin.H {
	questions := make([]gin.H, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		questions = append(questions, gin.H{
			"id":              q.ID,
			"question_text":   q.QuestionText,
			"options":         q.OptionList(),
			"correct_answers": q.AnswerList(),
			"is_text_input":   q.IsTextInput,
			"image_url":       q.ImageURL,
			"audio_url":       q.AudioURL,
			"video_url":       q.VideoURL,
		})
	}
	return gin.H{
		"id":          quiz.ID,
		"title":       quiz.Title,
		"description": quiz.Description,
		"questions":   questions,
	}
}
