package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

type ScoreHandler struct {
	BaseHandler
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService, logger utils.Logger) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler:  NewBaseHandler(logger),
		scoreService: scoreService,
	}
}

// GetScore handles GET /api/v1/scores/:student_number/:quiz_id
func (h *ScoreHandler) GetScore(c *gin.Context) {
	studentNumber := strings.TrimSpace(c.Param("student_number"))
	if studentNumber == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid student_number"})
		return
	}
	quizID, ok := ParseUintIDParam(c, "quiz_id")
	if !ok {
		return
	}

	score, err := h.scoreService.Get(c.Request.Context(), studentNumber, quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// ClearScores handles DELETE /api/v1/scores
//
// Administrative bulk reset between terms.
func (h *ScoreHandler) ClearScores(c *gin.Context) {
	if err := h.scoreService.Clear(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "All scores cleared"})
}
