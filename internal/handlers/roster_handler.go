package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/models"
	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

type RosterHandler struct {
	BaseHandler
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService, logger utils.Logger) *RosterHandler {
	return &RosterHandler{
		BaseHandler:   NewBaseHandler(logger),
		rosterService: rosterService,
	}
}

// VerifyStudent handles POST /api/v1/roster/verify
func (h *RosterHandler) VerifyStudent(c *gin.Context) {
	var req models.VerifyStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enrolled, err := h.rosterService.Verify(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": enrolled})
}
