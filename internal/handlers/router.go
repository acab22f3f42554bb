package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/media"
	"github.com/canadaclubjp/quiz-app/internal/services"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

type HandlerManager struct {
	quizHandler       *QuizHandler
	submissionHandler *SubmissionHandler
	scoreHandler      *ScoreHandler
	rosterHandler     *RosterHandler
	mediaHandler      *MediaHandler
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	mediaProxy *media.Proxy,
	frontendBaseURL string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:       NewQuizHandler(serviceManager.Quiz, frontendBaseURL, logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission, logger),
		scoreHandler:      NewScoreHandler(serviceManager.Score, logger),
		rosterHandler:     NewRosterHandler(serviceManager.Roster, logger),
		mediaHandler:      NewMediaHandler(mediaProxy, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "quiz-app",
		})
	})

	v1 := router.Group("/api/v1")
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.GET("/:id/details", hm.quizHandler.GetQuizDetails)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.GET("/:id/qr", hm.quizHandler.GetQuizQR)

			quizzes.POST("/:id/submissions", hm.submissionHandler.SubmitQuiz)
		}

		scores := v1.Group("/scores")
		{
			scores.GET("/:student_number/:quiz_id", hm.scoreHandler.GetScore)
			scores.DELETE("", hm.scoreHandler.ClearScores)
		}

		roster := v1.Group("/roster")
		{
			roster.POST("/verify", hm.rosterHandler.VerifyStudent)
		}

		v1.GET("/media/proxy", hm.mediaHandler.ProxyMedia)
	}
}
