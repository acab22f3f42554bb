package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canadaclubjp/quiz-app/internal/media"
	"github.com/canadaclubjp/quiz-app/internal/utils"
)

// MediaHandler proxies question attachments so the browser never talks to
// the storage host directly. Google Drive share links in particular refuse
// cross-origin embedding without the rewrite the proxy applies.
type MediaHandler struct {
	BaseHandler
	proxy *media.Proxy
}

func NewMediaHandler(proxy *media.Proxy, logger utils.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: NewBaseHandler(logger),
		proxy:       proxy,
	}
}

// ProxyMedia handles GET /api/v1/media/proxy?url=
func (h *MediaHandler) ProxyMedia(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		h.RespondWithError(c, http.StatusBadRequest, "url query parameter is required", nil)
		return
	}

	content, err := h.proxy.Fetch(c.Request.Context(), rawURL)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to fetch media", err)
		return
	}

	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, content.Type, content.Data)
}
