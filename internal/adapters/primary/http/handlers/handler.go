package handlers

import (
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"release-viewer/internal/adapters/secondary/session"
	"release-viewer/internal/core/services"
)

type Handler struct {
	releaseSvc *services.ReleaseService
	sessions   *scs.SessionManager
}

func New(releaseSvc *services.ReleaseService, sessions *scs.SessionManager) *Handler {
	return &Handler{
		releaseSvc: releaseSvc,
		sessions:   sessions,
	}
}

// RegisterPages mounts the browser-facing HTML routes. The engine must have
// the templates from LoadTemplates installed.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/reload", h.ReloadPage)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Releases
	r.GET("/releases", h.ListReleases)
	r.POST("/releases/reload", h.ReloadReleases)
}

// scope identifies the browsing session so that only its newest load wins.
func (h *Handler) scope(c *gin.Context) string {
	return session.ViewerID(c.Request.Context(), h.sessions)
}
