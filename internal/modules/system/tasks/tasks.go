package tasks

import (
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the background job scheduler over HTTP.
type Handler struct {
	sched *pkgcron.Scheduler
}

func NewHandler(sched *pkgcron.Scheduler) *Handler {
	return &Handler{sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron-task", authMW)
	g.GET("", h.list)
	g.GET("/:name", h.get)
	g.POST("/:name/run", h.run)
}

func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.sched.List())
}

func (h *Handler) get(c *gin.Context) {
	result, err := h.sched.Get(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, "job not found")
		return
	}
	response.OK(c, result)
}

func (h *Handler) run(c *gin.Context) {
	if err := h.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
		response.NotFoundMsg(c, "job not found")
		return
	}
	response.OK(c, gin.H{"message": "job triggered"})
}
