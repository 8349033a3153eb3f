package messaging

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/response"
)

// Handler exposes the dispatch trigger for external cron schedulers. The
// long-running worker in cmd/dispatch covers deployments without one.
type Handler struct {
	dispatcher *Dispatcher
	cronSecret string
}

func NewHandler(dispatcher *Dispatcher, cronSecret string) *Handler {
	return &Handler{dispatcher: dispatcher, cronSecret: cronSecret}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cron/messages/dispatch", h.Dispatch)
}

func (h *Handler) Dispatch(c *gin.Context) {
	token := c.GetHeader("X-Cron-Secret")
	if token == "" {
		token = c.Query("token")
	}
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid cron token")
		return
	}

	res, err := h.dispatcher.RunOnce(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Dispatch pass failed")
		return
	}
	response.Success(c, http.StatusOK, res)
}
