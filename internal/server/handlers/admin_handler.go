package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greencalc/internal/repository"
)

// AdminHandler serves the key-gated history view.
type AdminHandler struct {
	history  repository.HistoryRepository
	adminKey string
	logger   *zap.Logger
}

// NewAdminHandler constructs the admin HTTP handler.
func NewAdminHandler(history repository.HistoryRepository, adminKey string, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{history: history, adminKey: adminKey, logger: logger}
}

// History lists stored calculations most-recent-first. Access requires the
// admin key as a query parameter.
func (h *AdminHandler) History(c *gin.Context) {
	supplied := c.Query("key")
	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(h.adminKey)) != 1 {
		c.String(http.StatusForbidden, "forbidden")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load history")
		return
	}

	c.HTML(http.StatusOK, "admin_history.html", gin.H{"Records": records})
}
