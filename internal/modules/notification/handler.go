package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"facilityhub/internal/middleware"
	"facilityhub/internal/pkg/response"
	"facilityhub/internal/repository"
)

// Handler serves the recipient-scoped notification REST surface.
type Handler struct {
	store Store
	log   *logrus.Logger
}

func NewHandler(store Store, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	{
		g.GET("", h.list)
		g.PATCH("/:id/read", h.markRead)
		g.PATCH("/read/all", h.markAllRead)
		g.DELETE("/:id", h.delete)
		g.DELETE("/clear/all", h.clearAll)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	unreadOnly := c.Query("unreadOnly") == "true"

	list, total, unread, err := h.store.ListByRecipient(c.Request.Context(), userID, limit, skip, unreadOnly)
	if err != nil {
		h.log.WithError(err).Error("list notifications")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error fetching notifications")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": list,
		"total":         total,
		"unreadCount":   unread,
	})
}

func (h *Handler) markRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.store.MarkRead(c.Request.Context(), id, middleware.UserID(c))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case err != nil:
		h.log.WithError(err).Error("mark notification read")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error marking notification as read")
	default:
		response.Success(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}

func (h *Handler) markAllRead(c *gin.Context) {
	if err := h.store.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.log.WithError(err).Error("mark all notifications read")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error marking notifications as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.store.Delete(c.Request.Context(), id, middleware.UserID(c))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
	case err != nil:
		h.log.WithError(err).Error("delete notification")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error deleting notification")
	default:
		response.Success(c, http.StatusOK, gin.H{"message": "Notification deleted"})
	}
}

func (h *Handler) clearAll(c *gin.Context) {
	if err := h.store.DeleteAllForRecipient(c.Request.Context(), middleware.UserID(c)); err != nil {
		h.log.WithError(err).Error("clear notifications")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error clearing notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "All notifications cleared"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification id")
		return 0, false
	}
	return id, true
}
