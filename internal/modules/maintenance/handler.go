package maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"facilityhub/internal/domain"
	"facilityhub/internal/middleware"
	"facilityhub/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *logrus.Logger
}

func NewHandler(service *Service, log *logrus.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/maintenance")
	{
		g.POST("/requests",
			middleware.RequireRole(domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin),
			h.create)
		g.GET("/requests", h.mine)
		g.GET("/requests/all",
			middleware.RequireRole(domain.RoleAdmin, domain.RoleManager),
			h.all)
		g.GET("/requests/:id", h.get)
		g.PATCH("/requests/:id", h.update)
		g.PATCH("/requests/:id/status",
			middleware.RequireRole(domain.RoleTechnician, domain.RoleManager, domain.RoleAdmin),
			h.updateStatus)
		g.PATCH("/requests/:id/assign",
			middleware.RequireRole(domain.RoleManager, domain.RoleAdmin),
			h.assign)
		g.GET("/stats", h.stats)
	}
}

func (h *Handler) create(c *gin.Context) {
	var in CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title, type, priority, location and description are required")
		return
	}

	req, err := h.service.CreateRequest(c.Request.Context(), middleware.UserID(c), in)
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid type or priority")
	case err != nil:
		h.log.WithError(err).Error("create request")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
	default:
		response.Success(c, http.StatusCreated, req)
	}
}

func (h *Handler) mine(c *gin.Context) {
	list, err := h.service.GetMyRequests(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.WithError(err).Error("list requests")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch requests")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) all(c *gin.Context) {
	list, err := h.service.GetAllRequests(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list all requests")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch requests")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	req, err := h.service.GetRequest(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Can only view your own requests")
	case err != nil:
		h.log.WithError(err).Error("get request")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch request")
	default:
		response.Success(c, http.StatusOK, req)
	}
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in UpdateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	req, err := h.service.UpdateRequest(c.Request.Context(), id, middleware.UserID(c), in)
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrNotSubmitter):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the request submitter can update this request")
	case errors.Is(err, ErrNotEditable):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot edit request that is not pending")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid type or priority")
	case err != nil:
		h.log.WithError(err).Error("update request")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update request")
	default:
		response.Success(c, http.StatusOK, req)
	}
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	req, err := h.service.UpdateStatus(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c), in.Status)
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status")
	case errors.Is(err, ErrNotAssigned):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Request is not assigned to you")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status cannot move backward")
	case err != nil:
		h.log.WithError(err).Error("update status")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update status")
	default:
		response.Success(c, http.StatusOK, req)
	}
}

func (h *Handler) assign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in AssignTechnicianInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "technicianId is required")
		return
	}

	req, err := h.service.AssignTechnician(c.Request.Context(), id, in.TechnicianID)
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrNotTechnician):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Assignee is not an active technician")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Completed requests cannot be reassigned")
	case err != nil:
		h.log.WithError(err).Error("assign technician")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign technician")
	default:
		response.Success(c, http.StatusOK, req)
	}
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("request stats")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return 0, false
	}
	return id, true
}
