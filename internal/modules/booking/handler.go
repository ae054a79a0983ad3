package booking

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
	g := rg.Group("/bookings")
	{
		g.POST("", h.create)
		g.GET("", h.byDate)
		g.GET("/me", h.mine)
		g.GET("/facility/:facilityId", h.byFacility)
		g.PUT("/:id/cancel", h.cancel)
		g.GET("/all", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), h.all)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "facilityId, start and end are required")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.UserID(c), req)
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "End must be after start")
	case errors.Is(err, ErrFacilityNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Facility already booked for selected time")
	case err != nil:
		h.log.WithError(err).Error("create booking")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
	default:
		response.Success(c, http.StatusCreated, gin.H{"booking": b})
	}
}

func (h *Handler) byDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query param required")
		return
	}

	list, err := h.service.GetBookingsByDate(c.Request.Context(), date)
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
	case err != nil:
		h.log.WithError(err).Error("bookings by date")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
	default:
		response.Success(c, http.StatusOK, gin.H{"bookings": list})
	}
}

func (h *Handler) mine(c *gin.Context) {
	list, err := h.service.GetMyBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.log.WithError(err).Error("my bookings")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) byFacility(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("facilityId"), 10, 64)
	if err != nil || facilityID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid facility id")
		return
	}

	list, err := h.service.GetFacilityBookings(c.Request.Context(), facilityID, c.Query("date"))
	switch {
	case errors.Is(err, ErrFacilityNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
	case err != nil:
		h.log.WithError(err).Error("facility bookings")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
	default:
		response.Success(c, http.StatusOK, gin.H{"bookings": list})
	}
}

func (h *Handler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c))
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to cancel this booking")
	case errors.Is(err, ErrAlreadyCancelled):
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Booking is already cancelled")
	case err != nil:
		h.log.WithError(err).Error("cancel booking")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
	default:
		response.Success(c, http.StatusOK, gin.H{"booking": b})
	}
}

func (h *Handler) all(c *gin.Context) {
	list, err := h.service.GetAllBookings(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("all bookings")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}
