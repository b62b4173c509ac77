package handler

import (
	"errors"
	"net/http"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/domain"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/repository"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	logger             *zap.Logger
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// BookAppointment handles POST /api/book-appointment.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req domain.BookAppointmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		// The storefront shows one generic message for any missing field.
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	requestID := c.GetString("request_id")

	appt, err := h.appointmentService.BookAppointment(c.Request.Context(), req, requestID)
	if err != nil {
		h.logger.Error("Failed to book appointment",
			zap.String("request_id", requestID),
			zap.Error(err))

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to book appointment. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment booked successfully! Confirmation emails sent.",
		"appointment": appt,
	})
}

// ListAppointments handles GET /api/appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments := h.appointmentService.ListAppointments(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"appointments": appointments,
	})
}

// UpdateAppointmentStatus handles PUT /api/appointments/:id.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id := c.Param("id")

	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields",
		})
		return
	}

	appt, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, req.Status, c.GetString("request_id"))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Appointment not found",
			})
			return
		}
		h.logger.Error("Failed to update appointment",
			zap.String("appointment_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update appointment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment status updated successfully",
		"appointment": appt,
	})
}

// DeleteAppointment handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")

	err := h.appointmentService.DeleteAppointment(c.Request.Context(), id, c.GetString("request_id"))
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Appointment not found",
			})
			return
		}
		h.logger.Error("Failed to delete appointment",
			zap.String("appointment_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete appointment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

// HealthCheck handles GET /api/health.
func (h *AppointmentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Server is running",
	})
}
