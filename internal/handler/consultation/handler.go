package consultation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jbslegal/consultation-api/internal/model"
	"github.com/jbslegal/consultation-api/internal/service/booking"
	apperrors "github.com/jbslegal/consultation-api/pkg/errors"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultation := r.Group("/consultation")
	{
		consultation.POST("/book", h.BookConsultation)
		consultation.GET("/availability", h.GetAvailability)
	}
}

func (h *Handler) BookConsultation(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	result, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":    "success",
		"message":   "Consultation booked successfully",
		"bookingId": result.Booking.ID,
		"confirmationSent": gin.H{
			"email":         result.Emails.User,
			"adminNotified": result.Emails.Admin,
		},
	})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("availability error")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"availableSlots": slots,
	})
}

// respondBookingError maps validation and conflict errors to their
// status codes with the validator's message; everything else is a
// generic 500, with the underlying error logged server-side only.
func (h *Handler) respondBookingError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Code {
		case apperrors.ErrValidation:
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": appErr.Message})
			return
		case apperrors.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": appErr.Message})
			return
		}
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("booking error")
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create booking. Please try again."})
}
