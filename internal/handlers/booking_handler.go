package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cabgo/internal/middleware"
	"cabgo/internal/models"
	"cabgo/internal/pricing"
	"cabgo/internal/services"
	"cabgo/internal/utils"
	"cabgo/internal/validators"
	"cabgo/pkg/logger"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// ListActiveVehicles returns every bookable rate card in creation order.
func (h *BookingHandler) ListActiveVehicles(c *gin.Context) {
	vehicles, err := h.bookingService.ListActiveVehicles(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Vehicle listing failed")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{"vehicles": vehicles})
}

// CalculateAmount prices a booking request without persisting anything.
func (h *BookingHandler) CalculateAmount(c *gin.Context) {
	input, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	quote, err := h.bookingService.Quote(c.Request.Context(), input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	utils.SuccessResponse(c, quote)
}

// CreateBooking prices and persists a pending booking for the caller.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	input, ok := h.bindBookingRequest(c)
	if !ok {
		return
	}

	receipt, err := h.bookingService.CreateBooking(c.Request.Context(), ident, input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	utils.CreatedResponse(c, receipt)
}

func (h *BookingHandler) bindBookingRequest(c *gin.Context) (*models.BookingInput, bool) {
	var req validators.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Malformed JSON body")
		return nil, false
	}

	input, err := validators.ValidateBookingRequest(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return nil, false
	}

	return input, true
}

// respondBookingError keeps vehicle lookup failures as 400s: a missing
// or inactive vehicle means the caller sent a bad or stale id.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVehicleNotFound),
		errors.Is(err, services.ErrVehicleInactive),
		errors.Is(err, pricing.ErrInvalidMetrics),
		errors.Is(err, validators.ErrInvalidBookingRequest):
		utils.BadRequestResponse(c, err.Error())
	default:
		h.logger.WithError(err).Error("Booking operation failed")
		utils.InternalServerErrorResponse(c)
	}
}
