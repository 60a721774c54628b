package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/middleware"
)

// BookingController handles room bookings
type BookingController struct {
	bookingService services.BookingService
}

// NewBookingController creates a new BookingController
func NewBookingController(bookingService services.BookingService) *BookingController {
	return &BookingController{bookingService: bookingService}
}

// CreateBooking reserves a room slot
// @Summary Create a booking
// @Description Rejects the booking when another one holds exactly the same room, day, start and end.
// @Tags bookings
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateBookingRequest true "Booking slot"
// @Success 201 {object} models.Booking
// @Failure 400 {object} dto.ErrorResponse "Invalid data or room already booked"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bookings [post]
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	var req dto.CreateBookingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	booking, err := c.bookingService.CreateBooking(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// GetBookingByID retrieves a booking
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security CookieAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 400 {object} dto.ErrorResponse "Invalid booking ID"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Router /bookings/{id} [get]
func (c *BookingController) GetBookingByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "booking")
	if !ok {
		return
	}

	booking, err := c.bookingService.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// GetAllBookings lists bookings
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Security CookieAuth
// @Success 200 {array} models.Booking
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bookings [get]
func (c *BookingController) GetAllBookings(ctx *gin.Context) {
	bookings, err := c.bookingService.GetAllBookings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookings)
}

// UpdateBooking changes part of a booking slot
// @Summary Update a booking
// @Description Omitted fields keep their value. The resulting slot must not be held by another booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} models.Booking
// @Failure 400 {object} dto.ErrorResponse "Invalid data or room already booked"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /bookings/{id} [put]
func (c *BookingController) UpdateBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "booking")
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	booking, err := c.bookingService.UpdateBooking(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, booking)
}

// DeleteBooking deletes a booking
// @Summary Delete a booking
// @Tags bookings
// @Produce json
// @Security CookieAuth
// @Param id path int true "Booking ID"
// @Success 200 {string} string "Booking has been deleted..."
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bookings/{id} [delete]
func (c *BookingController) DeleteBooking(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "booking")
	if !ok {
		return
	}

	if err := c.bookingService.DeleteBooking(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "Booking has been deleted...")
}
