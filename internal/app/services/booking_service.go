package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

// Messages shown to clients for booking failures.
const (
	msgRoomAlreadyBooked = "This room is already booked"
	msgBookingNotFound   = "Booking not found"
)

// BookingService defines the interface for booking-related operations
type BookingService interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	GetAllBookings(ctx context.Context) ([]*models.Booking, error)
	UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// bookingServiceImpl implements the BookingService interface
type bookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
}

// NewBookingService creates a new booking service instance
func NewBookingService(bookingRepo repositories.BookingRepository) BookingService {
	return &bookingServiceImpl{bookingRepo: bookingRepo}
}

// effectiveSlot is the slot a booking would hold after req is applied:
// every field falls back to the current value when req omits it.
func effectiveSlot(current *models.Booking, req *dto.UpdateBookingRequest) models.BookingSlot {
	slot := current.Slot()
	if req.Room != nil {
		slot.Room = *req.Room
	}
	if req.Day != nil {
		slot.Day = *req.Day
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	return slot
}

func roomAlreadyBooked(slot models.BookingSlot) error {
	metrics.BookingConflicts.Inc()
	logger.Info().
		Str("room", slot.Room).
		Str("day", slot.Day).
		Str("startTime", slot.StartTime).
		Str("endTime", slot.EndTime).
		Msg("Booking rejected, slot already held")
	return apperrors.NewConflictError(msgRoomAlreadyBooked)
}

// CreateBooking persists a booking unless another one holds the exact same slot.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*models.Booking, error) {
	booking := &models.Booking{
		Room:      req.Room,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := validateBookingSlot(booking.Slot()); err != nil {
		return nil, err
	}

	taken, err := s.bookingRepo.SlotTaken(ctx, booking.Slot(), 0)
	if err != nil {
		return nil, fmt.Errorf("error checking booking slot: %w", err)
	}
	if taken {
		return nil, roomAlreadyBooked(booking.Slot())
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, roomAlreadyBooked(booking.Slot())
		}
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	logger.Info().Int64("bookingID", booking.ID).Str("room", booking.Room).Msg("Booking created")
	return booking, nil
}

// GetBookingByID retrieves a booking by ID
func (s *bookingServiceImpl) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgBookingNotFound)
		}
		return nil, fmt.Errorf("error retrieving booking: %w", err)
	}
	return booking, nil
}

// GetAllBookings retrieves all bookings
func (s *bookingServiceImpl) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBooking overwrites only the supplied fields, after checking that no
// other booking holds the resulting slot.
func (s *bookingServiceImpl) UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*models.Booking, error) {
	current, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slot := effectiveSlot(current, req)
	if err := validateBookingSlot(slot); err != nil {
		return nil, err
	}

	taken, err := s.bookingRepo.SlotTaken(ctx, slot, id)
	if err != nil {
		return nil, fmt.Errorf("error checking booking slot: %w", err)
	}
	if taken {
		return nil, roomAlreadyBooked(slot)
	}

	updated := &models.Booking{
		ID:        id,
		Room:      slot.Room,
		Day:       slot.Day,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
	if err := s.bookingRepo.UpdateBooking(ctx, updated); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, roomAlreadyBooked(slot)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewResourceNotFoundError(msgBookingNotFound)
		}
		return nil, fmt.Errorf("error updating booking: %w", err)
	}
	return updated, nil
}

// DeleteBooking removes a booking. A missing id is not an error.
func (s *bookingServiceImpl) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookingRepo.DeleteBooking(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	return nil
}
