package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestCreateBookingRejectsIdenticalSlot(t *testing.T) {
	f := newFixture(t)
	f.booking(t, "R1")

	_, err := f.svc.Bookings.CreateBooking(f.ctx, &dto.CreateBookingRequest{
		Room: "R1", Day: "Mon", StartTime: "09:00", EndTime: "10:00",
	})
	requireKind(t, err, apperrors.ErrConflict, "This room is already booked")

	all, err := f.svc.Bookings.GetAllBookings(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateBookingAllowsPartialOverlap(t *testing.T) {
	f := newFixture(t)
	f.booking(t, "R1")

	for _, req := range []*dto.CreateBookingRequest{
		{Room: "R1", Day: "Mon", StartTime: "09:30", EndTime: "10:30"},
		{Room: "R1", Day: "Tue", StartTime: "09:00", EndTime: "10:00"},
		{Room: "R2", Day: "Mon", StartTime: "09:00", EndTime: "10:00"},
	} {
		_, err := f.svc.Bookings.CreateBooking(f.ctx, req)
		assert.NoError(t, err, "%+v", req)
	}
}

func TestUpdateBookingUsesEffectiveSlot(t *testing.T) {
	f := newFixture(t)
	a := f.booking(t, "R1")
	b, err := f.svc.Bookings.CreateBooking(f.ctx, &dto.CreateBookingRequest{
		Room: "R1", Day: "Mon", StartTime: "11:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	// Moving b onto a's times collides even though room and day were omitted.
	_, err = f.svc.Bookings.UpdateBooking(f.ctx, b.ID, &dto.UpdateBookingRequest{
		StartTime: ptr("09:00"),
		EndTime:   ptr("10:00"),
	})
	requireKind(t, err, apperrors.ErrConflict, "This room is already booked")

	unchanged, err := f.svc.Bookings.GetBookingByID(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "11:00", unchanged.StartTime)

	// Re-submitting a booking's own slot is not a conflict.
	same, err := f.svc.Bookings.UpdateBooking(f.ctx, a.ID, &dto.UpdateBookingRequest{Room: ptr("R1")})
	require.NoError(t, err)
	assert.Equal(t, a.Slot(), same.Slot())

	moved, err := f.svc.Bookings.UpdateBooking(f.ctx, b.ID, &dto.UpdateBookingRequest{Room: ptr("R9")})
	require.NoError(t, err)
	assert.Equal(t, "R9", moved.Room)
	assert.Equal(t, "11:00", moved.StartTime)
}

func TestUpdateBookingErrors(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "R1")

	_, err := f.svc.Bookings.UpdateBooking(f.ctx, 999, &dto.UpdateBookingRequest{Room: ptr("R2")})
	requireKind(t, err, apperrors.ErrResourceNotFound, "Booking not found")

	_, err = f.svc.Bookings.UpdateBooking(f.ctx, b.ID, &dto.UpdateBookingRequest{Room: ptr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteBookingIgnoresMissingID(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, "R1")

	require.NoError(t, f.svc.Bookings.DeleteBooking(f.ctx, b.ID))
	require.NoError(t, f.svc.Bookings.DeleteBooking(f.ctx, b.ID))

	_, err := f.svc.Bookings.GetBookingByID(f.ctx, b.ID)
	requireKind(t, err, apperrors.ErrResourceNotFound, "Booking not found")
}

func TestUpdateBookingPreservesOmittedFields(t *testing.T) {
	f := newFixture(t)
	b, err := f.svc.Bookings.CreateBooking(f.ctx, &dto.CreateBookingRequest{
		Room: "A", Day: "Mon", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	updated, err := f.svc.Bookings.UpdateBooking(f.ctx, b.ID, &dto.UpdateBookingRequest{EndTime: ptr("12:00")})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Room)
	assert.Equal(t, "Mon", updated.Day)
	assert.Equal(t, "09:00", updated.StartTime)
	assert.Equal(t, "12:00", updated.EndTime)
}
