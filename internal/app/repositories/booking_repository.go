package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

var bookingColumns = []string{"id", "room", "day", "start_time", "end_time"}

// BookingPostgresRepository handles booking database operations
type BookingPostgresRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewBookingRepository creates a new BookingPostgresRepository
func NewBookingRepository(db Querier) *BookingPostgresRepository {
	return &BookingPostgresRepository{db: db, sb: psql}
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	if err := row.Scan(&b.ID, &b.Room, &b.Day, &b.StartTime, &b.EndTime); err != nil {
		return nil, err
	}
	return b, nil
}

func slotPredicate(slot models.BookingSlot) squirrel.Eq {
	return squirrel.Eq{
		"room":       slot.Room,
		"day":        slot.Day,
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
	}
}

func (r *BookingPostgresRepository) queryBookings(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build booking query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing booking query")
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// CreateBooking inserts booking. A held slot yields ErrDuplicate, which
// also catches a concurrent insert that passed SlotTaken first.
func (r *BookingPostgresRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	sql, args, err := r.sb.Insert("bookings").
		Columns("room", "day", "start_time", "end_time").
		Values(booking.Room, booking.Day, booking.StartTime, booking.EndTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create booking query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&booking.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.BookingSlotConstraint) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Str("room", booking.Room).Msg("Error executing create booking query")
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by ID
func (r *BookingPostgresRepository) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	sql, args, err := r.sb.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error scanning booking row")
		return nil, fmt.Errorf("error getting booking by ID: %w", err)
	}
	return booking, nil
}

// GetBookingsByIDs retrieves the bookings that exist among ids.
func (r *BookingPostgresRepository) GetBookingsByIDs(ctx context.Context, ids []int64) ([]*models.Booking, error) {
	if len(ids) == 0 {
		return []*models.Booking{}, nil
	}
	return r.queryBookings(ctx, r.sb.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": ids}).OrderBy("id ASC"))
}

// GetAllBookings retrieves all bookings
func (r *BookingPostgresRepository) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	return r.queryBookings(ctx, r.sb.Select(bookingColumns...).From("bookings").OrderBy("id ASC"))
}

// UpdateBooking overwrites every field of booking.
func (r *BookingPostgresRepository) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	sql, args, err := r.sb.Update("bookings").
		SetMap(map[string]interface{}{
			"room":       booking.Room,
			"day":        booking.Day,
			"start_time": booking.StartTime,
			"end_time":   booking.EndTime,
		}).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update booking query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.BookingSlotConstraint) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("bookingID", booking.ID).Msg("Error executing update booking query")
		return fmt.Errorf("error updating booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBooking deletes a booking by ID
func (r *BookingPostgresRepository) DeleteBooking(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete booking query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error executing delete booking query")
		return fmt.Errorf("error deleting booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SlotTaken checks for an exact (room, day, start_time, end_time) match.
func (r *BookingPostgresRepository) SlotTaken(ctx context.Context, slot models.BookingSlot, excludeID int64) (bool, error) {
	query := r.sb.Select("1").From("bookings").Where(slotPredicate(slot))
	if excludeID != 0 {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build slot check query: %w", err)
	}

	var taken bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&taken); err != nil {
		logger.Error().Err(err).Str("room", slot.Room).Str("day", slot.Day).Msg("Error checking booking slot")
		return false, fmt.Errorf("error checking booking slot: %w", err)
	}
	return taken, nil
}
