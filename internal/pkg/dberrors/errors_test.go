package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: BookingSlotConstraint}
	wrapped := fmt.Errorf("insert booking: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, BookingSlotConstraint))
	assert.False(t, IsDuplicateConstraintError(wrapped, CourseCodeConstraint))
	assert.True(t, IsUniqueViolation(wrapped))
}

func TestOtherCodesAreNotDuplicates(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: BookingSlotConstraint}
	assert.False(t, IsDuplicateConstraintError(fk, BookingSlotConstraint))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
