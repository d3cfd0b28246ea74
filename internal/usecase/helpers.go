package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"see-a-doctor/internal/delivery/http/middleware"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthenticated = apperror.Authorization("authentication required")
	ErrInvalidDate     = apperror.Validation("invalid date format, use YYYY-MM-DD")
)

// BookingSettings carries the booking knobs from configuration
type BookingSettings struct {
	Location           *time.Location
	DefaultSlotMinutes int
	ScheduleDays       int
	MaxScheduleDays    int
	// Clock defaults to time.Now
	Clock func() time.Time
}

func (s BookingSettings) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// today is the current calendar date in the configured timezone
func (s BookingSettings) today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return entity.DateOf(s.now().In(loc))
}

func principalFrom(ctx context.Context) (entity.Principal, error) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		return entity.Principal{}, ErrUnauthenticated
	}
	return p, nil
}

// actorID returns the caller for audit entries, nil for anonymous calls
func actorID(ctx context.Context) *uuid.UUID {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		return nil
	}
	id := p.UserID
	return &id
}

func parseDate(value string) (time.Time, error) {
	date, err := entity.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrInvalidDate.Withf("invalid date %q, use YYYY-MM-DD", value)
	}
	return date, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
