package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timetrack/backend/internal/model"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`INSERT INTO bookings (user_id, bookingday, starttime, endtime, activity, comment)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		booking.UserID,
		model.FormatDay(booking.Day),
		model.FormatClock(booking.Start),
		clockColumn(booking.End),
		booking.Activity,
		booking.Comment,
	)
	if err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create booking id: %w", err)
	}
	return id, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE bookings
		 SET bookingday = ?,
		     starttime = ?,
		     endtime = ?,
		     activity = ?,
		     comment = ?
		 WHERE id = ? AND user_id = ?`,
		model.FormatDay(booking.Day),
		model.FormatClock(booking.Start),
		clockColumn(booking.End),
		booking.Activity,
		booking.Comment,
		booking.ID,
		booking.UserID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, userID string, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete bookings of user: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, userID string, id int64) (*model.Booking, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, bookingday, starttime, endtime, activity, comment
		 FROM bookings
		 WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListRange returns the user's bookings with a day in
// [firstDay, firstDayAfter), ordered by day and start time. Day and
// clock columns are ISO text, so the SQL ordering is chronological.
func (r *BookingRepository) ListRange(ctx context.Context, userID string, firstDay, firstDayAfter time.Time) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, bookingday, starttime, endtime, activity, comment
		 FROM bookings
		 WHERE user_id = ? AND bookingday >= ? AND bookingday < ?
		 ORDER BY bookingday, starttime`,
		userID,
		model.FormatDay(firstDay),
		model.FormatDay(firstDayAfter),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

// FindOpen returns the user's open booking on the given day, or
// ErrNotFound when every booking of the day is finished.
func (r *BookingRepository) FindOpen(ctx context.Context, userID string, day time.Time) (*model.Booking, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, bookingday, starttime, endtime, activity, comment
		 FROM bookings
		 WHERE user_id = ? AND bookingday = ? AND endtime IS NULL
		 ORDER BY starttime
		 LIMIT 1`,
		userID,
		model.FormatDay(day),
	)
	booking, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (*model.Booking, error) {
	var booking model.Booking
	var day string
	var start string
	var end sql.NullString
	err := s.Scan(
		&booking.ID,
		&booking.UserID,
		&day,
		&start,
		&end,
		&booking.Activity,
		&booking.Comment,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	booking.Day, err = model.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("parse booking day: %w", err)
	}
	booking.Start, err = model.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("parse booking starttime: %w", err)
	}
	booking.End, err = parseClockColumn(end)
	if err != nil {
		return nil, fmt.Errorf("parse booking endtime: %w", err)
	}

	return &booking, nil
}
