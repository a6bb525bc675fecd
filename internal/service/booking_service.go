package service

import (
	"context"
	"errors"
	"time"

	apperrors "timetrack/backend/internal/errors"
	"timetrack/backend/internal/model"
	"timetrack/backend/internal/repository"
)

// ErrInvalidRange is returned for day ranges where the first day is
// not strictly before the first day after the range.
var ErrInvalidRange = errors.New("first day must be before first day after")

type BookingService struct {
	repo *repository.BookingRepository
}

type BookingView struct {
	ID        int64  `json:"id"`
	Day       string `json:"bookingday"`
	Starttime string `json:"starttime"`
	Endtime   string `json:"endtime,omitempty"`
	Activity  int64  `json:"activity"`
	Comment   string `json:"comment"`
}

type AddBookingInput struct {
	Day       string
	Starttime string
	Endtime   string
	Activity  int64
	Comment   string
}

type ChangeBookingInput struct {
	Day       *string
	Starttime *string
	Endtime   *string
	Activity  *int64
	Comment   *string
}

type SplitBookingInput struct {
	Starttime string
	Duration  int // gap between the two parts, in minutes
}

func NewBookingService(repo *repository.BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

// AddBooking records a new booking. An open booking on the same day is
// finished first by setting its end to the new booking's start, so
// starting the next task implicitly closes the previous one.
func (s *BookingService) AddBooking(ctx context.Context, userID string, input AddBookingInput) (*BookingView, *apperrors.APIError) {
	day, apiErr := parseDay(input.Day)
	if apiErr != nil {
		return nil, apiErr
	}
	start, apiErr := parseClock(input.Starttime)
	if apiErr != nil {
		return nil, apiErr
	}
	end, apiErr := parseOptionalClock(input.Endtime)
	if apiErr != nil {
		return nil, apiErr
	}
	if input.Activity <= 0 {
		return nil, apperrors.BadRequest("invalid_activity", "activity id must be positive")
	}
	if apiErr := validateTimeframe(start, end); apiErr != nil {
		return nil, apiErr
	}

	if apiErr := s.closeOpenBooking(ctx, userID, day, start); apiErr != nil {
		return nil, apiErr
	}

	booking := model.Booking{
		UserID:   userID,
		Day:      day,
		Start:    start,
		End:      end,
		Activity: input.Activity,
		Comment:  input.Comment,
	}
	id, err := s.repo.Create(ctx, &booking)
	if err != nil {
		return nil, apperrors.Internal("failed to create booking")
	}
	booking.ID = id

	view := bookingView(booking)
	return &view, nil
}

func (s *BookingService) ChangeBooking(ctx context.Context, userID string, id int64, input ChangeBookingInput) (*BookingView, *apperrors.APIError) {
	booking, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.Day != nil {
		day, apiErr := parseDay(*input.Day)
		if apiErr != nil {
			return nil, apiErr
		}
		booking.Day = day
	}
	if input.Starttime != nil {
		start, apiErr := parseClock(*input.Starttime)
		if apiErr != nil {
			return nil, apiErr
		}
		booking.Start = start
	}
	if input.Endtime != nil {
		end, apiErr := parseClock(*input.Endtime)
		if apiErr != nil {
			return nil, apiErr
		}
		booking.End = &end
	}
	if input.Activity != nil {
		if *input.Activity <= 0 {
			return nil, apperrors.BadRequest("invalid_activity", "activity id must be positive")
		}
		booking.Activity = *input.Activity
	}
	if input.Comment != nil {
		booking.Comment = *input.Comment
	}
	if apiErr := validateTimeframe(booking.Start, booking.End); apiErr != nil {
		return nil, apiErr
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, apperrors.Internal("failed to update booking")
	}

	view := bookingView(*booking)
	return &view, nil
}

// SplitBooking cuts an existing booking in two at the given time,
// leaving a gap of the given length (default 30 minutes) between the
// parts. The second part inherits the original end, open or not.
func (s *BookingService) SplitBooking(ctx context.Context, userID string, id int64, input SplitBookingInput) (*BookingView, *apperrors.APIError) {
	booking, apiErr := s.getOwned(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	splitAt, apiErr := parseClock(input.Starttime)
	if apiErr != nil {
		return nil, apiErr
	}
	gap := time.Duration(input.Duration) * time.Minute
	if gap <= 0 {
		gap = 30 * time.Minute
	}

	first := *booking
	first.End = &splitAt
	if apiErr := validateTimeframe(first.Start, first.End); apiErr != nil {
		return nil, apiErr
	}

	second := *booking
	second.Start = splitAt + gap
	if apiErr := validateTimeframe(second.Start, second.End); apiErr != nil {
		return nil, apiErr
	}

	if err := s.repo.Update(ctx, &first); err != nil {
		return nil, apperrors.Internal("failed to update booking")
	}
	secondID, err := s.repo.Create(ctx, &second)
	if err != nil {
		return nil, apperrors.Internal("failed to create booking")
	}
	second.ID = secondID

	view := bookingView(second)
	return &view, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, userID string, id int64) *apperrors.APIError {
	if _, apiErr := s.getOwned(ctx, userID, id); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return apperrors.Internal("failed to delete booking")
	}
	return nil
}

// GetBookings lists the bookings of [firstDay, firstDayAfter); an
// empty firstDayAfter means the single day firstDay.
func (s *BookingService) GetBookings(ctx context.Context, userID, firstDay, firstDayAfter string) ([]BookingView, *apperrors.APIError) {
	first, after, apiErr := parseDayRange(firstDay, firstDayAfter)
	if apiErr != nil {
		return nil, apiErr
	}

	bookings, err := s.BookingsInRange(ctx, userID, first, after)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			return nil, apperrors.BadRequest("invalid_range", err.Error())
		}
		return nil, apperrors.Internal("failed to list bookings")
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, bookingView(b))
	}
	return views, nil
}

// BookingsInRange satisfies the analysis engine's booking source.
func (s *BookingService) BookingsInRange(ctx context.Context, userID string, firstDay, firstDayAfter time.Time) ([]model.Booking, error) {
	if !firstDay.Before(firstDayAfter) {
		return nil, ErrInvalidRange
	}
	return s.repo.ListRange(ctx, userID, firstDay, firstDayAfter)
}

func (s *BookingService) closeOpenBooking(ctx context.Context, userID string, day time.Time, end time.Duration) *apperrors.APIError {
	open, err := s.repo.FindOpen(ctx, userID, day)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		return apperrors.Internal("failed to query bookings")
	}

	open.End = &end
	if apiErr := validateTimeframe(open.Start, open.End); apiErr != nil {
		return apiErr
	}
	if err := s.repo.Update(ctx, open); err != nil {
		return apperrors.Internal("failed to update booking")
	}
	return nil
}

func (s *BookingService) getOwned(ctx context.Context, userID string, id int64) (*model.Booking, *apperrors.APIError) {
	booking, err := s.repo.GetByID(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("booking_not_found", "booking not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get booking")
	}
	return booking, nil
}

func bookingView(b model.Booking) BookingView {
	view := BookingView{
		ID:        b.ID,
		Day:       model.FormatDay(b.Day),
		Starttime: model.FormatClock(b.Start),
		Activity:  b.Activity,
		Comment:   b.Comment,
	}
	if b.End != nil {
		view.Endtime = model.FormatClock(*b.End)
	}
	return view
}

func validateTimeframe(start time.Duration, end *time.Duration) *apperrors.APIError {
	if end != nil && *end <= start {
		return apperrors.BadRequest("invalid_timeframe", "endtime must be after starttime")
	}
	return nil
}

func parseDay(value string) (time.Time, *apperrors.APIError) {
	day, err := model.ParseDay(value)
	if err != nil {
		return time.Time{}, apperrors.BadRequest("invalid_date", "dates must be formatted YYYY-MM-DD")
	}
	return day, nil
}

func parseClock(value string) (time.Duration, *apperrors.APIError) {
	clock, err := model.ParseClock(value)
	if err != nil {
		return 0, apperrors.BadRequest("invalid_time", "times must be formatted HH:MM")
	}
	return clock, nil
}

func parseOptionalClock(value string) (*time.Duration, *apperrors.APIError) {
	if value == "" {
		return nil, nil
	}
	clock, apiErr := parseClock(value)
	if apiErr != nil {
		return nil, apiErr
	}
	return &clock, nil
}

// parseDayRange parses a half-open day range, defaulting an empty
// firstDayAfter to the day after firstDay.
func parseDayRange(firstDay, firstDayAfter string) (time.Time, time.Time, *apperrors.APIError) {
	first, apiErr := parseDay(firstDay)
	if apiErr != nil {
		return time.Time{}, time.Time{}, apiErr
	}
	if firstDayAfter == "" {
		return first, first.AddDate(0, 0, 1), nil
	}
	after, apiErr := parseDay(firstDayAfter)
	if apiErr != nil {
		return time.Time{}, time.Time{}, apiErr
	}
	return first, after, nil
}
