package service_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"timetrack/backend/internal/db"
	"timetrack/backend/internal/repository"
	"timetrack/backend/internal/service"
)

type services struct {
	auth     *service.AuthService
	activity *service.ActivityService
	booking  *service.BookingService
	analysis *service.AnalysisService
}

func setupServices(t *testing.T) *services {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	activityRepo := repository.NewActivityRepository(database)
	bookingRepo := repository.NewBookingRepository(database)

	activityService := service.NewActivityService(activityRepo)
	bookingService := service.NewBookingService(bookingRepo)

	return &services{
		auth:     service.NewAuthService(userRepo, activityRepo, bookingRepo, "test-secret", time.Hour),
		activity: activityService,
		booking:  bookingService,
		analysis: service.NewAnalysisService(activityService, bookingService),
	}
}

func registerTestUser(t *testing.T, s *services, username string) string {
	t.Helper()
	result, apiErr := s.auth.Register(context.Background(), service.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-password",
		Question: "favorite color?",
		Answer:   "green",
	})
	if apiErr != nil {
		t.Fatalf("register %s: %v", username, apiErr)
	}
	return result.User.ID
}

func addTestActivity(t *testing.T, s *services, userID, projectName, projectID, activityName, activityID string) int64 {
	t.Helper()
	activity, apiErr := s.activity.AddActivity(context.Background(), userID, service.ActivityInput{
		ProjectName:  projectName,
		ProjectID:    projectID,
		ActivityName: activityName,
		ActivityID:   activityID,
	})
	if apiErr != nil {
		t.Fatalf("add activity %s/%s: %v", projectID, activityID, apiErr)
	}
	return activity.ID
}

func addTestBooking(t *testing.T, s *services, userID string, input service.AddBookingInput) *service.BookingView {
	t.Helper()
	booking, apiErr := s.booking.AddBooking(context.Background(), userID, input)
	if apiErr != nil {
		t.Fatalf("add booking on %s: %v", input.Day, apiErr)
	}
	return booking
}

// seedMarch recreates one month of activities and bookings used by the
// analysis service tests: three activities in two projects, five
// booked days and one day left unfinished.
func seedMarch(t *testing.T, s *services, userID string) {
	t.Helper()

	act1 := addTestActivity(t, s, userID, "a", "f", "c", "h")
	act2 := addTestActivity(t, s, userID, "b", "g", "d", "i")
	act3 := addTestActivity(t, s, userID, "a", "f", "e", "j")

	bookings := []service.AddBookingInput{
		{Day: "2017-03-01", Starttime: "12:34", Endtime: "13:57", Activity: act1, Comment: "Comment 1"},
		{Day: "2017-03-01", Starttime: "13:57", Endtime: "14:35", Activity: act2},
		{Day: "2017-03-06", Starttime: "08:15", Endtime: "09:42", Activity: act3, Comment: "Comment 2"},
		{Day: "2017-03-06", Starttime: "15:39", Endtime: "18:45", Activity: act1, Comment: "Comment 3"},
		{Day: "2017-03-09", Starttime: "09:42", Endtime: "14:35", Activity: act2},
		{Day: "2017-03-09", Starttime: "14:35", Endtime: "17:25", Activity: act3},
		{Day: "2017-03-15", Starttime: "08:15", Endtime: "15:39", Activity: act1, Comment: "Comment 2"},
		{Day: "2017-03-15", Starttime: "15:39", Endtime: "18:45", Activity: act2, Comment: "Comment 3"},
		{Day: "2017-03-24", Starttime: "08:15", Activity: act3},
		{Day: "2017-03-28", Starttime: "09:42", Endtime: "18:45", Activity: act1},
	}
	for _, input := range bookings {
		addTestBooking(t, s, userID, input)
	}
}
