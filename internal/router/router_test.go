package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"timetrack/backend/internal/db"
	"timetrack/backend/internal/handler"
	"timetrack/backend/internal/repository"
	"timetrack/backend/internal/router"
	"timetrack/backend/internal/service"
)

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Admin    bool   `json:"admin"`
	} `json:"user"`
}

type activityEnvelope struct {
	Activity struct {
		ID int64 `json:"id"`
	} `json:"activity"`
}

type bookingEnvelope struct {
	Booking struct {
		ID        int64  `json:"id"`
		Starttime string `json:"starttime"`
		Endtime   string `json:"endtime"`
	} `json:"booking"`
}

type bookingsEnvelope struct {
	Bookings []struct {
		Starttime string `json:"starttime"`
		Endtime   string `json:"endtime"`
	} `json:"bookings"`
}

type activityRowsEnvelope struct {
	Activities []struct {
		ProjectName  string `json:"projectName"`
		ActivityName string `json:"activityName"`
		Minutes      string `json:"minutes"`
		Percentage   string `json:"percentage"`
	} `json:"activities"`
}

type hourRowsEnvelope struct {
	Days []struct {
		Bookingday string `json:"bookingday"`
		Worktime   string `json:"worktime"`
		Overtime   string `json:"overtime"`
	} `json:"days"`
}

type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestBookingAndAnalysisFlow(t *testing.T) {
	engine := setupTestEngine(t)

	user := registerUser(t, engine, "worker")

	addActivity := func(projectID, activityID string) int64 {
		status, raw := requestJSON(t, engine, http.MethodPost, "/api/activities", user.Token, map[string]string{
			"projectName":  "Timekeeping",
			"projectId":    projectID,
			"activityName": "Task " + activityID,
			"activityId":   activityID,
		})
		if status != http.StatusCreated {
			t.Fatalf("expected 201 for activity, got %d: %s", status, string(raw))
		}
		var activity activityEnvelope
		if err := json.Unmarshal(raw, &activity); err != nil {
			t.Fatalf("unmarshal activity response: %v", err)
		}
		return activity.Activity.ID
	}
	implementation := addActivity("T1", "I1")
	review := addActivity("T1", "R1")

	addBooking := func(starttime, endtime string, activityID int64) {
		body := map[string]any{
			"bookingday": "2017-03-06",
			"starttime":  starttime,
			"endtime":    endtime,
			"activity":   activityID,
		}
		status, raw := requestJSON(t, engine, http.MethodPost, "/api/bookings", user.Token, body)
		if status != http.StatusCreated {
			t.Fatalf("expected 201 for booking, got %d: %s", status, string(raw))
		}
	}
	addBooking("08:00", "09:30", implementation)
	addBooking("09:30", "13:30", review)

	status, rawRows := requestJSON(t, engine, http.MethodGet, "/api/analysis/activities?firstDay=2017-03-06", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for activity analysis, got %d: %s", status, string(rawRows))
	}
	var rows activityRowsEnvelope
	if err := json.Unmarshal(rawRows, &rows); err != nil {
		t.Fatalf("unmarshal activity analysis: %v", err)
	}
	if len(rows.Activities) != 3 {
		t.Fatalf("expected two activities plus total, got %d rows", len(rows.Activities))
	}
	if rows.Activities[0].ActivityName != "Task I1" || rows.Activities[0].Minutes != " 01:30" {
		t.Fatalf("unexpected first activity row: %+v", rows.Activities[0])
	}
	if rows.Activities[1].ActivityName != "Task R1" || rows.Activities[1].Minutes != " 04:00" {
		t.Fatalf("unexpected second activity row: %+v", rows.Activities[1])
	}
	total := rows.Activities[2]
	if total.ProjectName != "Total" || total.Minutes != " 05:30" || total.Percentage != "100.0%" {
		t.Fatalf("unexpected total row: %+v", total)
	}

	status, rawHours := requestJSON(t, engine, http.MethodGet, "/api/analysis/hours?firstDay=2017-03-06&firstDayAfter=2017-03-13", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for hour analysis, got %d: %s", status, string(rawHours))
	}
	var hours hourRowsEnvelope
	if err := json.Unmarshal(rawHours, &hours); err != nil {
		t.Fatalf("unmarshal hour analysis: %v", err)
	}
	if len(hours.Days) != 1 {
		t.Fatalf("expected one analyzed day, got %d", len(hours.Days))
	}
	if hours.Days[0].Worktime != " 05:30" || hours.Days[0].Overtime != "-02:30" {
		t.Fatalf("unexpected hour row: %+v", hours.Days[0])
	}
}

func TestSplitBookingEndpoint(t *testing.T) {
	engine := setupTestEngine(t)
	user := registerUser(t, engine, "splitter")

	_, rawActivity := requestJSON(t, engine, http.MethodPost, "/api/activities", user.Token, map[string]string{
		"projectName": "P", "projectId": "p", "activityName": "A", "activityId": "a",
	})
	var activity activityEnvelope
	if err := json.Unmarshal(rawActivity, &activity); err != nil {
		t.Fatalf("unmarshal activity response: %v", err)
	}

	status, rawBooking := requestJSON(t, engine, http.MethodPost, "/api/bookings", user.Token, map[string]any{
		"bookingday": "2017-03-06",
		"starttime":  "08:00",
		"endtime":    "12:00",
		"activity":   activity.Activity.ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for booking, got %d: %s", status, string(rawBooking))
	}
	var booking bookingEnvelope
	if err := json.Unmarshal(rawBooking, &booking); err != nil {
		t.Fatalf("unmarshal booking response: %v", err)
	}

	status, rawSplit := requestJSON(t, engine, http.MethodPost,
		"/api/bookings/"+strconv.FormatInt(booking.Booking.ID, 10)+"/split", user.Token, map[string]string{
			"starttime": "10:00",
		})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for split, got %d: %s", status, string(rawSplit))
	}
	var second bookingEnvelope
	if err := json.Unmarshal(rawSplit, &second); err != nil {
		t.Fatalf("unmarshal split response: %v", err)
	}
	if second.Booking.Starttime != "10:30" || second.Booking.Endtime != "12:00" {
		t.Fatalf("unexpected second part: %+v", second.Booking)
	}

	status, rawList := requestJSON(t, engine, http.MethodGet, "/api/bookings?firstDay=2017-03-06", user.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for booking list, got %d", status)
	}
	var list bookingsEnvelope
	if err := json.Unmarshal(rawList, &list); err != nil {
		t.Fatalf("unmarshal booking list: %v", err)
	}
	if len(list.Bookings) != 2 {
		t.Fatalf("expected 2 bookings after split, got %d", len(list.Bookings))
	}
	if list.Bookings[0].Endtime != "10:00" {
		t.Fatalf("expected first part to end at 10:00, got %q", list.Bookings[0].Endtime)
	}
}

func TestUserIsolation(t *testing.T) {
	engine := setupTestEngine(t)

	first := registerUser(t, engine, "first")
	second := registerUser(t, engine, "second")
	if !first.User.Admin {
		t.Error("expected first registered user to be admin")
	}
	if second.User.Admin {
		t.Error("expected second registered user not to be admin")
	}

	_, rawActivity := requestJSON(t, engine, http.MethodPost, "/api/activities", first.Token, map[string]string{
		"projectName": "P", "projectId": "p", "activityName": "A", "activityId": "a",
	})
	var activity activityEnvelope
	if err := json.Unmarshal(rawActivity, &activity); err != nil {
		t.Fatalf("unmarshal activity response: %v", err)
	}

	status, raw := requestJSON(t, engine, http.MethodDelete,
		"/api/activities/"+strconv.FormatInt(activity.Activity.ID, 10), second.Token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 deleting foreign activity, got %d: %s", status, string(raw))
	}

	status, rawList := requestJSON(t, engine, http.MethodGet, "/api/activities", second.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for activity list, got %d", status)
	}
	var list struct {
		Activities []json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(rawList, &list); err != nil {
		t.Fatalf("unmarshal activity list: %v", err)
	}
	if len(list.Activities) != 0 {
		t.Fatalf("expected no activities for second user, got %d", len(list.Activities))
	}
}

func TestAuthRequired(t *testing.T) {
	engine := setupTestEngine(t)

	paths := []string{
		"/api/activities",
		"/api/bookings?firstDay=2017-03-06",
		"/api/analysis/hours?firstDay=2017-03-06",
	}
	for _, path := range paths {
		status, raw := requestJSON(t, engine, http.MethodGet, path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without token, got %d", path, status)
		}
		var resp apiErrorEnvelope
		if err := json.Unmarshal(raw, &resp); err != nil {
			t.Fatalf("unmarshal error response: %v", err)
		}
		if resp.Error.Code == "" {
			t.Errorf("expected error code for %s", path)
		}
	}
}

func TestPasswordReset(t *testing.T) {
	engine := setupTestEngine(t)
	registerUser(t, engine, "forgetful")

	status, raw := requestJSON(t, engine, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"username": "forgetful",
		"answer":   "green",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for reset, got %d: %s", status, string(raw))
	}
	var resp struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal reset response: %v", err)
	}
	if resp.Password == "" {
		t.Fatal("expected generated password")
	}

	status, _ = requestJSON(t, engine, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "forgetful",
		"password": resp.Password,
	})
	if status != http.StatusOK {
		t.Fatalf("expected login with new password to succeed, got %d", status)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := setupTestEngine(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func setupTestEngine(t *testing.T) http.Handler {
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

	authService := service.NewAuthService(userRepo, activityRepo, bookingRepo, "test-secret", 24*time.Hour)
	activityService := service.NewActivityService(activityRepo)
	bookingService := service.NewBookingService(bookingRepo)
	analysisService := service.NewAnalysisService(activityService, bookingService)

	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(activityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	return router.New(authService, authHandler, activityHandler, bookingHandler, analysisHandler,
		[]string{"http://localhost:5173"})
}

func registerUser(t *testing.T, server http.Handler, username string) authResponse {
	t.Helper()
	status, body := requestJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-password",
		"question": "favorite color?",
		"answer":   "green",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s failed with status %d: %s", username, status, string(body))
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token for user %s", username)
	}
	return resp
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body any,
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
