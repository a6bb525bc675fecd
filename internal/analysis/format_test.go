package analysis_test

import (
	"testing"
	"time"

	"timetrack/backend/internal/analysis"
)

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestDateString(t *testing.T) {
	if got := analysis.DateString(day(5)); got != "2017-03-05" {
		t.Errorf("expected 2017-03-05, got %q", got)
	}
	if got := analysis.DateString(time.Time{}); got != "" {
		t.Errorf("expected empty string for zero day, got %q", got)
	}
}

func TestClockString(t *testing.T) {
	tests := []struct {
		name  string
		clock *time.Duration
		want  string
	}{
		{"morning", durationPtr(clock(8, 5)), "08:05"},
		{"midnight", durationPtr(0), "00:00"},
		{"evening", durationPtr(clock(21, 45)), "21:45"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.ClockString(tt.clock); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		name     string
		duration *time.Duration
		want     string
	}{
		{"zero", durationPtr(0), " 00:00"},
		{"positive", durationPtr(330 * time.Minute), " 05:30"},
		{"negative", durationPtr(-370 * time.Minute), "-06:10"},
		{"large", durationPtr(33*time.Hour + 50*time.Minute), " 33:50"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.DurationString(tt.duration); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPercentString(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"whole", 100.0, "100.0%"},
		{"half", 50.0, "50.0%"},
		{"fraction", 12.5, "12.5%"},
		{"zero", 0.0, "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analysis.PercentString(tt.value); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
