package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestWaterReminder_IsWithinWindow(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		now   time.Time
		want  bool
	}{
		{"inside default window", "08:00", "22:00", at(12, 0), true},
		{"at start bound", "08:00", "22:00", at(8, 0), true},
		{"at end bound", "08:00", "22:00", at(22, 0), true},
		{"before start", "08:00", "22:00", at(7, 59), false},
		{"after end", "08:00", "22:00", at(22, 1), false},
		{"overnight window late", "22:00", "06:00", at(23, 30), true},
		{"overnight window early", "22:00", "06:00", at(5, 0), true},
		{"overnight window midday", "22:00", "06:00", at(12, 0), false},
		{"invalid start", "8am", "22:00", at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &WaterReminder{StartTime: tt.start, EndTime: tt.end}
			if got := r.IsWithinWindow(tt.now); got != tt.want {
				t.Errorf("IsWithinWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaterReminder_NextReminderAt(t *testing.T) {
	r := NewWaterReminder(uuid.New())
	r.Enabled = true

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before window opens", at(6, 30), at(8, 0)},
		{"between reminders", at(9, 15), at(10, 0)},
		{"exactly on a reminder", at(10, 0), at(11, 0)},
		{"after window closes", at(22, 30), at(8, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.NextReminderAt(tt.now)
			if !ok {
				t.Fatal("expected a next reminder")
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextReminderAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaterReminder_NextReminderAtDisabled(t *testing.T) {
	r := NewWaterReminder(uuid.New())
	if _, ok := r.NextReminderAt(at(9, 0)); ok {
		t.Error("disabled reminder should not schedule")
	}
}
