package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Water reminder defaults.
const (
	DefaultReminderIntervalMinutes = 60
	DefaultReminderStartTime       = "08:00"
	DefaultReminderEndTime         = "22:00"
)

// WaterReminder holds a user's hydration reminder preferences.
type WaterReminder struct {
	UserID          uuid.UUID
	Enabled         bool
	IntervalMinutes int
	StartTime       string
	EndTime         string
	UpdatedAt       time.Time
}

// NewWaterReminder returns the disabled default reminder for a user.
func NewWaterReminder(userID uuid.UUID) *WaterReminder {
	return &WaterReminder{
		UserID:          userID,
		Enabled:         false,
		IntervalMinutes: DefaultReminderIntervalMinutes,
		StartTime:       DefaultReminderStartTime,
		EndTime:         DefaultReminderEndTime,
		UpdatedAt:       time.Now().UTC(),
	}
}

// ParseClock parses an "HH:MM" string into minutes after midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsWithinWindow reports whether the wall clock of t lies in the active
// window, bounds included. A start later than the end wraps past midnight.
func (r *WaterReminder) IsWithinWindow(t time.Time) bool {
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return false
	}
	current := t.Hour()*60 + t.Minute()
	if start <= end {
		return current >= start && current <= end
	}
	return current >= start || current <= end
}

// NextReminderAt returns the first reminder strictly after t. Reminders
// fire at the window start and then every IntervalMinutes while inside
// the window. It returns false when the reminder is disabled or invalid.
func (r *WaterReminder) NextReminderAt(t time.Time) (time.Time, bool) {
	if !r.Enabled || r.IntervalMinutes <= 0 {
		return time.Time{}, false
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return time.Time{}, false
	}
	length := end - start
	if length < 0 {
		length += 24 * 60
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Check the window that opened yesterday too, for windows wrapping midnight.
	for dayOffset := -1; dayOffset <= 1; dayOffset++ {
		windowStart := midnight.AddDate(0, 0, dayOffset).Add(time.Duration(start) * time.Minute)
		for offset := 0; offset <= length; offset += r.IntervalMinutes {
			candidate := windowStart.Add(time.Duration(offset) * time.Minute)
			if candidate.After(t) {
				return candidate, true
			}
		}
	}
	return time.Time{}, false
}
