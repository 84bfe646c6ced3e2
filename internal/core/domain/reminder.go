package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidReminder  = errors.New("invalid reminder format (must be HH:MM 24h)")
	ErrReminderNotFound = errors.New("reminder not found")
)

var (
	reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)
	twelveHour    = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9])\s*([AaPp][Mm])$`)
)

type ReminderSetting struct {
	Enabled    bool   `json:"enabled"`
	Time       string `json:"time"`
	HabitLabel string `json:"habitLabel"`
}

type ReminderSettings map[HabitKey]ReminderSetting

func (r ReminderSetting) Validate() error {
	if r.Enabled && !reminderRegex.MatchString(r.Time) {
		return ErrInvalidReminder
	}
	if !r.Enabled && r.Time != "" && !reminderRegex.MatchString(r.Time) {
		return ErrInvalidReminder
	}
	return nil
}

func (r ReminderSettings) With(key HabitKey, setting ReminderSetting) ReminderSettings {
	out := make(ReminderSettings, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[key] = setting
	return out
}

func (r ReminderSettings) Without(key HabitKey) ReminderSettings {
	out := make(ReminderSettings, len(r))
	for k, v := range r {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// NormalizeReminderTime accepts "HH:MM" or a 12-hour "h:MM AM" value and
// returns the 24-hour form.
func NormalizeReminderTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if reminderRegex.MatchString(value) {
		return value, nil
	}

	m := twelveHour.FindStringSubmatch(value)
	if m == nil {
		return "", ErrInvalidReminder
	}
	hour, _ := strconv.Atoi(m[1])
	pm := strings.EqualFold(m[3], "pm")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return fmt.Sprintf("%02d:%s", hour, m[2]), nil
}

// ParseReminderTime splits "HH:MM" into hour and minute.
func ParseReminderTime(value string) (int, int, error) {
	if !reminderRegex.MatchString(value) {
		return 0, 0, ErrInvalidReminder
	}
	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])
	return hour, minute, nil
}

// NextOccurrence returns the next instant at hour:minute strictly after now.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next
}

type ScheduledReminder struct {
	HabitKey     HabitKey  `json:"habit_key"`
	HabitLabel   string    `json:"habit_label"`
	Time         string    `json:"time"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

type Notification struct {
	Title string
	Body  string
	Tag   string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ReminderScheduler fires daily reminders. Entries are keyed by profile and habit.
type ReminderScheduler interface {
	Schedule(profileID string, key HabitKey, label, at string) (ScheduledReminder, error)
	Cancel(profileID string, key HabitKey) bool
	CancelProfile(profileID string) int
	List(profileID string) []ScheduledReminder
}
