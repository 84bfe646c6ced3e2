package workers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

var ErrSchedulerClosed = errors.New("reminder scheduler is closed")

// Timer is the part of *time.Timer the scheduler relies on.
type Timer interface {
	Stop() bool
}

// AfterFunc starts f after d. time.AfterFunc is the production implementation.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type reminderKey struct {
	profileID string
	habitKey  domain.HabitKey
}

type scheduledEntry struct {
	reminder domain.ScheduledReminder
	hour     int
	minute   int
	timer    Timer
	gen      uint64
}

// ReminderScheduler fires one notification per habit per day at a local time.
// Its lifecycle belongs to the caller: Close stops every pending timer.
type ReminderScheduler struct {
	clock     domain.Clock
	notifier  domain.Notifier
	afterFunc AfterFunc
	logger    *zap.Logger

	mu      sync.Mutex
	entries map[reminderKey]*scheduledEntry
	gen     uint64
	closed  bool
}

var _ domain.ReminderScheduler = (*ReminderScheduler)(nil)

func NewReminderScheduler(clock domain.Clock, notifier domain.Notifier, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{
		clock:     clock,
		notifier:  notifier,
		afterFunc: realAfterFunc,
		logger:    logger.Named("reminders"),
		entries:   make(map[reminderKey]*scheduledEntry),
	}
}

// WithAfterFunc replaces the timer source. Tests use it to fire reminders by hand.
func (s *ReminderScheduler) WithAfterFunc(fn AfterFunc) *ReminderScheduler {
	s.afterFunc = fn
	return s
}

// Schedule replaces any pending reminder of the habit. A time that already
// passed today is scheduled for tomorrow.
func (s *ReminderScheduler) Schedule(profileID string, key domain.HabitKey, label, at string) (domain.ScheduledReminder, error) {
	normalized, err := domain.NormalizeReminderTime(at)
	if err != nil {
		return domain.ScheduledReminder{}, fmt.Errorf("%w: %q", err, at)
	}
	hour, minute, err := domain.ParseReminderTime(normalized)
	if err != nil {
		return domain.ScheduledReminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ScheduledReminder{}, ErrSchedulerClosed
	}

	k := reminderKey{profileID: profileID, habitKey: key}
	s.stopLocked(k)

	s.gen++
	e := &scheduledEntry{
		reminder: domain.ScheduledReminder{
			HabitKey:   key,
			HabitLabel: label,
			Time:       normalized,
		},
		hour:   hour,
		minute: minute,
		gen:    s.gen,
	}
	s.entries[k] = e
	s.armLocked(k, e, s.clock.Now())

	s.logger.Debug("reminder scheduled",
		zap.String("profile_id", profileID),
		zap.String("habit_key", string(key)),
		zap.Time("scheduled_for", e.reminder.ScheduledFor))

	return e.reminder, nil
}

func (s *ReminderScheduler) armLocked(k reminderKey, e *scheduledEntry, from time.Time) {
	next := domain.NextOccurrence(from, e.hour, e.minute)
	e.reminder.ScheduledFor = next

	gen := e.gen
	e.timer = s.afterFunc(next.Sub(s.clock.Now()), func() { s.fire(k, gen) })
}

func (s *ReminderScheduler) fire(k reminderKey, gen uint64) {
	s.mu.Lock()
	e, ok := s.entries[k]
	if !ok || e.gen != gen || s.closed {
		s.mu.Unlock()
		return
	}
	reminder := e.reminder

	// the next run is strictly after the one that just fired
	from := s.clock.Now()
	if from.Before(reminder.ScheduledFor) {
		from = reminder.ScheduledFor
	}
	s.armLocked(k, e, from)
	s.mu.Unlock()

	n := domain.Notification{
		Title: "Time for: " + reminder.HabitLabel,
		Body:  fmt.Sprintf("Don't break your streak! Complete your %s habit now.", reminder.HabitLabel),
		Tag:   string(reminder.HabitKey),
	}
	if err := s.notifier.Notify(context.Background(), n); err != nil {
		s.logger.Warn("reminder delivery failed",
			zap.String("profile_id", k.profileID),
			zap.String("habit_key", string(k.habitKey)),
			zap.Error(err))
	}
}

func (s *ReminderScheduler) stopLocked(k reminderKey) bool {
	e, ok := s.entries[k]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(s.entries, k)
	return true
}

// Cancel reports whether a reminder was pending.
func (s *ReminderScheduler) Cancel(profileID string, key domain.HabitKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked(reminderKey{profileID: profileID, habitKey: key})
}

func (s *ReminderScheduler) CancelProfile(profileID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.entries {
		if k.profileID == profileID && s.stopLocked(k) {
			n++
		}
	}
	return n
}

func (s *ReminderScheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.entries {
		if s.stopLocked(k) {
			n++
		}
	}
	return n
}

// List returns the profile's pending reminders ordered by next run.
func (s *ReminderScheduler) List(profileID string) []domain.ScheduledReminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduledReminder, 0)
	for k, e := range s.entries {
		if k.profileID == profileID {
			out = append(out, e.reminder)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledFor.Equal(out[j].ScheduledFor) {
			return out[i].HabitKey < out[j].HabitKey
		}
		return out[i].ScheduledFor.Before(out[j].ScheduledFor)
	})
	return out
}

// Close cancels everything. Later calls to Schedule fail.
func (s *ReminderScheduler) Close() {
	s.CancelAll()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.logger.Info("reminder scheduler closed")
}
