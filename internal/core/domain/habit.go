package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrHabitLabelEmpty   = errors.New("habit label cannot be empty")
	ErrHabitLabelTooLong = errors.New("habit label is too long (max 100 chars)")
	ErrHabitEmojiTooLong = errors.New("habit emoji is too long (max 16 bytes)")
	ErrInvalidHabitKey   = errors.New("invalid habit key (letters, digits, '-' and '_', max 64)")
	ErrHabitKeyExists    = errors.New("habit key already exists")
)

var habitKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

const (
	CustomHabitPrefix = "custom-"
	DefaultEmoji      = "✅"
	MaxLabelLen       = 100
	MaxEmojiLen       = 16
)

// HabitDescriptor is the user-editable display metadata of a habit.
type HabitDescriptor struct {
	Key   HabitKey `json:"key"`
	Label string   `json:"label"`
	Emoji string   `json:"emoji"`
}

func validateDescriptor(label, emoji string) (string, string, error) {
	cleanLabel := strings.TrimSpace(label)
	if cleanLabel == "" {
		return "", "", ErrHabitLabelEmpty
	}
	if utf8.RuneCountInString(cleanLabel) > MaxLabelLen {
		return "", "", ErrHabitLabelTooLong
	}

	cleanEmoji := strings.TrimSpace(emoji)
	if len(cleanEmoji) > MaxEmojiLen {
		return "", "", ErrHabitEmojiTooLong
	}
	if cleanEmoji == "" {
		cleanEmoji = DefaultEmoji
	}

	return cleanLabel, cleanEmoji, nil
}

// NewCustomHabit builds a user-defined habit with a fresh key.
func NewCustomHabit(label, emoji string) (HabitDescriptor, error) {
	cleanLabel, cleanEmoji, err := validateDescriptor(label, emoji)
	if err != nil {
		return HabitDescriptor{}, err
	}

	return HabitDescriptor{
		Key:   HabitKey(CustomHabitPrefix + uuid.NewString()),
		Label: cleanLabel,
		Emoji: cleanEmoji,
	}, nil
}

func (h *HabitDescriptor) Update(label, emoji string) error {
	if emoji == "" {
		emoji = h.Emoji
	}
	cleanLabel, cleanEmoji, err := validateDescriptor(label, emoji)
	if err != nil {
		return err
	}

	h.Label = cleanLabel
	h.Emoji = cleanEmoji
	return nil
}

func (h HabitDescriptor) Validate() error {
	if !ValidHabitKey(h.Key) {
		return ErrInvalidHabitKey
	}
	_, _, err := validateDescriptor(h.Label, h.Emoji)
	return err
}

func ValidHabitKey(key HabitKey) bool {
	return habitKeyRegex.MatchString(string(key))
}

func HabitKeys(habits []HabitDescriptor) []HabitKey {
	keys := make([]HabitKey, 0, len(habits))
	for _, h := range habits {
		keys = append(keys, h.Key)
	}
	return keys
}

func FindHabit(habits []HabitDescriptor, key HabitKey) (HabitDescriptor, bool) {
	for _, h := range habits {
		if h.Key == key {
			return h, true
		}
	}
	return HabitDescriptor{}, false
}

// DefaultHabits is the starter list a new profile sees before editing anything.
func DefaultHabits() []HabitDescriptor {
	return []HabitDescriptor{
		{Key: "wakeUpTime", Label: "Wake up early", Emoji: "⏰"},
		{Key: "waterIntake", Label: "Drink water", Emoji: "💧"},
		{Key: "sleep", Label: "Sleep 8 hours", Emoji: "😴"},
		{Key: "meditation", Label: "Meditation", Emoji: "🧘"},
		{Key: "exercise", Label: "Exercise", Emoji: "💪"},
		{Key: "healthyEating", Label: "Healthy eating", Emoji: "🥗"},
		{Key: "gratitude", Label: "Gratitude", Emoji: "🙏"},
		{Key: "journaling", Label: "Journaling", Emoji: "📝"},
		{Key: "screenTime", Label: "Limit screen time", Emoji: "📱"},
		{Key: "study", Label: "Study", Emoji: "📚"},
		{Key: "workout", Label: "Workout", Emoji: "🏋️"},
		{Key: "steps", Label: "10k steps", Emoji: "👟"},
		{Key: "selfCare", Label: "Self care", Emoji: "🛁"},
		{Key: "goalSetting", Label: "Goal setting", Emoji: "🎯"},
		{Key: "skincare", Label: "Skincare", Emoji: "✨"},
	}
}
