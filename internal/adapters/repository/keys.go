package repository

import "github.com/comitanigiacomo/habit-garden/internal/core/domain"

const (
	completedHabitsKey      = "completedHabits"
	habitsKey               = "habits"
	habitNotesKey           = "habitNotes"
	notificationSettingsKey = "notificationSettings"

	usersIndexKey = "users"
)

func profileKey(profileID, name string) string {
	return "profile:" + profileID + ":" + name
}

func userKey(id string) string {
	return "user:" + id
}

func userEmailKey(email string) string {
	return "user-email:" + domain.NormalizeEmail(email)
}
