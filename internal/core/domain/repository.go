package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrStorageKeyNotFound = errors.New("storage key not found")
	ErrCacheMiss          = errors.New("cache miss")
)

// Storage is a flat key/value store of JSON documents, the server-side
// counterpart of browser local storage.
type Storage interface {
	// Get returns ErrStorageKeyNotFound when the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}

type CompletionRepository interface {
	// LoadCompletions returns an empty store for a profile that never saved one.
	LoadCompletions(ctx context.Context, profileID string) (CompletionStore, error)

	// SaveCompletions overwrites the whole store.
	SaveCompletions(ctx context.Context, profileID string, store CompletionStore) error

	LoadNotes(ctx context.Context, profileID string) (NoteStore, error)
	SaveNotes(ctx context.Context, profileID string, notes NoteStore) error

	// ClearCompletions removes completions and notes of the profile.
	ClearCompletions(ctx context.Context, profileID string) error
}

type HabitRepository interface {
	// ListHabits returns (nil, nil) when the profile never saved a habit list.
	ListHabits(ctx context.Context, profileID string) ([]HabitDescriptor, error)

	SaveHabits(ctx context.Context, profileID string, habits []HabitDescriptor) error
}

type ReminderRepository interface {
	LoadReminders(ctx context.Context, profileID string) (ReminderSettings, error)
	SaveReminders(ctx context.Context, profileID string, settings ReminderSettings) error
	ClearReminders(ctx context.Context, profileID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error

	// ListIDs returns every registered profile ID in registration order.
	ListIDs(ctx context.Context) ([]string, error)
}

// ProgressCache memoizes derived progress snapshots per profile.
type ProgressCache interface {
	// Get returns ErrCacheMiss when nothing usable is cached.
	Get(ctx context.Context, profileID string) (*Progress, error)
	Set(ctx context.Context, profileID string, progress *Progress) error
	Invalidate(ctx context.Context, profileID string) error
}
