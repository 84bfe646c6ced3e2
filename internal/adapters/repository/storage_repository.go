package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

var (
	_ domain.CompletionRepository = (*StorageRepository)(nil)
	_ domain.HabitRepository      = (*StorageRepository)(nil)
	_ domain.ReminderRepository   = (*StorageRepository)(nil)
	_ domain.UserRepository       = (*StorageRepository)(nil)
)

// StorageRepository keeps every profile document as JSON under a fixed key of
// a Storage. Each save rewrites the whole document.
type StorageRepository struct {
	store domain.Storage

	// serializes read-modify-write of the user index
	usersMu sync.Mutex
}

func NewStorageRepository(store domain.Storage) *StorageRepository {
	return &StorageRepository{store: store}
}

// load decodes the document at key into dest. It reports false when the key
// was never written.
func (r *StorageRepository) load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrStorageKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("repository: decode %q: %w", key, err)
	}
	return true, nil
}

func (r *StorageRepository) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("repository: encode %q: %w", key, err)
	}
	return r.store.Set(ctx, key, data)
}

func (r *StorageRepository) LoadCompletions(ctx context.Context, profileID string) (domain.CompletionStore, error) {
	store := domain.CompletionStore{}
	if _, err := r.load(ctx, profileKey(profileID, completedHabitsKey), &store); err != nil {
		return nil, err
	}
	if store == nil {
		store = domain.CompletionStore{}
	}
	return store, nil
}

func (r *StorageRepository) SaveCompletions(ctx context.Context, profileID string, store domain.CompletionStore) error {
	if store == nil {
		store = domain.CompletionStore{}
	}
	return r.save(ctx, profileKey(profileID, completedHabitsKey), store)
}

func (r *StorageRepository) LoadNotes(ctx context.Context, profileID string) (domain.NoteStore, error) {
	notes := domain.NoteStore{}
	if _, err := r.load(ctx, profileKey(profileID, habitNotesKey), &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = domain.NoteStore{}
	}
	return notes, nil
}

func (r *StorageRepository) SaveNotes(ctx context.Context, profileID string, notes domain.NoteStore) error {
	if notes == nil {
		notes = domain.NoteStore{}
	}
	return r.save(ctx, profileKey(profileID, habitNotesKey), notes)
}

func (r *StorageRepository) ClearCompletions(ctx context.Context, profileID string) error {
	if err := r.store.Delete(ctx, profileKey(profileID, completedHabitsKey)); err != nil {
		return err
	}
	return r.store.Delete(ctx, profileKey(profileID, habitNotesKey))
}

func (r *StorageRepository) ListHabits(ctx context.Context, profileID string) ([]domain.HabitDescriptor, error) {
	var habits []domain.HabitDescriptor
	found, err := r.load(ctx, profileKey(profileID, habitsKey), &habits)
	if err != nil || !found {
		return nil, err
	}
	if habits == nil {
		habits = []domain.HabitDescriptor{}
	}
	return habits, nil
}

func (r *StorageRepository) SaveHabits(ctx context.Context, profileID string, habits []domain.HabitDescriptor) error {
	if habits == nil {
		habits = []domain.HabitDescriptor{}
	}
	return r.save(ctx, profileKey(profileID, habitsKey), habits)
}

func (r *StorageRepository) LoadReminders(ctx context.Context, profileID string) (domain.ReminderSettings, error) {
	settings := domain.ReminderSettings{}
	if _, err := r.load(ctx, profileKey(profileID, notificationSettingsKey), &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.ReminderSettings{}
	}
	return settings, nil
}

func (r *StorageRepository) SaveReminders(ctx context.Context, profileID string, settings domain.ReminderSettings) error {
	if settings == nil {
		settings = domain.ReminderSettings{}
	}
	return r.save(ctx, profileKey(profileID, notificationSettingsKey), settings)
}

func (r *StorageRepository) ClearReminders(ctx context.Context, profileID string) error {
	return r.store.Delete(ctx, profileKey(profileID, notificationSettingsKey))
}
