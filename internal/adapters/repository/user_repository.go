package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

func (r *StorageRepository) Create(ctx context.Context, user *domain.User) error {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()

	var existing string
	found, err := r.load(ctx, userEmailKey(user.Email), &existing)
	if err != nil {
		return fmt.Errorf("repository: create user failed: %w", err)
	}
	if found {
		return domain.ErrEmailAlreadyExists
	}

	if err := r.save(ctx, userKey(user.ID), user); err != nil {
		return fmt.Errorf("repository: create user failed: %w", err)
	}
	if err := r.save(ctx, userEmailKey(user.Email), user.ID); err != nil {
		return fmt.Errorf("repository: create user failed: %w", err)
	}

	ids, err := r.listIDs(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(ids, user.ID) {
		ids = append(ids, user.ID)
	}
	return r.save(ctx, usersIndexKey, ids)
}

func (r *StorageRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	found, err := r.load(ctx, userKey(id), &user)
	if err != nil {
		return nil, fmt.Errorf("repository: get user by id failed: %w", err)
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *StorageRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var id string
	found, err := r.load(ctx, userEmailKey(email), &id)
	if err != nil {
		return nil, fmt.Errorf("repository: get user by email failed: %w", err)
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user together with every document of its profile.
func (r *StorageRepository) Delete(ctx context.Context, id string) error {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	keys := []string{
		userKey(id),
		userEmailKey(user.Email),
		profileKey(id, completedHabitsKey),
		profileKey(id, habitsKey),
		profileKey(id, habitNotesKey),
		profileKey(id, notificationSettingsKey),
	}
	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("repository: delete user failed: %w", err)
		}
	}

	ids, err := r.listIDs(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, usersIndexKey, slices.DeleteFunc(ids, func(v string) bool { return v == id }))
}

func (r *StorageRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.usersMu.Lock()
	defer r.usersMu.Unlock()
	return r.listIDs(ctx)
}

func (r *StorageRepository) listIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if _, err := r.load(ctx, usersIndexKey, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
