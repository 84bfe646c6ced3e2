package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/report"
)

type StatsService struct {
	completions domain.CompletionRepository
	habits      *HabitService
	clock       domain.Clock
}

func NewStatsService(completions domain.CompletionRepository, habits *HabitService, clock domain.Clock) *StatsService {
	return &StatsService{
		completions: completions,
		habits:      habits,
		clock:       clock,
	}
}

func (s *StatsService) load(ctx context.Context, profileID string) (domain.CompletionStore, []domain.HabitDescriptor, error) {
	store, err := s.completions.LoadCompletions(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	habits, err := s.habits.List(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	return store, habits, nil
}

// GetWeeklyStats reports the requested range, or the current Sunday-start week
// when no dates are given.
func (s *StatsService) GetWeeklyStats(ctx context.Context, input domain.StatsInput) (*domain.RangeStats, error) {
	today := s.clock.Today()
	start, end := input.StartDate, input.EndDate
	if start == "" && end == "" {
		start, end = report.Week(today)
	}
	if start == "" {
		start = end.AddDays(-6)
	}
	if end == "" {
		end = start.AddDays(6)
	}

	store, habits, err := s.load(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	return report.Range(store, habits, start, end, today)
}

// GetMonthlySummary defaults to the current month when year is zero.
func (s *StatsService) GetMonthlySummary(ctx context.Context, profileID string, year int, month time.Month) (*domain.MonthlySummary, error) {
	if year == 0 {
		now := s.clock.Now()
		year, month = now.Year(), now.Month()
	}

	store, habits, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return report.Month(store, habits, year, month)
}

func (s *StatsService) Export(ctx context.Context, profileID string) ([]domain.ExportRow, error) {
	store, habits, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return report.Export(store, habits), nil
}
