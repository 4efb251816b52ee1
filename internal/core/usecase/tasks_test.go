package usecase

import (
	"context"
	"testing"
	"time"

	"crm-service/internal/core/domain"
	"crm-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overdueCapturingStorage struct {
	port.TaskStoragePort
	cutoff time.Time
	items  []domain.Task
}

func (s *overdueCapturingStorage) ListOverdue(ctx context.Context, before time.Time) ([]domain.Task, error) {
	s.cutoff = before
	return s.items, nil
}

func (s *overdueCapturingStorage) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	out := *t
	out.ID = 1
	return &out, nil
}

func TestOverdueUsesStartOfTodayUTC(t *testing.T) {
	storage := &overdueCapturingStorage{items: []domain.Task{{ID: 1}, {ID: 2}}}
	uc := NewTaskUseCase(storage)
	// Поздний вечер по UTC: граница все равно полночь этого же дня.
	uc.now = func() time.Time {
		return time.Date(2026, 3, 15, 23, 45, 10, 0, time.UTC)
	}

	items, err := uc.Overdue(context.Background())
	require.NoError(t, err)

	assert.Len(t, items, 2)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), storage.cutoff)
}

func TestOverdueConvertsLocalNowToUTC(t *testing.T) {
	storage := &overdueCapturingStorage{}
	uc := NewTaskUseCase(storage)
	// 01:30 следующего дня в UTC+3 - это еще 22:30 предыдущего дня в UTC.
	loc := time.FixedZone("UTC+3", 3*3600)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 16, 1, 30, 0, 0, loc)
	}

	_, err := uc.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), storage.cutoff)
}

func TestTaskCreateDefaultsStatusToPending(t *testing.T) {
	uc := NewTaskUseCase(&overdueCapturingStorage{})

	created, err := uc.Create(context.Background(), &domain.Task{Title: "Call buyer", DueDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, created.Status)

	explicit, err := uc.Create(context.Background(), &domain.Task{Title: "Done already", Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, explicit.Status)
}
