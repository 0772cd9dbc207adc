package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOutboxRepo keeps entries in memory and serves FindDead pages from
// the dead subset in insertion order
type fakeOutboxRepo struct {
	entries   []*shared.OutboxEntry
	findErr   error
	updateErr error
}

func (f *fakeOutboxRepo) Save(_ context.Context, entries ...*shared.OutboxEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeOutboxRepo) FindPending(context.Context, int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) FindRetryable(context.Context, time.Time, int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) FindDead(_ context.Context, page, pageSize int) ([]*shared.OutboxEntry, int64, error) {
	if f.findErr != nil {
		return nil, 0, f.findErr
	}
	var dead []*shared.OutboxEntry
	for _, e := range f.entries {
		if e.Status == shared.OutboxStatusDead {
			dead = append(dead, e)
		}
	}
	total := int64(len(dead))
	start := (page - 1) * pageSize
	if start >= len(dead) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(dead) {
		end = len(dead)
	}
	return dead[start:end], total, nil
}

func (f *fakeOutboxRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.OutboxEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOutboxRepo) MarkProcessing(context.Context, []uuid.UUID) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) Update(_ context.Context, entry *shared.OutboxEntry) error {
	return f.updateErr
}

func (f *fakeOutboxRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeOutboxRepo) CountByStatus(context.Context) (map[shared.OutboxStatus]int64, error) {
	counts := make(map[shared.OutboxStatus]int64)
	for _, e := range f.entries {
		counts[e.Status]++
	}
	return counts, nil
}

func newOutboxEntry(status shared.OutboxStatus) *shared.OutboxEntry {
	event := shared.NewBaseDomainEvent("TestEvent", "TestAggregate", uuid.New())
	entry := shared.NewOutboxEntry(&event, []byte(`{}`))
	entry.Status = status
	return entry
}

func TestOutboxService_GetDeadLetterEntries(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns only dead entries with pagination metadata", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		for i := 0; i < 3; i++ {
			repo.entries = append(repo.entries, newOutboxEntry(shared.OutboxStatusDead))
		}
		repo.entries = append(repo.entries, newOutboxEntry(shared.OutboxStatusPending))
		service := NewOutboxService(repo, logger)

		result, err := service.GetDeadLetterEntries(ctx, OutboxFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)

		assert.Len(t, result.Entries, 2)
		assert.Equal(t, int64(3), result.Total)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 2, result.PageSize)
		assert.Equal(t, 2, result.TotalPages)
	})

	t.Run("clamps page and page size to sane defaults", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		service := NewOutboxService(repo, logger)

		result, err := service.GetDeadLetterEntries(ctx, OutboxFilter{Page: 0, PageSize: 500})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 100, result.PageSize)
	})

	t.Run("wraps repository failures", func(t *testing.T) {
		repo := &fakeOutboxRepo{findErr: errors.New("connection refused")}
		service := NewOutboxService(repo, logger)

		_, err := service.GetDeadLetterEntries(ctx, OutboxFilter{})
		assert.Error(t, err)
	})
}

func TestOutboxService_GetEntry(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns the entry", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		entry := newOutboxEntry(shared.OutboxStatusPending)
		repo.entries = append(repo.entries, entry)
		service := NewOutboxService(repo, logger)

		dto, err := service.GetEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, dto.ID)
		assert.Equal(t, "TestEvent", dto.EventType)
		assert.Equal(t, string(shared.OutboxStatusPending), dto.Status)
	})

	t.Run("unknown ID yields not found", func(t *testing.T) {
		service := NewOutboxService(&fakeOutboxRepo{}, logger)

		_, err := service.GetEntry(ctx, uuid.New())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ENTRY_NOT_FOUND", domainErr.Code)
	})
}

func TestOutboxService_RetryDeadEntry(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("resets a dead entry", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		entry := newOutboxEntry(shared.OutboxStatusDead)
		entry.RetryCount = 5
		entry.LastError = "boom"
		repo.entries = append(repo.entries, entry)
		service := NewOutboxService(repo, logger)

		dto, err := service.RetryDeadEntry(ctx, entry.ID)
		require.NoError(t, err)

		assert.Equal(t, string(shared.OutboxStatusPending), dto.Status)
		assert.Equal(t, 0, dto.RetryCount)
		assert.Empty(t, dto.LastError)
	})

	t.Run("rejects entries that are not dead", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		entry := newOutboxEntry(shared.OutboxStatusPending)
		repo.entries = append(repo.entries, entry)
		service := NewOutboxService(repo, logger)

		_, err := service.RetryDeadEntry(ctx, entry.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("wraps update failures", func(t *testing.T) {
		repo := &fakeOutboxRepo{updateErr: errors.New("connection refused")}
		entry := newOutboxEntry(shared.OutboxStatusDead)
		repo.entries = append(repo.entries, entry)
		service := NewOutboxService(repo, logger)

		_, err := service.RetryDeadEntry(ctx, entry.ID)
		assert.Error(t, err)
	})
}

func TestOutboxService_RetryAllDeadEntries(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("resets every dead entry", func(t *testing.T) {
		repo := &fakeOutboxRepo{}
		for i := 0; i < 5; i++ {
			repo.entries = append(repo.entries, newOutboxEntry(shared.OutboxStatusDead))
		}
		repo.entries = append(repo.entries, newOutboxEntry(shared.OutboxStatusSent))
		service := NewOutboxService(repo, logger)

		count, err := service.RetryAllDeadEntries(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)

		for _, e := range repo.entries {
			assert.NotEqual(t, shared.OutboxStatusDead, e.Status)
		}
	})

	t.Run("nothing to retry", func(t *testing.T) {
		service := NewOutboxService(&fakeOutboxRepo{}, logger)

		count, err := service.RetryAllDeadEntries(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
