package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/profile"
	"github.com/shopsight/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormProfileRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	var p profile.UserProfile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOwner finds the profile owned by a user
func (r *GormProfileRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	var p profile.UserProfile
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByEmail finds a profile by email address
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*profile.UserProfile, error) {
	var p profile.UserProfile
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all profiles matching the filter
func (r *GormProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]profile.UserProfile, error) {
	var profiles []profile.UserProfile
	query := r.db.WithContext(ctx).Model(&profile.UserProfile{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save creates or updates a profile and writes its pending domain events
// to the outbox in the same transaction
func (r *GormProfileRepository) Save(ctx context.Context, p *profile.UserProfile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		events := p.GetDomainEvents()
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	p.ClearDomainEvents()
	return nil
}

// Delete removes a profile and writes its pending domain events to the
// outbox in the same transaction
func (r *GormProfileRepository) Delete(ctx context.Context, p *profile.UserProfile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&profile.UserProfile{}, "id = ?", p.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		events := p.GetDomainEvents()
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	p.ClearDomainEvents()
	return nil
}

// Count counts profiles matching the filter
func (r *GormProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&profile.UserProfile{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("display_name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOwner checks whether the user already has a profile
func (r *GormProfileRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&profile.UserProfile{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count > 0, err
}

// Ensure GormProfileRepository implements ProfileRepository
var _ profile.ProfileRepository = (*GormProfileRepository)(nil)
