package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return count > 0, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("name = ?", o.Name).Count(&count).Error; err != nil {
		return domain.Organization{}, fmt.Errorf("check organization name: %w", err)
	}
	if count > 0 {
		return domain.Organization{}, domain.ErrNameTaken
	}

	row := models.Organization{
		Name:      o.Name,
		Slug:      o.Slug,
		About:     o.About,
		CreatedBy: o.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Organization{}, domain.ErrNameTaken
		}
		return domain.Organization{}, fmt.Errorf("create organization: %w", err)
	}

	return toDomainOrganization(row), nil
}

func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	var row models.Organization
	err := r.db.WithContext(ctx).First(&row, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Organization{}, domain.ErrOrganizationNotFound
		}
		return domain.Organization{}, fmt.Errorf("get organization by slug: %w", err)
	}
	return toDomainOrganization(row), nil
}

// GetForMember resolves the organization only when userID is a member,
// mirroring the retrieval rule of the interactive API.
func (r *OrganizationRepository) GetForMember(ctx context.Context, slug string, userID uint64) (domain.Organization, error) {
	var row models.Organization
	err := r.db.WithContext(ctx).
		Joins("JOIN organization_memberships m ON m.organization_id = organizations.id AND m.user_id = ?", userID).
		First(&row, "organizations.slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Organization{}, domain.ErrOrganizationNotFound
		}
		return domain.Organization{}, fmt.Errorf("get organization for member: %w", err)
	}
	return toDomainOrganization(row), nil
}

// ListForUser returns the caller's organizations, excluding archived and
// deleted ones, with the total count for pagination.
func (r *OrganizationRepository) ListForUser(ctx context.Context, userID uint64, limit, offset int) ([]domain.Organization, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Organization{}).
		Joins("JOIN organization_memberships m ON m.organization_id = organizations.id AND m.user_id = ?", userID).
		Where("organizations.deleted_at IS NULL AND organizations.archived_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	var rows []models.Organization
	if err := query.Order("organizations.created_at").
		Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}

	out := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainOrganization(row))
	}
	return out, total, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, o domain.Organization) error {
	result := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"name":  o.Name,
			"slug":  o.Slug,
			"about": o.About,
		})
	if result.Error != nil {
		return fmt.Errorf("update organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

func (r *OrganizationRepository) Archive(ctx context.Context, slug string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("slug = ?", slug).
		Update("archived_at", time.Now())
	if result.Error != nil {
		return false, fmt.Errorf("archive organization: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *OrganizationRepository) SoftDelete(ctx context.Context, slug string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("slug = ?", slug).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return false, fmt.Errorf("delete organization: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func toDomainOrganization(row models.Organization) domain.Organization {
	return domain.Organization{
		ID:         row.ID,
		Name:       row.Name,
		Slug:       row.Slug,
		About:      row.About,
		Picture:    row.Picture,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
		ArchivedAt: row.ArchivedAt,
		DeletedAt:  row.DeletedAt,
	}
}
