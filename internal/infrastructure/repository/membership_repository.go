package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/orgstack/orgstack/internal/domain/org"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) ListByOrgSlug(ctx context.Context, slug string, limit, offset int) ([]domain.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrganizationMembership{}).
		Joins("JOIN organizations o ON o.id = organization_memberships.organization_id").
		Where("o.slug = ?", slug)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	var rows []models.OrganizationMembership
	if err := query.Preload("User").
		Order("organization_memberships.joined_at").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}

	members := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, domain.Member{
			User:     toDomainUser(row.User),
			Role:     domain.Role(row.Role),
			JoinedAt: row.JoinedAt,
		})
	}
	return members, total, nil
}

// Upsert applies update-or-create semantics on the (org, user) pair and
// reports whether a new membership was created.
func (r *MembershipRepository) Upsert(ctx context.Context, orgID, userID uint64, role domain.Role) (bool, error) {
	var row models.OrganizationMembership
	err := r.db.WithContext(ctx).
		First(&row, "organization_id = ? AND user_id = ?", orgID, userID).Error
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Model(&row).Update("role", string(role)).Error; err != nil {
			return false, fmt.Errorf("update membership role: %w", err)
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.OrganizationMembership{
			OrgID:    orgID,
			UserID:   userID,
			Role:     string(role),
			JoinedAt: time.Now(),
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return false, fmt.Errorf("create membership: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("get membership: %w", err)
	}
}

func (r *MembershipRepository) Get(ctx context.Context, slug, username string) (domain.MembershipDetail, error) {
	var row models.OrganizationMembership
	err := r.db.WithContext(ctx).
		Joins("JOIN organizations o ON o.id = organization_memberships.organization_id").
		Joins("JOIN users u ON u.id = organization_memberships.user_id").
		Preload("Org").Preload("User").
		First(&row, "o.slug = ? AND u.username = ?", slug, username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MembershipDetail{}, domain.ErrMembershipNotFound
		}
		return domain.MembershipDetail{}, fmt.Errorf("get membership: %w", err)
	}

	return domain.MembershipDetail{
		Org:      toDomainOrganization(row.Org),
		User:     toDomainUser(row.User),
		Role:     domain.Role(row.Role),
		JoinedAt: row.JoinedAt,
	}, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, slug, username string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("organization_id IN (?)",
			r.db.Model(&models.Organization{}).Select("id").Where("slug = ?", slug)).
		Where("user_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("username = ?", username)).
		Delete(&models.OrganizationMembership{})
	if result.Error != nil {
		return false, fmt.Errorf("delete membership: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// MemberIDs lists the user ids of every member of the organization, for
// notification fan-out.
func (r *MembershipRepository) MemberIDs(ctx context.Context, slug string) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&models.OrganizationMembership{}).
		Joins("JOIN organizations o ON o.id = organization_memberships.organization_id").
		Where("o.slug = ?", slug).
		Pluck("organization_memberships.user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	return ids, nil
}

// ResolveMembers maps usernames to users, keeping only organization
// members. Unknown or non-member usernames are silently dropped.
func (r *MembershipRepository) ResolveMembers(ctx context.Context, orgID uint64, usernames []string) ([]userdomain.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	var rows []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN organization_memberships m ON m.user_id = users.id AND m.organization_id = ?", orgID).
		Where("users.username IN ?", usernames).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("resolve members: %w", err)
	}

	users := make([]userdomain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toDomainUser(row))
	}
	return users, nil
}

func (r *MembershipRepository) IsAdmin(ctx context.Context, orgID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrganizationMembership{}).
		Where("organization_id = ? AND user_id = ? AND role = ?", orgID, userID, string(domain.RoleAdmin)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check admin membership: %w", err)
	}
	return count > 0, nil
}
