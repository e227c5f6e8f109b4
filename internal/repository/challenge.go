package repository

import (
	"context"
	"time"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeFilter struct {
	// Categories match with OR semantics. Empty means any category.
	Categories []entity.ChallengeCategory
	DocType    entity.DocType
}

type ChallengeRepository interface {
	Create(ctx context.Context, data *entity.Challenge) error

	// GetList returns the publicly listed challenges matching filter, newest
	// first, with their participants loaded. Works are loaded only for
	// requesterID, and not at all when it is zero.
	GetList(ctx context.Context, filter ChallengeFilter, requesterID int64) ([]entity.Challenge, error)

	// GetByID returns only id, author_id, title and is_closed.
	GetByID(ctx context.Context, id int64) (*entity.Challenge, error)
	GetDetailByID(ctx context.Context, id int64) (*entity.Challenge, error)

	// GetForUpdate locks the challenge row until the transaction in ctx ends.
	// It loads no associations.
	GetForUpdate(ctx context.Context, id int64) (*entity.Challenge, error)
	UpdateByID(ctx context.Context, id int64, data *entity.Challenge) error
	DeleteByID(ctx context.Context, id int64) error
	GetExpired(ctx context.Context, now time.Time) ([]entity.Challenge, error)

	// CloseByID reports whether the challenge was open before the call.
	CloseByID(ctx context.Context, id int64) (bool, error)
}

type challengeRepository struct{}

func NewChallengeRepository() ChallengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).Omit("Author", "Participants", "Works").Create(data).Error
}

func (r *challengeRepository) GetList(
	ctx context.Context, filter ChallengeFilter, requesterID int64,
) ([]entity.Challenge, error) {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{}).
		Where("EXISTS (?)", xcontext.DB(ctx).
			Model(&entity.Application{}).
			Select("1").
			Where("applications.challenge_id = challenges.id").
			Where("applications.author_id = challenges.author_id").
			Where("applications.admin_status = ?", entity.ApplicationAccepted),
		).
		Preload("Participants")

	if len(filter.Categories) > 0 {
		tx = tx.Where("challenges.category IN (?)", filter.Categories)
	}

	if filter.DocType != "" {
		tx = tx.Where("challenges.doc_type = ?", filter.DocType)
	}

	if requesterID != 0 {
		tx = tx.Preload("Works", "author_id = ?", requesterID)
	}

	var result []entity.Challenge
	err := tx.
		Order("challenges.created_at DESC").
		Order("challenges.id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetByID(ctx context.Context, id int64) (*entity.Challenge, error) {
	result := &entity.Challenge{}
	if err := xcontext.DB(ctx).Model(&entity.Challenge{}).
		Select("id", "author_id", "title", "is_closed").
		Take(result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetDetailByID(ctx context.Context, id int64) (*entity.Challenge, error) {
	result := &entity.Challenge{}
	if err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Participants").
		Take(result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Challenge, error) {
	result := &entity.Challenge{}
	if err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) UpdateByID(ctx context.Context, id int64, data *entity.Challenge) error {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{}).Where("id = ?", id).Updates(map[string]any{
		"title":           data.Title,
		"description":     data.Description,
		"category":        data.Category,
		"doc_type":        data.DocType,
		"original_url":    data.OriginalURL,
		"deadline":        data.Deadline,
		"max_participant": data.MaxParticipant,
	})

	return tx.Error
}

func (r *challengeRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.Challenge{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *challengeRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Challenge, error) {
	var result []entity.Challenge
	err := xcontext.DB(ctx).
		Where("is_closed = ? AND deadline <= ?", false, now.UTC()).
		Order("deadline ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) CloseByID(ctx context.Context, id int64) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{}).
		Where("id = ? AND is_closed = ?", id, false).
		Update("is_closed", true)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}
