package repository

import (
	"context"
	"strings"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Direction int

const (
	Prev Direction = iota
	Next
)

type ApplicationOrder int

const (
	OrderAppliedDesc ApplicationOrder = iota
	OrderAppliedAsc
	OrderDeadlineAsc
	OrderDeadlineDesc
)

type ApplicationFilter struct {
	// AuthorID restricts the list to one user's applications when non-zero.
	AuthorID int64
	Status   entity.ApplicationStatus
	// Keyword matches the challenge title.
	Keyword string
	OrderBy ApplicationOrder
	Offset  int
	Limit   int
}

type ApplicationRepository interface {
	Create(ctx context.Context, data *entity.Application) error

	// GetByID loads the application with its challenge and the challenge's
	// participants.
	GetByID(ctx context.Context, id int64) (*entity.Application, error)

	// GetNeighborID returns the closest application id before or after id in
	// the global id ordering, or zero when there is none.
	GetNeighborID(ctx context.Context, id int64, direction Direction) (int64, error)
	GetList(ctx context.Context, filter ApplicationFilter) (int64, []entity.Application, error)
	UpdateStatusByID(ctx context.Context, id int64, data *entity.Application) error
	DeleteByChallengeID(ctx context.Context, challengeID int64) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, data *entity.Application) error {
	return xcontext.DB(ctx).Omit("Author", "Challenge").Create(data).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	result := &entity.Application{}
	if err := xcontext.DB(ctx).
		Preload("Challenge").
		Preload("Challenge.Participants").
		Take(result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) GetNeighborID(
	ctx context.Context, id int64, direction Direction,
) (int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Application{}).Select("id")
	switch direction {
	case Prev:
		tx = tx.Where("id < ?", id).Order("id DESC")
	default:
		tx = tx.Where("id > ?", id).Order("id ASC")
	}

	var ids []int64
	if err := tx.Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	if len(ids) == 0 {
		return 0, nil
	}

	return ids[0], nil
}

func (r *applicationRepository) GetList(
	ctx context.Context, filter ApplicationFilter,
) (int64, []entity.Application, error) {
	query := func() *gorm.DB {
		tx := xcontext.DB(ctx).Model(&entity.Application{}).
			Joins("JOIN challenges ON challenges.id = applications.challenge_id")

		if filter.AuthorID != 0 {
			tx = tx.Where("applications.author_id = ?", filter.AuthorID)
		}

		if filter.Status != "" {
			tx = tx.Where("applications.admin_status = ?", filter.Status)
		}

		if filter.Keyword != "" {
			tx = tx.Where("challenges.title LIKE ? ESCAPE '!'", "%"+escapeLike(filter.Keyword)+"%")
		}

		return tx
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	tx := query().Select("applications.*").Preload("Challenge").Preload("Challenge.Participants")
	switch filter.OrderBy {
	case OrderAppliedAsc:
		tx = tx.Order("applications.applied_at ASC").Order("applications.id ASC")
	case OrderDeadlineAsc:
		tx = tx.Order("challenges.deadline ASC").Order("applications.id ASC")
	case OrderDeadlineDesc:
		tx = tx.Order("challenges.deadline DESC").Order("applications.id DESC")
	default:
		tx = tx.Order("applications.applied_at DESC").Order("applications.id DESC")
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Application
	if err := tx.Find(&result).Error; err != nil {
		return 0, nil, err
	}

	return total, result, nil
}

func (r *applicationRepository) UpdateStatusByID(
	ctx context.Context, id int64, data *entity.Application,
) error {
	updates := map[string]any{"admin_status": data.AdminStatus}
	if data.InvalidatedAt != nil {
		updates["invalidated_at"] = data.InvalidatedAt
	}

	if data.Reason != nil {
		updates["reason"] = data.Reason
	}

	return xcontext.DB(ctx).Model(&entity.Application{}).Where("id = ?", id).Updates(updates).Error
}

func (r *applicationRepository) DeleteByChallengeID(ctx context.Context, challengeID int64) error {
	return xcontext.DB(ctx).Delete(&entity.Application{}, "challenge_id = ?", challengeID).Error
}

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes every rune of s match literally in a LIKE pattern using
// '!' as the escape character.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
