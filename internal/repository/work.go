package repository

import (
	"context"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WorkRepository interface {
	// GetByID loads the work with the is_closed flag of its challenge.
	GetByID(ctx context.Context, id int64) (*entity.Work, error)
	DeleteByChallengeID(ctx context.Context, challengeID int64) error
}

type workRepository struct{}

func NewWorkRepository() WorkRepository {
	return &workRepository{}
}

func (r *workRepository) GetByID(ctx context.Context, id int64) (*entity.Work, error) {
	result := &entity.Work{}
	if err := xcontext.DB(ctx).
		Preload("Challenge", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "is_closed")
		}).
		Take(result, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *workRepository) DeleteByChallengeID(ctx context.Context, challengeID int64) error {
	return xcontext.DB(ctx).Delete(&entity.Work{}, "challenge_id = ?", challengeID).Error
}

type FeedbackRepository interface {
	Create(ctx context.Context, data *entity.Feedback) error

	// DeleteByChallengeID removes the feedbacks on every work of the challenge.
	DeleteByChallengeID(ctx context.Context, challengeID int64) error
}

type feedbackRepository struct{}

func NewFeedbackRepository() FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(ctx context.Context, data *entity.Feedback) error {
	return xcontext.DB(ctx).Omit("Work").Create(data).Error
}

func (r *feedbackRepository) DeleteByChallengeID(ctx context.Context, challengeID int64) error {
	works := xcontext.DB(ctx).Model(&entity.Work{}).Select("id").Where("challenge_id = ?", challengeID)
	return xcontext.DB(ctx).Where("work_id IN (?)", works).Delete(&entity.Feedback{}).Error
}
