package repository

import (
	"context"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/pkg/xcontext"
)

type ParticipantRepository interface {
	Get(ctx context.Context, userID, challengeID int64) (*entity.Participant, error)
	Create(ctx context.Context, data *entity.Participant) error
	CountByChallengeID(ctx context.Context, challengeID int64) (int, error)
	DeleteByChallengeID(ctx context.Context, challengeID int64) error
}

type participantRepository struct{}

func NewParticipantRepository() ParticipantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Get(ctx context.Context, userID, challengeID int64) (*entity.Participant, error) {
	var result entity.Participant
	err := xcontext.DB(ctx).Where("user_id=? AND challenge_id=?", userID, challengeID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) Create(ctx context.Context, data *entity.Participant) error {
	return xcontext.DB(ctx).Omit("User").Create(data).Error
}

func (r *participantRepository) DeleteByChallengeID(ctx context.Context, challengeID int64) error {
	return xcontext.DB(ctx).Delete(&entity.Participant{}, "challenge_id = ?", challengeID).Error
}

func (r *participantRepository) CountByChallengeID(ctx context.Context, challengeID int64) (int, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Participant{}).
		Where("challenge_id = ?", challengeID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}
