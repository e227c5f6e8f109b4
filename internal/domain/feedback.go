package domain

import (
	"context"
	"errors"

	"github.com/docthru/backend/internal/common"
	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/internal/repository"
	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FeedbackDomain interface {
	Create(context.Context, *model.CreateFeedbackRequest) (*model.CreateFeedbackResponse, error)
}

type feedbackDomain struct {
	workRepo     repository.WorkRepository
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackDomain(
	workRepo repository.WorkRepository,
	feedbackRepo repository.FeedbackRepository,
) *feedbackDomain {
	return &feedbackDomain{
		workRepo:     workRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (d *feedbackDomain) Create(
	ctx context.Context, req *model.CreateFeedbackRequest,
) (*model.CreateFeedbackResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := common.Validate(req); err != nil {
		return nil, err
	}

	workID, err := parseID("work_id", req.WorkID)
	if err != nil {
		return nil, err
	}

	work, err := d.workRepo.GetByID(ctx, workID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found work")
		}

		xcontext.Logger(ctx).Errorf("Cannot get work: %v", err)
		return nil, errorx.Unknown
	}

	// Only the persisted flag counts here; a challenge past its deadline
	// accepts feedback until the sweep closes it.
	if work.Challenge.IsClosed {
		return nil, errorx.New(errorx.Unavailable, "Challenge is closed")
	}

	feedback := &entity.Feedback{
		Base:     entity.Base{ID: newID(ctx)},
		WorkID:   workID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := d.feedbackRepo.Create(ctx, feedback); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create feedback: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateFeedbackResponse{ID: model.FormatID(feedback.ID)}, nil
}
