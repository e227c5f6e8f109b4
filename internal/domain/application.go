package domain

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/docthru/backend/internal/common"
	"github.com/docthru/backend/internal/domain/challengeutil"
	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/internal/repository"
	"github.com/docthru/backend/pkg/enum"
	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/pubsub"
	"github.com/docthru/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Get(context.Context, *model.GetApplicationRequest) (*model.GetApplicationResponse, error)
	GetList(context.Context, *model.GetApplicationsRequest) (*model.GetApplicationsResponse, error)
	Review(context.Context, *model.ReviewApplicationRequest) (*model.ReviewApplicationResponse, error)
}

type applicationDomain struct {
	applicationRepo repository.ApplicationRepository
	roleVerifier    *common.GlobalRoleVerifier
	publisher       pubsub.Publisher
	now             func() time.Time
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *applicationDomain {
	return &applicationDomain{
		applicationRepo: applicationRepo,
		roleVerifier:    common.NewGlobalRoleVerifier(userRepo),
		publisher:       publisher,
		now:             time.Now,
	}
}

// Get returns the application with the ids of its neighbours. Neighbours
// follow the global id ordering, whatever list the caller came from.
func (d *applicationDomain) Get(
	ctx context.Context, req *model.GetApplicationRequest,
) (*model.GetApplicationResponse, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	application, err := d.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	if !d.roleVerifier.IsAuthorOrAdmin(ctx, application.AuthorID) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	prevID, err := d.applicationRepo.GetNeighborID(ctx, id, repository.Prev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get previous application: %v", err)
		return nil, errorx.Unknown
	}

	nextID, err := d.applicationRepo.GetNeighborID(ctx, id, repository.Next)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get next application: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetApplicationResponse{
		Application:       model.ConvertApplication(application, nil),
		Challenge:         convertChallengeWithStatus(&application.Challenge, d.now()),
		PrevApplicationID: model.FormatID(prevID),
		NextApplicationID: model.FormatID(nextID),
	}, nil
}

func (d *applicationDomain) GetList(
	ctx context.Context, req *model.GetApplicationsRequest,
) (*model.GetApplicationsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	page, pageSize, err := resolvePage(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	if page-1 > math.MaxInt32/pageSize {
		return nil, errorx.New(errorx.BadRequest, "Page is too large")
	}

	filter := repository.ApplicationFilter{
		Keyword: strings.TrimSpace(req.Keyword),
		Offset:  (page - 1) * pageSize,
		Limit:   pageSize,
	}

	// Admins review every application, others only see their own.
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		filter.AuthorID = userID
	}

	switch req.Sort {
	case "", "applied_desc":
		filter.OrderBy = repository.OrderAppliedDesc
	case "applied_asc":
		filter.OrderBy = repository.OrderAppliedAsc
	case "deadline_asc":
		filter.OrderBy = repository.OrderDeadlineAsc
	case "deadline_desc":
		filter.OrderBy = repository.OrderDeadlineDesc
	case "pending", "accepted", "rejected":
		filter.Status = entity.ApplicationStatus(strings.ToUpper(req.Sort))
		filter.OrderBy = repository.OrderAppliedDesc
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid sort %s", req.Sort)
	}

	total, applications, err := d.applicationRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get application list: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	clientApplications := []model.Application{}
	for i := range applications {
		challenge := convertChallengeWithStatus(&applications[i].Challenge, now)
		clientApplications = append(clientApplications, model.ConvertApplication(&applications[i], &challenge))
	}

	return &model.GetApplicationsResponse{
		TotalCount:   total,
		Applications: clientApplications,
	}, nil
}

// Review sets the admin status of an application. Any status can be changed to
// any other; rejecting or deleting also stamps the invalidation time.
func (d *applicationDomain) Review(
	ctx context.Context, req *model.ReviewApplicationRequest,
) (*model.ReviewApplicationResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Only admins can review applications")
	}

	if err := common.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	status, err := enum.ToEnum[entity.ApplicationStatus](strings.ToUpper(req.Status))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	application, err := d.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now().UTC()
	update := &entity.Application{AdminStatus: status}
	if slices.Contains(entity.InvalidatingStatuses, status) {
		update.InvalidatedAt = &now
	}

	if req.Reason != "" {
		update.Reason = &req.Reason
	}

	if err := d.applicationRepo.UpdateStatusByID(ctx, id, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update application status: %v", err)
		return nil, errorx.Unknown
	}

	application.AdminStatus = status
	if update.InvalidatedAt != nil {
		application.InvalidatedAt = update.InvalidatedAt
	}

	if update.Reason != nil {
		application.Reason = update.Reason
	}

	publishEvent(ctx, d.publisher, model.TopicApplicationReviewed, application.ID, now, model.ApplicationReviewedEvent{
		ApplicationID: model.FormatID(application.ID),
		ChallengeID:   model.FormatID(application.ChallengeID),
		AdminStatus:   string(status),
		ReviewerID:    model.FormatID(userID),
	})

	resp := model.ReviewApplicationResponse(model.ConvertApplication(application, nil))
	return &resp, nil
}

func convertChallengeWithStatus(challenge *entity.Challenge, now time.Time) model.Challenge {
	status := challengeutil.ResolveStatus(
		challenge.IsClosed, len(challenge.Participants), challenge.MaxParticipant, challenge.Deadline, now)

	clientChallenge := model.ConvertChallenge(challenge)
	clientChallenge.Status = status.String()
	return clientChallenge
}
