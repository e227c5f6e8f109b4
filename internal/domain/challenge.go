package domain

import (
	"context"
	"errors"
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
	"gorm.io/gorm"
)

type ChallengeDomain interface {
	GetList(context.Context, *model.GetChallengesRequest) (*model.GetChallengesResponse, error)
	Get(context.Context, *model.GetChallengeRequest) (*model.GetChallengeResponse, error)
	Create(context.Context, *model.CreateChallengeRequest) (*model.CreateChallengeResponse, error)
	Update(context.Context, *model.UpdateChallengeRequest) (*model.UpdateChallengeResponse, error)
	Delete(context.Context, *model.DeleteChallengeRequest) (*model.DeleteChallengeResponse, error)
	Join(context.Context, *model.JoinChallengeRequest) (*model.JoinChallengeResponse, error)
	ExpireSweep(ctx context.Context, now time.Time) (int, error)
}

type challengeDomain struct {
	challengeRepo   repository.ChallengeRepository
	applicationRepo repository.ApplicationRepository
	participantRepo repository.ParticipantRepository
	workRepo        repository.WorkRepository
	feedbackRepo    repository.FeedbackRepository
	roleVerifier    *common.GlobalRoleVerifier
	publisher       pubsub.Publisher
	now             func() time.Time
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	applicationRepo repository.ApplicationRepository,
	participantRepo repository.ParticipantRepository,
	workRepo repository.WorkRepository,
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo:   challengeRepo,
		applicationRepo: applicationRepo,
		participantRepo: participantRepo,
		workRepo:        workRepo,
		feedbackRepo:    feedbackRepo,
		roleVerifier:    common.NewGlobalRoleVerifier(userRepo),
		publisher:       publisher,
		now:             time.Now,
	}
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetChallengesRequest,
) (*model.GetChallengesResponse, error) {
	page, pageSize, err := resolvePage(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := repository.ChallengeFilter{}
	for _, value := range req.Category {
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c == "" {
				continue
			}

			category, err := enum.ToEnum[entity.ChallengeCategory](c)
			if err != nil {
				return nil, errorx.New(errorx.BadRequest, "Invalid category %s", c)
			}

			filter.Categories = append(filter.Categories, category)
		}
	}

	if req.DocType != "" {
		filter.DocType, err = enum.ToEnum[entity.DocType](req.DocType)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid doc type %s", req.DocType)
		}
	}

	var statusFilter challengeutil.StatusValue
	if req.Status != "" {
		statusFilter, err = challengeutil.ToStatusValue(req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	challenges, err := d.challengeRepo.GetList(ctx, filter, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge list: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now()
	clientChallenges := []model.Challenge{}
	for i := range challenges {
		c := &challenges[i]
		if !challengeutil.MatchKeyword(req.Keyword, c.Title, c.Description) {
			continue
		}

		status := challengeutil.ResolveStatus(c.IsClosed, len(c.Participants), c.MaxParticipant, c.Deadline, now)
		if statusFilter != "" && status.Value != statusFilter {
			continue
		}

		clientChallenge := model.ConvertChallenge(c)
		clientChallenge.Status = status.String()
		clientChallenge.HasSubmittedWork = len(c.Works) > 0
		clientChallenges = append(clientChallenges, clientChallenge)
	}

	return &model.GetChallengesResponse{
		TotalCount:  len(clientChallenges),
		CurrentPage: page,
		PageSize:    pageSize,
		Challenges:  challengeutil.Paginate(clientChallenges, page, pageSize),
	}, nil
}

func (d *challengeDomain) Get(
	ctx context.Context, req *model.GetChallengeRequest,
) (*model.GetChallengeResponse, error) {
	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	challenge, err := d.challengeRepo.GetDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetChallengeResponse(convertChallengeWithStatus(challenge, d.now()))
	return &resp, nil
}

func (d *challengeDomain) Create(
	ctx context.Context, req *model.CreateChallengeRequest,
) (*model.CreateChallengeResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := common.Validate(req); err != nil {
		return nil, err
	}

	category, docType, err := checkChallengeTags(req.Category, req.DocType)
	if err != nil {
		return nil, err
	}

	now := d.now().UTC()
	challenge := &entity.Challenge{
		Base:           entity.Base{ID: newID(ctx), CreatedAt: now},
		AuthorID:       userID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       category,
		DocType:        docType,
		OriginalURL:    req.OriginalURL,
		Deadline:       req.Deadline.UTC(),
		MaxParticipant: req.MaxParticipant,
	}

	application := &entity.Application{
		Base:        entity.Base{ID: newID(ctx), CreatedAt: now},
		AuthorID:    userID,
		ChallengeID: challenge.ID,
		AppliedAt:   now,
		AdminStatus: entity.ApplicationPending,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application of challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit challenge creation: %v", err)
		return nil, errorx.Unknown
	}

	publishEvent(ctx, d.publisher, model.TopicChallengeCreated, challenge.ID, now, model.ChallengeCreatedEvent{
		ChallengeID:   model.FormatID(challenge.ID),
		ApplicationID: model.FormatID(application.ID),
		AuthorID:      model.FormatID(userID),
		Title:         challenge.Title,
	})

	return &model.CreateChallengeResponse{
		ID:            model.FormatID(challenge.ID),
		ApplicationID: model.FormatID(application.ID),
	}, nil
}

func (d *challengeDomain) Update(
	ctx context.Context, req *model.UpdateChallengeRequest,
) (*model.UpdateChallengeResponse, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	challenge, err := d.challengeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if !d.roleVerifier.IsAuthorOrAdmin(ctx, challenge.AuthorID) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author or an admin can update the challenge")
	}

	if err := common.Validate(req); err != nil {
		return nil, err
	}

	category, docType, err := checkChallengeTags(req.Category, req.DocType)
	if err != nil {
		return nil, err
	}

	err = d.challengeRepo.UpdateByID(ctx, id, &entity.Challenge{
		Title:          req.Title,
		Description:    req.Description,
		Category:       category,
		DocType:        docType,
		OriginalURL:    req.OriginalURL,
		Deadline:       req.Deadline.UTC(),
		MaxParticipant: req.MaxParticipant,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge: %v", err)
		return nil, errorx.Unknown
	}

	updated, err := d.challengeRepo.GetDetailByID(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated challenge: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateChallengeResponse(convertChallengeWithStatus(updated, d.now()))
	return &resp, nil
}

func (d *challengeDomain) Delete(
	ctx context.Context, req *model.DeleteChallengeRequest,
) (*model.DeleteChallengeResponse, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	challenge, err := d.challengeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if !d.roleVerifier.IsAuthorOrAdmin(ctx, challenge.AuthorID) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author or an admin can delete the challenge")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.applicationRepo.DeleteByChallengeID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete applications of challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.participantRepo.DeleteByChallengeID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete participants of challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.feedbackRepo.DeleteByChallengeID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete feedbacks of challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.workRepo.DeleteByChallengeID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete works of challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.challengeRepo.DeleteByID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit challenge deletion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteChallengeResponse{ID: model.FormatID(id)}, nil
}

func (d *challengeDomain) Join(
	ctx context.Context, req *model.JoinChallengeRequest,
) (*model.JoinChallengeResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	id, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	// The challenge row stays locked until commit so that concurrent joins
	// count participants one after another.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	challenge, err := d.challengeRepo.GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.participantRepo.Get(ctx, userID, id)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "User already joined the challenge")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.participantRepo.CountByChallengeID(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	now := d.now().UTC()
	status := challengeutil.ResolveStatus(challenge.IsClosed, count, challenge.MaxParticipant, challenge.Deadline, now)
	if status.IsClosed() {
		return nil, errorx.New(errorx.Unavailable, "Challenge is closed")
	}

	err = d.participantRepo.Create(ctx, &entity.Participant{
		CreatedAt:   now,
		UserID:      userID,
		ChallengeID: id,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create participant: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit participant: %v", err)
		return nil, errorx.Unknown
	}

	count++
	status = challengeutil.ResolveStatus(challenge.IsClosed, count, challenge.MaxParticipant, challenge.Deadline, now)
	return &model.JoinChallengeResponse{ParticipantCount: count, Status: status.String()}, nil
}

// ExpireSweep persists the closed flag of every open challenge whose deadline
// is not after now. It returns how many challenges it closed.
func (d *challengeDomain) ExpireSweep(ctx context.Context, now time.Time) (int, error) {
	// Deadlines are stored in UTC and compared as stored.
	now = now.UTC()
	challenges, err := d.challengeRepo.GetExpired(ctx, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired challenges: %v", err)
		return 0, errorx.Unknown
	}

	closed := 0
	for _, c := range challenges {
		ok, err := d.challengeRepo.CloseByID(ctx, c.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot close challenge %d: %v", c.ID, err)
			return closed, errorx.Unknown
		}

		if !ok {
			continue
		}

		closed++
		publishEvent(ctx, d.publisher, model.TopicChallengeClosed, c.ID, now, model.ChallengeClosedEvent{
			ChallengeID: model.FormatID(c.ID),
			Deadline:    c.Deadline,
		})
	}

	common.PromCounters[common.ExpiredChallengeTotal].WithLabelValues().Add(float64(closed))
	return closed, nil
}

func checkChallengeTags(category, docType string) (entity.ChallengeCategory, entity.DocType, error) {
	c, err := enum.ToEnum[entity.ChallengeCategory](category)
	if err != nil {
		return "", "", errorx.New(errorx.BadRequest, "Invalid category %s", category)
	}

	t, err := enum.ToEnum[entity.DocType](docType)
	if err != nil {
		return "", "", errorx.New(errorx.BadRequest, "Invalid doc type %s", docType)
	}

	return c, t, nil
}
