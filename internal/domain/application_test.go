package domain

import (
	"testing"
	"time"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/internal/repository"
	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/testutil"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestApplicationDomain(publisher *testutil.MockPublisher) *applicationDomain {
	d := NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewUserRepository(),
		publisher,
	)
	d.now = func() time.Time { return testutil.Now }
	return d
}

func clientApplicationIDs(applications []model.Application) []string {
	ids := []string{}
	for _, a := range applications {
		ids = append(ids, a.ID)
	}
	return ids
}

func Test_applicationDomain_Get(t *testing.T) {
	tests := []struct {
		name     string
		user     *entity.User
		id       string
		wantPrev string
		wantNext string
		wantErr  errorx.Code
	}{
		{name: "middle", user: testutil.Admin, id: "203", wantPrev: "202", wantNext: "204"},
		{name: "first", user: testutil.User1, id: "201", wantNext: "202"},
		{name: "last", user: testutil.Admin, id: "206", wantPrev: "205"},
		{name: "other author", user: testutil.User2, id: "201", wantErr: errorx.PermissionDenied},
		{name: "anonymous", id: "201", wantErr: errorx.Unauthenticated},
		{name: "not found", user: testutil.Admin, id: "999", wantErr: errorx.NotFound},
		{name: "invalid id", user: testutil.Admin, id: "abc", wantErr: errorx.BadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContextWithFixtures()
			if tt.user != nil {
				ctx = testutil.NewMockContextWithUser(ctx, tt.user)
			}

			got, err := newTestApplicationDomain(&testutil.MockPublisher{}).
				Get(ctx, &model.GetApplicationRequest{ID: tt.id})
			if tt.wantErr != 0 {
				requireErrorCode(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.id, got.Application.ID)
			require.Equal(t, tt.wantPrev, got.PrevApplicationID)
			require.Equal(t, tt.wantNext, got.NextApplicationID)
			require.Equal(t, got.Application.ChallengeID, got.Challenge.ID)
		})
	}
}

func Test_applicationDomain_Get_Challenge(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	ctx = testutil.NewMockContextWithUser(ctx, testutil.Admin)
	d := newTestApplicationDomain(&testutil.MockPublisher{})

	got, err := d.Get(ctx, &model.GetApplicationRequest{ID: "203"})
	require.NoError(t, err)
	require.Equal(t, "ACCEPTED", got.Application.AdminStatus)
	require.Equal(t, "Modern JS 가이드", got.Challenge.Title)
	require.Equal(t, "closed", got.Challenge.Status)
	require.False(t, got.Challenge.IsClosed)

	got, err = d.Get(ctx, &model.GetApplicationRequest{ID: "201"})
	require.NoError(t, err)
	require.Equal(t, 1, got.Challenge.ParticipantCount)
	require.Equal(t, "open", got.Challenge.Status)
}

func Test_applicationDomain_Get_NewestHasNoNext(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	ctx = testutil.NewMockContextWithUser(ctx, testutil.User1)

	created, err := newTestChallengeDomain(&testutil.MockPublisher{}).
		Create(ctx, validCreateChallengeRequest())
	require.NoError(t, err)

	d := newTestApplicationDomain(&testutil.MockPublisher{})
	got, err := d.Get(ctx, &model.GetApplicationRequest{ID: "206"})
	require.NoError(t, err)
	require.Equal(t, created.ApplicationID, got.NextApplicationID)

	got, err = d.Get(ctx, &model.GetApplicationRequest{ID: created.ApplicationID})
	require.NoError(t, err)
	require.Equal(t, "206", got.PrevApplicationID)
	require.Empty(t, got.NextApplicationID)
	require.Equal(t, "PENDING", got.Application.AdminStatus)
}

func Test_applicationDomain_GetList(t *testing.T) {
	tests := []struct {
		name      string
		user      *entity.User
		req       *model.GetApplicationsRequest
		wantTotal int64
		want      []string
	}{
		{
			name:      "admin sees every application",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{},
			wantTotal: 6,
			want:      []string{"206", "204", "203", "202", "201", "205"},
		},
		{
			name:      "user sees own applications",
			user:      testutil.User1,
			req:       &model.GetApplicationsRequest{},
			wantTotal: 4,
			want:      []string{"206", "203", "201", "205"},
		},
		{
			name:      "pending",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Sort: "pending"},
			wantTotal: 1,
			want:      []string{"204"},
		},
		{
			name:      "accepted of a user",
			user:      testutil.User2,
			req:       &model.GetApplicationsRequest{Sort: "accepted"},
			wantTotal: 1,
			want:      []string{"202"},
		},
		{
			name:      "rejected",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Sort: "rejected"},
			wantTotal: 0,
			want:      []string{},
		},
		{
			name:      "applied ascending",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Sort: "applied_asc"},
			wantTotal: 6,
			want:      []string{"205", "201", "202", "203", "204", "206"},
		},
		{
			name:      "deadline ascending",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Sort: "deadline_asc"},
			wantTotal: 6,
			want:      []string{"205", "203", "204", "206", "202", "201"},
		},
		{
			name:      "deadline descending",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Sort: "deadline_desc"},
			wantTotal: 6,
			want:      []string{"201", "202", "206", "204", "203", "205"},
		},
		{
			name:      "keyword on challenge title",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Keyword: "챌린지"},
			wantTotal: 4,
			want:      []string{"206", "204", "201", "205"},
		},
		{
			name:      "second page",
			user:      testutil.Admin,
			req:       &model.GetApplicationsRequest{Page: 2, PageSize: 2},
			wantTotal: 6,
			want:      []string{"203", "202"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContextWithFixtures()
			ctx = testutil.NewMockContextWithUser(ctx, tt.user)

			got, err := newTestApplicationDomain(&testutil.MockPublisher{}).GetList(ctx, tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.wantTotal, got.TotalCount)
			require.Equal(t, tt.want, clientApplicationIDs(got.Applications))
			for _, a := range got.Applications {
				require.NotNil(t, a.Challenge)
				require.Equal(t, a.ChallengeID, a.Challenge.ID)
			}
		})
	}
}

func Test_applicationDomain_GetList_InvalidRequest(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	d := newTestApplicationDomain(&testutil.MockPublisher{})

	_, err := d.GetList(ctx, &model.GetApplicationsRequest{})
	requireErrorCode(t, err, errorx.Unauthenticated)

	ctx = testutil.NewMockContextWithUser(ctx, testutil.Admin)

	_, err = d.GetList(ctx, &model.GetApplicationsRequest{Sort: "newest"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.GetList(ctx, &model.GetApplicationsRequest{Page: -1})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.GetList(ctx, &model.GetApplicationsRequest{PageSize: 51})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.GetList(ctx, &model.GetApplicationsRequest{Page: 1 << 40, PageSize: 10})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_applicationDomain_Review(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	adminCtx := testutil.NewMockContextWithUser(ctx, testutil.Admin)
	publisher := &testutil.MockPublisher{}
	d := newTestApplicationDomain(publisher)

	got, err := d.Review(adminCtx, &model.ReviewApplicationRequest{
		ID:     "204",
		Status: "REJECTED",
		Reason: "중복된 문서입니다",
	})
	require.NoError(t, err)
	require.Equal(t, "REJECTED", got.AdminStatus)
	require.Equal(t, "중복된 문서입니다", got.Reason)
	require.Equal(t, testutil.Now.Format(model.DefaultTimeLayout), got.InvalidatedAt)
	require.Equal(t, []string{model.TopicApplicationReviewed}, publisher.Topics())

	stored, err := repository.NewApplicationRepository().GetByID(ctx, testutil.Application4.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationRejected, stored.AdminStatus)
	require.NotNil(t, stored.InvalidatedAt)
	require.True(t, testutil.Now.Equal(*stored.InvalidatedAt))
	require.Equal(t, "중복된 문서입니다", *stored.Reason)

	// Accepting does not stamp an invalidation time.
	got, err = d.Review(adminCtx, &model.ReviewApplicationRequest{ID: "202", Status: "accepted"})
	require.NoError(t, err)
	require.Equal(t, "ACCEPTED", got.AdminStatus)
	require.Empty(t, got.InvalidatedAt)
	require.Empty(t, got.Reason)

	// Any status can move to any other.
	got, err = d.Review(adminCtx, &model.ReviewApplicationRequest{ID: "201", Status: "deleted"})
	require.NoError(t, err)
	require.Equal(t, "DELETED", got.AdminStatus)
	require.NotEmpty(t, got.InvalidatedAt)

	got, err = d.Review(adminCtx, &model.ReviewApplicationRequest{ID: "201", Status: "PENDING"})
	require.NoError(t, err)
	require.Equal(t, "PENDING", got.AdminStatus)
}

func Test_applicationDomain_Review_InvalidRequest(t *testing.T) {
	tests := []struct {
		name    string
		user    *entity.User
		req     *model.ReviewApplicationRequest
		wantErr errorx.Code
	}{
		{
			name:    "anonymous",
			req:     &model.ReviewApplicationRequest{ID: "204", Status: "ACCEPTED"},
			wantErr: errorx.Unauthenticated,
		},
		{
			name:    "not an admin",
			user:    testutil.User2,
			req:     &model.ReviewApplicationRequest{ID: "204", Status: "ACCEPTED"},
			wantErr: errorx.PermissionDenied,
		},
		{
			name:    "missing status",
			user:    testutil.Admin,
			req:     &model.ReviewApplicationRequest{ID: "204"},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "unknown status",
			user:    testutil.Admin,
			req:     &model.ReviewApplicationRequest{ID: "204", Status: "APPROVED"},
			wantErr: errorx.BadRequest,
		},
		{
			name:    "not found",
			user:    testutil.Admin,
			req:     &model.ReviewApplicationRequest{ID: "999", Status: "ACCEPTED"},
			wantErr: errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContextWithFixtures()
			if tt.user != nil {
				ctx = testutil.NewMockContextWithUser(ctx, tt.user)
			}

			publisher := &testutil.MockPublisher{}
			_, err := newTestApplicationDomain(publisher).Review(ctx, tt.req)
			requireErrorCode(t, err, tt.wantErr)
			require.Empty(t, publisher.Messages())

			stored, err := repository.NewApplicationRepository().GetByID(ctx, testutil.Application4.ID)
			require.NoError(t, err)
			require.Equal(t, entity.ApplicationPending, stored.AdminStatus)
		})
	}
}

func Test_applicationDomain_Review_RoleFromUserTable(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	d := newTestApplicationDomain(&testutil.MockPublisher{})

	// No role in the context, the stored role decides.
	_, err := d.Review(xcontext.WithRequestUserID(ctx, testutil.Admin.ID),
		&model.ReviewApplicationRequest{ID: "204", Status: "ACCEPTED"})
	require.NoError(t, err)

	_, err = d.Review(xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.ReviewApplicationRequest{ID: "204", Status: "REJECTED"})
	requireErrorCode(t, err, errorx.PermissionDenied)
}

func Test_applicationDomain_Review_PublishesChallenge(t *testing.T) {
	ctx := testutil.NewMockContextWithFixtures()
	challengeDomain := newTestChallengeDomain(&testutil.MockPublisher{})

	list, err := challengeDomain.GetList(ctx, &model.GetChallengesRequest{Keyword: "대기 중인"})
	require.NoError(t, err)
	require.Zero(t, list.TotalCount)

	_, err = newTestApplicationDomain(&testutil.MockPublisher{}).Review(
		testutil.NewMockContextWithUser(ctx, testutil.Admin),
		&model.ReviewApplicationRequest{ID: "204", Status: "ACCEPTED"},
	)
	require.NoError(t, err)

	list, err = challengeDomain.GetList(ctx, &model.GetChallengesRequest{Keyword: "대기 중인"})
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)
	require.Equal(t, "104", list.Challenges[0].ID)
}
