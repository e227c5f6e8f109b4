package testutil

import (
	"context"
	"time"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/pkg/xcontext"
)

// Now is the reference time the fixtures are laid out around. Tests pass it
// (or an offset of it) wherever a clock is needed.
var Now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

var (
	User1 = &entity.User{Base: entity.Base{ID: 1}, Nickname: "user1", Role: entity.RoleUser}
	User2 = &entity.User{Base: entity.Base{ID: 2}, Nickname: "user2", Role: entity.RoleUser}
	Admin = &entity.User{Base: entity.Base{ID: 3}, Nickname: "admin", Role: entity.RoleAdmin}

	Users = []*entity.User{User1, User2, Admin}
)

var (
	// Challenge1 is open: one of two seats taken, deadline ahead.
	Challenge1 = &entity.Challenge{
		Base:           entity.Base{ID: 101, CreatedAt: Now.Add(-3 * time.Hour)},
		AuthorID:       User1.ID,
		Title:          "테스트 챌린지",
		Description:    "Next.js 공식 문서 번역",
		Category:       entity.CategoryNextJS,
		DocType:        entity.DocTypeOfficial,
		OriginalURL:    "https://nextjs.org/docs",
		Deadline:       Now.Add(7 * 24 * time.Hour),
		MaxParticipant: 2,
	}

	// Challenge2 is closed by capacity.
	Challenge2 = &entity.Challenge{
		Base:           entity.Base{ID: 102, CreatedAt: Now.Add(-2 * time.Hour)},
		AuthorID:       User2.ID,
		Title:          "샘플 작업",
		Description:    "API 블로그 글 번역",
		Category:       entity.CategoryAPI,
		DocType:        entity.DocTypeBlog,
		OriginalURL:    "https://example.com/api",
		Deadline:       Now.Add(5 * 24 * time.Hour),
		MaxParticipant: 1,
	}

	// Challenge3 is past its deadline but not swept yet.
	Challenge3 = &entity.Challenge{
		Base:           entity.Base{ID: 103, CreatedAt: Now.Add(-1 * time.Hour)},
		AuthorID:       User1.ID,
		Title:          "Modern JS 가이드",
		Description:    "자바스크립트 최신 문법",
		Category:       entity.CategoryModernJS,
		DocType:        entity.DocTypeOfficial,
		OriginalURL:    "https://developer.mozilla.org",
		Deadline:       Now.Add(-1 * time.Hour),
		MaxParticipant: 5,
	}

	// Challenge4 is hidden from listings: its author's application is pending.
	Challenge4 = &entity.Challenge{
		Base:           entity.Base{ID: 104, CreatedAt: Now.Add(-30 * time.Minute)},
		AuthorID:       User2.ID,
		Title:          "대기 중인 챌린지",
		Description:    "승인 대기",
		Category:       entity.CategoryCareer,
		DocType:        entity.DocTypeBlog,
		OriginalURL:    "https://example.com/career",
		Deadline:       Now.Add(24 * time.Hour),
		MaxParticipant: 3,
	}

	// Challenge5 was closed by the sweep.
	Challenge5 = &entity.Challenge{
		Base:           entity.Base{ID: 105, CreatedAt: Now.Add(-4 * time.Hour)},
		AuthorID:       User1.ID,
		Title:          "마감된 챌린지",
		Description:    "이미 닫힘",
		Category:       entity.CategoryWeb,
		DocType:        entity.DocTypeOfficial,
		OriginalURL:    "https://example.com/web",
		Deadline:       Now.Add(-24 * time.Hour),
		MaxParticipant: 3,
		IsClosed:       true,
	}

	Challenges = []*entity.Challenge{Challenge1, Challenge2, Challenge3, Challenge4, Challenge5}
)

var (
	Application1 = &entity.Application{
		Base:        entity.Base{ID: 201},
		AuthorID:    User1.ID,
		ChallengeID: Challenge1.ID,
		AppliedAt:   Now.Add(-3 * time.Hour),
		AdminStatus: entity.ApplicationAccepted,
	}

	Application2 = &entity.Application{
		Base:        entity.Base{ID: 202},
		AuthorID:    User2.ID,
		ChallengeID: Challenge2.ID,
		AppliedAt:   Now.Add(-2 * time.Hour),
		AdminStatus: entity.ApplicationAccepted,
	}

	Application3 = &entity.Application{
		Base:        entity.Base{ID: 203},
		AuthorID:    User1.ID,
		ChallengeID: Challenge3.ID,
		AppliedAt:   Now.Add(-1 * time.Hour),
		AdminStatus: entity.ApplicationAccepted,
	}

	Application4 = &entity.Application{
		Base:        entity.Base{ID: 204},
		AuthorID:    User2.ID,
		ChallengeID: Challenge4.ID,
		AppliedAt:   Now.Add(-30 * time.Minute),
		AdminStatus: entity.ApplicationPending,
	}

	Application5 = &entity.Application{
		Base:        entity.Base{ID: 205},
		AuthorID:    User1.ID,
		ChallengeID: Challenge5.ID,
		AppliedAt:   Now.Add(-4 * time.Hour),
		AdminStatus: entity.ApplicationAccepted,
	}

	// Application6 is accepted but was not filed by Challenge4's author, so it
	// does not make Challenge4 public.
	Application6 = &entity.Application{
		Base:        entity.Base{ID: 206},
		AuthorID:    User1.ID,
		ChallengeID: Challenge4.ID,
		AppliedAt:   Now.Add(-20 * time.Minute),
		AdminStatus: entity.ApplicationAccepted,
	}

	Applications = []*entity.Application{
		Application1, Application2, Application3, Application4, Application5, Application6,
	}
)

var (
	Participants = []*entity.Participant{
		{UserID: User2.ID, ChallengeID: Challenge1.ID},
		{UserID: User1.ID, ChallengeID: Challenge2.ID},
	}
)

var (
	Work1 = &entity.Work{
		Base:        entity.Base{ID: 301},
		ChallengeID: Challenge1.ID,
		AuthorID:    User2.ID,
		Content:     "번역 결과",
	}

	Work2 = &entity.Work{
		Base:        entity.Base{ID: 302},
		ChallengeID: Challenge5.ID,
		AuthorID:    User1.ID,
		Content:     "닫힌 챌린지 작업",
	}

	Works = []*entity.Work{Work1, Work2}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertChallenges(ctx)
	InsertApplications(ctx)
	InsertParticipants(ctx)
	InsertWorks(ctx)
}

func InsertUsers(ctx context.Context) {
	for _, u := range Users {
		row := *u
		if err := xcontext.DB(ctx).Create(&row).Error; err != nil {
			panic(err)
		}
	}
}

func InsertChallenges(ctx context.Context) {
	for _, c := range Challenges {
		row := *c
		if err := xcontext.DB(ctx).Create(&row).Error; err != nil {
			panic(err)
		}
	}
}

func InsertApplications(ctx context.Context) {
	for _, a := range Applications {
		row := *a
		if err := xcontext.DB(ctx).Create(&row).Error; err != nil {
			panic(err)
		}
	}
}

func InsertParticipants(ctx context.Context) {
	for _, p := range Participants {
		row := *p
		if err := xcontext.DB(ctx).Create(&row).Error; err != nil {
			panic(err)
		}
	}
}

func InsertWorks(ctx context.Context) {
	for _, w := range Works {
		row := *w
		if err := xcontext.DB(ctx).Create(&row).Error; err != nil {
			panic(err)
		}
	}
}
