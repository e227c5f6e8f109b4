package model

import (
	"strconv"
	"time"

	"github.com/docthru/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func FormatID(id int64) string {
	if id == 0 {
		return ""
	}

	return strconv.FormatInt(id, 10)
}

// ConvertChallenge fills the fields stored on the challenge. Derived fields
// such as the status are set by the caller.
func ConvertChallenge(challenge *entity.Challenge) Challenge {
	if challenge == nil {
		return Challenge{}
	}

	return Challenge{
		ID:               FormatID(challenge.ID),
		AuthorID:         FormatID(challenge.AuthorID),
		AuthorNickname:   challenge.Author.Nickname,
		Title:            challenge.Title,
		Description:      challenge.Description,
		Category:         string(challenge.Category),
		DocType:          string(challenge.DocType),
		OriginalURL:      challenge.OriginalURL,
		Deadline:         challenge.Deadline.Format(DefaultTimeLayout),
		MaxParticipant:   challenge.MaxParticipant,
		ParticipantCount: len(challenge.Participants),
		IsClosed:         challenge.IsClosed,
		CreatedAt:        challenge.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertApplication(application *entity.Application, challenge *Challenge) Application {
	if application == nil {
		return Application{}
	}

	a := Application{
		ID:          FormatID(application.ID),
		AuthorID:    FormatID(application.AuthorID),
		ChallengeID: FormatID(application.ChallengeID),
		AppliedAt:   application.AppliedAt.Format(DefaultTimeLayout),
		AdminStatus: string(application.AdminStatus),
		Challenge:   challenge,
	}

	if application.InvalidatedAt != nil {
		a.InvalidatedAt = application.InvalidatedAt.Format(DefaultTimeLayout)
	}

	if application.Reason != nil {
		a.Reason = *application.Reason
	}

	return a
}
