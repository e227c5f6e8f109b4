package model

import "time"

type Challenge struct {
	ID               string `json:"id"`
	AuthorID         string `json:"author_id"`
	AuthorNickname   string `json:"author_nickname,omitempty"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	DocType          string `json:"doc_type"`
	OriginalURL      string `json:"original_url"`
	Deadline         string `json:"deadline"`
	MaxParticipant   int    `json:"max_participant"`
	ParticipantCount int    `json:"participant_count"`
	Status           string `json:"status"`
	IsClosed         bool   `json:"is_closed"`
	HasSubmittedWork bool   `json:"has_submitted_work"`
	CreatedAt        string `json:"created_at"`
}

type GetChallengesRequest struct {
	Page     int      `json:"page" form:"page"`
	PageSize int      `json:"page_size" form:"page_size"`
	Category []string `json:"category" form:"category"`
	DocType  string   `json:"doc_type" form:"doc_type"`
	Keyword  string   `json:"keyword" form:"keyword"`
	Status   string   `json:"status" form:"status"`
}

type GetChallengesResponse struct {
	TotalCount  int         `json:"total_count"`
	CurrentPage int         `json:"current_page"`
	PageSize    int         `json:"page_size"`
	Challenges  []Challenge `json:"challenges"`
}

type GetChallengeRequest struct {
	ID string `json:"id" form:"id"`
}

type GetChallengeResponse Challenge

type CreateChallengeRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	DocType        string    `json:"doc_type" validate:"required"`
	OriginalURL    string    `json:"original_url" validate:"required,url"`
	Deadline       time.Time `json:"deadline" validate:"required"`
	MaxParticipant int       `json:"max_participant" validate:"required,min=1"`
}

type CreateChallengeResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
}

type UpdateChallengeRequest struct {
	ID             string    `json:"id" validate:"required"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	DocType        string    `json:"doc_type" validate:"required"`
	OriginalURL    string    `json:"original_url" validate:"required,url"`
	Deadline       time.Time `json:"deadline" validate:"required"`
	MaxParticipant int       `json:"max_participant" validate:"required,min=1"`
}

type UpdateChallengeResponse Challenge

type DeleteChallengeRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteChallengeResponse struct {
	ID string `json:"id"`
}

type JoinChallengeRequest struct {
	ID string `json:"id" validate:"required"`
}

type JoinChallengeResponse struct {
	ParticipantCount int    `json:"participant_count"`
	Status           string `json:"status"`
}
