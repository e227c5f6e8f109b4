package model

import "time"

const (
	TopicChallengeCreated    = "challenge.created"
	TopicChallengeClosed     = "challenge.closed"
	TopicApplicationReviewed = "application.reviewed"
)

type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Time time.Time `json:"time"`
	Data any       `json:"data"`
}

type ChallengeCreatedEvent struct {
	ChallengeID   string `json:"challenge_id"`
	ApplicationID string `json:"application_id"`
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
}

type ChallengeClosedEvent struct {
	ChallengeID string    `json:"challenge_id"`
	Deadline    time.Time `json:"deadline"`
}

type ApplicationReviewedEvent struct {
	ApplicationID string `json:"application_id"`
	ChallengeID   string `json:"challenge_id"`
	AdminStatus   string `json:"admin_status"`
	ReviewerID    string `json:"reviewer_id"`
}
