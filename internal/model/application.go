package model

type Application struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	ChallengeID   string     `json:"challenge_id"`
	AppliedAt     string     `json:"applied_at"`
	AdminStatus   string     `json:"admin_status"`
	InvalidatedAt string     `json:"invalidated_at,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Challenge     *Challenge `json:"challenge,omitempty"`
}

type GetApplicationsRequest struct {
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
	Sort     string `json:"sort" form:"sort"`
	Keyword  string `json:"keyword" form:"keyword"`
}

type GetApplicationsResponse struct {
	TotalCount   int64         `json:"total_count"`
	Applications []Application `json:"applications"`
}

type GetApplicationRequest struct {
	ID string `json:"id" form:"id"`
}

// GetApplicationResponse carries the neighbours of the application in the
// global id ordering. An empty id means there is no neighbour on that side.
type GetApplicationResponse struct {
	Application       Application `json:"application"`
	Challenge         Challenge   `json:"challenge"`
	PrevApplicationID string      `json:"prev_application_id,omitempty"`
	NextApplicationID string      `json:"next_application_id,omitempty"`
}

type ReviewApplicationRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

type ReviewApplicationResponse Application
