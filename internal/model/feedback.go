package model

type CreateFeedbackRequest struct {
	WorkID  string `json:"work_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateFeedbackResponse struct {
	ID string `json:"id"`
}
