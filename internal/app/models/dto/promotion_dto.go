package dto

// PromoteRequest is the payload for the cohort promotion job.
type PromoteRequest struct {
	Year int `json:"year" binding:"required,min=1,max=4" example:"2"`
}

// PromoteResponse reports how many students the promotion touched.
type PromoteResponse struct {
	AffectedCount int64 `json:"affectedCount"`
	Graduated     bool  `json:"graduated"` // true when the target year was the final year
}
