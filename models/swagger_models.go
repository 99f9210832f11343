package models

// APIResponse is the generic API envelope.
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// FindRequest is the body of POST /api/teammates/find.
type FindRequest struct {
	RequesterID string         `json:"requester_id" example:"u123"`
	Query       string         `json:"query" example:"react developer interested in fintech"`
	Filters     *SearchFilters `json:"filters,omitempty"`
}

// RecommendRequest is the body of POST /api/teammates/recommend.
type RecommendRequest struct {
	RequesterID string         `json:"requester_id" example:"u123"`
	Filters     *SearchFilters `json:"filters,omitempty"`
}

// FindResponse is the payload of a successful find call.
type FindResponse struct {
	Results      []MatchResult `json:"results"`
	Count        int           `json:"count"`
	TotalMatches int           `json:"total_matches"`
}

// RecommendResponse is the payload of a successful recommend call.
type RecommendResponse struct {
	Recommended []MatchResult    `json:"recommended"`
	Metrics     RecommendMetrics `json:"metrics"`
}

// RecommendMetrics summarizes one recommendation run.
type RecommendMetrics struct {
	TotalConsidered  int     `json:"total_considered"`
	TotalRecommended int     `json:"total_recommended"`
	AverageScore     float64 `json:"average_score"`
}

// TeamsResponse is the payload of a successful form-teams call.
type TeamsResponse struct {
	Teams []Team `json:"teams"`
}
