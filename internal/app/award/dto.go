package award

import "time"

type OrderRequest struct {
	MemberID       string
	IdempotencyKey string
	OrderID        string
	OrderTotal     float64
}

type QuestRequest struct {
	MemberID       string
	IdempotencyKey string
	QuestID        string
}

type Response struct {
	MemberID    string    `json:"member_id"`
	Source      string    `json:"source"`
	SourceRef   string    `json:"source_ref,omitempty"`
	PointsDelta int64     `json:"points_delta"`
	TokensDelta int64     `json:"tokens_delta"`
	Points      int64     `json:"points"`
	Tokens      int64     `json:"tokens"`
	Replayed    bool      `json:"replayed"`
	AppliedAt   time.Time `json:"applied_at"`
}
