package progression

import (
	"errors"
	"math"
)

var ErrInvalidOrderTotal = errors.New("invalid order total")

// PointsFromOrder converts a completed order's monetary total into a point
// delta: one point per whole currency unit, fractional units dropped (floor,
// so 47.60 earns 47). Negative or non-finite totals indicate corrupted
// upstream data and are rejected, never clamped.
func PointsFromOrder(orderTotal float64) (int64, error) {
	if orderTotal < 0 || math.IsNaN(orderTotal) || math.IsInf(orderTotal, 0) {
		return 0, ErrInvalidOrderTotal
	}
	return int64(math.Floor(orderTotal)), nil
}

// TokensFromOrder converts an order total into a token delta. Tokens accrue
// independently of points but under the same floor rule.
func TokensFromOrder(orderTotal float64) (int64, error) {
	return PointsFromOrder(orderTotal)
}

// RewardFromQuest echoes a quest's declared reward. Eligibility is the quest
// filter's concern and applying the reward is the caller's.
func RewardFromQuest(q Quest) Reward {
	return Reward{Type: q.RewardType, Amount: q.RewardAmount}
}
