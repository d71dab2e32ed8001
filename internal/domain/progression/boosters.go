package progression

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultBoosterType is the inventory category treated as reward boosters.
const DefaultBoosterType = "booster"

// Duration token embedded in item names, e.g. "Speed Boost (6h)".
var namedDurationPattern = regexp.MustCompile(`\((\d+)h\)`)

// ResolveBoosters computes the activity of every inventory item of the given
// type at the instant now. Expiry is taken from the explicit timestamp when
// present, otherwise derived from a "(Nh)" token in the name anchored at the
// unlock time (or the account creation time when the unlock time is missing).
// Items with neither source of expiry fail open: an already granted reward is
// never denied over missing data.
func ResolveBoosters(inventory []Booster, boosterType string, accountCreatedAt, now time.Time) []BoosterStatus {
	out := make([]BoosterStatus, 0, len(inventory))
	for _, item := range inventory {
		if item.Type != boosterType {
			continue
		}
		status := BoosterStatus{Booster: item, Active: true}
		if expiry, ok := boosterExpiry(item, accountCreatedAt); ok {
			if !now.Before(expiry) {
				status.Active = false
			} else {
				e := expiry
				status.ExpiresAt = &e
				status.Remaining = expiry.Sub(now)
				status.RemainingLabel = FormatRemaining(status.Remaining)
			}
		}
		out = append(out, status)
	}
	return out
}

// ActiveBoosters is ResolveBoosters with expired items dropped.
func ActiveBoosters(inventory []Booster, boosterType string, accountCreatedAt, now time.Time) []BoosterStatus {
	all := ResolveBoosters(inventory, boosterType, accountCreatedAt, now)
	out := make([]BoosterStatus, 0, len(all))
	for _, s := range all {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

func boosterExpiry(item Booster, accountCreatedAt time.Time) (time.Time, bool) {
	if item.ExpiresAt != nil && !item.ExpiresAt.IsZero() {
		return *item.ExpiresAt, true
	}
	hours, ok := parseNamedDuration(item.Name)
	if !ok {
		return time.Time{}, false
	}
	anchor := item.UnlockedAt
	if anchor.IsZero() {
		anchor = accountCreatedAt
	}
	if anchor.IsZero() {
		return time.Time{}, false
	}
	return anchor.Add(time.Duration(hours) * time.Hour), true
}

func parseNamedDuration(name string) (int, bool) {
	m := namedDurationPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil || hours <= 0 {
		return 0, false
	}
	return hours, true
}

// FormatRemaining renders a countdown as the largest two non-zero units among
// hours, minutes and seconds: "2h 15m", "15m 30s", "45s".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	units := []struct {
		value int64
		label string
	}{
		{total / 3600, "h"},
		{(total % 3600) / 60, "m"},
		{total % 60, "s"},
	}

	parts := make([]string, 0, 2)
	for _, u := range units {
		if u.value == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s", u.value, u.label))
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
