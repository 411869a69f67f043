package pantry

import (
	"math"
	"time"

	"FreshFocus-Backend/entities"
)

// ClassifyExpiry maps an estimated days-left count to a risk tier:
// expired at zero or below, soon through seven days, fresh beyond that.
// Risk is never stored as independent truth; every mutation of the day
// count goes back through this function.
func ClassifyExpiry(daysLeft int) entities.ExpiryRisk {
	switch {
	case daysLeft <= 0:
		return entities.RiskExpired
	case daysLeft <= 7:
		return entities.RiskSoon
	default:
		return entities.RiskFresh
	}
}

// DaysLeftUntil converts a target expiry date to whole days remaining,
// measured from midnight of the reference day, rounded up and floored at
// zero. Manual add and scan review both use this, so the same date always
// yields the same risk regardless of entry path.
func DaysLeftUntil(target, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Ceil(target.Sub(today).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
