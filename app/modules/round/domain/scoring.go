package rounddomain

import (
	"fmt"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
)

const (
	// BasePoints is the value of an ordinary tap.
	BasePoints = 1
	// BonusPoints is the value of every BonusInterval-th tap.
	BonusPoints = 10
	// BonusInterval makes every 11th tap of a user in a round a bonus tap.
	BonusInterval = 11
)

// ScoreForTap prices the next tap of a user in a round given how many taps
// that user already had accepted there.
func ScoreForTap(priorTaps int, role userdomain.Role) int {
	switch role {
	case userdomain.RoleZeroScore:
		return 0
	case userdomain.RolePlayer, userdomain.RoleAdmin:
		ordinal := priorTaps + 1
		if ordinal%BonusInterval == 0 {
			return BonusPoints
		}
		return BasePoints
	default:
		panic(fmt.Sprintf("rounddomain: unknown role %q", role))
	}
}

// RecordsTaps reports whether taps by the role are persisted at all.
func RecordsTaps(role userdomain.Role) bool {
	switch role {
	case userdomain.RoleZeroScore:
		return false
	case userdomain.RolePlayer, userdomain.RoleAdmin:
		return true
	default:
		panic(fmt.Sprintf("rounddomain: unknown role %q", role))
	}
}
