package rounddomain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userdomain "github.com/Black-And-White-Club/guss-backend/app/modules/user/domain"
)

func TestScoreForTap(t *testing.T) {
	tests := []struct {
		name  string
		prior int
		role  userdomain.Role
		want  int
	}{
		{name: "first tap", prior: 0, role: userdomain.RolePlayer, want: 1},
		{name: "tenth tap", prior: 9, role: userdomain.RolePlayer, want: 1},
		{name: "eleventh tap is bonus", prior: 10, role: userdomain.RolePlayer, want: 10},
		{name: "twelfth tap", prior: 11, role: userdomain.RolePlayer, want: 1},
		{name: "twenty-second tap is bonus", prior: 21, role: userdomain.RolePlayer, want: 10},
		{name: "admin scores like a player", prior: 10, role: userdomain.RoleAdmin, want: 10},
		{name: "zero score on bonus ordinal", prior: 10, role: userdomain.RoleZeroScore, want: 0},
		{name: "zero score on first tap", prior: 0, role: userdomain.RoleZeroScore, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreForTap(tt.prior, tt.role))
		})
	}
}

func TestScoreForTap_Sequence(t *testing.T) {
	total := 0
	for prior := 0; prior < 110; prior++ {
		score := ScoreForTap(prior, userdomain.RolePlayer)
		if (prior+1)%BonusInterval == 0 {
			assert.Equal(t, BonusPoints, score, "tap %d", prior+1)
		} else {
			assert.Equal(t, BasePoints, score, "tap %d", prior+1)
		}
		total += score
	}
	// 10 bonus taps and 100 ordinary ones
	assert.Equal(t, 200, total)
}

func TestScoreForTap_UnknownRolePanics(t *testing.T) {
	assert.Panics(t, func() { ScoreForTap(0, userdomain.Role("GUEST")) })
	assert.Panics(t, func() { RecordsTaps(userdomain.Role("")) })
}

func TestRecordsTaps(t *testing.T) {
	assert.True(t, RecordsTaps(userdomain.RolePlayer))
	assert.True(t, RecordsTaps(userdomain.RoleAdmin))
	assert.False(t, RecordsTaps(userdomain.RoleZeroScore))
}
