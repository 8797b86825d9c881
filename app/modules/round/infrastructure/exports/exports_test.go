package roundexports

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/guss-backend/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func completedResults(t *testing.T, users int) *roundservice.RoundResults {
	t.Helper()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)

	var taps []rounddomain.TapRecord
	for u := 0; u < users; u++ {
		userID := uuid.New()
		for n := 0; n <= u; n++ {
			taps = append(taps, rounddomain.TapRecord{
				ID:        uuid.New(),
				UserID:    userID,
				Username:  fmt.Sprintf("player%d", u+1),
				Score:     1,
				CreatedAt: start.Add(time.Duration(len(taps)) * time.Millisecond),
			})
		}
	}

	stats := rounddomain.Aggregate(taps)
	now := end.Add(time.Second)
	return &roundservice.RoundResults{
		Round:   rounddomain.Round{ID: uuid.New(), StartTime: start, EndTime: end, CreatedAt: start},
		Phase:   rounddomain.PhaseCompleted,
		AsOf:    now,
		Stats:   stats,
		Winner:  stats.Winner(rounddomain.PhaseCompleted),
		Ranking: stats.Ranking(),
	}
}

func TestWriteResultsXLSX(t *testing.T) {
	res := completedResults(t, 3)

	data, err := WriteResultsXLSX(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResultsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Rank", "Username", "Taps", "Score"}, rows[0])
	assert.Equal(t, []string{"1", "player3", "3", "3"}, rows[1])
	assert.Equal(t, []string{"3", "player1", "1", "1"}, rows[3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Contains(t, summary, []string{"Winner", "player3"})
	assert.Contains(t, summary, []string{"Total taps", "6"})
	assert.Contains(t, summary, []string{"Status", "COMPLETED"})
}

func TestWriteResultsXLSX_EmptyRound(t *testing.T) {
	res := completedResults(t, 0)

	data, err := WriteResultsXLSX(res)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Contains(t, summary, []string{"Winner", "-"})
}

func TestRenderScoreChart(t *testing.T) {
	tests := []struct {
		name  string
		users int
	}{
		{name: "no taps", users: 0},
		{name: "single user", users: 1},
		{name: "several users", users: 5},
		{name: "more users than bars", users: maxBars + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderScoreChart(completedResults(t, tt.users))
			require.NoError(t, err)
			require.Greater(t, len(data), len(pngSignature))
			assert.Equal(t, pngSignature, data[:len(pngSignature)])
		})
	}
}
