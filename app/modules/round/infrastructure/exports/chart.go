package roundexports

import (
	"bytes"
	"fmt"
	"math"

	roundservice "github.com/Black-And-White-Club/guss-backend/app/modules/round/application"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNGContentType is the media type of rendered charts.
const PNGContentType = "image/png"

// maxBars caps how many users the chart shows.
const maxBars = 20

var (
	backgroundColor = drawing.ColorFromHex("fdfaf3")
	barColor        = drawing.ColorFromHex("2e6b4f")
	winnerColor     = drawing.ColorFromHex("d4a017")
	textColor       = drawing.ColorFromHex("1b1b1b")
)

// RenderScoreChart draws a bar per user with their round score, highest first.
func RenderScoreChart(res *roundservice.RoundResults) ([]byte, error) {
	if len(res.Ranking) == 0 {
		return renderNoDataPlaceholder("No taps yet")
	}

	standings := res.Ranking
	if len(standings) > maxBars {
		standings = standings[:maxBars]
	}

	bars := make([]chart.Value, 0, len(standings))
	top := 0
	for _, total := range standings {
		color := barColor
		if res.Winner != nil && total.UserID == res.Winner.UserID {
			color = winnerColor
		}
		bars = append(bars, chart.Value{
			Label: total.Username,
			Value: float64(total.Score),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
		top = max(top, total.Score)
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Round %s (%s)", res.Round.ID.String()[:8], res.Phase),
		Width:      800,
		Height:     400,
		BarWidth:   40,
		Background: chart.Style{FillColor: backgroundColor, Padding: chart.Box{Top: 40}},
		Canvas:     chart.Style{FillColor: backgroundColor},
		TitleStyle: chart.Style{FontColor: textColor},
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
			// an explicit range keeps single-bar charts renderable
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(float64(top) * 1.1)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderNoDataPlaceholder draws an empty axis with msg as the only label.
func renderNoDataPlaceholder(msg string) ([]byte, error) {
	graph := chart.BarChart{
		Width:      400,
		Height:     200,
		BarWidth:   40,
		Background: chart.Style{FillColor: backgroundColor},
		Canvas:     chart.Style{FillColor: backgroundColor},
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: []chart.Value{{Label: msg, Value: 0}},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
