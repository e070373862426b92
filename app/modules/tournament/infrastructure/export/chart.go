package tournamentexport

import (
	"fmt"
	"io"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.ColorFromHex("1b1f23")
	chartBar        = drawing.ColorFromHex("2d6a4f")
	chartText       = drawing.ColorFromHex("e9ecef")
)

// WritePointsChart renders a PNG bar chart of each team's points.
func WritePointsChart(w io.Writer, matchName string, rows []tournamentdomain.ScoreRow) error {
	if len(rows) == 0 {
		return ErrNoScores
	}

	bars := make([]chart.Value, len(rows))
	maxPoints := 0
	for i, r := range rows {
		bars[i] = chart.Value{
			Label: r.TeamName,
			Value: float64(r.Points),
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		}
		maxPoints = max(maxPoints, r.Points)
	}
	// go-chart rejects an empty value range.
	if maxPoints == 0 {
		maxPoints = 1
	}

	graph := chart.BarChart{
		Title:      matchName + " points",
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      max(600, 90*len(rows)+120),
		Height:     400,
		BarWidth:   50,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis:  chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Name:  "Points",
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxPoints)},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render points chart: %w", err)
	}
	return nil
}
