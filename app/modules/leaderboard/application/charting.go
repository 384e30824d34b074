package leaderboardservice

import (
	"bytes"
	"fmt"
	"slices"

	puzzletypes "github.com/Black-And-White-Club/wordle-bot/app/modules/puzzle/domain/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used by every dashboard chart.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Bar        drawing.Color
	Easy       drawing.Color
	Hard       drawing.Color
}

// DefaultPalette mirrors the game's tile colors.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("121213"),
	TextColor:  drawing.ColorFromHex("f8f8f8"),
	Bar:        drawing.ColorFromHex("538d4e"),
	Easy:       drawing.ColorFromHex("538d4e"),
	Hard:       drawing.ColorFromHex("b59f3b"),
}

// GenerateRankingChart renders total fails per player as a PNG bar chart, in
// ranking order.
func GenerateRankingChart(standings Standings, palette ChartPalette) ([]byte, error) {
	if len(standings.Players) == 0 {
		return renderNoDataPlaceholder(palette, "No results found")
	}

	const barWidth, barSpacing = 40, 20
	bars := make([]chart.Value, len(standings.Players))
	highest := 0
	for i, p := range standings.Players {
		bars[i] = chart.Value{
			Label: p.Player,
			Value: float64(p.TotalFails),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
		highest = max(highest, p.TotalFails)
	}

	graph := chart.BarChart{
		Title:      "Total fails",
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      max(400, len(bars)*(barWidth+barSpacing)+160),
		Height:     400,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(highest + 1),
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// GenerateFailsChart renders a player's fails distribution as one line per
// difficulty.
func GenerateFailsChart(stats PlayerStats, palette ChartPalette) ([]byte, error) {
	if len(stats.Distribution) == 0 {
		return renderNoDataPlaceholder(palette, fmt.Sprintf("No rated results for %s", stats.Player))
	}

	xValues := make([]float64, maxFails+1)
	for i := range xValues {
		xValues[i] = float64(i)
	}

	difficulties := make([]puzzletypes.Difficulty, 0, len(stats.Distribution))
	for d := range stats.Distribution {
		difficulties = append(difficulties, d)
	}
	slices.Sort(difficulties)

	highest := 0
	series := make([]chart.Series, 0, len(difficulties))
	for _, d := range difficulties {
		yValues := make([]float64, len(xValues))
		for i, n := range stats.Distribution[d] {
			yValues[i] = float64(n)
			highest = max(highest, n)
		}
		color := palette.Easy
		if d == puzzletypes.DifficultyHard {
			color = palette.Hard
		}
		series = append(series, chart.ContinuousSeries{
			Name:    string(d),
			XValues: xValues,
			YValues: yValues,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotWidth:    4,
				DotColor:    color,
			},
		})
	}

	graph := chart.Chart{
		Title:      stats.Player,
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      800,
		Height:     400,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:      "Fails",
			NameStyle: chart.Style{FontColor: palette.TextColor},
			Style:     chart.Style{FontColor: palette.TextColor},
			Range:     &chart.ContinuousRange{Min: 0, Max: maxFails},
			Ticks:     failTicks(),
		},
		YAxis: chart.YAxis{
			Name:      "Results",
			NameStyle: chart.Style{FontColor: palette.TextColor},
			Style:     chart.Style{FontColor: palette.TextColor},
			Range:     &chart.ContinuousRange{Min: 0, Max: float64(highest + 1)},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func failTicks() []chart.Tick {
	ticks := make([]chart.Tick, maxFails+1)
	for i := range ticks {
		ticks[i] = chart.Tick{Value: float64(i), Label: fmt.Sprint(i)}
	}
	return ticks
}

func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	// go-chart renders only with a visible series; this one draws in transparent ink.
	blank := chart.Style{
		StrokeColor: drawing.ColorTransparent,
		FillColor:   drawing.ColorTransparent,
		DotColor:    drawing.ColorTransparent,
	}
	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Hidden()},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style:   blank,
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
