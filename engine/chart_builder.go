package engine

import (
	"fmt"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from aggregates
// ============================================================================
// One builder per chart family; the dashboard picks titles and axes.
// Builders never see an empty aggregate — the dashboard swaps in a notice.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildGenreChart produces a single-series bar-style chart from genre stats.
func BuildGenreChart(chartType, title, xAxis, yAxis string, genres []GenreStat) *ChartConfig {
	if len(genres) == 0 {
		return nil
	}
	if chartType == "" {
		chartType = "bar"
	}

	points := make([]ChartPoint, 0, len(genres))
	for _, g := range genres {
		points = append(points, ChartPoint{
			Label: g.Genre,
			Value: RoundTo2(g.Value),
		})
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []ChartSeries{{Name: title, Data: points}},
		ShowLegend: false,
		ShowGrid:   true,
	}
	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildPieChart produces a pie chart whose slices carry percentage shares.
func BuildPieChart(title string, genres []GenreStat) *ChartConfig {
	if len(genres) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(genres))
	for _, g := range genres {
		points = append(points, ChartPoint{
			Label: g.Genre,
			Value: RoundTo2(g.Value),
			Share: RoundTo2(g.Share * 100),
		})
	}

	return &ChartConfig{
		ChartType:  "pie",
		Title:      title,
		Series:     []ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: true,
		ShowGrid:   false,
	}
}

// BuildHistogram produces a histogram chart from a rating summary.
func BuildHistogram(title string, s *RatingSummary) *ChartConfig {
	if s == nil || len(s.Histogram) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(s.Histogram))
	for _, b := range s.Histogram {
		points = append(points, ChartPoint{
			Label: fmt.Sprintf("%.2f–%.2f", b.Low, b.High),
			Value: float64(b.Count),
		})
	}

	return &ChartConfig{
		ChartType:  "histogram",
		Title:      title,
		XAxis:      "Rating",
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: "Rating", Data: points, Color: defaultColors[0]}},
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// BuildBoxplot produces a five-number boxplot chart from a rating summary.
func BuildBoxplot(title string, s *RatingSummary) *ChartConfig {
	if s == nil {
		return nil
	}

	points := []ChartPoint{
		{Label: "min", Value: RoundTo2(s.Min)},
		{Label: "q1", Value: RoundTo2(s.Q1)},
		{Label: "median", Value: RoundTo2(s.Median)},
		{Label: "q3", Value: RoundTo2(s.Q3)},
		{Label: "max", Value: RoundTo2(s.Max)},
	}

	return &ChartConfig{
		ChartType:  "boxplot",
		Title:      title,
		YAxis:      "Rating",
		Series:     []ChartSeries{{Name: "Rating", Data: points, Color: defaultColors[1]}},
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// BuildHeatmap produces a single-row heatmap: one cell per genre.
func BuildHeatmap(title string, genres []GenreStat) *ChartConfig {
	if len(genres) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(genres))
	for _, g := range genres {
		points = append(points, ChartPoint{
			Label: g.Genre,
			Value: RoundTo2(g.Value),
		})
	}

	return &ChartConfig{
		ChartType:  "heatmap",
		Title:      title,
		XAxis:      "Genre",
		Series:     []ChartSeries{{Name: "Rating", Data: points}},
		ShowLegend: true,
		ShowGrid:   false,
	}
}

// BuildScatter produces a rating-vs-votes scatter with one series per genre
// (first appearance order) and a logarithmic votes axis.
func BuildScatter(title string, rv *RatingVotes) *ChartConfig {
	if rv == nil || len(rv.Points) == 0 {
		return nil
	}

	index := make(map[string]int)
	var series []ChartSeries
	for _, p := range rv.Points {
		i, ok := index[p.Genre]
		if !ok {
			i = len(series)
			index[p.Genre] = i
			series = append(series, ChartSeries{
				Name:  p.Genre,
				Color: defaultColors[i%len(defaultColors)],
			})
		}
		x := p.Votes
		series[i].Data = append(series[i].Data, ChartPoint{
			Label: p.Genre,
			Value: p.Rating,
			X:     &x,
		})
	}

	return &ChartConfig{
		ChartType:  "scatter",
		Title:      title,
		XAxis:      "Votes",
		YAxis:      "Rating",
		XScale:     "log",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
