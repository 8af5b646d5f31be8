package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER — Headline metrics
// ============================================================================

// BuildExtremesMetrics produces the shortest / longest movie metrics.
func BuildExtremesMetrics(ext *DurationExtremes) []Metric {
	if ext == nil {
		return nil
	}
	return []Metric{
		{
			Label: "Shortest Movie",
			Value: ext.Shortest.Title,
			Delta: formatMinutes(ext.Shortest.Duration),
		},
		{
			Label: "Longest Movie",
			Value: ext.Longest.Title,
			Delta: formatMinutes(ext.Longest.Duration),
		},
	}
}

// BuildSummaryMetrics produces the headline figures for a filtered view.
func BuildSummaryMetrics(v *FilteredView) []Metric {
	metrics := []Metric{
		{Label: "Movies Matching Filters", Value: FormatInt(v.Len())},
		{Label: "Movies In Dataset", Value: FormatInt(v.Total)},
	}
	if v.Empty() {
		return metrics
	}

	if s := v.RatingDistribution.Data; s != nil {
		metrics = append(metrics,
			Metric{Label: "Average Rating", Value: fmt.Sprintf("%.2f", s.Mean)},
			Metric{Label: "Median Rating", Value: fmt.Sprintf("%.2f", s.Median)},
		)
	}
	if rv := v.RatingVotesPairs.Data; rv != nil && rv.PearsonValid {
		metrics = append(metrics, Metric{
			Label: "Rating vs log(Votes)",
			Value: fmt.Sprintf("r = %.2f", rv.Pearson),
		})
	}
	return metrics
}

// formatMinutes renders a duration the way the dashboard shows it.
func formatMinutes(d float64) string {
	return fmt.Sprintf("%s min", FormatNumber(d))
}
