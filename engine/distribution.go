package engine

import (
	"math"

	"github.com/montanaflynn/stats"
)

// ============================================================================
// DISTRIBUTION — Rating summary, histogram, rating-vs-votes correlation
// ============================================================================

// SummarizeRatings builds the rating distribution of a non-empty view.
// Returns nil for an empty view.
func SummarizeRatings(view RecordView, bins int) *RatingSummary {
	values := MeasureValues(view, MeasureRating)
	if len(values) == 0 {
		return nil
	}

	s := &RatingSummary{Values: []float64(values)}
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	s.Mean, _ = stats.Mean(values)
	s.Median, _ = stats.Median(values)

	if len(values) == 1 {
		s.Q1, s.Q3 = values[0], values[0]
	} else {
		q, err := stats.Quartile(values)
		if err == nil {
			s.Q1, s.Q3 = q.Q1, q.Q3
		}
		// sample standard deviation, n-1 denominator
		s.StdDev, _ = stats.StandardDeviationSample(values)
	}

	s.Histogram = Histogram(values, bins)
	return s
}

// Histogram splits values into equal-width bins between their min and max.
// The last bin is closed so the maximum is counted. A constant input gets a
// unit-wide range centred on the value.
func Histogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return []HistogramBin{}
	}

	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// RatingVotesOf collects scatter points for a view and the Pearson
// correlation of log10(votes) against rating. The correlation needs at least
// two points with positive votes and non-constant values on both axes.
func RatingVotesOf(view RecordView) *RatingVotes {
	if view.Len() == 0 {
		return nil
	}

	rv := &RatingVotes{Points: make([]RatingVotesPoint, 0, view.Len())}
	var logVotes, ratings stats.Float64Data
	for i := 0; i < view.Len(); i++ {
		p := RatingVotesPoint{
			Votes:  view.Measure(i, MeasureVotes),
			Rating: view.Measure(i, MeasureRating),
			Genre:  view.Dimension(i, DimGenre),
		}
		rv.Points = append(rv.Points, p)
		if p.Votes > 0 {
			logVotes = append(logVotes, math.Log10(p.Votes))
			ratings = append(ratings, p.Rating)
		}
	}

	if len(logVotes) < 2 {
		return rv
	}
	sdVotes, _ := stats.StandardDeviationPopulation(logVotes)
	sdRating, _ := stats.StandardDeviationPopulation(ratings)
	if sdVotes == 0 || sdRating == 0 {
		return rv
	}
	if r, err := stats.Correlation(logVotes, ratings); err == nil && !math.IsNaN(r) {
		rv.Pearson = r
		rv.PearsonValid = true
	}
	return rv
}
