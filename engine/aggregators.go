package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group by dimension → aggregate → sort.
func GroupAndAggregate(
	view RecordView,
	dimension string,
	measure string,
	aggregation string,
	sortBy string,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	groups := groupBySingle(view, dimension)
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}
	SortGroups(groups, sortBy)

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// groupBySingle groups by one dimension, keeping first-appearance order.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case "sum":
		group.Value = SumMeasure(group.View, measure)
	case "count":
		group.Value = float64(group.Count)
	case "avg":
		group.Value = AvgMeasure(group.View, measure)
	case "max":
		group.Value = MaxMeasure(group.View, measure)
	}
}

// MeasureValues collects a named measure across a view.
func MeasureValues(view RecordView, measure string) stats.Float64Data {
	vals := make(stats.Float64Data, view.Len())
	for i := range vals {
		vals[i] = view.Measure(i, measure)
	}
	return vals
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	total, err := stats.Sum(MeasureValues(view, measure))
	if err != nil {
		return 0
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	mean, err := stats.Mean(MeasureValues(view, measure))
	if err != nil {
		return 0
	}
	return mean
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	if view.Len() == 0 {
		return 0
	}
	m, err := stats.Max(MeasureValues(view, measure))
	if err != nil {
		return 0
	}
	return m
}

// ArgMax returns the view index holding the largest measure value.
// Ties resolve to the first occurrence. Returns -1 for an empty view.
func ArgMax(view RecordView, measure string) int {
	best := -1
	m := math.Inf(-1)
	for i := 0; i < view.Len(); i++ {
		if v := view.Measure(i, measure); best < 0 || v > m {
			best, m = i, v
		}
	}
	return best
}

// ArgMin returns the view index holding the smallest measure value.
// Ties resolve to the first occurrence. Returns -1 for an empty view.
func ArgMin(view RecordView, measure string) int {
	best := -1
	m := math.Inf(1)
	for i := 0; i < view.Len(); i++ {
		if v := view.Measure(i, measure); best < 0 || v < m {
			best, m = i, v
		}
	}
	return best
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// Sorting is stable, so equal values keep first-appearance order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "label_asc":
		// Byte order, matching Genres.
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	default:
		// preserve grouping order
	}
}

// toGenreStats converts genre groups to GenreStat entries. With share set,
// each entry also carries its fraction of the summed values.
func toGenreStats(groups []Group, share bool) []GenreStat {
	out := make([]GenreStat, 0, len(groups))
	var total float64
	if share {
		for _, g := range groups {
			total += g.Value
		}
	}
	for _, g := range groups {
		gs := GenreStat{Genre: g.Key, Value: g.Value, Count: g.Count}
		if share && total > 0 {
			gs.Share = g.Value / total
		}
		out = append(out, gs)
	}
	return out
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber prints whole numbers with comma separators and everything
// else with up to two decimals.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return FormatInt(int(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// Genres returns the sorted distinct genres of movies.
func Genres(movies []Movie) []string {
	genres := UniqueValues(MovieView(movies), DimGenre)
	sort.Strings(genres)
	if genres == nil {
		genres = []string{}
	}
	return genres
}

// LabelForDimension returns a capitalized label for a dimension.
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + dimension[1:]
}
