package engine

import (
	"log"
	"sort"
)

// ============================================================================
// EXECUTOR — Filter + Aggregate Pipeline
// ============================================================================
// Entry point: Apply(movies, criteria, opts...)
//
// Pipeline:
//   1. Apply criteria → filtered slice (input order kept)
//   2. Bind filtered slice as a RecordView (zero-copy)
//   3. Compute every aggregate independently over that view
//   4. Mark each aggregate NoData when the filtered set is empty
//
// Apply is pure: the input slice is never modified.
// ============================================================================

// Notices shown in place of a chart when the filtered set is empty.
const (
	NoticeNoMatches  = "No movies match the current filters."
	NoticeNoExtremes = "No movies available for duration extremes in the current filter."
	NoticeNoHeatmap  = "Not enough data to render heatmap."
	NoticeNoScatter  = "Not enough data for correlation plot."
)

// Apply filters movies by criteria and computes every derived aggregate.
//
// Options:
//   - WithTopN(n) — rows kept by TopByRatingThenVotes (default 10)
//   - WithHistogramBins(n) — rating histogram bins (default 10)
func Apply(movies []Movie, c Criteria, opts ...Option) *FilteredView {
	cfg := applyOptions(opts)

	filtered := ApplyFilters(movies, c)
	log.Printf("🔧 Cinelens: %d movies after filtering (from %d), duration=%s minRating=%.1f minVotes=%.0f genres=%d",
		len(filtered), len(movies), c.Duration.Label(), c.MinRating, c.MinVotes, len(c.Genres))

	out := &FilteredView{
		Criteria: c,
		Total:    len(movies),
		Movies:   filtered,
	}

	if len(filtered) == 0 {
		markEmpty(out)
		return out
	}

	view := MovieView(filtered)

	out.TopByRatingThenVotes = Section[[]Movie]{Data: TopByRatingThenVotes(filtered, cfg.TopN)}

	out.GenreCounts = Section[[]GenreStat]{Data: toGenreStats(
		GroupAndAggregate(view, DimGenre, MeasureRecords, "count", "value_desc"), false)}

	out.AvgDurationByGenre = Section[[]GenreStat]{Data: toGenreStats(
		GroupAndAggregate(view, DimGenre, MeasureDur, "avg", "value_asc"), false)}

	out.AvgVotesByGenre = Section[[]GenreStat]{Data: toGenreStats(
		GroupAndAggregate(view, DimGenre, MeasureVotes, "avg", "value_desc"), false)}

	out.RatingDistribution = Section[*RatingSummary]{Data: SummarizeRatings(view, cfg.HistogramBins)}

	out.TopRatedPerGenre = Section[[]GenreLeader]{Data: TopRatedPerGenre(view, filtered)}

	out.VotesShareByGenre = Section[[]GenreStat]{Data: toGenreStats(
		GroupAndAggregate(view, DimGenre, MeasureVotes, "sum", "value_desc"), true)}

	out.DurationExtremes = Section[*DurationExtremes]{Data: Extremes(view, filtered)}

	out.AvgRatingByGenreRow = Section[[]GenreStat]{Data: toGenreStats(
		GroupAndAggregate(view, DimGenre, MeasureRating, "avg", "label_asc"), false)}

	out.RatingVotesPairs = Section[*RatingVotes]{Data: RatingVotesOf(view)}

	return out
}

// markEmpty sets the no-data marker on every aggregate. Genre-keyed
// aggregates get empty, non-nil slices.
func markEmpty(v *FilteredView) {
	v.TopByRatingThenVotes = Section[[]Movie]{Data: []Movie{}, NoData: true, Notice: NoticeNoMatches}
	v.GenreCounts = Section[[]GenreStat]{Data: []GenreStat{}, NoData: true, Notice: NoticeNoMatches}
	v.AvgDurationByGenre = Section[[]GenreStat]{Data: []GenreStat{}, NoData: true, Notice: NoticeNoMatches}
	v.AvgVotesByGenre = Section[[]GenreStat]{Data: []GenreStat{}, NoData: true, Notice: NoticeNoMatches}
	v.RatingDistribution = Section[*RatingSummary]{NoData: true, Notice: NoticeNoMatches}
	v.TopRatedPerGenre = Section[[]GenreLeader]{Data: []GenreLeader{}, NoData: true, Notice: NoticeNoMatches}
	v.VotesShareByGenre = Section[[]GenreStat]{Data: []GenreStat{}, NoData: true, Notice: NoticeNoMatches}
	v.DurationExtremes = Section[*DurationExtremes]{NoData: true, Notice: NoticeNoExtremes}
	v.AvgRatingByGenreRow = Section[[]GenreStat]{Data: []GenreStat{}, NoData: true, Notice: NoticeNoHeatmap}
	v.RatingVotesPairs = Section[*RatingVotes]{NoData: true, Notice: NoticeNoScatter}
}

// ============================================================================
// RECORD-VALUED AGGREGATES
// ============================================================================

// TopByRatingThenVotes returns up to n movies ordered by rating, then votes,
// both descending. The input slice is not reordered.
func TopByRatingThenVotes(movies []Movie, n int) []Movie {
	sorted := make([]Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Votes > sorted[j].Votes
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopRatedPerGenre returns, per genre in label order, the first movie
// holding the genre's maximum rating. view must be bound to movies.
func TopRatedPerGenre(view RecordView, movies []Movie) []GenreLeader {
	groups := GroupAndAggregate(view, DimGenre, MeasureRating, "max", "label_asc")
	out := make([]GenreLeader, 0, len(groups))
	for _, g := range groups {
		idx := ArgMax(g.View, MeasureRating)
		if idx < 0 {
			continue
		}
		out = append(out, GenreLeader{
			Genre: g.Key,
			Movie: movies[sourceIndex(g.View, idx)],
		})
	}
	return out
}

// Extremes returns the shortest and longest movie, first occurrence on ties.
// Returns nil for an empty view. view must be bound to movies.
func Extremes(view RecordView, movies []Movie) *DurationExtremes {
	lo := ArgMin(view, MeasureDur)
	hi := ArgMax(view, MeasureDur)
	if lo < 0 || hi < 0 {
		return nil
	}
	return &DurationExtremes{
		Shortest: movies[sourceIndex(view, lo)],
		Longest:  movies[sourceIndex(view, hi)],
	}
}
