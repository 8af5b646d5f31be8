package engine

// ============================================================================
// CINELENS ENGINE TYPES — Movie Dataset Filtering & Aggregation
// ============================================================================
// Movie (normalized CSV row) → Criteria (sidebar controls) → FilteredView
// (filtered rows + genre aggregates) → Dashboard (render-ready panels).
//
// Dependency: montanaflynn/stats for descriptive statistics only.
// ============================================================================

// ============================================================================
// MOVIE — Normalized data row
// ============================================================================

// Movie is a single normalized dataset row.
// Every loaded Movie has a parsed Genre, Duration, Votes and Rating;
// rows missing any of them never reach the engine.
type Movie struct {
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`    // primary genre (first comma-separated token)
	Duration float64 `json:"duration"` // minutes
	Votes    float64 `json:"votes"`
	Rating   float64 `json:"rating"` // 0–10
}

// ============================================================================
// CRITERIA — Contract between the controls and the engine
// ============================================================================

// DurationBucket selects a runtime band.
type DurationBucket string

const (
	DurationAll           DurationBucket = "all"
	DurationUnder2h       DurationBucket = "under_2h"
	DurationBetween2And3h DurationBucket = "2h_3h"
	DurationOver3h        DurationBucket = "over_3h"
)

// DurationBuckets lists the buckets in control order.
var DurationBuckets = []DurationBucket{
	DurationAll,
	DurationUnder2h,
	DurationBetween2And3h,
	DurationOver3h,
}

// Criteria defines which movies to include. All fields are AND-combined.
// Genres is a literal membership set: an empty set matches nothing.
type Criteria struct {
	Duration  DurationBucket `json:"duration"`
	MinRating float64        `json:"minRating"` // inclusive
	MinVotes  float64        `json:"minVotes"`  // inclusive
	Genres    []string       `json:"genres"`
}

// AllOpen returns criteria that keep every record of a dataset with the given genres.
func AllOpen(genres []string) Criteria {
	g := make([]string, len(genres))
	copy(g, genres)
	return Criteria{
		Duration: DurationAll,
		Genres:   g,
	}
}

// ============================================================================
// SECTION — Aggregate with an explicit "no data" marker
// ============================================================================

// Section wraps an aggregate computed over the filtered set.
// NoData is set when the filtered set is empty; Data then holds an empty
// (non-nil) collection or a nil pointer, never a partial result.
type Section[T any] struct {
	Data   T      `json:"data"`
	NoData bool   `json:"noData"`
	Notice string `json:"notice,omitempty"`
}

// Available reports whether the section carries data.
func (s Section[T]) Available() bool { return !s.NoData }

// ============================================================================
// AGGREGATE PAYLOADS
// ============================================================================

// GenreStat is one genre-keyed aggregate entry.
type GenreStat struct {
	Genre string  `json:"genre"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share,omitempty"` // fraction of the column total, 0–1
}

// GenreLeader is the top-rated movie of a genre.
type GenreLeader struct {
	Genre string `json:"genre"`
	Movie Movie  `json:"movie"`
}

// DurationExtremes holds the shortest and longest movie.
type DurationExtremes struct {
	Shortest Movie `json:"shortest"`
	Longest  Movie `json:"longest"`
}

// RatingSummary is the rating distribution: raw values plus the numbers a
// histogram and a boxplot need.
type RatingSummary struct {
	Values    []float64      `json:"values"`
	Min       float64        `json:"min"`
	Q1        float64        `json:"q1"`
	Median    float64        `json:"median"`
	Q3        float64        `json:"q3"`
	Max       float64        `json:"max"`
	Mean      float64        `json:"mean"`
	StdDev    float64        `json:"stdDev"`
	Histogram []HistogramBin `json:"histogram"`
}

// HistogramBin is a half-open [Low, High) range; the last bin is closed.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// RatingVotesPoint is one point of the rating-vs-votes scatter.
type RatingVotesPoint struct {
	Votes  float64 `json:"votes"`
	Rating float64 `json:"rating"`
	Genre  string  `json:"genre"`
}

// RatingVotes holds scatter points and, when defined, the Pearson
// correlation between log10(votes) and rating.
type RatingVotes struct {
	Points       []RatingVotesPoint `json:"points"`
	Pearson      float64            `json:"pearson"`
	PearsonValid bool               `json:"pearsonValid"`
}

// ============================================================================
// FILTERED VIEW — Engine output
// ============================================================================

// FilteredView is the filtered subsequence plus every derived aggregate.
type FilteredView struct {
	Criteria Criteria `json:"criteria"`
	Total    int      `json:"total"` // records before filtering
	Movies   []Movie  `json:"movies"`

	TopByRatingThenVotes Section[[]Movie]           `json:"topByRatingThenVotes"`
	GenreCounts          Section[[]GenreStat]       `json:"genreCounts"`
	AvgDurationByGenre   Section[[]GenreStat]       `json:"avgDurationByGenre"`
	AvgVotesByGenre      Section[[]GenreStat]       `json:"avgVotesByGenre"`
	RatingDistribution   Section[*RatingSummary]    `json:"ratingDistribution"`
	TopRatedPerGenre     Section[[]GenreLeader]     `json:"topRatedPerGenre"`
	VotesShareByGenre    Section[[]GenreStat]       `json:"votesShareByGenre"`
	DurationExtremes     Section[*DurationExtremes] `json:"durationExtremes"`
	AvgRatingByGenreRow  Section[[]GenreStat]       `json:"avgRatingByGenreRow"`
	RatingVotesPairs     Section[*RatingVotes]      `json:"ratingVotesPairs"`
}

// Len returns the number of movies that passed the filters.
func (v *FilteredView) Len() int { return len(v.Movies) }

// Empty reports whether no movie passed the filters.
func (v *FilteredView) Empty() bool { return len(v.Movies) == 0 }

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Aggregators convert these into GenreStat slices.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// DASHBOARD — Render-ready output
// ============================================================================

// Dashboard is the full render-ready page for one set of criteria.
type Dashboard struct {
	Title      string   `json:"title"`
	Criteria   Criteria `json:"criteria"`
	MatchCount int      `json:"matchCount"`
	Panels     []Panel  `json:"panels"`
}

// Panel is one dashboard section. Exactly one of Charts, Table or Metrics
// is populated unless Notice is set.
type Panel struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Type    string        `json:"type"` // "chart", "table", "metrics", "notice"
	Charts  []ChartConfig `json:"charts,omitempty"`
	Table   *TableData    `json:"table,omitempty"`
	Metrics []Metric      `json:"metrics,omitempty"`
	Notice  string        `json:"notice,omitempty"`
}

// Metric is a single headline figure ("Shortest Movie", title, "95 min").
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "bar", "barh", "pie", "histogram", "boxplot", "heatmap", "scatter"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	XScale     string        `json:"xScale,omitempty"` // "log" for the votes axis
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. X is set for scatter points only.
type ChartPoint struct {
	Label string   `json:"label"`
	Value float64  `json:"value"`
	X     *float64 `json:"x,omitempty"`
	Share float64  `json:"share,omitempty"` // pie slices, 0–100
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
