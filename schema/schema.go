package schema

// ============================================================================
// SCHEMA — Describes the shape of the movie dataset
// ============================================================================
// The CSV helper uses the schema to find columns by header name.
// The HTTP host serves it so frontends can label axes and columns.
// ============================================================================

// Column keys of the movie dataset.
const (
	KeyTitle    = "title"
	KeyGenre    = "genre"
	KeyDuration = "duration"
	KeyVotes    = "votes"
	KeyRating   = "rating"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Source metadata, set by the loader
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	RecordCount    int    `json:"recordCount,omitempty"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"displayName"`
	Description  string   `json:"description,omitempty"`
	Aliases      []string `json:"aliases,omitempty"` // alternative header names
	SampleValues []string `json:"sampleValues"`
	Groupable    bool     `json:"groupable"`
	Filterable   bool     `json:"filterable"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string   `json:"key"`
	DisplayName        string   `json:"displayName"`
	Description        string   `json:"description,omitempty"`
	Aliases            []string `json:"aliases,omitempty"`
	Unit               string   `json:"unit,omitempty"` // "minutes", "votes", "points"
	Aggregations       []string `json:"aggregations,omitempty"`
	DefaultAggregation string   `json:"defaultAggregation,omitempty"`
	Format             string   `json:"format,omitempty"` // "#,##0", "0.0"
}

// MovieSchema returns the schema of the movie dataset.
func MovieSchema() Config {
	return Config{
		Name:        "Movies",
		Version:     "1.0",
		Description: "Movie list with primary genre, runtime, vote count and rating",
		Dimensions: []DimensionMeta{
			{
				Key:          KeyTitle,
				DisplayName:  "Title",
				Aliases:      []string{"movie", "movie_name", "name"},
				SampleValues: []string{},
			},
			{
				Key:          KeyGenre,
				DisplayName:  "Genre",
				Description:  "Primary genre: first entry of a comma-separated genre list",
				Aliases:      []string{"genres"},
				SampleValues: []string{},
				Groupable:    true,
				Filterable:   true,
			},
		},
		Measures: []MeasureMeta{
			{
				Key:                KeyDuration,
				DisplayName:        "Duration",
				Aliases:            []string{"runtime", "duration_min", "duration_(min)"},
				Unit:               "minutes",
				Aggregations:       []string{"avg", "min", "max"},
				DefaultAggregation: "avg",
				Format:             "#,##0",
			},
			{
				Key:                KeyVotes,
				DisplayName:        "Votes",
				Aliases:            []string{"vote_count", "num_votes", "number_of_votes"},
				Unit:               "votes",
				Aggregations:       []string{"sum", "avg"},
				DefaultAggregation: "sum",
				Format:             "#,##0",
			},
			{
				Key:                KeyRating,
				DisplayName:        "Rating",
				Aliases:            []string{"imdb_rating", "score"},
				Unit:               "points",
				Aggregations:       []string{"avg", "max"},
				DefaultAggregation: "avg",
				Format:             "0.0",
			},
		},
	}
}

// WithSamples returns a copy of the schema with genre sample values and
// the record count filled in.
func (c Config) WithSamples(genres []string, records int) Config {
	out := c
	out.Dimensions = make([]DimensionMeta, len(c.Dimensions))
	copy(out.Dimensions, c.Dimensions)
	for i := range out.Dimensions {
		if out.Dimensions[i].Key == KeyGenre {
			out.Dimensions[i].SampleValues = append([]string{}, genres...)
		}
	}
	out.RecordCount = records
	return out
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}
