package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/schema"
)

// ============================================================================
// CSV HELPER — Parses movie CSV data into []engine.Movie
// ============================================================================
// The caller reads the bytes from wherever they live (file, cache, upload).
// This helper resolves the columns through the schema, normalizes genre,
// duration and votes, and drops every row with a missing field.
// ============================================================================

// ErrMissingColumn is returned when a required column has no header.
var ErrMissingColumn = errors.New("missing required column")

// naValues are read as absent cells. Same markers as pandas' default set.
var naValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// ParseStats reports how many rows were read and how many survived.
type ParseStats struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// ParseMoviesCSV parses CSV bytes into normalized movies, in input order.
func ParseMoviesCSV(data []byte) ([]engine.Movie, error) {
	movies, _, err := ParseMoviesCSVWithStats(data)
	return movies, err
}

// ParseMoviesCSVWithStats is ParseMoviesCSV plus row counts.
// A header with no data rows yields an empty, non-nil slice.
func ParseMoviesCSVWithStats(data []byte) ([]engine.Movie, ParseStats, error) {
	records, err := readRecords(data)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("failed to read CSV: %w", err)
	}

	movieSchema := schema.MovieSchema()
	if _, err := movieSchema.ResolveColumns(records[0]); err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrMissingColumn, err)
	}
	if len(records) == 1 {
		return []engine.Movie{}, ParseStats{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, ParseStats{}, fmt.Errorf("failed to read CSV: %w", df.Err)
	}

	// gota renames blank and duplicate headers, so resolve against its names.
	cols, err := movieSchema.ResolveColumns(df.Names())
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrMissingColumn, err)
	}

	title := column(df, cols[schema.KeyTitle])
	genre := column(df, cols[schema.KeyGenre])
	duration := column(df, cols[schema.KeyDuration])
	votes := column(df, cols[schema.KeyVotes])
	rating := column(df, cols[schema.KeyRating])

	stats := ParseStats{Rows: df.Nrow()}
	movies := make([]engine.Movie, 0, df.Nrow())

	for i := 0; i < df.Nrow(); i++ {
		m, ok := normalizeRow(title.at(i), genre.at(i), duration.at(i), votes.at(i), rating.at(i))
		if !ok {
			stats.Dropped++
			continue
		}
		movies = append(movies, m)
	}
	stats.Kept = len(movies)

	return movies, stats, nil
}

// readRecords reads the raw CSV rows. Rows shorter than the header are
// padded with empty cells, which read as NA; longer rows are an error.
func readRecords(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	width := len(records[0])
	for i, rec := range records[1:] {
		switch {
		case len(rec) > width:
			return nil, fmt.Errorf("row %d: %d fields, header has %d", i+1, len(rec), width)
		case len(rec) < width:
			padded := make([]string, width)
			copy(padded, rec)
			records[i+1] = padded
		}
	}
	return records, nil
}

// ============================================================================
// FIELD NORMALIZATION
// ============================================================================

// PrimaryGenre returns the text before the first comma, trimmed.
func PrimaryGenre(raw string) (string, bool) {
	if i := strings.Index(raw, ","); i >= 0 {
		raw = raw[:i]
	}
	g := strings.TrimSpace(raw)
	return g, g != ""
}

// ExtractDuration returns the first run of digits as minutes.
// "142 min" → 142, "2h 10m" → 2.
func ExtractDuration(raw string) (float64, bool) {
	return firstNumber(raw)
}

// ExtractVotes strips thousands separators, then reads the first run of
// digits. "1,234,567" → 1234567.
func ExtractVotes(raw string) (float64, bool) {
	return firstNumber(strings.ReplaceAll(raw, ",", ""))
}

// ParseRating parses a numeric rating.
func ParseRating(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func firstNumber(s string) (float64, bool) {
	run := digitRun.FindString(s)
	if run == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// cell is a raw CSV value; ok is false for NA cells.
type cell struct {
	value string
	ok    bool
}

func normalizeRow(title, genre, duration, votes, rating cell) (engine.Movie, bool) {
	if !genre.ok || !duration.ok || !votes.ok || !rating.ok {
		return engine.Movie{}, false
	}

	g, ok := PrimaryGenre(genre.value)
	if !ok {
		return engine.Movie{}, false
	}
	d, ok := ExtractDuration(duration.value)
	if !ok {
		return engine.Movie{}, false
	}
	v, ok := ExtractVotes(votes.value)
	if !ok {
		return engine.Movie{}, false
	}
	r, ok := ParseRating(rating.value)
	if !ok {
		return engine.Movie{}, false
	}

	m := engine.Movie{Genre: g, Duration: d, Votes: v, Rating: r}
	if title.ok {
		m.Title = strings.TrimSpace(title.value)
	}
	return m, true
}

// columnCells wraps a dataframe column with its NA mask.
type columnCells struct {
	records []string
	na      []bool
}

func column(df dataframe.DataFrame, name string) columnCells {
	s := df.Col(name)
	return columnCells{records: s.Records(), na: s.IsNaN()}
}

func (c columnCells) at(i int) cell {
	if i >= len(c.records) || c.na[i] {
		return cell{}
	}
	return cell{value: c.records[i], ok: true}
}
