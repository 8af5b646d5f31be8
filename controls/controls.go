// Package controls maps user control values onto engine filter criteria.
package controls

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spektr-org/cinelens/engine"
)

// ============================================================================
// CONTROLS — Sidebar values → engine.Criteria
// ============================================================================
// Query keys:
//   duration    all | under_2h | 2h_3h | over_3h (or the dashboard labels)
//   min_rating  0–10, inclusive lower bound
//   min_votes   ≥ 0, inclusive lower bound
//   genre       repeatable or comma-separated
//
// An absent genre key selects every genre, the dashboard default.
// A present but empty one ("genre=") selects none.
// ============================================================================

// Control keys.
const (
	KeyDuration  = "duration"
	KeyMinRating = "min_rating"
	KeyMinVotes  = "min_votes"
	KeyGenre     = "genre"
)

// Rating bounds of the slider.
const (
	RatingMin  = 0.0
	RatingMax  = 10.0
	RatingStep = 0.1
	VotesStep  = 1000
)

// ErrInvalidControl is returned for a control value out of range or unparseable.
var ErrInvalidControl = errors.New("invalid control value")

// Parse builds Criteria from control values. allGenres is the default
// genre selection when the genre key is absent.
func Parse(values url.Values, allGenres []string) (engine.Criteria, error) {
	c := engine.AllOpen(allGenres)

	if raw := strings.TrimSpace(values.Get(KeyDuration)); raw != "" {
		b, ok := engine.ParseDurationBucket(raw)
		if !ok {
			return engine.Criteria{}, fmt.Errorf("%w: %s %q: want one of %s",
				ErrInvalidControl, KeyDuration, raw, strings.Join(bucketKeys(), ", "))
		}
		c.Duration = b
	}

	if raw := strings.TrimSpace(values.Get(KeyMinRating)); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || r < RatingMin || r > RatingMax {
			return engine.Criteria{}, fmt.Errorf("%w: %s %q: must be a number between %g and %g",
				ErrInvalidControl, KeyMinRating, raw, RatingMin, RatingMax)
		}
		c.MinRating = r
	}

	if raw := strings.TrimSpace(values.Get(KeyMinVotes)); raw != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return engine.Criteria{}, fmt.Errorf("%w: %s %q: must be a non-negative number",
				ErrInvalidControl, KeyMinVotes, raw)
		}
		c.MinVotes = v
	}

	if raw, present := values[KeyGenre]; present {
		c.Genres = parseGenres(raw)
	}

	return c, nil
}

// Encode is the inverse of Parse.
func Encode(c engine.Criteria) url.Values {
	values := url.Values{}
	if c.Duration != "" {
		values.Set(KeyDuration, string(c.Duration))
	}
	values.Set(KeyMinRating, strconv.FormatFloat(c.MinRating, 'f', -1, 64))
	values.Set(KeyMinVotes, strconv.FormatFloat(c.MinVotes, 'f', -1, 64))
	if len(c.Genres) == 0 {
		values[KeyGenre] = []string{""}
	} else {
		values[KeyGenre] = append([]string{}, c.Genres...)
	}
	return values
}

// parseGenres splits repeated and comma-separated values. Primary genres
// never contain commas, so splitting is lossless. Duplicates are dropped.
func parseGenres(raw []string) []string {
	seen := make(map[string]bool)
	genres := []string{}
	for _, entry := range raw {
		for _, g := range strings.Split(entry, ",") {
			g = strings.TrimSpace(g)
			if g == "" || seen[g] {
				continue
			}
			seen[g] = true
			genres = append(genres, g)
		}
	}
	return genres
}

func bucketKeys() []string {
	keys := make([]string, len(engine.DurationBuckets))
	for i, b := range engine.DurationBuckets {
		keys[i] = string(b)
	}
	return keys
}
