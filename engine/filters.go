package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Criteria-Based Movie Filtering
// ============================================================================
// Single-pass filter: checks ALL criteria per movie in one loop.
// Output keeps input order.
// ============================================================================

// Contains reports whether a runtime in minutes falls inside the bucket.
// The middle bucket is closed at both ends: 120 and 180 belong to it.
func (b DurationBucket) Contains(minutes float64) bool {
	switch b {
	case DurationUnder2h:
		return minutes < 120
	case DurationBetween2And3h:
		return minutes >= 120 && minutes <= 180
	case DurationOver3h:
		return minutes > 180
	default:
		return true
	}
}

// Label returns the dashboard label for the bucket.
func (b DurationBucket) Label() string {
	switch b {
	case DurationUnder2h:
		return "< 2 hrs"
	case DurationBetween2And3h:
		return "2–3 hrs"
	case DurationOver3h:
		return "> 3 hrs"
	default:
		return "All"
	}
}

// ParseDurationBucket accepts a bucket key ("under_2h") or its dashboard
// label ("< 2 hrs"). The empty string means All.
func ParseDurationBucket(s string) (DurationBucket, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DurationAll, true
	}
	for _, b := range DurationBuckets {
		if strings.EqualFold(s, string(b)) || s == b.Label() {
			return b, true
		}
	}
	// ASCII hyphen variant of the middle label
	if s == "2-3 hrs" {
		return DurationBetween2And3h, true
	}
	return "", false
}

// Match reports whether a single movie passes every criterion.
func (c Criteria) Match(m Movie, genres map[string]bool) bool {
	return c.Duration.Contains(m.Duration) &&
		m.Rating >= c.MinRating &&
		m.Votes >= c.MinVotes &&
		genres[m.Genre]
}

// ApplyFilters returns the movies matching all criteria, in input order.
// Genre membership is literal: an empty Genres set matches nothing.
func ApplyFilters(movies []Movie, c Criteria) []Movie {
	genres := toSet(c.Genres)

	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if c.Match(m, genres) {
			out = append(out, m)
		}
	}
	return out
}

// toSet converts a string slice to an exact-match lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
