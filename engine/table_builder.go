package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from movies and genre leaders
// ============================================================================

// Column presets used by the dashboard.
var (
	FilteredColumns = []string{DimTitle, DimGenre, MeasureRating, MeasureVotes, MeasureDur}
	TopColumns      = []string{DimTitle, MeasureRating, MeasureVotes}
)

// BuildMovieTable produces a row-per-movie table with the given column keys.
func BuildMovieTable(title string, movies []Movie, keys []string) *TableData {
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		columns = append(columns, columnFor(key))
	}

	view := MovieView(movies)
	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			row = append(row, cellValue(view, i, key))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total Movies Matching Filters: %d", len(movies)),
			Values: map[string]string{
				"count": fmt.Sprintf("%d", len(movies)),
			},
		},
	}
}

// BuildLeaderTable produces the Genre / Title / Rating table.
func BuildLeaderTable(title string, leaders []GenreLeader) *TableData {
	columns := []Column{
		columnFor(DimGenre),
		columnFor(DimTitle),
		columnFor(MeasureRating),
	}

	rows := make([][]string, 0, len(leaders))
	for _, l := range leaders {
		rows = append(rows, []string{
			l.Genre,
			l.Movie.Title,
			fmt.Sprintf("%.1f", l.Movie.Rating),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
	}
}

// columnFor describes a dimension or measure key as a table column.
func columnFor(key string) Column {
	switch key {
	case DimTitle, DimGenre:
		return Column{Key: key, Label: LabelForDimension(key), Type: "text", Align: "left"}
	default:
		return Column{Key: key, Label: LabelForDimension(key), Type: "number", Align: "right"}
	}
}

// cellValue formats one table cell.
func cellValue(view RecordView, i int, key string) string {
	switch key {
	case DimTitle, DimGenre:
		return view.Dimension(i, key)
	case MeasureRating:
		return fmt.Sprintf("%.1f", view.Measure(i, key))
	default:
		return FormatNumber(view.Measure(i, key))
	}
}
