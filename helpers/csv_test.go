package helpers

import (
	"errors"
	"testing"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

var moviesCSV = []byte(`Title,Genre,Duration,Votes,Rating
Oppenheimer,"Biography, Drama, History",180 min,"812,304",8.3
Barbie,"Adventure, Comedy",114 min,"520,110",6.8
Killers of the Flower Moon,"Crime, Drama",206 min,"243,009",7.6
No Runtime,Drama,,"1,000",7.0
No Votes,Drama,120 min,,7.0
Unknown Genre,,95 min,900,6.1
Bad Rating,Comedy,90 min,400,n/a
Past Lives,"Drama, Romance",105 min,"98,431",7.8
`)

// ============================================================================
// PARSING
// ============================================================================

func TestParseMoviesCSV(t *testing.T) {
	movies, stats, err := ParseMoviesCSVWithStats(moviesCSV)
	if err != nil {
		t.Fatalf("ParseMoviesCSVWithStats failed: %v", err)
	}

	if stats.Rows != 8 || stats.Kept != 4 || stats.Dropped != 4 {
		t.Errorf("stats = %+v, want rows=8 kept=4 dropped=4", stats)
	}

	want := []struct {
		title    string
		genre    string
		duration float64
		votes    float64
		rating   float64
	}{
		{"Oppenheimer", "Biography", 180, 812304, 8.3},
		{"Barbie", "Adventure", 114, 520110, 6.8},
		{"Killers of the Flower Moon", "Crime", 206, 243009, 7.6},
		{"Past Lives", "Drama", 105, 98431, 7.8},
	}
	if len(movies) != len(want) {
		t.Fatalf("got %d movies, want %d: %+v", len(movies), len(want), movies)
	}
	for i, w := range want {
		m := movies[i]
		if m.Title != w.title || m.Genre != w.genre || m.Duration != w.duration || m.Votes != w.votes || m.Rating != w.rating {
			t.Errorf("movie %d = %+v, want %+v", i, m, w)
		}
	}
}

func TestParseMoviesCSVIsDeterministic(t *testing.T) {
	a, err := ParseMoviesCSV(moviesCSV)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseMoviesCSV(moviesCSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParseMoviesCSVHeaderVariants(t *testing.T) {
	data := []byte("Series_Title,GENRE,Runtime, Votes ,IMDB Rating,Title\n" +
		"ignored,Drama,100 min,10,7.5,Aftersun\n")

	movies, err := ParseMoviesCSV(data)
	if err != nil {
		t.Fatalf("ParseMoviesCSV failed: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(movies))
	}
	m := movies[0]
	if m.Title != "Aftersun" || m.Genre != "Drama" || m.Duration != 100 || m.Votes != 10 || m.Rating != 7.5 {
		t.Errorf("movie = %+v", m)
	}
}

func TestParseMoviesCSVMissingColumn(t *testing.T) {
	data := []byte("Title,Genre,Duration,Rating\nA,Drama,100,7\n")

	_, err := ParseMoviesCSV(data)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestParseMoviesCSVEmptyInput(t *testing.T) {
	if _, err := ParseMoviesCSV(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestParseMoviesCSVHeaderOnly(t *testing.T) {
	movies, stats, err := ParseMoviesCSVWithStats([]byte("Title,Genre,Duration,Votes,Rating\n"))
	if err != nil {
		t.Fatalf("header-only input should load: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Errorf("movies = %#v, want empty non-nil slice", movies)
	}
	if stats != (ParseStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestParseMoviesCSVHeaderOnlyStillChecksColumns(t *testing.T) {
	_, err := ParseMoviesCSV([]byte("Title,Genre\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestParseMoviesCSVShortRowDropped(t *testing.T) {
	data := []byte("Title,Genre,Duration,Votes,Rating\n" +
		"A,Drama,100 min,500,7.0\n" +
		"B,Drama,150 min\n" +
		"C,Action,200 min,100,6.0\n")

	movies, stats, err := ParseMoviesCSVWithStats(data)
	if err != nil {
		t.Fatalf("short row should be dropped, not fail the file: %v", err)
	}
	if len(movies) != 2 || movies[0].Title != "A" || movies[1].Title != "C" {
		t.Errorf("movies = %+v, want A, C", movies)
	}
	if stats.Rows != 3 || stats.Dropped != 1 {
		t.Errorf("stats = %+v, want rows=3 dropped=1", stats)
	}
}

func TestParseMoviesCSVLongRowFails(t *testing.T) {
	data := []byte("Title,Genre,Duration,Votes,Rating\n" +
		"A,Drama,100 min,500,7.0,extra\n")

	if _, err := ParseMoviesCSV(data); err == nil {
		t.Error("expected error for row wider than header")
	}
}

func TestParseMoviesCSVNAMarkers(t *testing.T) {
	data := []byte("Title,Genre,Duration,Votes,Rating\n" +
		"A,#N/A,100 min,500,7.0\n" +
		"B,<NA>,100 min,500,7.0\n" +
		"C,Drama,NULL,500,7.0\n" +
		"D,Drama,100 min,-nan,7.0\n" +
		"E,Drama,100 min,500,7.0\n")

	movies, err := ParseMoviesCSV(data)
	if err != nil {
		t.Fatalf("ParseMoviesCSV failed: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "E" {
		t.Errorf("movies = %+v, want only E", movies)
	}
}

func TestParseMoviesCSVKeepsEmptyTitle(t *testing.T) {
	data := []byte("Title,Genre,Duration,Votes,Rating\n,Drama,100,10,7\n")

	movies, err := ParseMoviesCSV(data)
	if err != nil {
		t.Fatalf("ParseMoviesCSV failed: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "" {
		t.Errorf("movies = %+v, want one untitled movie", movies)
	}
}

// ============================================================================
// FIELD NORMALIZATION
// ============================================================================

func TestPrimaryGenre(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Drama", "Drama", true},
		{"Action, Adventure, Sci-Fi", "Action", true},
		{"Comedy,Drama", "Comedy", true},
		{"  Horror  ", "Horror", true},
		{", Drama", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := PrimaryGenre(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PrimaryGenre(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"142 min", 142, true},
		{"90", 90, true},
		{"approx. 95 minutes", 95, true},
		{"2h 10m", 2, true},
		{"min", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractDuration(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractDuration(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractVotes(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234,567", 1234567, true},
		{"812304", 812304, true},
		{"12,000 votes", 12000, true},
		{"—", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractVotes(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ExtractVotes(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseRating(t *testing.T) {
	if r, ok := ParseRating(" 8.5 "); !ok || r != 8.5 {
		t.Errorf("ParseRating(\" 8.5 \") = %v, %v", r, ok)
	}
	if _, ok := ParseRating("n/a"); ok {
		t.Error("ParseRating(\"n/a\") should fail")
	}
}
