package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/spektr-org/cinelens/engine"
)

func TestWriteCSV(t *testing.T) {
	movies := []engine.Movie{
		{Title: "A", Genre: "Drama", Duration: 100, Votes: 500, Rating: 7.0},
		{Title: "B, the sequel", Genre: "Drama", Duration: 150, Votes: 2000, Rating: 8.5},
	}
	view := engine.Apply(movies, engine.AllOpen([]string{"Drama"}))

	var buf bytes.Buffer
	if err := writeCSV(&buf, view); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	want := "Title,Genre,Rating,Votes,Duration\n" +
		"A,Drama,7.0,500,100\n" +
		"\"B, the sequel\",Drama,8.5,2000,150\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVReportsWriteError(t *testing.T) {
	view := engine.Apply([]engine.Movie{{Title: "A", Genre: "Drama", Duration: 100, Votes: 500, Rating: 7.0}},
		engine.AllOpen([]string{"Drama"}))

	if err := writeCSV(failingWriter{}, view); err == nil {
		t.Error("expected write error to surface")
	}
}

func TestGenreFlag(t *testing.T) {
	tests := []struct {
		args []string
		set  bool
		want []string
	}{
		{nil, false, nil},
		{[]string{"--genre", "Drama", "--genre=Action"}, true, []string{"Drama", "Action"}},
		{[]string{"--genre="}, true, []string{""}},
	}

	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		var g genreFlag
		fs.Var(&g, "genre", "")
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("parse %v: %v", tt.args, err)
		}
		if g.set != tt.set || strings.Join(g.values, "|") != strings.Join(tt.want, "|") {
			t.Errorf("args %v: set=%v values=%q, want set=%v values=%q", tt.args, g.set, g.values, tt.set, tt.want)
		}
	}
}

func TestFmtNum(t *testing.T) {
	if got := fmtNum(812304); got != "812304" {
		t.Errorf("fmtNum(812304) = %q", got)
	}
	if got := fmtNum(7.25); got != "7.25" {
		t.Errorf("fmtNum(7.25) = %q", got)
	}
}
