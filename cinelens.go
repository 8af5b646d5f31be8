// Package cinelens is a movie data analysis dashboard.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/cinelens/engine"
//	    "github.com/spektr-org/cinelens/loader"
//	)
//
//	ds, err := loader.New(loader.NewMemoryStore()).Load(ctx, loader.FileSource{Path: "movies.csv"})
//	view := engine.Apply(ds.Records, engine.AllOpen(ds.Genres()))
//	dashboard := engine.BuildDashboard(view)
//
// The loader reads the CSV once per content version and normalizes genre,
// duration and votes. The engine filters by duration bucket, minimum rating,
// minimum votes and genre, then derives the genre aggregates, rating
// distribution, extremes and correlation data. Every aggregate carries an
// explicit no-data marker for an empty selection.
//
// The server package exposes the same pipeline over HTTP and cmd/cinelens
// runs it from the command line.
package cinelens
