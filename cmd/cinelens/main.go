package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spektr-org/cinelens/config"
	"github.com/spektr-org/cinelens/controls"
	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/loader"
	"github.com/spektr-org/cinelens/server"
	"github.com/spektr-org/cinelens/styles"
)

// ============================================================================
// CINELENS CLI — Movie dashboard from a CSV file
// ============================================================================

const version = "0.1.0"

// genreFlag collects repeated --genre values. set records that the flag
// appeared at all, so "--genre=" selects no genres.
type genreFlag struct {
	values []string
	set    bool
}

func (g *genreFlag) String() string { return strings.Join(g.values, ",") }

func (g *genreFlag) Set(v string) error {
	g.set = true
	g.values = append(g.values, v)
	return nil
}

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to movie CSV file (default $CINELENS_DATA)")
	duration := flag.String("duration", "all", "Duration bucket: all, under_2h, 2h_3h, over_3h")
	minRating := flag.String("min-rating", "0", "Minimum rating, 0–10")
	minVotes := flag.String("min-votes", "0", "Minimum vote count")
	var genres genreFlag
	flag.Var(&genres, "genre", "Genre to include (repeatable; --genre= selects none; default all)")
	format := flag.String("format", "json", "Output format: json, pretty, text, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	maxRows := flag.Int("max-rows", 20, "Rows per table in text output (0 = all)")
	topN := flag.Int("top-n", config.DefaultTopN, "Movies in the top-by-rating table")
	serve := flag.Bool("serve", false, "Serve the dashboard API over HTTP")
	addr := flag.String("addr", config.DefaultHTTPAddr, "HTTP listen address for --serve")
	cache := flag.String("cache", config.CacheMemory, "Dataset cache: memory or redis")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Cinelens — Movie data analysis dashboard

Usage:
  cinelens --file movies.csv --format text
  cinelens --file movies.csv --duration 2h_3h --min-rating 7.5 --genre Drama --genre Crime
  cinelens --file movies.csv --min-votes 100000 --format csv --out filtered.csv
  cinelens --file movies.csv --serve --addr :8080 --cache redis

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment (.env is read when present):
  CINELENS_DATA     Dataset path when --file is not given
  HTTP_ADDR         Listen address for --serve (default :8080)
  CINELENS_CACHE    memory or redis
  REDIS_ADDR        Redis address (default localhost:6379)
  REDIS_PASSWORD    Redis password
  REDIS_DB          Redis database number
  CINELENS_TOP_N    Movies in the top-by-rating table (default 10)

Formats:
  json      Filtered view and dashboard as JSON (default)
  pretty    Pretty-printed JSON
  text      Styled dashboard summary
  csv       Filtered movies as CSV (ready for Sheets/Excel)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("cinelens %s\n", version)
		os.Exit(0)
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// ── Configuration ─────────────────────────────────────────────────────
	base, err := config.Load()
	if err != nil {
		fatalf("Configuration: %v", err)
	}
	cfg, err := base.Merge(config.Overrides{
		DataPath:    *filePath,
		DataPathSet: explicit["file"],
		HTTPAddr:    *addr,
		HTTPAddrSet: explicit["addr"],
		Cache:       *cache,
		CacheSet:    explicit["cache"],
		TopN:        *topN,
		TopNSet:     explicit["top-n"],
	})
	if err != nil {
		fatalf("Configuration: %v", err)
	}
	if err := cfg.RequireData(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loader.New(newStore(ctx, cfg))
	src := loader.FileSource{Path: cfg.DataPath}
	engineOpts := []engine.Option{engine.WithTopN(cfg.TopN)}

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		srv := server.New(l, src, engineOpts...)
		if err := srv.Init(ctx); err != nil {
			fatalf("Failed to load dataset: %v", err)
		}
		if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
			fatalf("%v", err)
		}
		return
	}

	// ── One-shot mode ─────────────────────────────────────────────────────
	ds, err := l.Load(ctx, src)
	if err != nil {
		fatalf("Failed to load dataset: %v", err)
	}
	log.Print(styles.SprintfS("success", "📊 Loaded %d movies (%d genres) from %s", ds.Len(), len(ds.Genres()), cfg.DataPath))

	values := url.Values{}
	if explicit["duration"] {
		values.Set(controls.KeyDuration, *duration)
	}
	if explicit["min-rating"] {
		values.Set(controls.KeyMinRating, *minRating)
	}
	if explicit["min-votes"] {
		values.Set(controls.KeyMinVotes, *minVotes)
	}
	if genres.set {
		values[controls.KeyGenre] = genres.values
	}

	criteria, err := controls.Parse(values, ds.Genres())
	if err != nil {
		fatalf("%v", err)
	}

	view := engine.Apply(ds.Records, criteria, engineOpts...)
	dashboard := engine.BuildDashboard(view)

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Render output ─────────────────────────────────────────────────────
	switch *format {
	case "csv":
		if err := writeCSV(writer, view); err != nil {
			fatalf("Failed to write CSV: %v", err)
		}
		if *outFile != "" {
			log.Printf("📄 CSV written to %s", *outFile)
		}
	case "text":
		fmt.Fprint(writer, styles.RenderDashboard(dashboard, *maxRows))
	case "json", "pretty":
		out := cliOutput{
			Dataset:   ds,
			View:      view,
			Dashboard: dashboard,
		}
		writeJSON(writer, out, *format)
	default:
		fatalf("Unknown format %q", *format)
	}
}

// newStore picks the dataset cache. Redis falls back to memory when it
// cannot be reached.
func newStore(ctx context.Context, cfg config.Config) loader.Store {
	if cfg.Cache != config.CacheRedis {
		return loader.NewMemoryStore()
	}

	client := loader.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	store := loader.NewRedisStore(client, loader.DefaultRedisPrefix, 24*time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Print(styles.SprintfS("warn", "⚠️ Redis unreachable (%v), using in-memory cache", err))
		client.Close()
		return loader.NewMemoryStore()
	}
	return store
}

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type cliOutput struct {
	Dataset   *loader.Dataset      `json:"dataset"`
	View      *engine.FilteredView `json:"view"`
	Dashboard *engine.Dashboard    `json:"dashboard"`
}

// ============================================================================
// CSV OUTPUT — Filtered movies, Sheets-ready
// ============================================================================

func writeCSV(w io.Writer, view *engine.FilteredView) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(engine.FilteredColumns))
	for i, key := range engine.FilteredColumns {
		headers[i] = engine.LabelForDimension(key)
	}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, m := range view.Movies {
		row := []string{m.Title, m.Genre, fmt.Sprintf("%.1f", m.Rating), fmtNum(m.Votes), fmtNum(m.Duration)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
