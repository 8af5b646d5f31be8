package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// Aggregators read movies through this interface instead of touching the
// slice directly, so grouping can hand out index lists rather than copies.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — grouped subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
}

// Dimension and measure keys exposed by the movie adapter.
const (
	DimTitle       = "title"
	DimGenre       = "genre"
	MeasureDur     = "duration"
	MeasureVotes   = "votes"
	MeasureRating  = "rating"
	MeasureRecords = "record_count"
)

// movieAdapter binds []Movie slices as RecordViews.
var movieAdapter = NewDomainAdapter[Movie]().
	Dimension(DimTitle, func(m Movie) string { return m.Title }).
	Dimension(DimGenre, func(m Movie) string { return m.Genre }).
	Measure(MeasureRating, func(m Movie) float64 { return m.Rating }).
	Measure(MeasureVotes, func(m Movie) float64 { return m.Votes }).
	Measure(MeasureDur, func(m Movie) float64 { return m.Duration }).
	Measure(MeasureRecords, func(Movie) float64 { return 1 })

// MovieView returns a zero-copy RecordView over movies.
func MovieView(movies []Movie) RecordView {
	return movieAdapter.Bind(movies)
}

// ============================================================================
// SUB VIEW — grouped subset (zero-copy)
// ============================================================================

// SubView is a subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

// sourceIndex resolves index i of view to an index in the root view,
// walking through nested SubViews.
func sourceIndex(view RecordView, i int) int {
	for {
		sv, ok := view.(*SubView)
		if !ok {
			return i
		}
		i = sv.indices[i]
		view = sv.parent
	}
}

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Movie]().
//	    Dimension("genre", func(m Movie) string { return m.Genre }).
//	    Measure("rating", func(m Movie) float64 { return m.Rating })
//
//	view := adapter.Bind(movies)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dims map[string]func(T) string
	meas map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{data: data, dims: a.dims, meas: a.meas}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data []T
	dims map[string]func(T) string
	meas map[string]func(T) float64
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}
