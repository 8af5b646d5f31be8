package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/cinelens/controls"
	"github.com/spektr-org/cinelens/engine"
	"github.com/spektr-org/cinelens/loader"
	"github.com/spektr-org/cinelens/schema"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	srv *Server
}

func NewHandler(srv *Server) *Handler {
	return &Handler{srv: srv}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/options", h.GetOptions)
	g.GET("/schema", h.GetSchema)
	g.GET("/movies", h.GetMovies)
	g.GET("/dashboard", h.GetDashboard)
	g.POST("/reload", h.Reload)
}

// GetOptions returns the sidebar control metadata.
func (h *Handler) GetOptions(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, controls.Describe(ds.Genres()))
}

// GetSchema returns the dataset schema with genre samples.
func (h *Handler) GetSchema(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	sch := schema.MovieSchema().WithSamples(ds.Genres(), ds.Len())
	sch.DiscoveredFrom = ds.SourceID
	c.JSON(http.StatusOK, sch)
}

// GetMovies returns the filtered view for the query's controls.
func (h *Handler) GetMovies(c *gin.Context) {
	view, ok := h.apply(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetDashboard returns the render-ready dashboard for the query's controls.
func (h *Handler) GetDashboard(c *gin.Context) {
	view, ok := h.apply(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.BuildDashboard(view))
}

// Reload re-reads the source. The cache makes this cheap when the content
// has not changed.
func (h *Handler) Reload(c *gin.Context) {
	ds, err := h.srv.Reload(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, loader.ErrSourceUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (h *Handler) apply(c *gin.Context) (*engine.FilteredView, bool) {
	ds, ok := h.dataset(c)
	if !ok {
		return nil, false
	}

	criteria, err := controls.Parse(c.Request.URL.Query(), ds.Genres())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return engine.Apply(ds.Records, criteria, h.srv.opts...), true
}

func (h *Handler) dataset(c *gin.Context) (*loader.Dataset, bool) {
	ds, err := h.srv.Dataset()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return ds, true
}
