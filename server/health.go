package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
)

type DatasetStats struct {
	SourceID string    `json:"source_id"`
	Key      string    `json:"key"`
	Records  int       `json:"records"`
	Genres   int       `json:"genres"`
	Cached   bool      `json:"cached"`
	LoadedAt time.Time `json:"loaded_at"`
}

type SystemStats struct {
	// Process specific
	NumGoroutine int    `json:"num_goroutine"`
	Alloc        uint64 `json:"alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	// System wide
	TotalRAM       uint64  `json:"total_ram"`
	AvailableRAM   uint64  `json:"available_ram"`
	UsedRAMPercent float64 `json:"used_ram_percent"`
}

type HealthStatus struct {
	Status    string        `json:"status"` // "ok" or "loading"
	Timestamp time.Time     `json:"timestamp"`
	Uptime    string        `json:"uptime"`
	Dataset   *DatasetStats `json:"dataset"`
	System    SystemStats   `json:"system"`
}

type HealthHandler struct {
	srv *Server
}

func NewHealthHandler(srv *Server) *HealthHandler {
	return &HealthHandler{srv: srv}
}

func (h *HealthHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/health", h.GetHealth)
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Uptime:    time.Since(h.srv.started).Round(time.Second).String(),
		System:    systemStats(),
	}

	ds, err := h.srv.Dataset()
	if err != nil {
		status.Status = "loading"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	status.Dataset = &DatasetStats{
		SourceID: ds.SourceID,
		Key:      ds.Key,
		Records:  ds.Len(),
		Genres:   len(ds.Genres()),
		Cached:   ds.Cached,
		LoadedAt: ds.LoadedAt,
	}
	c.JSON(http.StatusOK, status)
}

func systemStats() SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := SystemStats{
		NumGoroutine: runtime.NumGoroutine(),
		Alloc:        memStats.Alloc,
		Sys:          memStats.Sys,
		NumGC:        memStats.NumGC,
	}

	if vMem, err := mem.VirtualMemory(); err == nil && vMem != nil {
		stats.TotalRAM = vMem.Total
		stats.AvailableRAM = vMem.Available
		stats.UsedRAMPercent = vMem.UsedPercent
	}
	return stats
}
