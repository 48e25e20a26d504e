// Package server exposes recommendations over HTTP for the dashboard.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"StockCompass/internal/config"
	"StockCompass/internal/model"
	"StockCompass/internal/pipeline"
	"StockCompass/internal/realtime"
	"StockCompass/internal/recorder"
)

// Server serves the recommendation API.
type Server struct {
	cfg   *config.Config
	cache *Cache
	rec   recorder.Recorder
}

// New creates a Server.
func New(cfg *config.Config, rec recorder.Recorder) *Server {
	return &Server{
		cfg:   cfg,
		cache: NewCache(time.Duration(cfg.Server.CacheTTLMinutes) * time.Minute),
		rec:   rec,
	}
}

// InvalidateCache drops cached recommendations; wired to the watcher.
func (s *Server) InvalidateCache() {
	s.cache.Clear()
	log.Println("[INFO] recommendation cache cleared")
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "stockcompass-api",
		})
	})

	api := router.Group("/api")
	api.GET("/recommendations", s.handleRecommendations)
	api.GET("/market/top-volume", s.handleTopVolume)

	return router
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	log.Printf("[INFO] API available at http://localhost%s/api", addr)
	return s.Router().Run(addr)
}

func (s *Server) handleRecommendations(c *gin.Context) {
	risk := queryInt(c, "risk", s.cfg.Profile.RiskScore)
	if risk < 0 || risk > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "risk must be within 0-100"})
		return
	}
	horizon := c.DefaultQuery("horizon", s.cfg.Profile.TimeHorizon)
	switch horizon {
	case "short", "medium", "long":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "horizon must be short, medium or long"})
		return
	}
	top := queryInt(c, "top", s.cfg.Server.TopK)
	if top <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "top must be positive"})
		return
	}

	key := fmt.Sprintf("%d-%s-%d", risk, horizon, top)
	if recs, ok := s.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "cached": true, "count": len(recs), "recommendations": recs})
		return
	}

	snapshot := realtime.Resolve(s.cfg.Realtime.URL, s.cfg.Realtime.APIKey, s.cfg.Proxy)
	recs, err := pipeline.Recommend(pipeline.Request{
		ModelPath: s.cfg.Data.ModelPath,
		CSVPaths:  s.cfg.Data.CSVPaths,
		Profile: model.UserProfile{
			RiskScore:            risk,
			TimeHorizon:          model.Horizon(horizon),
			DiversificationScore: s.cfg.Profile.DiversificationScore,
		},
		TopK:     top,
		Snapshot: snapshot,
	})
	if err != nil {
		log.Printf("[ERROR] generate recommendations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to generate recommendations"})
		return
	}

	s.cache.Set(key, recs)
	if err := s.rec.RecordRun(&recorder.RunRecord{
		At:              time.Now(),
		RiskScore:       risk,
		TimeHorizon:     horizon,
		TopK:            top,
		Realtime:        snapshot != nil,
		Recommendations: recs,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cached": false, "count": len(recs), "recommendations": recs})
}

func (s *Server) handleTopVolume(c *gin.Context) {
	if s.cfg.Realtime.URL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "no realtime source configured"})
		return
	}
	count := queryInt(c, "count", 10)

	snap, err := realtime.NewHTTPFetcher(s.cfg.Realtime.URL, s.cfg.Realtime.APIKey, s.cfg.Proxy).FetchSnapshot()
	if err != nil {
		log.Printf("[ERROR] fetch market snapshot: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "failed to fetch market data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stocks": realtime.TopByVolume(snap, count)})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
