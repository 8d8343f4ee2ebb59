package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"iex-insight/src/helpers"
	"iex-insight/src/interfaces"
	"iex-insight/src/logger"
	"iex-insight/src/models"
	"iex-insight/src/store"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Answerer interfaces.IAnswerer
	Store    *store.RecordStore
	History  interfaces.IHistoryStore

	engine *gin.Engine
	http   *http.Server

	// WebSocket clients
	clients      map[*Client]struct{}
	clientsMutex sync.RWMutex
	register     chan *Client
	unregister   chan *Client
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(
	cfg *models.MConfig,
	log *logger.Logger,
	answerer interfaces.IAnswerer,
	records *store.RecordStore,
	history interfaces.IHistoryStore,
) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:     cfg,
		Logger:     log,
		Answerer:   answerer,
		Store:      records,
		History:    history,
		engine:     gin.Default(),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.POST("/api/query", s.postQuery)
	s.engine.GET("/api/insights", s.getInsights)
	s.engine.GET("/api/forecast", s.getForecast)
	s.engine.GET("/api/markets", s.getMarkets)
	s.engine.GET("/api/history", s.getHistory)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	s.http = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	// Stop accepting connections before tearing down the hub, otherwise a
	// late upgrade could hit a closed register channel.
	var err error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.http.Shutdown(ctx)
	}

	close(s.register)
	close(s.unregister)
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) postQuery(c *gin.Context) {
	var req models.MQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("malformed request body: %v", err)})
		return
	}

	s.answer(c, req)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getInsights(c *gin.Context) {
	req := models.MQueryRequest{
		Text:   "insight summary",
		Filter: filterFromParams(c),
	}
	s.answer(c, req)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getForecast(c *gin.Context) {
	req := models.MQueryRequest{
		Text:        "forecast",
		Filter:      filterFromParams(c),
		HorizonDays: intParam(c, "days", 0),
	}
	s.answer(c, req)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getMarkets(c *gin.Context) {
	c.JSON(200, gin.H{
		"markets": s.Store.Markets(),
		"years":   s.Store.Years(),
		"records": s.Store.Len(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHistory(c *gin.Context) {
	n := intParam(c, "limit", 50)

	entries, err := s.History.RecentQueries(n)
	if err != nil {
		s.Logger.Error("Failed to read query history: %v", err)
		c.JSON(500, gin.H{"error": "failed to read query history"})
		return
	}

	c.JSON(200, gin.H{"entries": entries})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"default_limit":    s.Config.Query.DefaultLimit,
		"max_limit":        s.Config.Query.MaxLimit,
		"forecast_horizon": s.Config.Forecast.DefaultHorizon,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.clientsMutex.RLock()
	connections := len(s.clients)
	s.clientsMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":      "ok",
		"records":     s.Store.Len(),
		"connections": connections,
	})
}

// -----------------------------------------------------------------------------

// answer runs the pipeline and maps errors to HTTP codes. Contract violations
// are the caller's fault (400); everything else is a success payload, even
// when no data matched.
func (s *APIServer) answer(c *gin.Context, req models.MQueryRequest) {
	result, err := s.Answerer.Answer(c.Request.Context(), req)
	if err != nil {
		if helpers.IsValidationError(err) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		s.Logger.Error("Query failed: %v", err)
		c.JSON(500, gin.H{"error": "internal error"})
		return
	}

	c.JSON(200, result)
}
