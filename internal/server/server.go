// Package server exposes campaigns over HTTP.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/agenthands/chronicle/internal/core"
	"github.com/agenthands/chronicle/internal/store"
)

// MaxBodyBytes bounds request bodies; avatar uploads are the largest.
const MaxBodyBytes = 16 << 20

type Server struct {
	Registry *store.Registry
	Engine   *core.Engine
	Logger   *slog.Logger
}

func NewServer(registry *store.Registry, engine *core.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Registry: registry,
		Engine:   engine,
		Logger:   logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/message", s.PostMessage)
	api.GET("/history", s.GetHistory)

	api.GET("/player", s.GetPlayer)
	api.PUT("/player", s.PutPlayer)
	api.POST("/player/note", s.PostPlayerNote)
	api.POST("/player/image", s.PostPlayerImage)

	api.POST("/campaign/new", s.PostNewCampaign)
	api.GET("/roleplays", s.ListCampaigns)
	api.POST("/roleplays", s.CreateCampaign)
	api.GET("/roleplay/current", s.CurrentCampaign)
	api.POST("/roleplays/:id/load", s.LoadCampaign)
	api.DELETE("/roleplays/:id", s.DeleteCampaign)
	api.GET("/roleplays/:id/export", s.ExportCampaign)
	api.POST("/roleplays/:id/compact/:doc", s.CompactDocument)

	api.GET("/characters", s.ListCharacters)
	api.POST("/characters", s.CreateCharacter)
	api.GET("/characters/:id", s.GetCharacter)
	api.PUT("/characters/:id", s.UpdateCharacter)
	api.DELETE("/characters/:id", s.DeleteCharacter)

	api.GET("/locations", s.ListLocations)
	api.POST("/locations", s.CreateLocation)
	api.GET("/locations/:id", s.GetLocation)
	api.PUT("/locations/:id", s.UpdateLocation)
	api.DELETE("/locations/:id", s.DeleteLocation)

	api.POST("/generate/character", s.GenerateCharacter)
	api.POST("/generate/location", s.GenerateLocation)
	api.POST("/generate/image", s.GenerateImage)

	api.GET("/images/:category/:id", s.GetImage)

	return r
}

// Handler wraps the router with CORS for the given origins.
func (s *Server) Handler(origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	}).Handler(s.SetupRouter())
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// handleError maps store and engine errors to HTTP status codes.
func (s *Server) handleError(c *gin.Context, err error) {
	var conflict *store.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "id": conflict.ResourceID})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrImagesDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	default:
		s.Logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// readBody returns the raw request body, bounded by MaxBodyBytes.
func readBody(c *gin.Context) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// current resolves the campaign being played, writing the error response
// when there is none.
func (s *Server) current(c *gin.Context) (*store.Store, bool) {
	st, err := s.Registry.Current()
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	return st, true
}
