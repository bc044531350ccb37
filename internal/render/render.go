// Package render is the Query/Render Layer (spec.md §4.5): it resolves
// chat/user display names, paginates by day, and emits HTML or JSON views
// of the archive built by internal/ingest.
package render

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rs/zerolog"
)

// Server holds the dependencies every handler closes over.
type Server struct {
	Store *store.DB
	Log   zerolog.Logger
}

// NewRouter builds the gin engine with every route spec.md §4.5 names plus
// the supplemental GET /healthz (see SPEC_FULL.md §4.5).
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.accessLog())

	r.GET("/", s.handleRoster)
	r.GET("/healthz", s.handleHealthz)
	r.GET("/chat/:chatID", s.handleDayIndex)
	r.GET("/chat/:chatID/:date", s.handleDayView)
	r.GET("/file/:kind/:fileID", s.handleFile)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("render: request handled")
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// displayNameForUser resolves a user-id to a display name via the
// user:meta snapshot, falling back to the raw id if the user was never
// observed directly (e.g. referenced only by id in a reply chain).
func (s *Server) displayNameForUser(userID string) string {
	if userID == "" {
		return ""
	}
	meta, found, err := s.Store.GetUserMeta(userID)
	if err != nil || !found {
		return userID
	}
	return meta.DisplayName()
}

func (s *Server) displayNameForChat(chatID int64, fallback model.ChatMeta) string {
	meta, found, err := s.Store.GetChatMeta(chatID)
	if err != nil || !found {
		return fallback.DisplayName()
	}
	return meta.DisplayName()
}
