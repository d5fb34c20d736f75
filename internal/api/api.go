// Package api serves the most recent scrape output over HTTP for
// frontends polling the dataset.
package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/copenmusic/concert-scraper/internal/logger"
)

// Server exposes the concert dataset written by the scrape run.
// It reads the JSON output from disk on every request so a running
// server always serves the latest completed run.
type Server struct {
	echo     *echo.Echo
	dataPath string
	log      *logger.Logger
}

// NewServer creates a Server reading concerts.json from outputDir.
func NewServer(outputDir string, log *logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	s := &Server{
		echo:     e,
		dataPath: filepath.Join(outputDir, "concerts.json"),
		log:      log,
	}
	e.GET("/concerts", s.getConcerts)
	e.GET("/health", s.getHealth)

	return s
}

// Start begins listening on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.log.Info("api server listening", logger.Fields{"addr": addr, "data": s.dataPath})
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) getConcerts(c echo.Context) error {
	data, err := os.ReadFile(s.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No completed run yet; not a server error.
			return c.JSON(http.StatusOK, map[string]string{"error": "Concert data not found"})
		}
		s.log.Error("reading dataset", logger.Fields{"path": s.dataPath}, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSONBlob(http.StatusOK, data)
}

func (s *Server) getHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
