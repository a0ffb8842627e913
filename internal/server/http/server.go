// Package http exposes the notes API over REST using echo.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/logging"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, h *Handlers, tokens AccessTokenVerifier) *Server {
	logger := l.With("module", "http_server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(requestLogger(logger))

	registerRoutes(e, h, tokens)

	return &Server{address: address, echo: e, logger: logger}
}

func registerRoutes(e *echo.Echo, h *Handlers, tokens AccessTokenVerifier) {
	e.POST("/users", h.postUser)
	e.GET("/users/:id", h.getUser)
	e.GET("/users", h.searchUsers)

	e.POST("/authentications", h.postAuthentication)
	e.PUT("/authentications", h.putAuthentication)
	e.DELETE("/authentications", h.deleteAuthentication)

	authed := requireAuth(tokens)

	e.POST("/notes", h.postNote, authed)
	e.GET("/notes", h.getNotes, authed)
	e.GET("/notes/:id", h.getNote, authed)
	e.PUT("/notes/:id", h.putNote, authed)
	e.DELETE("/notes/:id", h.deleteNote, authed)

	e.POST("/collaborations", h.postCollaboration, authed)
	e.DELETE("/collaborations", h.deleteCollaboration, authed)

	if h.Exports != nil {
		e.POST("/export/notes", h.postNotesExport, authed)
	}
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.echo.Listener = listen

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
