package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/db"
	"horse.fit/bookstore/internal/globaltime"
	"horse.fit/bookstore/internal/translation"
)

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// CatalogService is the catalogue surface consumed by the handlers.
type CatalogService interface {
	GetBook(ctx context.Context, id int64) (*db.Book, error)
	ListBooks(ctx context.Context) ([]db.Book, error)
	AddBook(ctx context.Context, input catalog.BookInput) (*db.Book, error)
	UpdateBook(ctx context.Context, id int64, input catalog.BookInput) (*db.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	CastForBook(ctx context.Context, bookID int64, filter catalog.CastFilter) (*catalog.Cast, error)
}

// TranslationService is the cache-aside translation surface.
type TranslationService interface {
	GetOrCreateTranslation(ctx context.Context, bookID int64, lang string) (*db.BookTranslation, bool, error)
}

// AuthConfig carries the cookie-token settings for the auth endpoints and the
// mutation guard.
type AuthConfig struct {
	CookieName        string
	CookieSecure      bool
	TokenSecret       string
	TokenTTL          time.Duration
	AdminUser         string
	AdminPasswordHash string
}

type Server struct {
	catalog    CatalogService
	translator TranslationService
	registry   *translation.Registry
	authCfg    AuthConfig
	logger     zerolog.Logger
	opts       Options
}

func NewServer(
	catalogService CatalogService,
	translator TranslationService,
	registry *translation.Registry,
	authCfg AuthConfig,
	logger zerolog.Logger,
	opts Options,
) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8080
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	if strings.TrimSpace(authCfg.CookieName) == "" {
		authCfg.CookieName = "bookstore_token"
	}
	if authCfg.TokenTTL <= 0 {
		authCfg.TokenTTL = 24 * time.Hour
	}

	return &Server{
		catalog:    catalogService,
		translator: translator,
		registry:   registry,
		authCfg:    authCfg,
		logger:     logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.catalog == nil || s.translator == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.buildEcho()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("bookstore server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("bookstore server stopped")
	return nil
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.GET("/languages", s.handleLanguages)

	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)

	api.GET("/books", s.handleListBooks)
	api.POST("/books", s.handleAddBook, s.requireAuth())
	api.GET("/books/:book_id", s.handleGetBook)
	api.PUT("/books/:book_id", s.handleUpdateBook, s.requireAuth())
	api.DELETE("/books/:book_id", s.handleDeleteBook, s.requireAuth())
	api.GET("/books/:book_id/cast", s.handleBookCast)
	api.GET("/books/:book_id/translation", s.handleBookTranslation)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "bookstore",
		"time":    globaltime.UTC(),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"languages": translation.TranslationLanguageOptions(s.registry),
	})
}

func parseBookID(c echo.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("book_id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
