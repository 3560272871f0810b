// Package httpapi exposes the account operations over HTTP/JSON. It maps
// request bodies to AccountService calls and typed service errors to status
// codes; no domain logic lives here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsemenov/authkeeper/internal/logging"
	"github.com/dsemenov/authkeeper/internal/server/models"
	"github.com/dsemenov/authkeeper/internal/server/services"
)

// AccountService is the slice of the service layer the boundary consumes.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	CheckAuth(ctx context.Context, token string) (*models.User, error)
}

// Pinger reports store connectivity for the health endpoint.
// *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address  string
	logger   logging.Logger
	accounts AccountService
	db       Pinger
	engine   *gin.Engine
}

func NewServer(address string, l logging.Logger, accounts AccountService, db Pinger) *Server {
	s := &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		accounts: accounts,
		db:       db,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	engine.GET("/healthz", s.handleHealthz)

	api := engine.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.GET("/check-auth", s.handleCheckAuth)
	}

	s.engine = engine
	return s
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully, draining
// in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
