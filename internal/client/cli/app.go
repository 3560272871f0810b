// Package cli implements the interactive authkeeper client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dsemenov/authkeeper/internal/client/api"
	"github.com/dsemenov/authkeeper/internal/client/config"
)

// authAPI is the server surface the CLI needs. The real *api.Client
// satisfies it; tests provide a stub.
type authAPI interface {
	Register(ctx context.Context, username string, password []byte) (*api.Session, error)
	Login(ctx context.Context, username string, password []byte) (*api.Session, error)
	CheckAuth(ctx context.Context, token string) (*api.Session, error)
}

type App struct {
	config   *config.Config
	api      authAPI
	reader   *bufio.Reader
	token    string
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerBaseURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return "(" + a.userName + ")"
	}
	return ""
}
