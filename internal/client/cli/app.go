// Package cli implements the interactive terminal client for LinkKeeper.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/dmitrijs2005/linkkeeper/internal/client/api"
	"github.com/dmitrijs2005/linkkeeper/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		client: api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}
