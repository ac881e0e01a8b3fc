// Package httpapi exposes the public HTTP surface of the server: the auth
// endpoints, the profile endpoints, and owner-scoped bookmark CRUD behind
// the bearer-token guard.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/logging"
	"github.com/dmitrijs2005/linkkeeper/internal/server/services"
)

type HTTPServer struct {
	address   string
	users     *services.UserService
	bookmarks *services.BookmarkService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, bs *services.BookmarkService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		bookmarks: bs,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the route table. Everything under /users and /bookmarks is
// gated by the access guard; auth endpoints and the liveness probe are open.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /auth/signin", s.handleSignIn)
	mux.HandleFunc("GET /ping", s.handlePing)

	mux.Handle("GET /users/me", s.withAuth(s.handleGetMe))
	mux.Handle("PATCH /users/me", s.withAuth(s.handleUpdateMe))

	mux.Handle("GET /bookmarks", s.withAuth(s.handleListBookmarks))
	mux.Handle("POST /bookmarks", s.withAuth(s.handleCreateBookmark))
	mux.Handle("GET /bookmarks/{id}", s.withAuth(s.handleGetBookmark))
	mux.Handle("PATCH /bookmarks/{id}", s.withAuth(s.handleUpdateBookmark))
	mux.Handle("DELETE /bookmarks/{id}", s.withAuth(s.handleDeleteBookmark))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
