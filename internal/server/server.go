package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"ofsconsole/internal/logging"
)

// shutdownTimeout bounds the wait for open SSH sessions on shutdown
const shutdownTimeout = 30 * time.Second

// Options configures the SSH server
type Options struct {
	AuthorizedKeysPath string // Defaults to ~/.ssh/authorized_keys
	HostKeyDir         string // Directory holding the generated host key
	Host               string
	Port               int
}

// Server serves the explorer over SSH
type Server struct {
	address            string
	authorizedKeysPath string
	newExplorer        ExplorerFactory
	wishServer         *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(opts Options, newExplorer ExplorerFactory) (*Server, error) {
	authorizedKeysPath := opts.AuthorizedKeysPath
	if authorizedKeysPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		authorizedKeysPath = filepath.Join(homeDir, ".ssh", "authorized_keys")
	}

	if err := os.MkdirAll(opts.HostKeyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	s := &Server{
		address:            net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		authorizedKeysPath: authorizedKeysPath,
		newExplorer:        newExplorer,
	}

	// Note: Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(filepath.Join(opts.HostKeyDir, "id_ed25519")),
		wish.WithPublicKeyAuth(s.publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.address
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	logging.Logger.Info("Starting SSH server", "address", s.address)
	fmt.Printf("SSH server listening on %s\n", s.address)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
