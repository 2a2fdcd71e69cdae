package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ofsconsole/internal/config"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/server"
	"ofsconsole/internal/ui"
)

// ServeSSHCmd serves the explorer over SSH
type ServeSSHCmd struct {
	AuthorizedKeys  string `help:"authorized_keys file (default ~/.ssh/authorized_keys)" type:"path"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" default:"10"`
	Host            string `help:"Interface to listen on (default from settings, then localhost)"`
	Port            int    `help:"Port to listen on (default from settings, then 23235)"`
}

// Run starts the SSH server and blocks until interrupted
func (s *ServeSSHCmd) Run(cli *CLI) error {
	host, port := s.listenAddress(cli.settings)
	errorClearDelay := time.Duration(s.ErrorClearDelay) * time.Second
	readTimeout := cli.explorerReadTimeout()

	srv, err := server.NewServer(server.Options{
		AuthorizedKeysPath: s.AuthorizedKeys,
		HostKeyDir:         filepath.Join(config.GetOFSHome(), "ssh"),
		Host:               host,
		Port:               port,
	}, func() (*ui.Model, func()) {
		return cli.Container.NewExplorer(cli.Address, readTimeout, errorClearDelay, false)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Explorer sessions connect to %s. Press Ctrl+C to stop.\n", cli.Address)
	logging.Logger.Info("Serving explorer over SSH", "address", srv.Address(), "ofs_address", cli.Address)
	return srv.Start(ctx)
}

// listenAddress resolves host and port: flags > settings.json > defaults
func (s *ServeSSHCmd) listenAddress(settings *config.Settings) (string, int) {
	host, port := s.Host, s.Port
	if settings != nil {
		if host == "" {
			host = settings.SSHHost
		}
		if port == 0 && settings.SSHPort != nil {
			port = *settings.SSHPort
		}
	}
	if host == "" {
		host = config.DefaultSSHHost
	}
	if port == 0 {
		port = config.DefaultSSHPort
	}
	return host, port
}
