package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"ofsconsole/internal/config"
	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/services"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Address     string `help:"OFS server address (host:port)" short:"a" env:"OFS_ADDRESS"`
	NoHistory   bool   `help:"Do not record exchanges in the history journal"`
	Password    string `help:"Password used to log in before one-shot commands" env:"OFS_PASSWORD"`
	ReadTimeout int    `help:"Seconds to wait for each response (0 = no limit)" env:"OFS_READ_TIMEOUT"`
	User        string `help:"User name used to log in before one-shot commands" env:"OFS_USER"`

	Explore    ExploreCmd   `cmd:"explore" help:"Start the interactive explorer (default)" default:"1"`
	Exec       ExecCmd      `cmd:"exec" help:"Send one command and print the outcome"`
	Tree       TreeCmd      `cmd:"tree" help:"Fetch and print the remote directory tree"`
	ParseTree  ParseTreeCmd `cmd:"parse-tree" help:"Parse a saved SHOW_TREE dump without connecting"`
	Run        RunCmd       `cmd:"run" help:"Run a TOML script of commands"`
	History    HistoryCmd   `cmd:"history" help:"Inspect the exchange journal"`
	Settings   SettingsCmd  `cmd:"settings" help:"Show or change settings"`
	ServeSSH   ServeSSHCmd  `cmd:"serve-ssh" help:"Serve the explorer over SSH"`
	VersionCmd VersionCmd   `cmd:"version" help:"Print version information"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	c.applySettings()

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set AFTER initialization so the storage logger and any child process see it
	if c.Debug || c.DebugFile != "" {
		os.Setenv("OFS_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("OFS_DEBUG_FILE", logFilePath)
		}
	}

	historyEnabled := !c.NoHistory
	if c.settings != nil && !c.settings.IsHistoryEnabled() {
		historyEnabled = false
	}

	// Create container AFTER logging is initialized so GORM's logger has a target
	container, err := NewContainer(ContainerOptions{
		HistoryEnabled:   historyEnabled,
		MaxResponseBytes: c.intSetting(func(s *config.Settings) *int { return s.MaxResponseBytes }),
		QueueSize:        c.intSetting(func(s *config.Settings) *int { return s.QueueSize }),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	logging.Logger.Debug("CLI initialized",
		"address", c.Address,
		"history", historyEnabled,
		"read_timeout", c.ReadTimeout,
		"user", c.User)
	return nil
}

// applySettings fills values not given on the command line.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) applySettings() {
	if c.settings != nil {
		if c.MaxLogFiles == logging.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("OFS_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("OFS_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		// Kong has already applied OFS_ADDRESS, OFS_USER and OFS_READ_TIMEOUT
		if c.Address == "" {
			c.Address = c.settings.Address
		}
		if c.User == "" {
			c.User = c.settings.User
		}
		if c.ReadTimeout == 0 {
			if _, hasEnv := os.LookupEnv("OFS_READ_TIMEOUT"); !hasEnv {
				if c.settings.ReadTimeoutSeconds != nil {
					c.ReadTimeout = *c.settings.ReadTimeoutSeconds
				}
			}
		}
	}

	if c.Address == "" {
		c.Address = config.DefaultAddress
	}
}

func (c *CLI) intSetting(get func(*config.Settings) *int) int {
	if c.settings == nil {
		return 0
	}
	if v := get(c.settings); v != nil {
		return *v
	}
	return 0
}

// readTimeout returns the per-exchange timeout for one-shot commands
func (c *CLI) readTimeout() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// batchOptions returns the connection details shared by one-shot commands
func (c *CLI) batchOptions() services.BatchOptions {
	return services.BatchOptions{
		Address:  c.Address,
		Password: c.Password,
		User:     c.User,
	}
}

// hasCredentials reports whether one-shot commands should log in first
func (c *CLI) hasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// login authenticates with the configured credentials. A refusal is
// returned as an error so one-shot commands stop before their real work.
func (c *CLI) login(ctx context.Context, console *services.ConsoleService) error {
	outcome, err := console.Login(ctx, c.User, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if outcome.IsError() {
		return fmt.Errorf("%w: login refused: %s", domain.ErrRefused, outcome.Message)
	}
	logging.Logger.Info("Logged in", "user", c.User)
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
