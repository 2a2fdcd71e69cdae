package cmd

import (
	"time"

	adapterstorage "ofsconsole/internal/adapters/storage"
	"ofsconsole/internal/adapters/tcp"
	"ofsconsole/internal/config"
	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
	"ofsconsole/internal/services"
	"ofsconsole/internal/session"
	"ofsconsole/internal/ui"
)

// ContainerOptions tunes the services the container builds
type ContainerOptions struct {
	HistoryDBPath    string
	HistoryEnabled   bool
	MaxResponseBytes int
	QueueSize        int
}

// Container holds all dependencies for the application
type Container struct {
	// Services
	HistoryService *services.HistoryService

	opts ContainerOptions

	// Internal - for cleanup only
	historyRepo ports.HistoryRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(opts ContainerOptions) (*Container, error) {
	if opts.HistoryDBPath == "" {
		opts.HistoryDBPath = config.GetHistoryDBPath()
	}

	historyRepo, err := adapterstorage.NewSQLiteHistoryRepository(opts.HistoryDBPath)
	if err != nil {
		return nil, err
	}

	return &Container{
		HistoryService: services.NewHistoryService(historyRepo, nil),
		historyRepo:    historyRepo,
		opts:           opts,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.historyRepo != nil {
		return c.historyRepo.Close()
	}
	return nil
}

// Console is one server connection with its dispatcher and the services on top
type Console struct {
	Batch      *services.BatchService
	Console    *services.ConsoleService
	Dispatcher *services.Dispatcher
	Session    *session.Session
}

// Close stops the dispatcher and disconnects if still connected
func (c *Console) Close() {
	c.Dispatcher.Close()
	if c.Session.State() == domain.StateConnected {
		if err := c.Session.Disconnect(); err != nil {
			logging.Logger.Warn("Disconnect on close failed", "error", err)
		}
	}
}

// NewConsole wires a fresh session, dispatcher and console service.
// Exchanges are journaled when history is enabled.
func (c *Container) NewConsole(readTimeout time.Duration) *Console {
	sess := session.New(tcp.NewNetDialer(tcp.DefaultDialTimeout), session.Options{
		MaxResponseBytes: c.opts.MaxResponseBytes,
		ReadTimeout:      readTimeout,
	})

	var observers []func(services.Result)
	if c.opts.HistoryEnabled {
		observers = append(observers, services.NewHistoryService(c.historyRepo, sess).Observe)
	}

	dispatcher := services.NewDispatcher(sess, c.opts.QueueSize, observers...)
	console := services.NewConsoleService(sess, dispatcher)

	logging.Logger.Debug("Console wired",
		"history", c.opts.HistoryEnabled,
		"queue_size", c.opts.QueueSize,
		"read_timeout", readTimeout)

	return &Console{
		Batch:      services.NewBatchService(console),
		Console:    console,
		Dispatcher: dispatcher,
		Session:    sess,
	}
}

// NewExplorer builds an explorer model on its own console. The returned
// cleanup stops the dispatcher and disconnects.
func (c *Container) NewExplorer(
	address string,
	readTimeout time.Duration,
	errorClearDelay time.Duration,
	devMode bool,
) (*ui.Model, func()) {
	console := c.NewConsole(readTimeout)
	model := ui.NewModel(console.Console, address, errorClearDelay, devMode)
	console.Session.SetStateObserver(model.ObserveState)
	return model, console.Close
}
