package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
	"ofsconsole/internal/ports"
	"ofsconsole/internal/treeparse"
)

// ConsoleService exposes one method per service verb and validates
// arguments before anything is sent
type ConsoleService struct {
	connector ports.Connector
	exchanger ports.Exchanger
}

// NewConsoleService creates a new ConsoleService. The exchanger is normally
// a Dispatcher wrapping the connector's session.
func NewConsoleService(connector ports.Connector, exchanger ports.Exchanger) *ConsoleService {
	return &ConsoleService{
		connector: connector,
		exchanger: exchanger,
	}
}

// Connect opens the connection to address
func (s *ConsoleService) Connect(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: address is required", domain.ErrInvalidArgument)
	}
	return s.connector.Connect(ctx, address)
}

// Disconnect closes the connection, sending QUIT first
func (s *ConsoleService) Disconnect() error {
	return s.connector.Disconnect()
}

// State returns the connection state
func (s *ConsoleService) State() domain.ConnState {
	return s.connector.State()
}

// Address returns the server address of the current or last connection
func (s *ConsoleService) Address() string {
	return s.connector.Address()
}

// Format sends FORMAT to the server
func (s *ConsoleService) Format(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbFormat))
}

// Load sends LOAD to the server
func (s *ConsoleService) Load(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbLoad))
}

// Login authenticates; both fields are required
func (s *ConsoleService) Login(ctx context.Context, user, password string) (domain.Outcome, error) {
	if err := required("user", user); err != nil {
		return domain.Outcome{}, err
	}
	if err := required("password", password); err != nil {
		return domain.Outcome{}, err
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbLogin, user, password))
}

// Logout ends the authenticated server session
func (s *ConsoleService) Logout(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbLogout))
}

// CreateUser creates an account; isAdmin is sent as 1 or 0
func (s *ConsoleService) CreateUser(ctx context.Context, user, password string, isAdmin bool) (domain.Outcome, error) {
	if err := required("user", user); err != nil {
		return domain.Outcome{}, err
	}
	if err := required("password", password); err != nil {
		return domain.Outcome{}, err
	}
	admin := "0"
	if isAdmin {
		admin = "1"
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbCreateUser, user, password, admin))
}

// DeleteUser removes an account
func (s *ConsoleService) DeleteUser(ctx context.Context, user string) (domain.Outcome, error) {
	if err := required("user", user); err != nil {
		return domain.Outcome{}, err
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbDeleteUser, user))
}

// CreateDir creates a directory
func (s *ConsoleService) CreateDir(ctx context.Context, path string) (domain.Outcome, error) {
	return s.pathCommand(ctx, domain.VerbCreateDir, path)
}

// CreateFile creates a file with initial content, which may be empty
func (s *ConsoleService) CreateFile(ctx context.Context, path, content string) (domain.Outcome, error) {
	if err := required("path", path); err != nil {
		return domain.Outcome{}, err
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbCreateFile, path, content))
}

// DeleteFile removes a file
func (s *ConsoleService) DeleteFile(ctx context.Context, path string) (domain.Outcome, error) {
	return s.pathCommand(ctx, domain.VerbDeleteFile, path)
}

// DeleteDir removes a directory
func (s *ConsoleService) DeleteDir(ctx context.Context, path string) (domain.Outcome, error) {
	return s.pathCommand(ctx, domain.VerbDeleteDir, path)
}

// WriteFile replaces a file's content
func (s *ConsoleService) WriteFile(ctx context.Context, path, content string) (domain.Outcome, error) {
	if err := required("path", path); err != nil {
		return domain.Outcome{}, err
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbWriteFile, path, content))
}

// Truncate shortens a file to newLength bytes
func (s *ConsoleService) Truncate(ctx context.Context, path string, newLength int64) (domain.Outcome, error) {
	if err := required("path", path); err != nil {
		return domain.Outcome{}, err
	}
	if newLength < 0 {
		return domain.Outcome{}, fmt.Errorf("%w: length must be non-negative, got %d", domain.ErrInvalidArgument, newLength)
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbTruncate, path, strconv.FormatInt(newLength, 10)))
}

// ReadBlock dumps one raw storage block
func (s *ConsoleService) ReadBlock(ctx context.Context, index int) (domain.Outcome, error) {
	if index < 0 {
		return domain.Outcome{}, fmt.Errorf("%w: block index must be non-negative, got %d", domain.ErrInvalidArgument, index)
	}
	return s.exchange(ctx, domain.NewCommand(domain.VerbReadBlock, strconv.Itoa(index)))
}

// ReadFile returns the contents of a file
func (s *ConsoleService) ReadFile(ctx context.Context, path string) (domain.Outcome, error) {
	return s.pathCommand(ctx, domain.VerbReadFile, path)
}

// Stats reports server file system statistics
func (s *ConsoleService) Stats(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbStats))
}

// ShowChangeLog returns the server change log
func (s *ConsoleService) ShowChangeLog(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbShowChangeLog))
}

// ListUsers lists the accounts known to the server
func (s *ConsoleService) ListUsers(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbListUsers))
}

// ListMyFiles lists the files owned by the logged-in user
func (s *ConsoleService) ListMyFiles(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbListMyFiles))
}

// ListAllFiles lists every file on the server
func (s *ConsoleService) ListAllFiles(ctx context.Context) (domain.Outcome, error) {
	return s.exchange(ctx, domain.NewCommand(domain.VerbListAllFiles))
}

// ShowTree fetches the directory tree. The forest is nil when the server
// refused the request.
func (s *ConsoleService) ShowTree(ctx context.Context) (*domain.Forest, domain.Outcome, error) {
	outcome, err := s.exchange(ctx, domain.NewCommand(domain.VerbShowTree))
	if err != nil {
		return nil, outcome, err
	}
	forest := ForestFromOutcome(outcome)
	if forest != nil {
		logging.Logger.Info("Tree refreshed", "nodes", forest.Len(), "skipped", len(forest.Skipped))
	}
	return forest, outcome, nil
}

// Raw sends an arbitrary command. Unknown verbs are passed through.
func (s *ConsoleService) Raw(ctx context.Context, verb domain.Verb, args ...string) (domain.Outcome, error) {
	if !verb.IsKnown() {
		logging.Logger.Warn("Sending unknown verb", "verb", verb)
	}
	return s.exchange(ctx, domain.NewCommand(verb, args...))
}

// ForestFromOutcome parses a tree listing, or returns nil for a refusal
func ForestFromOutcome(outcome domain.Outcome) *domain.Forest {
	switch outcome.Kind {
	case domain.OutcomeRaw, domain.OutcomeSuccess:
		return treeparse.Parse(outcome.Message)
	default:
		return nil
	}
}

func (s *ConsoleService) pathCommand(ctx context.Context, verb domain.Verb, path string) (domain.Outcome, error) {
	if err := required("path", path); err != nil {
		return domain.Outcome{}, err
	}
	return s.exchange(ctx, domain.NewCommand(verb, path))
}

func (s *ConsoleService) exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	logging.Logger.Debug("Running command", "verb", cmd.Name(), "args", cmd.Redacted())

	outcome, err := s.exchanger.Exchange(ctx, cmd)
	if err != nil {
		logging.Logger.Error("Command failed", "verb", cmd.Name(), "error", err)
		return domain.Outcome{}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	logging.Logger.Info("Command completed", "verb", cmd.Name(), "kind", outcome.Kind)
	return outcome, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidArgument, field)
	}
	return nil
}
