package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/domain"
	portsmocks "ofsconsole/internal/ports/mocks"
)

func TestConsoleService_CommandsOnTheWire(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func(s *ConsoleService) (domain.Outcome, error)
		expected domain.Command
	}{
		{"format", func(s *ConsoleService) (domain.Outcome, error) { return s.Format(ctx) }, domain.NewCommand(domain.VerbFormat)},
		{"load", func(s *ConsoleService) (domain.Outcome, error) { return s.Load(ctx) }, domain.NewCommand(domain.VerbLoad)},
		{"login", func(s *ConsoleService) (domain.Outcome, error) { return s.Login(ctx, "admin", "pw") }, domain.NewCommand(domain.VerbLogin, "admin", "pw")},
		{"logout", func(s *ConsoleService) (domain.Outcome, error) { return s.Logout(ctx) }, domain.NewCommand(domain.VerbLogout)},
		{"create admin user", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateUser(ctx, "bob", "pw", true) }, domain.NewCommand(domain.VerbCreateUser, "bob", "pw", "1")},
		{"create normal user", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateUser(ctx, "bob", "pw", false) }, domain.NewCommand(domain.VerbCreateUser, "bob", "pw", "0")},
		{"delete user", func(s *ConsoleService) (domain.Outcome, error) { return s.DeleteUser(ctx, "bob") }, domain.NewCommand(domain.VerbDeleteUser, "bob")},
		{"create dir", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateDir(ctx, "/docs") }, domain.NewCommand(domain.VerbCreateDir, "/docs")},
		{"create file", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateFile(ctx, "/a.txt", "") }, domain.NewCommand(domain.VerbCreateFile, "/a.txt", "")},
		{"delete file", func(s *ConsoleService) (domain.Outcome, error) { return s.DeleteFile(ctx, "/a.txt") }, domain.NewCommand(domain.VerbDeleteFile, "/a.txt")},
		{"delete dir", func(s *ConsoleService) (domain.Outcome, error) { return s.DeleteDir(ctx, "/docs") }, domain.NewCommand(domain.VerbDeleteDir, "/docs")},
		{"write file", func(s *ConsoleService) (domain.Outcome, error) { return s.WriteFile(ctx, "/a.txt", "hello") }, domain.NewCommand(domain.VerbWriteFile, "/a.txt", "hello")},
		{"truncate", func(s *ConsoleService) (domain.Outcome, error) { return s.Truncate(ctx, "/a.txt", 0) }, domain.NewCommand(domain.VerbTruncate, "/a.txt", "0")},
		{"read block", func(s *ConsoleService) (domain.Outcome, error) { return s.ReadBlock(ctx, 7) }, domain.NewCommand(domain.VerbReadBlock, "7")},
		{"read file", func(s *ConsoleService) (domain.Outcome, error) { return s.ReadFile(ctx, "/a.txt") }, domain.NewCommand(domain.VerbReadFile, "/a.txt")},
		{"stats", func(s *ConsoleService) (domain.Outcome, error) { return s.Stats(ctx) }, domain.NewCommand(domain.VerbStats)},
		{"change log", func(s *ConsoleService) (domain.Outcome, error) { return s.ShowChangeLog(ctx) }, domain.NewCommand(domain.VerbShowChangeLog)},
		{"list users", func(s *ConsoleService) (domain.Outcome, error) { return s.ListUsers(ctx) }, domain.NewCommand(domain.VerbListUsers)},
		{"list my files", func(s *ConsoleService) (domain.Outcome, error) { return s.ListMyFiles(ctx) }, domain.NewCommand(domain.VerbListMyFiles)},
		{"list all files", func(s *ConsoleService) (domain.Outcome, error) { return s.ListAllFiles(ctx) }, domain.NewCommand(domain.VerbListAllFiles)},
		{"raw", func(s *ConsoleService) (domain.Outcome, error) { return s.Raw(ctx, "PING", "x") }, domain.NewCommand("PING", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanger := portsmocks.NewMockExchanger(t)
			exchanger.On("Exchange", mock.Anything, tt.expected).Return(domain.Success("done"), nil).Once()

			outcome, err := tt.call(NewConsoleService(nil, exchanger))

			require.NoError(t, err)
			assert.Equal(t, domain.Success("done"), outcome)
		})
	}
}

func TestConsoleService_InvalidArgumentsPerformNoIO(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(s *ConsoleService) (domain.Outcome, error)
	}{
		{"login without user", func(s *ConsoleService) (domain.Outcome, error) { return s.Login(ctx, "", "pw") }},
		{"login without password", func(s *ConsoleService) (domain.Outcome, error) { return s.Login(ctx, "admin", " ") }},
		{"create user without password", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateUser(ctx, "bob", "", false) }},
		{"delete user without name", func(s *ConsoleService) (domain.Outcome, error) { return s.DeleteUser(ctx, "") }},
		{"create dir without path", func(s *ConsoleService) (domain.Outcome, error) { return s.CreateDir(ctx, "") }},
		{"write file without path", func(s *ConsoleService) (domain.Outcome, error) { return s.WriteFile(ctx, "", "x") }},
		{"negative truncate", func(s *ConsoleService) (domain.Outcome, error) { return s.Truncate(ctx, "/a.txt", -1) }},
		{"negative block", func(s *ConsoleService) (domain.Outcome, error) { return s.ReadBlock(ctx, -3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanger := portsmocks.NewMockExchanger(t)

			_, err := tt.call(NewConsoleService(nil, exchanger))

			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			exchanger.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
		})
	}
}

func TestConsoleService_ShowTree(t *testing.T) {
	tests := []struct {
		name       string
		outcome    domain.Outcome
		wantForest bool
	}{
		{name: "raw dump is parsed", outcome: domain.Raw("admin/\n  notes.txt"), wantForest: true},
		{name: "success payload is parsed", outcome: domain.Success("admin/"), wantForest: true},
		{name: "failure has no forest", outcome: domain.Failure("not logged in"), wantForest: false},
		{name: "denial has no forest", outcome: domain.AccessDenied("ACCESS DENIED"), wantForest: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exchanger := portsmocks.NewMockExchanger(t)
			exchanger.On("Exchange", mock.Anything, domain.NewCommand(domain.VerbShowTree)).Return(tt.outcome, nil)

			forest, outcome, err := NewConsoleService(nil, exchanger).ShowTree(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.outcome, outcome)
			if tt.wantForest {
				require.NotNil(t, forest)
				_, ok := forest.Lookup("/admin/")
				assert.True(t, ok)
			} else {
				assert.Nil(t, forest)
			}
		})
	}
}

func TestConsoleService_WrapsExchangeErrors(t *testing.T) {
	exchanger := portsmocks.NewMockExchanger(t)
	exchanger.On("Exchange", mock.Anything, mock.Anything).Return(domain.Outcome{}, domain.ErrNotConnected)

	_, err := NewConsoleService(nil, exchanger).Stats(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.ErrorContains(t, err, "STATS")
}

func TestConsoleService_ConnectionLifecycle(t *testing.T) {
	session := portsmocks.NewMockConsoleSession(t)
	session.On("Connect", mock.Anything, "127.0.0.1:9090").Return(nil).Once()
	session.On("State").Return(domain.StateConnected).Once()
	session.On("Address").Return("127.0.0.1:9090").Once()
	session.On("Disconnect").Return(nil).Once()

	s := NewConsoleService(session, session)

	require.NoError(t, s.Connect(context.Background(), " 127.0.0.1:9090 "))
	assert.Equal(t, domain.StateConnected, s.State())
	assert.Equal(t, "127.0.0.1:9090", s.Address())
	require.NoError(t, s.Disconnect())

	err := s.Connect(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestForestFromOutcome_TransportErrorKeepsNoForest(t *testing.T) {
	exchanger := portsmocks.NewMockExchanger(t)
	exchanger.On("Exchange", mock.Anything, mock.Anything).Return(domain.Outcome{}, errors.New("boom"))

	forest, _, err := NewConsoleService(nil, exchanger).ShowTree(context.Background())

	assert.Error(t, err)
	assert.Nil(t, forest)
}
