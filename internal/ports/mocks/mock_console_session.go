package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/ports"
)

// MockConsoleSession is a testify double for ports.ConsoleSession
type MockConsoleSession struct {
	mock.Mock
}

var _ ports.ConsoleSession = (*MockConsoleSession)(nil)

// NewMockConsoleSession creates a MockConsoleSession that asserts its expectations on cleanup
func NewMockConsoleSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConsoleSession {
	m := &MockConsoleSession{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConsoleSession) Address() string {
	return m.Called().String(0)
}

func (m *MockConsoleSession) Connect(ctx context.Context, address string) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockConsoleSession) Disconnect() error {
	return m.Called().Error(0)
}

func (m *MockConsoleSession) Exchange(ctx context.Context, cmd domain.Command) (domain.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

func (m *MockConsoleSession) State() domain.ConnState {
	return m.Called().Get(0).(domain.ConnState)
}
