package server

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"ofsconsole/internal/logging"
	"ofsconsole/internal/ui"
)

// ExplorerFactory builds an explorer with its own OFS session.
// cleanup disconnects that session and releases its resources.
type ExplorerFactory func() (model *ui.Model, cleanup func())

// sessionModel wraps ui.Model to release the OFS session when the program ends
type sessionModel struct {
	*ui.Model
	cleanup   func()
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		s.cleanup()
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// teaHandler creates an explorer for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model, release := s.newExplorer()

	startTime := time.Now()
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			release()
			logging.Logger.Info("SSH session ended",
				"session_id", sessionID,
				"duration", time.Since(startTime).String())
		})
	}

	// The client may drop the connection without quitting
	go func() {
		<-sess.Context().Done()
		cleanup()
	}()

	return &sessionModel{
		Model:     model,
		cleanup:   cleanup,
		sessionID: sessionID,
		startTime: startTime,
	}, []tea.ProgramOption{tea.WithAltScreen()}
}
