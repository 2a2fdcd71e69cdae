package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ApplicationKeys defines application-level key bindings
type ApplicationKeys struct {
	ForceQuit key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// NavigationKeys defines key bindings for moving through the tree and log
type NavigationKeys struct {
	Bottom  key.Binding
	Down    key.Binding
	LogDown key.Binding
	LogUp   key.Binding
	Open    key.Binding
	Top     key.Binding
	Up      key.Binding
}

// ConnectionKeys defines key bindings for the connection and authentication
type ConnectionKeys struct {
	Connect key.Binding
	Login   key.Binding
	Logout  key.Binding
	Refresh key.Binding
}

// FileKeys defines key bindings for file and directory commands
type FileKeys struct {
	CreateDir  key.Binding
	CreateFile key.Binding
	DeleteDir  key.Binding
	DeleteFile key.Binding
	Truncate   key.Binding
	WriteFile  key.Binding
}

// UserKeys defines key bindings for account management
type UserKeys struct {
	CreateUser key.Binding
	DeleteUser key.Binding
	ListUsers  key.Binding
}

// InfoKeys defines key bindings for reports and system commands
type InfoKeys struct {
	ChangeLog    key.Binding
	Format       key.Binding
	ListAllFiles key.Binding
	ListMyFiles  key.Binding
	Load         key.Binding
	ReadBlock    key.Binding
	Stats        key.Binding
}

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Connection  ConnectionKeys
	Files       FileKeys
	Info        InfoKeys
	Navigation  NavigationKeys
	Users       UserKeys

	byName map[string]key.Binding
}

// NewKeyMap creates a new KeyMap with all key bindings initialized
func NewKeyMap() KeyMap {
	byName := make(map[string]key.Binding, len(AllKeyDefinitions))
	for _, def := range AllKeyDefinitions {
		byName[def.Name] = buildBinding(def.Name)
	}

	return KeyMap{
		Application: ApplicationKeys{
			ForceQuit: byName["force_quit"],
			Help:      byName["help"],
			Quit:      byName["quit"],
		},
		Connection: ConnectionKeys{
			Connect: byName["connect"],
			Login:   byName["login"],
			Logout:  byName["logout"],
			Refresh: byName["refresh"],
		},
		Files: FileKeys{
			CreateDir:  byName["create_dir"],
			CreateFile: byName["create_file"],
			DeleteDir:  byName["delete_dir"],
			DeleteFile: byName["delete_file"],
			Truncate:   byName["truncate"],
			WriteFile:  byName["write_file"],
		},
		Info: InfoKeys{
			ChangeLog:    byName["change_log"],
			Format:       byName["format"],
			ListAllFiles: byName["list_all_files"],
			ListMyFiles:  byName["list_my_files"],
			Load:         byName["load"],
			ReadBlock:    byName["read_block"],
			Stats:        byName["stats"],
		},
		Navigation: NavigationKeys{
			Bottom:  byName["bottom"],
			Down:    byName["down"],
			LogDown: byName["log_down"],
			LogUp:   byName["log_up"],
			Open:    byName["open"],
			Top:     byName["top"],
			Up:      byName["up"],
		},
		Users: UserKeys{
			CreateUser: byName["create_user"],
			DeleteUser: byName["delete_user"],
			ListUsers:  byName["list_users"],
		},
		byName: byName,
	}
}

// ActionFor returns the message a key press dispatches, if any
func (k KeyMap) ActionFor(msg tea.KeyMsg) (tea.Msg, bool) {
	for _, def := range AllKeyDefinitions {
		if def.Msg == nil {
			continue
		}
		if key.Matches(msg, k.byName[def.Name]) {
			return def.Msg, true
		}
	}
	return nil, false
}

// ShortHelp returns a curated list of key bindings for the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Connection.Connect,
		k.Connection.Refresh,
		k.Connection.Login,
		k.Navigation.Open,
		k.Files.CreateFile,
		k.Files.WriteFile,
		k.Application.Help,
		k.Application.Quit,
	}
}

// buildBinding creates a binding from its definition
func buildBinding(name string) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}

	return key.NewBinding(
		key.WithKeys(def.Defaults...),
		key.WithHelp(strings.Join(def.Defaults, "/"), def.Help),
	)
}
