package ui

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ofsconsole/internal/domain"
)

// KeyDefinition defines the metadata for a key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	Defaults []string
	Help     string
	Msg      tea.Msg // Prototype message for dispatch (nil if handled inline)
	Name     string
}

// AllKeyDefinitions contains all key bindings of the explorer.
// If Msg is set, pressing the key dispatches that message to the model.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Defaults: []string{"h", "?"}, Help: "show keyboard shortcuts", Msg: ShowHelpMsg{}},
	{Name: "quit", Defaults: []string{"q"}, Help: "disconnect and exit", Msg: QuitMsg{}},

	// Navigation keys
	{Name: "bottom", Defaults: []string{"end", "G"}, Help: "last tree entry"},
	{Name: "down", Defaults: []string{"down", "j"}, Help: "select next tree entry"},
	{Name: "log_down", Defaults: []string{"pgdown"}, Help: "scroll command log down"},
	{Name: "log_up", Defaults: []string{"pgup"}, Help: "scroll command log up"},
	{Name: "open", Defaults: []string{"enter"}, Help: "read file / select directory", Msg: OpenNodeMsg{}},
	{Name: "top", Defaults: []string{"home"}, Help: "first tree entry"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "select previous tree entry"},

	// Connection keys
	{Name: "connect", Defaults: []string{"c"}, Help: "connect / disconnect", Msg: ToggleConnectionMsg{}},
	{Name: "login", Defaults: []string{"l"}, Help: "login", Msg: ShowCommandFormMsg{Verb: domain.VerbLogin}},
	{Name: "logout", Defaults: []string{"L"}, Help: "logout", Msg: SendCommandMsg{Verb: domain.VerbLogout}},
	{Name: "refresh", Defaults: []string{"r"}, Help: "refresh tree (SHOW_TREE)", Msg: RefreshTreeMsg{}},

	// File and directory keys
	{Name: "create_dir", Defaults: []string{"d"}, Help: "create directory", Msg: ShowCommandFormMsg{Verb: domain.VerbCreateDir}},
	{Name: "create_file", Defaults: []string{"f"}, Help: "create file", Msg: ShowCommandFormMsg{Verb: domain.VerbCreateFile}},
	{Name: "delete_dir", Defaults: []string{"X"}, Help: "delete directory", Msg: ShowCommandFormMsg{Verb: domain.VerbDeleteDir}},
	{Name: "delete_file", Defaults: []string{"x"}, Help: "delete file", Msg: ShowCommandFormMsg{Verb: domain.VerbDeleteFile}},
	{Name: "truncate", Defaults: []string{"t"}, Help: "truncate file", Msg: ShowCommandFormMsg{Verb: domain.VerbTruncate}},
	{Name: "write_file", Defaults: []string{"w"}, Help: "write / overwrite file", Msg: ShowCommandFormMsg{Verb: domain.VerbWriteFile}},

	// User keys
	{Name: "create_user", Defaults: []string{"u"}, Help: "create user", Msg: ShowCommandFormMsg{Verb: domain.VerbCreateUser}},
	{Name: "delete_user", Defaults: []string{"U"}, Help: "delete user", Msg: ShowCommandFormMsg{Verb: domain.VerbDeleteUser}},
	{Name: "list_users", Defaults: []string{"1"}, Help: "list users", Msg: SendCommandMsg{Verb: domain.VerbListUsers}},

	// Information and system keys
	{Name: "change_log", Defaults: []string{"g"}, Help: "show change log", Msg: SendCommandMsg{Verb: domain.VerbShowChangeLog}},
	{Name: "format", Defaults: []string{"F"}, Help: "format file system", Msg: SendCommandMsg{Verb: domain.VerbFormat}},
	{Name: "list_all_files", Defaults: []string{"3"}, Help: "list all files", Msg: SendCommandMsg{Verb: domain.VerbListAllFiles}},
	{Name: "list_my_files", Defaults: []string{"2"}, Help: "list my files", Msg: SendCommandMsg{Verb: domain.VerbListMyFiles}},
	{Name: "load", Defaults: []string{"o"}, Help: "load file system", Msg: SendCommandMsg{Verb: domain.VerbLoad}},
	{Name: "read_block", Defaults: []string{"b"}, Help: "read raw block", Msg: ShowCommandFormMsg{Verb: domain.VerbReadBlock}},
	{Name: "stats", Defaults: []string{"s"}, Help: "file system stats", Msg: SendCommandMsg{Verb: domain.VerbStats}},
}

var (
	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}
