package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/services"
)

// ExchangeFunc runs the command a form collected
type ExchangeFunc func(ctx context.Context, console *services.ConsoleService) (domain.Outcome, error)

// formValues holds every field a command form may bind
type formValues struct {
	admin    string
	content  string
	index    string
	length   string
	password string
	path     string
	user     string
}

// CommandForm is a Bubble Tea component collecting the arguments of one command
type CommandForm struct {
	Cancelled bool
	Completed bool
	form      *huh.Form
	values    *formValues
	verb      domain.Verb
}

// commandFormTitles maps each verb with arguments to its dialog title
var commandFormTitles = map[domain.Verb]string{
	domain.VerbCreateDir:  "Create Directory",
	domain.VerbCreateFile: "Create File",
	domain.VerbCreateUser: "Create New User",
	domain.VerbDeleteDir:  "Delete Directory",
	domain.VerbDeleteFile: "Delete File",
	domain.VerbDeleteUser: "Delete User",
	domain.VerbLogin:      "Login",
	domain.VerbReadBlock:  "Read Block",
	domain.VerbTruncate:   "Truncate File",
	domain.VerbWriteFile:  "Write / Overwrite File",
}

// CommandFormTitle returns the dialog title for verb
func CommandFormTitle(verb domain.Verb) string {
	if title, ok := commandFormTitles[verb]; ok {
		return title
	}
	return string(verb)
}

// NewCommandForm creates the form for verb. selectedPath pre-fills path fields.
func NewCommandForm(verb domain.Verb, selectedPath string) (*CommandForm, error) {
	cf := &CommandForm{
		values: &formValues{admin: "0", path: selectedPath},
		verb:   verb,
	}
	v := cf.values

	var fields []huh.Field
	switch verb {
	case domain.VerbLogin:
		fields = []huh.Field{usernameInput(&v.user), passwordInput(&v.password)}
	case domain.VerbCreateUser:
		fields = []huh.Field{
			usernameInput(&v.user),
			passwordInput(&v.password),
			huh.NewInput().
				Title("Admin (1/0)").
				Value(&v.admin).
				Validate(validateAdminFlag),
		}
	case domain.VerbDeleteUser:
		fields = []huh.Field{usernameInput(&v.user)}
	case domain.VerbCreateDir, domain.VerbDeleteDir:
		fields = []huh.Field{pathInput("Directory Path", &v.path)}
	case domain.VerbDeleteFile:
		fields = []huh.Field{pathInput("File Path", &v.path)}
	case domain.VerbCreateFile, domain.VerbWriteFile:
		fields = []huh.Field{
			pathInput("File Path", &v.path),
			huh.NewText().
				Title("Content").
				Value(&v.content).
				Validate(requiredField("content")),
		}
	case domain.VerbTruncate:
		fields = []huh.Field{
			pathInput("File Path", &v.path),
			huh.NewInput().
				Title("New Length").
				Description("Size in bytes").
				Value(&v.length).
				Validate(nonNegativeInteger("new length")),
		}
	case domain.VerbReadBlock:
		fields = []huh.Field{
			huh.NewInput().
				Title("Block Index").
				Value(&v.index).
				Validate(nonNegativeInteger("block index")),
		}
	default:
		return nil, fmt.Errorf("no form for command %s", verb)
	}

	cf.form = huh.NewForm(huh.NewGroup(fields...))
	return cf, nil
}

func (cf *CommandForm) Init() tea.Cmd {
	return cf.form.Init()
}

func (cf *CommandForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cf.Completed {
		return cf, nil
	}

	// Handle Escape or Ctrl+C to cancel
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			cf.Cancelled = true
			cf.Completed = true
			return cf, nil
		}
	}

	form, cmd := cf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		cf.form = f
	}

	if cf.form.State == huh.StateCompleted {
		cf.Completed = true
		return cf, nil
	}

	return cf, cmd
}

func (cf *CommandForm) View() string {
	if cf.form != nil {
		return cf.form.View()
	}
	return ""
}

// Verb returns the command the form collects arguments for
func (cf *CommandForm) Verb() domain.Verb {
	return cf.verb
}

// Exchange returns the call that sends the collected command.
// Only meaningful once the form completed without cancelling.
func (cf *CommandForm) Exchange() ExchangeFunc {
	v := *cf.values
	verb := cf.verb

	return func(ctx context.Context, console *services.ConsoleService) (domain.Outcome, error) {
		switch verb {
		case domain.VerbLogin:
			return console.Login(ctx, v.user, v.password)
		case domain.VerbCreateUser:
			return console.CreateUser(ctx, v.user, v.password, v.admin == "1")
		case domain.VerbDeleteUser:
			return console.DeleteUser(ctx, v.user)
		case domain.VerbCreateDir:
			return console.CreateDir(ctx, v.path)
		case domain.VerbDeleteDir:
			return console.DeleteDir(ctx, v.path)
		case domain.VerbDeleteFile:
			return console.DeleteFile(ctx, v.path)
		case domain.VerbCreateFile:
			return console.CreateFile(ctx, v.path, v.content)
		case domain.VerbWriteFile:
			return console.WriteFile(ctx, v.path, v.content)
		case domain.VerbTruncate:
			length, err := strconv.ParseInt(strings.TrimSpace(v.length), 10, 64)
			if err != nil {
				return domain.Outcome{}, fmt.Errorf("%w: new length: %w", domain.ErrInvalidArgument, err)
			}
			return console.Truncate(ctx, v.path, length)
		case domain.VerbReadBlock:
			index, err := strconv.Atoi(strings.TrimSpace(v.index))
			if err != nil {
				return domain.Outcome{}, fmt.Errorf("%w: block index: %w", domain.ErrInvalidArgument, err)
			}
			return console.ReadBlock(ctx, index)
		default:
			return domain.Outcome{}, fmt.Errorf("no form for command %s", verb)
		}
	}
}

func usernameInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Username").
		Value(value).
		Validate(requiredField("username"))
}

func passwordInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(value).
		Validate(requiredField("password"))
}

func pathInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("/").
		Value(value).
		Validate(requiredField("path"))
}

func requiredField(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateAdminFlag(s string) error {
	if s != "0" && s != "1" {
		return fmt.Errorf("admin must be 1 or 0")
	}
	return nil
}

func nonNegativeInteger(label string) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", label)
		}
		return nil
	}
}

// Preview returns the command the form will send, for the command log
func (cf *CommandForm) Preview() domain.Command {
	v := cf.values
	switch cf.verb {
	case domain.VerbLogin:
		return domain.NewCommand(cf.verb, v.user, v.password)
	case domain.VerbCreateUser:
		return domain.NewCommand(cf.verb, v.user, v.password, v.admin)
	case domain.VerbDeleteUser:
		return domain.NewCommand(cf.verb, v.user)
	case domain.VerbCreateFile, domain.VerbWriteFile:
		return domain.NewCommand(cf.verb, v.path, v.content)
	case domain.VerbTruncate:
		return domain.NewCommand(cf.verb, v.path, strings.TrimSpace(v.length))
	case domain.VerbReadBlock:
		return domain.NewCommand(cf.verb, strings.TrimSpace(v.index))
	default:
		return domain.NewCommand(cf.verb, v.path)
	}
}
