package domain

// Verb is the command name token sent as the first field of a request line
type Verb string

// Verbs understood by the OFS service
const (
	VerbCreateDir     Verb = "CREATE_DIR"
	VerbCreateFile    Verb = "CREATE_FILE"
	VerbCreateUser    Verb = "CREATE_USER"
	VerbDeleteDir     Verb = "DELETE_DIR"
	VerbDeleteFile    Verb = "DELETE_FILE"
	VerbDeleteUser    Verb = "DELETE_USER"
	VerbFormat        Verb = "FORMAT"
	VerbListAllFiles  Verb = "LIST_ALL_FILES"
	VerbListMyFiles   Verb = "LIST_MY_FILES"
	VerbListUsers     Verb = "LIST_USERS"
	VerbLoad          Verb = "LOAD"
	VerbLogin         Verb = "LOGIN"
	VerbLogout        Verb = "LOGOUT"
	VerbQuit          Verb = "QUIT"
	VerbReadBlock     Verb = "READ_BLOCK"
	VerbReadFile      Verb = "READ_FILE"
	VerbShowChangeLog Verb = "SHOW_CHANGE_LOG"
	VerbShowTree      Verb = "SHOW_TREE"
	VerbStats         Verb = "STATS"
	VerbTruncate      Verb = "TRUNCATE"
	VerbWriteFile     Verb = "WRITE_FILE"
)

// KnownVerbs lists every verb in the order the console menu presents them
var KnownVerbs = []Verb{
	VerbFormat,
	VerbLoad,
	VerbCreateUser,
	VerbLogin,
	VerbLogout,
	VerbDeleteUser,
	VerbReadBlock,
	VerbStats,
	VerbShowChangeLog,
	VerbListUsers,
	VerbListMyFiles,
	VerbListAllFiles,
	VerbCreateDir,
	VerbCreateFile,
	VerbShowTree,
	VerbDeleteFile,
	VerbDeleteDir,
	VerbWriteFile,
	VerbTruncate,
	VerbReadFile,
	VerbQuit,
}

// IsKnown reports whether v is one of the service's verbs
func (v Verb) IsKnown() bool {
	for _, known := range KnownVerbs {
		if v == known {
			return true
		}
	}
	return false
}

// Command is one request: a verb followed by positional arguments.
// Commands are values; the constructor copies args so callers cannot mutate them after the fact.
type Command struct {
	args []string
	name Verb
}

// NewCommand creates a Command from a verb and its arguments in protocol order
func NewCommand(name Verb, args ...string) Command {
	copied := make([]string, len(args))
	copy(copied, args)
	return Command{name: name, args: copied}
}

// Name returns the command verb
func (c Command) Name() Verb {
	return c.name
}

// Args returns a copy of the positional arguments
func (c Command) Args() []string {
	copied := make([]string, len(c.args))
	copy(copied, c.args)
	return copied
}

// Arg returns the i-th argument, or "" if absent
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

// NumArgs returns the number of positional arguments
func (c Command) NumArgs() int {
	return len(c.args)
}

// Redacted returns the arguments with secrets masked, for logs and the journal
func (c Command) Redacted() []string {
	out := c.Args()
	switch c.name {
	case VerbLogin, VerbCreateUser:
		if len(out) > 1 {
			out[1] = "***"
		}
	}
	return out
}
