package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/domain"
)

func TestEncode_JoinsFieldsWithPipeAndNewline(t *testing.T) {
	tests := []struct {
		name     string
		cmd      domain.Command
		expected string
	}{
		{"no args", domain.NewCommand(domain.VerbShowTree), "SHOW_TREE\n"},
		{"login", domain.NewCommand(domain.VerbLogin, "admin", "secret"), "LOGIN|admin|secret\n"},
		{"create user", domain.NewCommand(domain.VerbCreateUser, "bob", "pw", "1"), "CREATE_USER|bob|pw|1\n"},
		{"empty arg kept", domain.NewCommand(domain.VerbCreateFile, "/a.txt", ""), "CREATE_FILE|/a.txt|\n"},
		{"spaces preserved", domain.NewCommand(domain.VerbWriteFile, "/a.txt", "dr umer suleman"), "WRITE_FILE|/a.txt|dr umer suleman\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestEncode_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		cmd   domain.Command
		field int
	}{
		{"empty verb", domain.NewCommand(""), -1},
		{"newline in verb", domain.NewCommand("STATS\nQUIT"), -1},
		{"newline in arg", domain.NewCommand(domain.VerbCreateFile, "/a.txt", "line1\nline2"), 1},
		{"carriage return in arg", domain.NewCommand(domain.VerbReadFile, "/a.txt\r"), 0},
		{"pipe in arg", domain.NewCommand(domain.VerbLogin, "ad|min", "pw"), 0},
		{"pipe in content", domain.NewCommand(domain.VerbWriteFile, "/a.txt", "a|b"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.cmd)

			require.Error(t, err)
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, domain.ErrEncoding))

			var encErr *domain.EncodingError
			require.True(t, errors.As(err, &encErr))
			assert.Equal(t, tt.field, encErr.Field)
		})
	}
}

func TestDecode_InvertsEncode(t *testing.T) {
	cmd := domain.NewCommand(domain.VerbTruncate, "/docs/a.txt", "42")

	data, err := Encode(cmd)
	require.NoError(t, err)

	decoded, err := Decode(string(data))
	require.NoError(t, err)
	assert.Equal(t, cmd.Name(), decoded.Name())
	assert.Equal(t, cmd.Args(), decoded.Args())
}

func TestDecode_RejectsEmptyLine(t *testing.T) {
	_, err := Decode("\n")

	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Outcome
	}{
		{"success", "OK|5 files", domain.Success("5 files")},
		{"failure", "ERR|no such path", domain.Failure("no such path")},
		{"access denied phrase", "You are not authorized", domain.AccessDenied("You are not authorized")},
		{"permission denied any case", "permission Denied for /etc", domain.AccessDenied("permission Denied for /etc")},
		{"access denied", "ACCESS DENIED", domain.AccessDenied("ACCESS DENIED")},
		{"raw tree dump", "admin/\n  notes.txt", domain.Raw("admin/\n  notes.txt")},
		{"trailing newline trimmed", "OK|LOGIN\n", domain.Success("LOGIN")},
		{"failure keeps denial phrase", "ERR|Access denied to /root", domain.Failure("Access denied to /root")},
		{"success with pipes in message", "OK|a|b", domain.Success("a|b")},
		{"empty", "", domain.Raw("")},
		{"marker must be a prefix", "status OK|fine", domain.Raw("status OK|fine")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}
