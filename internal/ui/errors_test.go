package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorForDisplay(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, formatErrorForDisplay(nil, 80))
	})

	t.Run("short message fits on one line", func(t *testing.T) {
		assert.Equal(t, "Error: connection refused", formatErrorForDisplay(errors.New("connection refused"), 80))
	})

	t.Run("two full lines are not truncated", func(t *testing.T) {
		got := formatErrorForDisplay(errors.New("aaaa bbbb cccc dddd"), 17)
		assert.Equal(t, "Error: aaaa bbbb\ncccc dddd", got)
	})

	t.Run("long message is truncated", func(t *testing.T) {
		msg := strings.Repeat("word ", 100)
		got := formatErrorForDisplay(errors.New(msg), 40)

		lines := strings.Split(got, "\n")
		assert.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Error: "))
		assert.True(t, strings.HasSuffix(lines[1], "..."))
	})
}

func TestErrorManager_ClearsOnlyCurrentError(t *testing.T) {
	em := NewErrorManager(0)

	em.SetError(errors.New("first"))
	staleSeq := em.seq
	em.SetError(errors.New("second"))

	em.Handle(clearErrorMsg{seq: staleSeq})
	assert.EqualError(t, em.Err(), "second")

	em.Handle(clearErrorMsg{seq: em.seq})
	assert.NoError(t, em.Err())
	assert.Empty(t, em.View(80))
}
