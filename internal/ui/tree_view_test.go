package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofsconsole/internal/treeparse"
)

func TestTreeView_FlattensInOrder(t *testing.T) {
	tv := NewTreeView()
	tv.SetForest(treeparse.Parse(testTree))

	require.Len(t, tv.rows, 4)
	paths := make([]string, 0, len(tv.rows))
	depths := make([]int, 0, len(tv.rows))
	for _, row := range tv.rows {
		paths = append(paths, row.node.Path)
		depths = append(depths, row.depth)
	}
	assert.Equal(t, []string{"/admin/", "/admin/notes.txt", "/admin/logs/", "/admin/logs/app.log"}, paths)
	assert.Equal(t, []int{0, 1, 1, 2}, depths)
}

func TestTreeView_CursorBounds(t *testing.T) {
	tv := NewTreeView()
	tv.SetForest(treeparse.Parse(testTree))

	tv.MoveUp()
	assert.Equal(t, "/admin/", tv.SelectedPath())

	tv.Bottom()
	tv.MoveDown()
	assert.Equal(t, "/admin/logs/app.log", tv.SelectedPath())

	tv.Top()
	assert.Equal(t, "/admin/", tv.SelectedPath())
}

func TestTreeView_RefreshKeepsSelection(t *testing.T) {
	tv := NewTreeView()
	tv.SetForest(treeparse.Parse(testTree))
	tv.MoveDown()
	tv.MoveDown()

	tv.SetForest(treeparse.Parse("admin/\n  logs/\n  notes.txt"))
	assert.Equal(t, "/admin/logs/", tv.SelectedPath())

	tv.SetForest(treeparse.Parse("other/"))
	assert.Equal(t, "/other/", tv.SelectedPath())
}

func TestTreeView_ScrollsWithCursor(t *testing.T) {
	tv := NewTreeView()
	tv.SetForest(treeparse.Parse(testTree))
	tv.SetSize(40, 2)

	tv.Bottom()
	assert.Equal(t, 2, tv.offset)

	tv.Top()
	assert.Equal(t, 0, tv.offset)
}

func TestTreeView_Empty(t *testing.T) {
	tv := NewTreeView()

	assert.Nil(t, tv.Selected())
	assert.Empty(t, tv.SelectedPath())
	assert.Contains(t, tv.View(), "No tree loaded")
}
