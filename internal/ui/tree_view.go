package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/theme"
)

// treeRow is one visible line of the tree pane
type treeRow struct {
	depth int
	node  *domain.TreeNode
}

// TreeView renders a forest as a scrollable list with a cursor.
// Every directory is shown expanded.
type TreeView struct {
	cursor int
	forest *domain.Forest
	height int
	offset int
	rows   []treeRow
	width  int
}

// NewTreeView creates an empty TreeView
func NewTreeView() *TreeView {
	return &TreeView{}
}

// SetForest replaces the displayed tree. The cursor stays on the same path
// when it still exists.
func (tv *TreeView) SetForest(forest *domain.Forest) {
	var selectedPath string
	if node := tv.Selected(); node != nil {
		selectedPath = node.Path
	}

	tv.forest = forest
	tv.rows = flattenForest(forest)
	tv.cursor = 0
	tv.offset = 0

	if selectedPath == "" {
		return
	}
	for i, row := range tv.rows {
		if row.node.Path == selectedPath {
			tv.cursor = i
			break
		}
	}
	tv.clampOffset()
}

// Forest returns the displayed forest, or nil
func (tv *TreeView) Forest() *domain.Forest {
	return tv.forest
}

// Selected returns the node under the cursor, or nil for an empty tree
func (tv *TreeView) Selected() *domain.TreeNode {
	if tv.cursor < 0 || tv.cursor >= len(tv.rows) {
		return nil
	}
	return tv.rows[tv.cursor].node
}

// SelectedPath returns the path under the cursor, or ""
func (tv *TreeView) SelectedPath() string {
	if node := tv.Selected(); node != nil {
		return node.Path
	}
	return ""
}

func (tv *TreeView) MoveUp() {
	if tv.cursor > 0 {
		tv.cursor--
		tv.clampOffset()
	}
}

func (tv *TreeView) MoveDown() {
	if tv.cursor < len(tv.rows)-1 {
		tv.cursor++
		tv.clampOffset()
	}
}

func (tv *TreeView) Top() {
	tv.cursor = 0
	tv.clampOffset()
}

func (tv *TreeView) Bottom() {
	if len(tv.rows) > 0 {
		tv.cursor = len(tv.rows) - 1
		tv.clampOffset()
	}
}

// SetSize sets the number of visible rows and the row width
func (tv *TreeView) SetSize(width, height int) {
	tv.width = width
	tv.height = height
	tv.clampOffset()
}

// View renders the visible rows
func (tv *TreeView) View() string {
	if len(tv.rows) == 0 {
		return theme.EmptyTreeStyle.Render("No tree loaded. Press r to refresh.")
	}

	end := len(tv.rows)
	if tv.height > 0 && tv.offset+tv.height < end {
		end = tv.offset + tv.height
	}

	lines := make([]string, 0, end-tv.offset)
	for i := tv.offset; i < end; i++ {
		lines = append(lines, tv.renderRow(tv.rows[i], i == tv.cursor))
	}
	return strings.Join(lines, "\n")
}

func (tv *TreeView) renderRow(row treeRow, selected bool) string {
	indent := strings.Repeat("  ", row.depth)

	var label string
	if row.node.IsDir() {
		name := row.node.Name
		if !strings.HasSuffix(name, domain.PathSeparator) {
			name += domain.PathSeparator
		}
		label = theme.DirectoryStyle.Render("▾ " + name)
	} else {
		label = theme.FileStyle.Render("  " + row.node.Name)
	}

	line := indent + label
	if tv.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(tv.width).Render(line)
	}
	if selected {
		return theme.SelectedRowStyle.Render(line)
	}
	return line
}

// clampOffset keeps the cursor inside the visible window
func (tv *TreeView) clampOffset() {
	if tv.height <= 0 {
		tv.offset = 0
		return
	}
	if tv.cursor < tv.offset {
		tv.offset = tv.cursor
	}
	if tv.cursor >= tv.offset+tv.height {
		tv.offset = tv.cursor - tv.height + 1
	}
}

func flattenForest(forest *domain.Forest) []treeRow {
	if forest == nil {
		return nil
	}
	var rows []treeRow
	forest.Walk(func(n *domain.TreeNode) bool {
		rows = append(rows, treeRow{depth: n.Depth(), node: n})
		return true
	})
	return rows
}
