// Package treeparse rebuilds a directory forest from the indented text dump
// the server returns for SHOW_TREE and the file listing verbs.
package treeparse

import (
	"strings"

	"ofsconsole/internal/domain"
	"ofsconsole/internal/logging"
)

// Phrases marking header lines that are not part of the structure
var informationalPhrases = []string{
	"structure for user:",
	"Files for user",
}

const (
	reasonEmpty         = "empty line"
	reasonInformational = "informational line"
	reasonNoName        = "no name after indentation"
)

// state tracks the insertion context for a single parse
type state struct {
	forest   *domain.Forest
	levels   map[int]*domain.TreeNode
	flatRoot *domain.TreeNode
}

// Parse rebuilds a forest from a tree dump. It never fails: lines it cannot
// use are recorded in Forest.Skipped and the rest are placed by indentation.
func Parse(text string) *domain.Forest {
	st := &state{
		forest: domain.NewForest(),
		levels: make(map[int]*domain.TreeNode),
	}

	for i, line := range strings.Split(text, "\n") {
		st.parseLine(i+1, strings.TrimRight(line, "\r"))
	}

	logging.Logger.Debug("Tree parsed",
		"nodes", st.forest.Len(),
		"roots", len(st.forest.Roots),
		"skipped", len(st.forest.Skipped))

	return st.forest
}

func (st *state) parseLine(lineNo int, line string) {
	if strings.TrimSpace(line) == "" {
		st.skip(lineNo, line, reasonEmpty)
		return
	}

	level, ok := levelKey(line)
	if !ok {
		st.skip(lineNo, line, reasonNoName)
		return
	}

	name := strings.TrimSpace(string([]rune(line)[level:]))
	if isInformational(name) {
		st.skip(lineNo, line, reasonInformational)
		return
	}

	kind := inferKind(name)
	canonical := name
	if kind == domain.KindDirectory && !strings.HasSuffix(canonical, domain.PathSeparator) {
		canonical += domain.PathSeparator
	}

	parent := st.parentFor(level)
	node := &domain.TreeNode{
		Kind:   kind,
		Level:  level,
		Name:   strings.TrimRight(canonical, domain.PathSeparator),
		Parent: parent,
		Path:   childPath(parent, canonical),
	}

	if parent == nil {
		st.forest.Roots = append(st.forest.Roots, node)
	} else {
		parent.Children = append(parent.Children, node)
	}
	st.forest.Index[node.Path] = append(st.forest.Index[node.Path], node)

	st.levels[level] = node
	if level == 0 && kind == domain.KindDirectory {
		st.flatRoot = node
	}
}

// parentFor resolves the parent of a node at the given level: the node at
// the greatest recorded level below it, or the remembered level-zero
// directory for unindented dumps
func (st *state) parentFor(level int) *domain.TreeNode {
	if level == 0 {
		return st.flatRoot
	}

	best := -1
	for recorded := range st.levels {
		if recorded < level && recorded > best {
			best = recorded
		}
	}
	if best < 0 {
		return nil
	}
	return st.levels[best]
}

func (st *state) skip(lineNo int, line, reason string) {
	st.forest.Skipped = append(st.forest.Skipped, domain.SkippedLine{
		LineNo: lineNo,
		Reason: reason,
		Text:   line,
	})
	logging.Logger.Debug("Parser skipping line", "line", lineNo, "reason", reason, "text", line)
}

// levelKey returns the rune column where the name starts, skipping the
// indentation and tree-drawing characters servers put in front of it
func levelKey(line string) (int, bool) {
	for col, r := range []rune(line) {
		if !isIndentRune(r) {
			return col, true
		}
	}
	return 0, false
}

func isIndentRune(r rune) bool {
	switch r {
	case ' ', '\t', '|', '-', '\\', '+', '`':
		return true
	}
	return false
}

func isInformational(name string) bool {
	for _, phrase := range informationalPhrases {
		if strings.Contains(name, phrase) {
			return true
		}
	}
	return false
}

// inferKind treats names with a dot and no trailing separator as files
func inferKind(name string) domain.NodeKind {
	if strings.Contains(name, ".") && !strings.HasSuffix(name, domain.PathSeparator) {
		return domain.KindFile
	}
	return domain.KindDirectory
}

func childPath(parent *domain.TreeNode, name string) string {
	name = strings.TrimLeft(name, domain.PathSeparator)
	if parent == nil || parent.Path == "" {
		return NormalizePath(name)
	}
	return NormalizePath(parent.Path + name)
}

// NormalizePath collapses doubled separators and guarantees exactly one
// leading separator. A trailing separator is preserved.
func NormalizePath(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if !strings.HasPrefix(p, domain.PathSeparator) {
		p = domain.PathSeparator + p
	}
	return p
}
