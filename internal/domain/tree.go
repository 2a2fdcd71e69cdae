package domain

// PathSeparator separates path components in service paths
const PathSeparator = "/"

// NodeKind distinguishes files from directories
type NodeKind string

const (
	KindDirectory NodeKind = "directory"
	KindFile      NodeKind = "file"
)

// TreeNode is one entry of a reconstructed directory tree.
// Parent is a back-reference only; children are owned by their parent.
type TreeNode struct {
	Children []*TreeNode `json:"children,omitempty"`
	Kind     NodeKind    `json:"kind"`
	Level    int         `json:"-"`
	Name     string      `json:"name"`
	Parent   *TreeNode   `json:"-"`
	Path     string      `json:"path"`
}

// IsDir reports whether the node is a directory
func (n *TreeNode) IsDir() bool {
	return n.Kind == KindDirectory
}

// Depth returns the number of ancestors above the node
func (n *TreeNode) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// SkippedLine records a dump line the parser dropped
type SkippedLine struct {
	LineNo int    `json:"line"`
	Reason string `json:"reason"`
	Text   string `json:"text"`
}

// Forest is the result of one tree parse: top-level nodes in input order,
// an index from path to every node carrying that path, and parser diagnostics
type Forest struct {
	Index   map[string][]*TreeNode `json:"-"`
	Roots   []*TreeNode            `json:"roots"`
	Skipped []SkippedLine          `json:"skipped,omitempty"`
}

// NewForest creates an empty Forest
func NewForest() *Forest {
	return &Forest{Index: make(map[string][]*TreeNode)}
}

// Lookup returns the first node with the given path.
// Duplicate paths are legal; use LookupAll to see every node.
func (f *Forest) Lookup(path string) (*TreeNode, bool) {
	nodes := f.Index[path]
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// LookupAll returns every node carrying the given path, in insertion order
func (f *Forest) LookupAll(path string) []*TreeNode {
	return f.Index[path]
}

// Len returns the total number of nodes in the forest
func (f *Forest) Len() int {
	count := 0
	f.Walk(func(*TreeNode) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node depth-first in input order.
// Returning false from fn skips the node's children.
func (f *Forest) Walk(fn func(*TreeNode) bool) {
	for _, root := range f.Roots {
		walk(root, fn)
	}
}

func walk(n *TreeNode, fn func(*TreeNode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		walk(child, fn)
	}
}
