// Package filetree implements the file-tree manager: a folder/file
// hierarchy with O(1) path lookup, multi-selection, expansion, and
// cycle-safe move semantics.
package filetree

import "strings"

// Kind discriminates the TreeNode tagged union.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// Node is a TreeNode. Path uses "/" as separator; the root's path is
// the empty string. Depth is the number of separators in path, plus
// one for any non-root node.
type Node struct {
	Kind  Kind
	ID    string
	Name  string
	Path  string
	Depth int

	// File fields.
	Data any

	// Folder fields. Children are stored in insertion order; sorting
	// (folders-before-files, case-insensitive) happens at visibility
	// time, not here.
	Children []*Node
}

func depthOf(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

func joinPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "/" + name
}

// NewFile constructs a File node at parentPath/name.
func NewFile(id, parentPath, name string, data any) *Node {
	path := joinPath(parentPath, name)
	return &Node{Kind: KindFile, ID: id, Name: name, Path: path, Depth: depthOf(path), Data: data}
}

// NewFolder constructs an empty Folder node at parentPath/name.
func NewFolder(id, parentPath, name string) *Node {
	path := joinPath(parentPath, name)
	return &Node{Kind: KindFolder, ID: id, Name: name, Path: path, Depth: depthOf(path)}
}

// NewRoot constructs the tree's root Folder, at the empty path.
func NewRoot(id string) *Node {
	return &Node{Kind: KindFolder, ID: id, Path: "", Depth: 0}
}
