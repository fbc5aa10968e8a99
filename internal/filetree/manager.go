package filetree

import (
	"strings"

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
	"github.com/Higashi-Kota/drawing-explorer/internal/geometry"
	"github.com/Higashi-Kota/drawing-explorer/internal/idgen"
)

// State is the FileTreeState: the tree plus the O(1) indices and
// selection/expansion bookkeeping that make the manager's operations
// cheap.
type State struct {
	Root *Node

	pathToFile   map[string]*Node
	pathToFolder map[string]*Node

	SelectedPaths map[string]bool
	AnchorPath    string
	LastSelected  string
	IsAddMode     bool
	ExpandedPaths map[string]bool
	FocusedPath   string
}

// Manager owns one FileTreeState.
type Manager struct {
	state State
}

// NewManager returns a Manager with an empty root folder.
func NewManager() *Manager {
	root := NewRoot(idgen.Fresh(0))
	m := &Manager{
		state: State{
			Root:          root,
			pathToFile:    map[string]*Node{},
			pathToFolder:  map[string]*Node{root.Path: root},
			SelectedPaths: map[string]bool{},
			ExpandedPaths: map[string]bool{},
		},
	}
	return m
}

// Snapshot returns the manager's State by value; the maps are shared
// references, so callers that need isolation should treat it as
// read-only.
func (m *Manager) Snapshot() State {
	return m.state
}

// GetFile returns the File node at path in O(1).
func (m *Manager) GetFile(path string) (*Node, bool) {
	n, ok := m.state.pathToFile[path]
	return n, ok
}

// GetFolder returns the Folder node at path in O(1).
func (m *Manager) GetFolder(path string) (*Node, bool) {
	n, ok := m.state.pathToFolder[path]
	return n, ok
}

// GetNode returns the node at path in O(1), whichever kind it is.
func (m *Manager) GetNode(path string) (*Node, bool) {
	if n, ok := m.state.pathToFolder[path]; ok {
		return n, true
	}
	if n, ok := m.state.pathToFile[path]; ok {
		return n, true
	}
	return nil, false
}

func parentPathOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func hasDuplicateName(parent *Node, name, except string) bool {
	for _, c := range parent.Children {
		if c.Path == except {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// CheckDuplicateName reports whether name is free under parentPath:
// it returns ("", true) when no sibling (other than except) shares
// name case-insensitively, and a human-readable message with false
// when one does or parentPath is not a folder.
func (m *Manager) CheckDuplicateName(parentPath, name, except string) (string, bool) {
	parent, ok := m.state.pathToFolder[parentPath]
	if !ok {
		return "parent folder does not exist", false
	}
	if hasDuplicateName(parent, name, except) {
		return "a sibling named \"" + name + "\" already exists", false
	}
	return "", true
}

func (m *Manager) addIndices(n *Node) {
	if n.Kind == KindFolder {
		m.state.pathToFolder[n.Path] = n
		for _, c := range n.Children {
			m.addIndices(c)
		}
	} else {
		m.state.pathToFile[n.Path] = n
	}
}

func (m *Manager) removeIndices(n *Node) {
	if n.Kind == KindFolder {
		delete(m.state.pathToFolder, n.Path)
		for _, c := range n.Children {
			m.removeIndices(c)
		}
	} else {
		delete(m.state.pathToFile, n.Path)
	}
}

// AddFile appends a new File under parentPath. Fails if parentPath
// does not resolve to a Folder or a sibling already shares name. Node
// ids are seeded from the creation path, so trees built from the same
// listing get reproducible ids; a later move keeps the id.
func (m *Manager) AddFile(parentPath, name string, data any) (*Node, bool) {
	parent, ok := m.state.pathToFolder[parentPath]
	if !ok || hasDuplicateName(parent, name, "") {
		return nil, false
	}
	node := NewFile(idgen.Seeded(joinPath(parentPath, name), 0), parentPath, name, data)
	parent.Children = append(parent.Children, node)
	m.state.pathToFile[node.Path] = node
	debug.Log(debug.FILETREE, "AddFile: %s", node.Path)
	return node, true
}

// AddFolder appends a new empty Folder under parentPath.
func (m *Manager) AddFolder(parentPath, name string) (*Node, bool) {
	parent, ok := m.state.pathToFolder[parentPath]
	if !ok || hasDuplicateName(parent, name, "") {
		return nil, false
	}
	node := NewFolder(idgen.Seeded(joinPath(parentPath, name), 0), parentPath, name)
	parent.Children = append(parent.Children, node)
	m.state.pathToFolder[node.Path] = node
	debug.Log(debug.FILETREE, "AddFolder: %s", node.Path)
	return node, true
}

// Remove detaches path from its parent, deletes every descendant from
// the indices, and evicts any selection referencing removed paths.
// Fails if path is the root or does not exist.
func (m *Manager) Remove(path string) bool {
	if path == "" {
		return false
	}
	node, ok := m.GetNode(path)
	if !ok {
		return false
	}

	parentPath := parentPathOf(path)
	parent, ok := m.state.pathToFolder[parentPath]
	if !ok {
		return false
	}

	for i, c := range parent.Children {
		if c.Path == path {
			parent.Children = append(parent.Children[:i:i], parent.Children[i+1:]...)
			break
		}
	}

	removed := map[string]bool{}
	collectPaths(node, removed)
	m.removeIndices(node)

	for p := range removed {
		delete(m.state.SelectedPaths, p)
		if m.state.AnchorPath == p {
			m.state.AnchorPath = ""
		}
		if m.state.LastSelected == p {
			m.state.LastSelected = ""
		}
		if m.state.FocusedPath == p {
			m.state.FocusedPath = ""
		}
		delete(m.state.ExpandedPaths, p)
	}

	debug.Log(debug.FILETREE, "Remove: %s (%d descendants)", path, len(removed))
	return true
}

func collectPaths(n *Node, into map[string]bool) {
	into[n.Path] = true
	for _, c := range n.Children {
		collectPaths(c, into)
	}
}

// Move relocates sourcePath relative to targetPath at position
// (before, after, or inside). It fails without mutating state when
// source equals target, when target is a descendant of source, when
// inside is requested on a non-folder, or when the destination
// already has a sibling sharing the moved node's name.
func (m *Manager) Move(sourcePath, targetPath string, position geometry.FileDropZone) bool {
	if sourcePath == targetPath || sourcePath == "" {
		return false
	}
	source, ok := m.GetNode(sourcePath)
	if !ok {
		return false
	}
	target, ok := m.GetNode(targetPath)
	if !ok {
		return false
	}
	if position == geometry.Inside && target.Kind != KindFolder {
		return false
	}
	if isDescendantPath(targetPath, sourcePath) {
		return false
	}

	var newParentPath string
	if position == geometry.Inside {
		newParentPath = targetPath
	} else {
		newParentPath = parentPathOf(targetPath)
	}
	newParent, ok := m.state.pathToFolder[newParentPath]
	if !ok {
		return false
	}
	if hasDuplicateName(newParent, source.Name, sourcePath) {
		return false
	}

	oldParentPath := parentPathOf(sourcePath)
	oldParent, ok := m.state.pathToFolder[oldParentPath]
	if !ok {
		return false
	}
	for i, c := range oldParent.Children {
		if c.Path == sourcePath {
			oldParent.Children = append(oldParent.Children[:i:i], oldParent.Children[i+1:]...)
			break
		}
	}

	m.removeIndices(source)
	rewritePaths(source, newParentPath)
	m.addIndices(source)
	m.remapBookkeeping(sourcePath, source.Path)

	switch position {
	case geometry.Inside:
		newParent.Children = append(newParent.Children, source)
	default:
		idx := len(newParent.Children)
		for i, c := range newParent.Children {
			if c.Path == targetPath {
				idx = i
				if position == geometry.After {
					idx++
				}
				break
			}
		}
		newParent.Children = insertNodeAt(newParent.Children, idx, source)
	}

	debug.Log(debug.FILETREE, "Move: %s -> %s (%v)", sourcePath, targetPath, position)
	return true
}

func insertNodeAt(s []*Node, idx int, n *Node) []*Node {
	if idx < 0 {
		idx = 0
	}
	if idx > len(s) {
		idx = len(s)
	}
	s = append(s, nil)
	copy(s[idx+1:], s[idx:])
	s[idx] = n
	return s
}

// remapBookkeeping rewrites selection, expansion, anchor, and focus
// entries under oldPrefix to newPrefix so they keep referencing
// existing nodes after a move.
func (m *Manager) remapBookkeeping(oldPrefix, newPrefix string) {
	if oldPrefix == newPrefix {
		return
	}
	remap := func(p string) (string, bool) {
		if p == oldPrefix {
			return newPrefix, true
		}
		if strings.HasPrefix(p, oldPrefix+"/") {
			return newPrefix + p[len(oldPrefix):], true
		}
		return p, false
	}

	for _, set := range []map[string]bool{m.state.SelectedPaths, m.state.ExpandedPaths} {
		for p := range set {
			if np, changed := remap(p); changed {
				delete(set, p)
				set[np] = true
			}
		}
	}
	if np, changed := remap(m.state.AnchorPath); changed {
		m.state.AnchorPath = np
	}
	if np, changed := remap(m.state.LastSelected); changed {
		m.state.LastSelected = np
	}
	if np, changed := remap(m.state.FocusedPath); changed {
		m.state.FocusedPath = np
	}
}

// isDescendantPath reports whether candidatePath names a node at or
// under ancestorPath.
func isDescendantPath(candidatePath, ancestorPath string) bool {
	if candidatePath == ancestorPath {
		return true
	}
	if ancestorPath == "" {
		return true
	}
	return strings.HasPrefix(candidatePath, ancestorPath+"/")
}

// rewritePaths updates n's (and its descendants') path and depth after
// it has been relocated under newParentPath.
func rewritePaths(n *Node, newParentPath string) {
	n.Path = joinPath(newParentPath, n.Name)
	n.Depth = depthOf(n.Path)
	for _, c := range n.Children {
		rewritePaths(c, n.Path)
	}
}
