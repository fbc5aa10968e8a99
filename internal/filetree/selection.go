package filetree

import (
	"sort"
	"strings"

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
)

// sortedChildren returns folder's children ordered the way the UI
// renders them: folders before files, both ordered by their lower-cased
// names compared byte-wise (not by locale collation). The manager
// itself stores children in insertion
// order; this sort happens only at visibility/render time, as a
// directories-first stable sort.
func sortedChildren(folder *Node) []*Node {
	out := append([]*Node(nil), folder.Children...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Kind == KindFolder) != (b.Kind == KindFolder) {
			return a.Kind == KindFolder
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return out
}

// VisibleNodes returns the depth-first sequence of nodes the UI would
// render given the current expansion state: folders are descended into
// only when expanded. This is the domain over which SelectRange
// operates.
func (m *Manager) VisibleNodes() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n)
		if n.Kind != KindFolder {
			return
		}
		if n.Path != "" && !m.state.ExpandedPaths[n.Path] {
			return
		}
		for _, c := range sortedChildren(n) {
			walk(c)
		}
	}
	// The root folder itself is never listed as a row; only its
	// children are.
	for _, c := range sortedChildren(m.state.Root) {
		walk(c)
	}
	return out
}

func visibleIndexOf(visible []*Node, path string) int {
	for i, n := range visible {
		if n.Path == path {
			return i
		}
	}
	return -1
}

// Select replaces the selection with {path} and sets anchor to path.
// Fails if path does not exist.
func (m *Manager) Select(path string) bool {
	if _, ok := m.GetNode(path); !ok {
		return false
	}
	m.state.SelectedPaths = map[string]bool{path: true}
	m.state.AnchorPath = path
	m.state.LastSelected = path
	m.state.IsAddMode = false
	debug.Log(debug.FILETREE, "Select: %s", path)
	return true
}

// ToggleSelection flips path's membership in the selection, sets
// anchor to path, and marks the selection as additive. Fails if path
// does not exist.
func (m *Manager) ToggleSelection(path string) bool {
	if _, ok := m.GetNode(path); !ok {
		return false
	}
	if m.state.SelectedPaths == nil {
		m.state.SelectedPaths = map[string]bool{}
	}
	if m.state.SelectedPaths[path] {
		delete(m.state.SelectedPaths, path)
	} else {
		m.state.SelectedPaths[path] = true
	}
	m.state.AnchorPath = path
	m.state.LastSelected = path
	m.state.IsAddMode = true
	debug.Log(debug.FILETREE, "ToggleSelection: %s", path)
	return true
}

// SelectRange selects the contiguous run of visible nodes between the
// current anchor and path, inclusive. When addToExisting is false, the
// existing selection is cleared first and the anchor is left
// unchanged if one already exists (falling back to path otherwise).
// Fails if path does not exist.
func (m *Manager) SelectRange(path string, addToExisting bool) bool {
	if _, ok := m.GetNode(path); !ok {
		return false
	}

	anchor := m.state.AnchorPath
	if anchor == "" {
		anchor = path
		m.state.AnchorPath = anchor
	}

	visible := m.VisibleNodes()
	ai := visibleIndexOf(visible, anchor)
	pi := visibleIndexOf(visible, path)
	if ai < 0 || pi < 0 {
		return false
	}
	lo, hi := ai, pi
	if lo > hi {
		lo, hi = hi, lo
	}

	if !addToExisting {
		m.state.SelectedPaths = map[string]bool{}
	} else if m.state.SelectedPaths == nil {
		m.state.SelectedPaths = map[string]bool{}
	}
	for i := lo; i <= hi; i++ {
		m.state.SelectedPaths[visible[i].Path] = true
	}
	m.state.LastSelected = path
	m.state.IsAddMode = addToExisting
	debug.Log(debug.FILETREE, "SelectRange: %s..%s (add=%v)", anchor, path, addToExisting)
	return true
}

// ClearSelection empties the selection and resets anchor/lastSelected.
func (m *Manager) ClearSelection() {
	m.state.SelectedPaths = map[string]bool{}
	m.state.AnchorPath = ""
	m.state.LastSelected = ""
	m.state.IsAddMode = false
}

// IsSelected reports whether path is currently selected.
func (m *Manager) IsSelected(path string) bool {
	return m.state.SelectedPaths[path]
}

// Expand marks folderPath expanded. Fails if it is not a folder.
func (m *Manager) Expand(folderPath string) bool {
	if n, ok := m.GetFolder(folderPath); !ok || n.Kind != KindFolder {
		return false
	}
	if m.state.ExpandedPaths == nil {
		m.state.ExpandedPaths = map[string]bool{}
	}
	m.state.ExpandedPaths[folderPath] = true
	return true
}

// Collapse marks folderPath collapsed. Fails if it is not a folder.
func (m *Manager) Collapse(folderPath string) bool {
	if _, ok := m.GetFolder(folderPath); !ok {
		return false
	}
	delete(m.state.ExpandedPaths, folderPath)
	return true
}

// Toggle flips folderPath's expansion state.
func (m *Manager) Toggle(folderPath string) bool {
	if _, ok := m.GetFolder(folderPath); !ok {
		return false
	}
	if m.state.ExpandedPaths[folderPath] {
		return m.Collapse(folderPath)
	}
	return m.Expand(folderPath)
}

// ExpandAll expands every folder in the tree.
func (m *Manager) ExpandAll() {
	if m.state.ExpandedPaths == nil {
		m.state.ExpandedPaths = map[string]bool{}
	}
	for path, n := range m.state.pathToFolder {
		if n.Path == "" {
			continue
		}
		m.state.ExpandedPaths[path] = true
	}
}

// CollapseAll collapses every folder in the tree.
func (m *Manager) CollapseAll() {
	m.state.ExpandedPaths = map[string]bool{}
}

// ExpandSiblings expands every sibling folder of path (path's parent's
// folder children), including path itself if it is a folder. Fails if
// path does not exist.
func (m *Manager) ExpandSiblings(path string) bool {
	if _, ok := m.GetNode(path); !ok {
		return false
	}
	parent, ok := m.state.pathToFolder[parentPathOf(path)]
	if !ok {
		return false
	}
	if m.state.ExpandedPaths == nil {
		m.state.ExpandedPaths = map[string]bool{}
	}
	for _, c := range parent.Children {
		if c.Kind == KindFolder {
			m.state.ExpandedPaths[c.Path] = true
		}
	}
	return true
}

// SetFocused sets the focused path, used for keyboard navigation
// anchoring. An empty path clears focus.
func (m *Manager) SetFocused(path string) bool {
	if path != "" {
		if _, ok := m.GetNode(path); !ok {
			return false
		}
	}
	m.state.FocusedPath = path
	return true
}

// FilterVisible returns the paths of visible nodes whose name matches
// pattern as a case-insensitive glob (`*` and `?` wildcards),
// enrichment adapted from a directory glob matcher, ported
// here to walk tree nodes instead of os.FileInfo entries.
func (m *Manager) FilterVisible(pattern string) []string {
	pattern = strings.ToLower(pattern)
	var out []string
	for _, n := range m.VisibleNodes() {
		if matchGlob(pattern, strings.ToLower(n.Name)) {
			out = append(out, n.Path)
		}
	}
	return out
}

// matchGlob is a small `*`/`?` glob matcher over already-lowercased
// strings; `*` matches any run of characters, `?` matches exactly one.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	return globMatch([]rune(pattern), []rune(name))
}

func globMatch(pattern, name []rune) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	switch pattern[0] {
	case '*':
		if globMatch(pattern[1:], name) {
			return true
		}
		for i := 0; i < len(name); i++ {
			if globMatch(pattern[1:], name[i+1:]) {
				return true
			}
		}
		return false
	case '?':
		if len(name) == 0 {
			return false
		}
		return globMatch(pattern[1:], name[1:])
	default:
		if len(name) == 0 || name[0] != pattern[0] {
			return false
		}
		return globMatch(pattern[1:], name[1:])
	}
}
