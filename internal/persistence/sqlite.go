package persistence

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // pure-Go driver, no cgo

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
)

// SQLite is a single-file Adapter standing in for an origin-private
// database-backed store: a flat path -> blob table for files plus a
// folders table carrying the tree shape, both addressed by the same
// path grammar the rest of the core uses. WAL mode and NORMAL
// synchronous pragmas are set on Open.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if necessary) a SQLite-backed Adapter at
// dbPath.
func OpenSQLite(dbPath string) (*SQLite, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, Unknown(err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, Unknown(err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, Unknown(err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return nil, Unknown(err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS folders (
			path TEXT PRIMARY KEY,
			parent_path TEXT NOT NULL,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			parent_path TEXT NOT NULL,
			name TEXT NOT NULL,
			data BLOB NOT NULL
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, Unknown(err)
		}
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO folders (path, parent_path, name) VALUES ('', '', '')`); err != nil {
		return nil, Unknown(err)
	}

	return &SQLite{conn: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.conn.Close() }

// ListRoot builds a recursive Tree from the folders/files tables.
func (s *SQLite) ListRoot(ctx context.Context) (Tree, error) {
	folderRows, err := s.conn.QueryContext(ctx, `SELECT path, parent_path, name FROM folders`)
	if err != nil {
		return Tree{}, Unknown(err)
	}
	defer folderRows.Close()

	type folderRow struct{ path, parent, name string }
	var folders []folderRow
	for folderRows.Next() {
		var r folderRow
		if err := folderRows.Scan(&r.path, &r.parent, &r.name); err != nil {
			return Tree{}, Unknown(err)
		}
		folders = append(folders, r)
	}

	fileRows, err := s.conn.QueryContext(ctx, `SELECT path, parent_path, name, length(data) FROM files`)
	if err != nil {
		return Tree{}, Unknown(err)
	}
	defer fileRows.Close()

	type fileRow struct {
		path, parent, name string
		size               int64
	}
	var files []fileRow
	for fileRows.Next() {
		var r fileRow
		if err := fileRows.Scan(&r.path, &r.parent, &r.name, &r.size); err != nil {
			return Tree{}, Unknown(err)
		}
		files = append(files, r)
	}

	nodes := map[string]*Tree{}
	childFolders := map[string][]string{}
	childFiles := map[string][]string{}
	for _, f := range folders {
		if isHiddenOrSystem(f.name) && f.path != "" {
			continue
		}
		nodes[f.path] = &Tree{Entry: Entry{Name: f.name, Path: f.path, IsDir: true}}
		if f.path != "" {
			childFolders[f.parent] = append(childFolders[f.parent], f.path)
		}
	}
	for _, f := range files {
		if isHiddenOrSystem(f.name) {
			continue
		}
		nodes[f.path] = &Tree{Entry: Entry{Name: f.name, Path: f.path, Size: f.size}}
		childFiles[f.parent] = append(childFiles[f.parent], f.path)
	}

	if _, ok := nodes[""]; !ok {
		return Tree{}, NotFound("")
	}

	// Depth-first assembly: a parent's subtree is complete before it is
	// copied into its own parent, so nesting of any depth survives.
	var build func(path string) Tree
	build = func(path string) Tree {
		t := *nodes[path]
		sort.Strings(childFolders[path])
		sort.Strings(childFiles[path])
		for _, p := range childFolders[path] {
			t.Children = append(t.Children, build(p))
		}
		for _, p := range childFiles[path] {
			if _, ok := nodes[p]; ok {
				t.Children = append(t.Children, *nodes[p])
			}
		}
		return t
	}
	return build(""), nil
}

// ReadFile returns the blob stored at h.Path.
func (s *SQLite) ReadFile(ctx context.Context, h Handle) ([]byte, error) {
	var data []byte
	err := s.conn.QueryRowContext(ctx, `SELECT data FROM files WHERE path = ?`, h.Path).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, NotFound(h.Path)
	}
	if err != nil {
		return nil, Unknown(err)
	}
	return data, nil
}

// WriteFile overwrites the blob stored at h.Path.
func (s *SQLite) WriteFile(ctx context.Context, h Handle, data []byte) error {
	res, err := s.conn.ExecContext(ctx, `UPDATE files SET data = ? WHERE path = ?`, data, h.Path)
	if err != nil {
		return Unknown(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFound(h.Path)
	}
	debug.Log(debug.PERSIST, "WriteFile: %s (%d bytes)", h.Path, len(data))
	return nil
}

// CreateFile inserts an empty row for name under parent.
func (s *SQLite) CreateFile(ctx context.Context, parent Handle, name string) (Handle, error) {
	path := JoinPath(parent.Path, name)
	if s.pathExists(ctx, path) {
		return Handle{}, AlreadyExists(path)
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO files (path, parent_path, name, data) VALUES (?, ?, ?, ?)`,
		path, parent.Path, name, []byte{})
	if err != nil {
		return Handle{}, Unknown(err)
	}
	return Handle{Path: path}, nil
}

// CreateFolder inserts a row for an empty folder named name under
// parent.
func (s *SQLite) CreateFolder(ctx context.Context, parent Handle, name string) (Handle, error) {
	path := JoinPath(parent.Path, name)
	if s.pathExists(ctx, path) {
		return Handle{}, AlreadyExists(path)
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO folders (path, parent_path, name) VALUES (?, ?, ?)`,
		path, parent.Path, name)
	if err != nil {
		return Handle{}, Unknown(err)
	}
	return Handle{Path: path, IsDir: true}, nil
}

func (s *SQLite) pathExists(ctx context.Context, path string) bool {
	var n int
	row := s.conn.QueryRowContext(ctx,
		`SELECT (SELECT count(*) FROM folders WHERE path = ?) + (SELECT count(*) FROM files WHERE path = ?)`,
		path, path)
	_ = row.Scan(&n)
	return n > 0
}

// Rename changes oldName to newName within parent, rewriting the path
// column of the renamed row and (for a folder) every descendant.
func (s *SQLite) Rename(ctx context.Context, parent Handle, oldName, newName string, isDir bool) error {
	oldPath := JoinPath(parent.Path, oldName)
	newPath := JoinPath(parent.Path, newName)
	if !s.pathExists(ctx, oldPath) {
		return NotFound(oldPath)
	}
	if s.pathExists(ctx, newPath) {
		return AlreadyExists(newPath)
	}
	return s.rewritePrefix(ctx, oldPath, newPath, isDir)
}

// Move relocates sourcePath under targetFolderPath, keeping its base
// name, rewriting the path of the moved row and its descendants.
func (s *SQLite) Move(ctx context.Context, root, sourcePath, targetFolderPath string, isDir bool) error {
	if targetFolderPath == sourcePath || strings.HasPrefix(targetFolderPath, sourcePath+"/") {
		return Unknown(errFolderIntoItself)
	}
	name := baseName(sourcePath)
	newPath := JoinPath(targetFolderPath, name)
	if !s.pathExists(ctx, sourcePath) {
		return NotFound(sourcePath)
	}
	if s.pathExists(ctx, newPath) {
		return AlreadyExists(newPath)
	}
	if err := s.rewritePrefix(ctx, sourcePath, newPath, isDir); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx, `UPDATE folders SET parent_path = ? WHERE path = ?`, targetFolderPath, newPath)
	if err != nil {
		return Unknown(err)
	}
	_, err = s.conn.ExecContext(ctx, `UPDATE files SET parent_path = ? WHERE path = ?`, targetFolderPath, newPath)
	if err != nil {
		return Unknown(err)
	}
	return nil
}

func (s *SQLite) rewritePrefix(ctx context.Context, oldPath, newPath string, isDir bool) error {
	if !isDir {
		_, err := s.conn.ExecContext(ctx, `UPDATE files SET path = ?, name = ? WHERE path = ?`, newPath, baseName(newPath), oldPath)
		if err != nil {
			return Unknown(err)
		}
		return nil
	}

	rows, err := s.conn.QueryContext(ctx, `SELECT path FROM folders WHERE path = ? OR path LIKE ?`, oldPath, oldPath+"/%")
	if err != nil {
		return Unknown(err)
	}
	var folderPaths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return Unknown(err)
		}
		folderPaths = append(folderPaths, p)
	}
	rows.Close()

	for _, p := range folderPaths {
		rewritten := newPath + p[len(oldPath):]
		name := baseName(rewritten)
		if _, err := s.conn.ExecContext(ctx, `UPDATE folders SET path = ?, name = ? WHERE path = ?`, rewritten, name, p); err != nil {
			return Unknown(err)
		}
		if _, err := s.conn.ExecContext(ctx, `UPDATE folders SET parent_path = ? WHERE parent_path = ?`, rewritten, p); err != nil {
			return Unknown(err)
		}
		if _, err := s.conn.ExecContext(ctx, `UPDATE files SET parent_path = ? WHERE parent_path = ?`, rewritten, p); err != nil {
			return Unknown(err)
		}
	}

	fileRows, err := s.conn.QueryContext(ctx, `SELECT path FROM files WHERE path LIKE ?`, oldPath+"/%")
	if err != nil {
		return Unknown(err)
	}
	var filePaths []string
	for fileRows.Next() {
		var p string
		if err := fileRows.Scan(&p); err != nil {
			fileRows.Close()
			return Unknown(err)
		}
		filePaths = append(filePaths, p)
	}
	fileRows.Close()
	for _, p := range filePaths {
		rewritten := newPath + p[len(oldPath):]
		if _, err := s.conn.ExecContext(ctx, `UPDATE files SET path = ?, name = ? WHERE path = ?`, rewritten, baseName(rewritten), p); err != nil {
			return Unknown(err)
		}
	}
	return nil
}

// Delete removes name (and, for a folder, its descendants) from
// parent permanently — SQLite has no trash concept.
func (s *SQLite) Delete(ctx context.Context, parent Handle, name string, isDir bool) error {
	path := JoinPath(parent.Path, name)
	if !isDir {
		res, err := s.conn.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path)
		if err != nil {
			return Unknown(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return NotFound(path)
		}
		return nil
	}

	if !s.pathExists(ctx, path) {
		return NotFound(path)
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM folders WHERE path = ? OR path LIKE ?`, path, path+"/%"); err != nil {
		return Unknown(err)
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM files WHERE path = ? OR path LIKE ?`, path, path+"/%"); err != nil {
		return Unknown(err)
	}
	return nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
