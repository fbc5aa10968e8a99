package persistence

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/Higashi-Kota/drawing-explorer/internal/debug"
	"github.com/Higashi-Kota/drawing-explorer/internal/trash"
)

// Disk is a local-filesystem Adapter rooted at Base. Deletes route
// through internal/trash by default, following the same
// trash-over-delete convention; setting PermanentDelete makes every
// Delete on this adapter remove entries outright.
type Disk struct {
	Base            string
	PermanentDelete bool
}

// NewDisk returns a Disk adapter rooted at base. base must already
// exist; the adapter never creates it.
func NewDisk(base string) *Disk {
	return &Disk{Base: base}
}

func (d *Disk) abs(path string) string {
	if path == "" {
		return d.Base
	}
	return filepath.Join(d.Base, filepath.FromSlash(path))
}

// ListRoot walks the tree rooted at Base, listing each directory one
// level at a time via fastwalk, recursing into subdirectories to
// build the full snapshot. Hidden/system entries are filtered out.
func (d *Disk) ListRoot(ctx context.Context) (Tree, error) {
	root, err := d.listDir("", d.Base)
	if err != nil {
		return Tree{}, classifyOSError("", err)
	}
	return root, nil
}

func (d *Disk) listDir(relPath, absPath string) (Tree, error) {
	t := Tree{Entry: Entry{Name: filepath.Base(absPath), Path: relPath, IsDir: true}}

	conf := &fastwalk.Config{Follow: true}
	baseLen := len(absPath)

	var walkErr error
	err := fastwalk.Walk(conf, absPath, func(fullPath string, de fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.PERSIST_WALK, "ListRoot: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == absPath {
			return nil
		}
		rest := fullPath[baseLen:]
		rest = strings.TrimPrefix(rest, string(filepath.Separator))
		if strings.ContainsRune(rest, filepath.Separator) {
			if de.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := de.Name()
		if isHiddenOrSystem(name) {
			if de.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		childRel := JoinPath(relPath, name)
		if de.IsDir() {
			child, err := d.listDir(childRel, fullPath)
			if err != nil {
				walkErr = err
				return fastwalk.SkipDir
			}
			t.Children = append(t.Children, child)
			return fastwalk.SkipDir
		}

		info, statErr := fastwalk.StatDirEntry(fullPath, de)
		if statErr != nil {
			debug.Log(debug.PERSIST_WALK, "ListRoot: stat error for %q: %v", fullPath, statErr)
			return nil
		}
		debug.Log(debug.PERSIST_WALK, "ListRoot: %s (%s)", childRel, humanize.Bytes(uint64(info.Size())))
		t.Children = append(t.Children, Tree{Entry: Entry{
			Name:    name,
			Path:    childRel,
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		}})
		return nil
	})
	if err != nil {
		return Tree{}, err
	}
	return t, walkErr
}

// ReadFile reads the file at h.Path relative to Base.
func (d *Disk) ReadFile(ctx context.Context, h Handle) ([]byte, error) {
	data, err := os.ReadFile(d.abs(h.Path))
	if err != nil {
		return nil, classifyOSError(h.Path, err)
	}
	return data, nil
}

// WriteFile writes data to h.Path relative to Base, logging the
// human-readable size once the write completes.
func (d *Disk) WriteFile(ctx context.Context, h Handle, data []byte) error {
	if err := os.WriteFile(d.abs(h.Path), data, 0o644); err != nil {
		return classifyOSError(h.Path, err)
	}
	debug.Log(debug.PERSIST, "WriteFile: %s (%s)", h.Path, humanize.Bytes(uint64(len(data))))
	return nil
}

// CreateFile creates an empty file named name under parent.
func (d *Disk) CreateFile(ctx context.Context, parent Handle, name string) (Handle, error) {
	path := JoinPath(parent.Path, name)
	f, err := os.OpenFile(d.abs(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Handle{}, AlreadyExists(path)
		}
		return Handle{}, classifyOSError(path, err)
	}
	f.Close()
	return Handle{Path: path}, nil
}

// CreateFolder creates an empty directory named name under parent.
func (d *Disk) CreateFolder(ctx context.Context, parent Handle, name string) (Handle, error) {
	path := JoinPath(parent.Path, name)
	if err := os.Mkdir(d.abs(path), 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Handle{}, AlreadyExists(path)
		}
		return Handle{}, classifyOSError(path, err)
	}
	return Handle{Path: path, IsDir: true}, nil
}

// Rename renames oldName to newName within parent.
func (d *Disk) Rename(ctx context.Context, parent Handle, oldName, newName string, isDir bool) error {
	oldPath := JoinPath(parent.Path, oldName)
	newPath := JoinPath(parent.Path, newName)
	if _, err := os.Stat(d.abs(newPath)); err == nil {
		return AlreadyExists(newPath)
	}
	if err := os.Rename(d.abs(oldPath), d.abs(newPath)); err != nil {
		return classifyOSError(oldPath, err)
	}
	return nil
}

// Move relocates sourcePath under targetFolderPath, keeping its base
// name. root is unused by Disk (paths are already relative to Base)
// but kept to satisfy Adapter's interface shared with Memory.
func (d *Disk) Move(ctx context.Context, root, sourcePath, targetFolderPath string, isDir bool) error {
	name := filepath.Base(sourcePath)
	dst := JoinPath(targetFolderPath, name)
	if _, err := os.Stat(d.abs(dst)); err == nil {
		return AlreadyExists(dst)
	}
	if err := os.Rename(d.abs(sourcePath), d.abs(dst)); err != nil {
		return classifyOSError(sourcePath, err)
	}
	return nil
}

// Delete removes name from parent. By default this moves the entry to
// the system trash via internal/trash; set PermanentDelete to bypass
// it.
func (d *Disk) Delete(ctx context.Context, parent Handle, name string, isDir bool) error {
	path := JoinPath(parent.Path, name)
	abs := d.abs(path)
	if d.PermanentDelete {
		if err := trash.PermanentDelete(abs); err != nil {
			return classifyOSError(path, err)
		}
		return nil
	}
	if err := trash.MoveToTrash(abs); err != nil {
		return classifyOSError(path, err)
	}
	debug.Log(debug.PERSIST, "Delete: moved %s to %s", path, trash.DisplayName())
	return nil
}

// Watch starts an fsnotify watch on path (relative to Base) and calls
// onChange whenever an external write, create, remove, or rename
// occurs there. It returns a stop function that closes the underlying
// watcher. A host's binding layer reconciles a completed save
// against whichever node currently holds the target path, not by
// identity — Watch exists to let a host learn that path may need
// re-reading, nothing more.
func (d *Disk) Watch(path string, onChange func()) (stop func() error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, Unknown(err)
	}
	if err := w.Add(d.abs(path)); err != nil {
		w.Close()
		return nil, classifyOSError(path, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w.Close, nil
}

func classifyOSError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound(path)
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists(path)
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied(path, err)
	default:
		return &Error{Code: CodeUnknown, Path: path, Cause: err}
	}
}
