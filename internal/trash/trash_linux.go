//go:build linux

package trash

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Linux follows the freedesktop.org trash layout: $XDG_DATA_HOME/Trash
// holds a files/ directory with the entries and an info/ directory
// with one .trashinfo record per entry.

func trashRoot() (string, error) {
	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		data = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(data, "Trash"), nil
}

func moveToTrash(path string) error {
	root, err := trashRoot()
	if err != nil {
		return err
	}
	filesDir := filepath.Join(root, "files")
	infoDir := filepath.Join(root, "info")
	for _, dir := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	dest := uniqueDest(filesDir, filepath.Base(abs))
	record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: abs}).EscapedPath(), time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(infoDir, filepath.Base(dest)+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(record), 0o600); err != nil {
		return err
	}
	if err := os.Rename(abs, dest); err != nil {
		os.Remove(infoPath)
		return err
	}
	return nil
}

// uniqueDest inserts a ".N" before the extension until the name is
// free in dir.
func uniqueDest(dir, base string) string {
	dest := filepath.Join(dir, base)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s.%d%s", stem, n, ext))
	}
}

func displayName() string { return "Trash" }
