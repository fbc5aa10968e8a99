// Command workspacectl is a demo host: it wires every package in this
// module together over a chosen persistence adapter and walks through
// a representative session (split the workspace, add a drawing file
// to the file tree, draw a stroke, save it, look up the undo hotkey,
// resize the split) so the wiring can be
// exercised without a concrete widget toolkit, which is out of scope
// for this repository.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Higashi-Kota/drawing-explorer/internal/content"
	"github.com/Higashi-Kota/drawing-explorer/internal/dock"
	"github.com/Higashi-Kota/drawing-explorer/internal/drawing"
	"github.com/Higashi-Kota/drawing-explorer/internal/filetree"
	"github.com/Higashi-Kota/drawing-explorer/internal/history"
	"github.com/Higashi-Kota/drawing-explorer/internal/hotkey"
	"github.com/Higashi-Kota/drawing-explorer/internal/persistence"
)

func main() {
	backend := flag.String("backend", "memory", "persistence backend: memory, disk, or sqlite")
	diskPath := flag.String("disk-path", "", "root directory for -backend=disk")
	sqlitePath := flag.String("sqlite-path", "", "database file for -backend=sqlite")
	flag.Parse()

	adapter, closeAdapter, err := openAdapter(*backend, *diskPath, *sqlitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "workspacectl: %v\n", err)
		os.Exit(1)
	}
	defer closeAdapter()

	ctx := context.Background()

	dockMgr := dock.NewManager()
	fileMgr := filetree.NewManager()
	registry := content.NewRegistry()
	registry.Register(content.Descriptor{Key: "drawing", Label: "Drawing canvas"})
	callbacks := content.Bind(dockMgr)

	dockMgr.Subscribe(dock.EventLayoutChanged, func(payload any) {
		fmt.Println("layoutChanged")
	})

	second := dockMgr.AddPanel("drawing", "")
	fmt.Printf("added panel %q (%s)\n", second.Title, second.ID)

	fileMgr.AddFolder("", "sketches")
	fileNode, _ := fileMgr.AddFile("sketches", "first.draw", nil)
	fmt.Printf("bound panel %s to %s\n", second.ID, fileNode.Path)

	h := history.New(100)
	h.Initialize(nil)
	h.Push([]drawing.Stroke{{
		ID:     "s1",
		Points: []drawing.StrokePoint{{X: 0, Y: 0}, {X: 10, Y: 10}},
		Color:  "#000000",
		Width:  2,
	}})
	fmt.Printf("history: dirty=%v canUndo=%v\n", h.IsDirty(), h.CanUndo())

	payload, err := h.MarshalStrokes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "workspacectl: marshal: %v\n", err)
		os.Exit(1)
	}

	handle, err := adapter.CreateFile(ctx, persistence.Handle{}, "first.draw")
	if err != nil && !isAlreadyExists(err) {
		fmt.Fprintf(os.Stderr, "workspacectl: create: %v\n", err)
		os.Exit(1)
	}
	if handle.Path == "" {
		handle = persistence.Handle{Path: "first.draw"}
	}
	if err := adapter.WriteFile(ctx, handle, payload); err != nil {
		fmt.Fprintf(os.Stderr, "workspacectl: write: %v\n", err)
		os.Exit(1)
	}
	h.MarkSaved()
	fmt.Printf("saved %s: dirty=%v\n", handle.Path, h.IsDirty())

	dispatcher := hotkey.NewDispatcher(false)
	hotkey.RegisterDefaults(dispatcher)
	cmd, ok := dispatcher.Dispatch(hotkey.KeyEvent{Name: "Z", Modifiers: hotkey.Modifiers{Ctrl: true}})
	fmt.Printf("ctrl+z dispatches %q (ok=%v)\n", cmd, ok)

	snapshot := dockMgr.Snapshot()
	if snapshot.Root.Kind == dock.KindContainer {
		if callbacks.OnResize(snapshot.Root.ID, 0.6) {
			fmt.Println("resized the split to 0.6")
		}
	}
}

func isAlreadyExists(err error) bool {
	var perr *persistence.Error
	return errors.As(err, &perr) && perr.Code == persistence.CodeAlreadyExists
}

func openAdapter(backend, diskPath, sqlitePath string) (persistence.Adapter, func(), error) {
	switch backend {
	case "memory":
		return persistence.NewMemory(), func() {}, nil
	case "disk":
		if diskPath == "" {
			return nil, nil, fmt.Errorf("-disk-path is required for -backend=disk")
		}
		return persistence.NewDisk(diskPath), func() {}, nil
	case "sqlite":
		if sqlitePath == "" {
			return nil, nil, fmt.Errorf("-sqlite-path is required for -backend=sqlite")
		}
		db, err := persistence.OpenSQLite(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown -backend %q", backend)
	}
}
