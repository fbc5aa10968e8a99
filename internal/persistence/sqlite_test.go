package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteCreateReadWriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	h, err := s.CreateFile(ctx, Handle{}, "note.draw")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := s.WriteFile(ctx, h, []byte(`{"strokes":[]}`)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := s.ReadFile(ctx, h)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"strokes":[]}` {
		t.Fatalf("ReadFile = %q, want the written payload", got)
	}
}

func TestSQLiteListRootNestsFolders(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	docs, err := s.CreateFolder(ctx, Handle{}, "docs")
	if err != nil {
		t.Fatalf("CreateFolder(docs): %v", err)
	}
	inner, err := s.CreateFolder(ctx, docs, "inner")
	if err != nil {
		t.Fatalf("CreateFolder(inner): %v", err)
	}
	if _, err := s.CreateFile(ctx, inner, "deep.draw"); err != nil {
		t.Fatalf("CreateFile(deep.draw): %v", err)
	}

	tree, err := s.ListRoot(ctx)
	if err != nil {
		t.Fatalf("ListRoot: %v", err)
	}
	if len(tree.Children) != 1 || tree.Children[0].Path != "docs" {
		t.Fatalf("root children = %+v, want [docs]", tree.Children)
	}
	docsNode := tree.Children[0]
	if len(docsNode.Children) != 1 || docsNode.Children[0].Path != "docs/inner" {
		t.Fatalf("docs children = %+v, want [docs/inner]", docsNode.Children)
	}
	innerNode := docsNode.Children[0]
	if len(innerNode.Children) != 1 || innerNode.Children[0].Path != "docs/inner/deep.draw" {
		t.Fatalf("inner children = %+v, want [docs/inner/deep.draw]", innerNode.Children)
	}
}

func TestSQLiteMoveRewritesDescendantPaths(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	a, _ := s.CreateFolder(ctx, Handle{}, "a")
	s.CreateFolder(ctx, Handle{}, "b")
	child, _ := s.CreateFolder(ctx, a, "child")
	s.CreateFile(ctx, child, "leaf.draw")

	if err := s.Move(ctx, "", "a/child", "b", true); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if _, err := s.ReadFile(ctx, Handle{Path: "b/child/leaf.draw"}); err != nil {
		t.Fatalf("ReadFile at moved path: %v", err)
	}
	_, err := s.ReadFile(ctx, Handle{Path: "a/child/leaf.draw"})
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != CodeNotFound {
		t.Fatalf("old path still readable after move: err = %v", err)
	}
}

func TestSQLiteDeleteFolderRemovesDescendants(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	docs, _ := s.CreateFolder(ctx, Handle{}, "docs")
	s.CreateFile(ctx, docs, "a.draw")

	if err := s.Delete(ctx, Handle{}, "docs", true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := s.ReadFile(ctx, Handle{Path: "docs/a.draw"})
	var perr *Error
	if !errors.As(err, &perr) || perr.Code != CodeNotFound {
		t.Fatalf("descendant still readable after folder delete: err = %v", err)
	}
}
