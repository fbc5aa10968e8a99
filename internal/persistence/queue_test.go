package persistence

import (
	"context"
	"testing"
)

func TestQueueDelegatesToAdapter(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemory())
	defer q.Close()

	h, err := q.CreateFile(ctx, Handle{}, "a.draw")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := q.WriteFile(ctx, h, []byte("payload")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := q.ReadFile(ctx, h)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("ReadFile = %q, want %q", got, "payload")
	}

	tree, err := q.ListRoot(ctx)
	if err != nil {
		t.Fatalf("ListRoot: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("ListRoot children = %d, want 1", len(tree.Children))
	}
}

func TestQueueSerializesConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemory())
	defer q.Close()

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			name := string(rune('a' + i%26))
			_, err := q.CreateFile(ctx, Handle{}, name+string(rune('0'+i/26)))
			done <- err
		}()
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent CreateFile: %v", err)
		}
	}

	tree, err := q.ListRoot(ctx)
	if err != nil {
		t.Fatalf("ListRoot: %v", err)
	}
	if len(tree.Children) != n {
		t.Fatalf("ListRoot children = %d, want %d", len(tree.Children), n)
	}
}
