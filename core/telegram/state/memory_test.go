package state

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	st, err := m.State(ctx, 1)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st != StateIdle {
		t.Fatalf("fresh chat state = %q, want idle", st)
	}

	if err := m.SetState(ctx, 1, State("awaiting_contact")); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := m.SetData(ctx, 1, "course_id", "42"); err != nil {
		t.Fatalf("set data: %v", err)
	}

	inProgress, err := m.InProgress(ctx, 1)
	if err != nil || !inProgress {
		t.Fatalf("InProgress = %v, %v; want true, nil", inProgress, err)
	}

	v, ok, err := m.Data(ctx, 1, "course_id")
	if err != nil || !ok || v != "42" {
		t.Fatalf("Data = %q, %v, %v", v, ok, err)
	}

	// Session data is chat-scoped.
	if _, ok, _ := m.Data(ctx, 2, "course_id"); ok {
		t.Fatal("data leaked to another chat")
	}

	if err := m.ClearData(ctx, 1, "course_id"); err != nil {
		t.Fatalf("clear data: %v", err)
	}
	if _, ok, _ := m.Data(ctx, 1, "course_id"); ok {
		t.Fatal("data present after ClearData")
	}

	if err := m.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	st, _ = m.State(ctx, 1)
	if st != StateIdle {
		t.Fatalf("state after Clear = %q, want idle", st)
	}
}

func TestMemoryManagerGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()
	if err := m.SetData(ctx, 7, "k", "v"); err != nil {
		t.Fatalf("set data: %v", err)
	}

	sess, err := m.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	sess.Data["k"] = "mutated"

	v, _, _ := m.Data(ctx, 7, "k")
	if v != "v" {
		t.Fatalf("session mutated through Get copy: %q", v)
	}
}

func TestMemoryManagerInt64Helpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	if err := SetDataInt64(ctx, m, 3, "method_id", 11); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := DataInt64(ctx, m, 3, "method_id")
	if err != nil || !ok || v != 11 {
		t.Fatalf("DataInt64 = %d, %v, %v", v, ok, err)
	}

	_ = m.SetData(ctx, 3, "junk", "not-a-number")
	if _, ok, _ := DataInt64(ctx, m, 3, "junk"); ok {
		t.Fatal("malformed value parsed as int64")
	}
}

func TestMemoryManagerConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			_ = m.SetState(ctx, chatID, State("main_menu"))
			_ = m.SetData(ctx, chatID, "locale", "uz")
			_, _, _ = m.Data(ctx, chatID, "locale")
			_, _ = m.InProgress(ctx, chatID)
		}(int64(i % 4))
	}
	wg.Wait()
}
