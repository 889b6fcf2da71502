package recent

import (
	"context"
	"errors"
	"testing"

	"github.com/obinss/CoCreate-MVP/internal/db/memory"
)

type failingKV struct{ err error }

func (f *failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingKV) Set(context.Context, string, []byte) error   { return f.err }
func (f *failingKV) Del(context.Context, string) error           { return f.err }

func TestStore_Key(t *testing.T) {
	if got := New(memory.NewStore(), "cocreate:", "").Key(); got != "cocreate:recent_searches:global" {
		t.Errorf("Key() = %q", got)
	}
	if got := New(memory.NewStore(), "", "user-7").Key(); got != "recent_searches:user-7" {
		t.Errorf("Key() = %q", got)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := New(memory.NewStore(), "cocreate:", "global")
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %v", got)
	}
}

func TestStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewStore(), "cocreate:", "global")

	if err := s.Save(ctx, []string{"oak", "steel"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != "oak" || got[1] != "steel" {
		t.Errorf("Load() = %v", got)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = s.Load(ctx)
	if len(got) != 0 {
		t.Errorf("expected empty after Clear, got %v", got)
	}
}

func TestStore_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	a := New(kv, "p:", "a")
	b := New(kv, "p:", "b")

	_ = a.Save(ctx, []string{"oak"})
	got, _ := b.Load(ctx)
	if len(got) != 0 {
		t.Errorf("scope b sees %v", got)
	}
}

func TestStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	s := New(kv, "", "global")
	_ = kv.Set(ctx, s.Key(), []byte("{not json"))

	if _, err := s.Load(ctx); err == nil {
		t.Error("expected decode error")
	}
}

func TestStore_BackendErrors(t *testing.T) {
	boom := errors.New("connection refused")
	s := New(&failingKV{err: boom}, "", "global")
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Load error = %v", err)
	}
	if err := s.Save(ctx, []string{"x"}); !errors.Is(err, boom) {
		t.Errorf("Save error = %v", err)
	}
	if err := s.Clear(ctx); !errors.Is(err, boom) {
		t.Errorf("Clear error = %v", err)
	}
}
