package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/obinss/CoCreate-MVP/internal/db"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want %q", got, "v")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte("abc"))

	got, _ := s.Get(ctx, "k")
	got[0] = 'x'

	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestStore_MissingAndDel(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	_ = s.Set(ctx, "k", []byte("v"))
	_ = s.Del(ctx, "k")
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after Del, got %v", err)
	}
}

func TestStore_PingClosed(t *testing.T) {
	s := NewStore()
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()
	if err := s.Ping(context.Background()); !errors.Is(err, db.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
