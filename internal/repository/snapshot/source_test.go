package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

var oak = item.Item{ID: "1", Title: "Oak Planks", Category: "Wood", Condition: item.ConditionNew,
	Price: 40, LocationName: "Berlin"}

func TestItems_StoresSnapshot(t *testing.T) {
	in := &mockSource{items: []item.Item{oak}}
	s, ms, counter := newTestSource(t, in)
	ctx := context.Background()

	got, err := s.Items(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("items = %+v", got)
	}
	if _, ok := ms.data["test:catalog_snapshot:remote"]; !ok {
		t.Fatalf("snapshot not stored under %s", s.Key())
	}

	// Unchanged catalog is not rewritten.
	if _, err := s.Items(ctx); err != nil {
		t.Fatal(err)
	}
	if ms.setCalls != 1 {
		t.Errorf("Set called %d times, want 1", ms.setCalls)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("stored")); v != 1 {
		t.Errorf("stored = %v, want 1", v)
	}

	in.items = append(in.items, item.Item{ID: "2", Title: "Steel Beam"})
	if _, err := s.Items(ctx); err != nil {
		t.Fatal(err)
	}
	if ms.setCalls != 2 {
		t.Errorf("changed catalog: Set called %d times, want 2", ms.setCalls)
	}
}

func TestItems_ServesSnapshotOnFailure(t *testing.T) {
	in := &mockSource{items: []item.Item{oak}}
	s, _, counter := newTestSource(t, in)
	ctx := context.Background()

	if _, err := s.Items(ctx); err != nil {
		t.Fatal(err)
	}

	in.items, in.err = nil, errors.New("connection refused")
	got, err := s.Items(ctx)
	if err != nil {
		t.Fatalf("expected snapshot, got error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Oak Planks" {
		t.Errorf("items = %+v", got)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("hit")); v != 1 {
		t.Errorf("hit = %v, want 1", v)
	}
}

func TestItems_NoSnapshot(t *testing.T) {
	inErr := errors.New("connection refused")
	s, _, counter := newTestSource(t, &mockSource{err: inErr})

	_, err := s.Items(context.Background())
	if !errors.Is(err, inErr) {
		t.Fatalf("err = %v, want inner error", err)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("miss")); v != 1 {
		t.Errorf("miss = %v, want 1", v)
	}
}

func TestItems_StoreErrorsAreNotFatal(t *testing.T) {
	in := &mockSource{items: []item.Item{oak}}
	s, ms, _ := newTestSource(t, in)
	ms.setFn = func(context.Context, string, []byte) error { return errors.New("READONLY") }

	got, err := s.Items(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("Items = %v, %v", got, err)
	}

	// A failed write is retried on the next call.
	ms.setFn = nil
	if _, err := s.Items(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ms.setCalls != 2 {
		t.Errorf("Set called %d times, want 2", ms.setCalls)
	}
}

func TestItems_CorruptSnapshot(t *testing.T) {
	s, ms, _ := newTestSource(t, &mockSource{err: errors.New("down")})
	ms.getFn = func(context.Context, string) ([]byte, error) { return []byte("{not json"), nil }

	if _, err := s.Items(context.Background()); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestNew_NilCounterAndLogger(t *testing.T) {
	s := New(&mockSource{err: errors.New("down")}, &mockKVStore{}, "", nil, nil)
	if _, err := s.Items(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Name() != "remote" {
		t.Errorf("Name = %q", s.Name())
	}
}
