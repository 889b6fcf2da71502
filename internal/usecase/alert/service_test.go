package alert

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/obinss/CoCreate-MVP/internal/domain"
	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// --- Mocks ---

type mockRepo struct {
	alerts map[string][]domalert.Alert
	err    error
}

func newMockRepo() *mockRepo { return &mockRepo{alerts: map[string][]domalert.Alert{}} }

func (m *mockRepo) List(_ context.Context, scope string) ([]domalert.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]domalert.Alert{}, m.alerts[scope]...), nil
}

func (m *mockRepo) Save(_ context.Context, scope string, a []domalert.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.alerts[scope] = append([]domalert.Alert(nil), a...)
	return nil
}

type mockSource struct {
	items []item.Item
	err   error
}

func (m *mockSource) Name() string { return "mock" }
func (m *mockSource) Items(_ context.Context) ([]item.Item, error) {
	return m.items, m.err
}

func listings() []item.Item {
	return []item.Item{
		{ID: "p1", Title: "Oak Planks", Category: "Wood", Condition: item.ConditionNew,
			Price: 40, LocationName: "Berlin", Latitude: 52.52, Longitude: 13.405},
		{ID: "p2", Title: "Steel Beam", Category: "Metal", Condition: item.ConditionCutUndamaged,
			Price: 120, LocationName: "Munich", Latitude: 48.14, Longitude: 11.58},
		{ID: "p3", Title: "Oak Veneer", Category: "Wood", Condition: item.ConditionOpenedUnused,
			Price: 15, LocationName: "Potsdam", Latitude: 52.40, Longitude: 13.06},
		{ID: "bad", Title: "Oak", Category: "Timber"},
	}
}

func newService(t *testing.T, repo Repository, src Source) *Service {
	t.Helper()
	svc, err := New(repo, src, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(svc.Release)
	return svc
}

// --- Tests ---

func TestCreate_ValidatesAndRejectsDuplicates(t *testing.T) {
	svc := newService(t, newMockRepo(), &mockSource{})
	ctx := context.Background()

	a, err := svc.Create(ctx, "u1", domalert.Alert{ID: "near", Latitude: 52.5, Longitude: 13.4, Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.RadiusKm != domalert.DefaultRadiusKm {
		t.Errorf("RadiusKm = %v, want default", a.RadiusKm)
	}

	if _, err := svc.Create(ctx, "u1", domalert.Alert{ID: "near"}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("duplicate: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", domalert.Alert{ID: "x", Category: "Glass"}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("invalid: expected ErrInvalidRequest, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newService(t, repo, &mockSource{})
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := svc.Create(ctx, "", domalert.Alert{ID: id}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	if err := svc.Delete(ctx, "", "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := svc.List(ctx, "")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("List() = %+v", got)
	}
	if err := svc.Delete(ctx, "", "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckMatches(t *testing.T) {
	repo := newMockRepo()
	repo.alerts["u1"] = []domalert.Alert{
		{ID: "oak", Keywords: "oak", Active: true},
		{ID: "paused", Keywords: "steel", Active: false},
		{ID: "cheap-wood", Category: "Wood", MaxPrice: 20, Active: true},
		{ID: "nothing", Keywords: "granite", Active: true},
		{ID: "near-berlin", Name: "Near Berlin", Latitude: 52.52, Longitude: 13.40, RadiusKm: 50, Active: true},
	}
	svc := newService(t, repo, &mockSource{items: listings()})

	matches, err := svc.CheckMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CheckMatches: %v", err)
	}

	want := map[string][]string{
		"oak":         {"p1", "p3"},
		"cheap-wood":  {"p3"},
		"near-berlin": {"p1", "p3"},
	}
	order := []string{"oak", "cheap-wood", "near-berlin"}
	if len(matches) != len(order) {
		t.Fatalf("got %d matches, want %d: %+v", len(matches), len(order), matches)
	}
	for i, m := range matches {
		if m.AlertID != order[i] {
			t.Errorf("match %d = %s, want %s", i, m.AlertID, order[i])
		}
		ids := make([]string, len(m.Items))
		for j := range m.Items {
			ids[j] = m.Items[j].ID
		}
		if fmt.Sprint(ids) != fmt.Sprint(want[m.AlertID]) {
			t.Errorf("alert %s items = %v, want %v", m.AlertID, ids, want[m.AlertID])
		}
	}
	if matches[2].AlertName != "Near Berlin" {
		t.Errorf("AlertName = %q", matches[2].AlertName)
	}
}

func TestCheckMatches_ManyAlerts(t *testing.T) {
	repo := newMockRepo()
	for i := 0; i < 50; i++ {
		repo.alerts[""] = append(repo.alerts[""], domalert.Alert{ID: fmt.Sprintf("a%02d", i), Keywords: "oak", Active: true})
	}
	svc := newService(t, repo, &mockSource{items: listings()})

	matches, err := svc.CheckMatches(context.Background(), "")
	if err != nil {
		t.Fatalf("CheckMatches: %v", err)
	}
	if len(matches) != 50 {
		t.Fatalf("got %d matches, want 50", len(matches))
	}
	for i, m := range matches {
		if m.AlertID != fmt.Sprintf("a%02d", i) {
			t.Fatalf("match %d = %s, creation order not kept", i, m.AlertID)
		}
	}
}

func TestCheckMatches_Errors(t *testing.T) {
	svc := newService(t, &mockRepo{err: errors.New("kv down")}, &mockSource{})
	if _, err := svc.CheckMatches(context.Background(), ""); err == nil {
		t.Error("expected repo error")
	}

	svc = newService(t, newMockRepo(), &mockSource{err: errors.New("timeout")})
	if _, err := svc.CheckMatches(context.Background(), ""); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}
