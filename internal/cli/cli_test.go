package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `[
 {"id":"1","title":"Oak Planks","description":"Solid oak","category":"Wood","condition":"new",
  "price":40,"locationName":"Berlin","locationLat":52.52,"locationLong":13.405,"createdAt":"2024-12-01"},
 {"id":"2","title":"Steel Beam","description":"I-beam","category":"Metal","condition":"cut_undamaged",
  "price":120,"locationName":"Munich","locationLat":48.14,"locationLong":11.58,"createdAt":"2024-12-03"},
 {"id":"3","title":"Pine Boards","description":"Reclaimed wood","category":"Wood","condition":"opened_unused",
  "price":25,"locationName":"Potsdam","locationLat":52.40,"locationLong":13.06,"createdAt":"2024-11-20"}
]`

type testEnv struct {
	t       *testing.T
	catalog string
	store   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return &testEnv{t: t, catalog: path, store: filepath.Join(dir, "history")}
}

func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.exec(args...)
	if err != nil {
		e.t.Fatalf("cocreatectl %v: %v\n%s", args, err, out)
	}
	return out
}

func (e *testEnv) exec(args ...string) (string, error) {
	var buf bytes.Buffer
	err := Execute(context.Background(), &buf, args)
	return buf.String(), err
}

func (e *testEnv) search(args ...string) string {
	return e.run(append([]string{"search", "--catalog", e.catalog, "--store", e.store}, args...)...)
}

func (e *testEnv) contains(out, want string) {
	e.t.Helper()
	if !strings.Contains(out, want) {
		e.t.Errorf("output %q does not contain %q", out, want)
	}
}

func TestSearch(t *testing.T) {
	t.Run("ranked text", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.search("wood")
		env.contains(out, "SCORE")
		if strings.Index(out, "Pine Boards") > strings.Index(out, "Oak Planks") {
			t.Errorf("Pine Boards should rank first:\n%s", out)
		}
		if strings.Contains(out, "Steel Beam") {
			t.Errorf("Steel Beam should not match:\n%s", out)
		}
	})

	t.Run("filters", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.search("--category", "Wood", "--max-price", "30")
		env.contains(out, "Pine Boards")
		if strings.Contains(out, "Oak Planks") {
			t.Errorf("Oak Planks is above max price:\n%s", out)
		}
	})

	t.Run("malformed price is ignored", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.search("--min-price", "cheap")
		for _, title := range []string{"Oak Planks", "Steel Beam", "Pine Boards"} {
			env.contains(out, title)
		}
	})

	t.Run("no results", func(t *testing.T) {
		env := newTestEnv(t)
		env.contains(env.search("--category", "Roofing"), "No items found")
	})

	t.Run("JSON output with sort", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.search("--sort", "price-high", "--json")
		var hits []searchHitJSON
		if err := json.Unmarshal([]byte(out), &hits); err != nil {
			t.Fatalf("decode: %v\n%s", err, out)
		}
		if len(hits) != 3 || hits[0].ID != "2" || hits[2].ID != "3" {
			t.Errorf("hits = %+v", hits)
		}
	})

	t.Run("distance", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.search("--sort", "distance", "--lat", "48.1", "--lon", "11.6", "--json")
		var hits []searchHitJSON
		if err := json.Unmarshal([]byte(out), &hits); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(hits) == 0 || hits[0].ID != "2" {
			t.Errorf("nearest = %+v", hits)
		}
	})

	t.Run("highlight", func(t *testing.T) {
		env := newTestEnv(t)
		env.contains(env.search("oak", "--highlight"), `<mark class="highlight">Oak</mark>`)
	})
}

func TestSearch_Errors(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.exec("search", "--catalog", env.catalog, "--sort", "random"); err == nil {
		t.Error("unknown sort: want error")
	}
	if _, err := env.exec("search", "--catalog", env.catalog, "--sort", "distance"); err == nil {
		t.Error("distance without origin: want error")
	}
	if _, err := env.exec("search", "--catalog", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing catalog: want error")
	}
}

func TestRecent(t *testing.T) {
	env := newTestEnv(t)

	env.search("oak")
	env.search("steel")
	env.search("oak")
	env.run("recent", "add", "bricks", "--store", env.store)

	out := env.run("recent", "list", "--store", env.store)
	if got := strings.Fields(out); strings.Join(got, ",") != "bricks,steel,oak" {
		t.Errorf("recent = %v, want [bricks steel oak]", got)
	}

	out = env.run("recent", "list", "--store", env.store, "--json")
	var queries []string
	if err := json.Unmarshal([]byte(out), &queries); err != nil || len(queries) != 3 {
		t.Errorf("json recent = %q (%v)", out, err)
	}

	env.run("recent", "clear", "--store", env.store)
	if out := env.run("recent", "list", "--store", env.store); strings.TrimSpace(out) != "" {
		t.Errorf("after clear = %q", out)
	}
}

func TestRecent_Limit(t *testing.T) {
	env := newTestEnv(t)
	for _, q := range []string{"a1", "a2", "a3", "a4", "a5", "a6"} {
		env.run("recent", "add", q, "--store", env.store)
	}
	got := strings.Fields(env.run("recent", "list", "--store", env.store))
	if strings.Join(got, ",") != "a6,a5,a4,a3,a2" {
		t.Errorf("recent = %v", got)
	}
}

func TestHighlightCmd(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("highlight", "Red Bricks", "bricks")
	if strings.TrimSpace(out) != `Red <mark class="highlight">Bricks</mark>` {
		t.Errorf("highlight = %q", out)
	}
	if _, err := env.exec("highlight", "only-text"); err == nil {
		t.Error("missing query: want error")
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	env.contains(env.run("version"), "cocreatectl dev")
	env.contains(env.run("version", "--json"), `"commit"`)
}
