package inspect

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/testutil/testlog"
	"github.com/pelletier/go-toml/v2"
)

func samplePdu(t *testing.T, typ pdu.Type) *pdu.Pdu {
	t.Helper()
	p, err := pdu.SamplePdu(5, typ)
	if err != nil {
		t.Fatalf("sample %s: %v", typ, err)
	}
	return p
}

func TestRenderTextIndentsInWireOrder(t *testing.T) {
	testlog.Start(t)

	out := RenderText(pdu.Describe(samplePdu(t, pdu.TypeEntityState)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "EntityState (Pdu)" {
		t.Fatalf("unexpected root line %q", lines[0])
	}
	if lines[1] != "    header (Header)" {
		t.Fatalf("unexpected header line %q", lines[1])
	}
	if !strings.Contains(out, "        forceId: 1 (uint8)\n") {
		t.Fatalf("missing forceId line:\n%s", out)
	}
	if !strings.Contains(out, "            characters: TANK 01 (chars[11])\n") {
		t.Fatalf("missing marking line:\n%s", out)
	}
	header := strings.Index(out, "header (Header)")
	body := strings.Index(out, "body (EntityState)")
	if header < 0 || body < header {
		t.Fatalf("expected header before body:\n%s", out)
	}
}

func TestRenderTOMLBuildsTablesAndArrays(t *testing.T) {
	testlog.Start(t)

	out, err := RenderTOML(pdu.Describe(samplePdu(t, pdu.TypeEntityState)))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered toml does not parse: %v\n%s", err, out)
	}
	root := doc["EntityState"].(map[string]any)
	body := root["body"].(map[string]any)
	if body["forceId"] != "1" {
		t.Fatalf("unexpected forceId %v", body["forceId"])
	}
	params, ok := body["articulationParameters"].([]any)
	if !ok || len(params) != 2 {
		t.Fatalf("expected 2 articulation parameters, got %#v", body["articulationParameters"])
	}
}

func TestRenderTOMLEmptyCollection(t *testing.T) {
	testlog.Start(t)

	p := pdu.New(1, &pdu.Comment{})
	out, err := RenderTOML(pdu.Describe(p))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("rendered toml does not parse: %v\n%s", err, out)
	}
}

func TestRecentKeepsNewestFirst(t *testing.T) {
	testlog.Start(t)

	r := NewRecent(3)
	for i := 0; i < 5; i++ {
		r.Add(Summary{ID: string(rune('a' + i))})
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", r.Len())
	}
	got := r.Snapshot(0)
	if len(got) != 3 || got[0].ID != "e" || got[1].ID != "d" || got[2].ID != "c" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if got := r.Snapshot(1); len(got) != 1 || got[0].ID != "e" {
		t.Fatalf("unexpected limited snapshot %+v", got)
	}
}

func TestRecentPartialFill(t *testing.T) {
	testlog.Start(t)

	r := NewRecent(4)
	r.Add(Summary{ID: "a"})
	r.Add(Summary{ID: "b"})
	got := r.Snapshot(10)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestRecentConcurrentAdd(t *testing.T) {
	testlog.Start(t)

	r := NewRecent(16)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Add(Summary{Type: "EntityState"})
				_ = r.Snapshot(4)
			}
		}()
	}
	wg.Wait()
	if r.Len() != 16 {
		t.Fatalf("expected full ring, got %d", r.Len())
	}
}

func TestSummarize(t *testing.T) {
	testlog.Start(t)

	p := samplePdu(t, pdu.TypeFire)
	now := time.Now()
	s := Summarize(p, "id-1", "127.0.0.1:3000", now)
	if s.Type != "Fire" || s.Family != "Warfare" || s.Exercise != 5 || s.Length != 96 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Hash != pdu.Hash(p) || s.Tree.Name != "Fire" {
		t.Fatalf("summary hash/tree mismatch")
	}
}
