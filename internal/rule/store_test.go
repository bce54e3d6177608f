package rule

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wichananm65/online-supermarket/internal/category"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileStore_MissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), nil)
	if got := s.LoadRules(context.Background()); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil rules, got %v", got)
	}
}

func TestFileStore_Malformed(t *testing.T) {
	for _, body := range []string{`{not json`, `{"antecedents": ["tivi"]}`, ``} {
		s := NewFileStore(writeArtifact(t, body), nil)
		if got := s.LoadRules(context.Background()); len(got) != 0 {
			t.Fatalf("body %q: expected no rules, got %v", body, got)
		}
	}
}

func TestFileStore_LiftFilterAndDedupe(t *testing.T) {
	body := `[
		{"antecedents": ["tivi"], "consequents": ["loa"], "confidence": 0.4, "lift": 1.8},
		{"antecedents": ["tivi"], "consequents": ["loa"], "confidence": 0.9, "lift": 3.0},
		{"antecedents": ["loa", "tivi"], "consequents": ["ke_tivi"], "lift": 1.2},
		{"antecedents": ["tivi", "loa"], "consequents": ["ke_tivi"], "lift": 2.2},
		{"antecedents": ["quat"], "consequents": ["dieu_hoa"], "lift": 0.7},
		{"antecedents": ["quat"], "consequents": ["may_hut_am"], "lift": 1.0}
	]`
	got := NewFileStore(writeArtifact(t, body), nil).LoadRules(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 usable rules, got %d: %+v", len(got), got)
	}
	if got[0].Lift != 1.8 {
		t.Fatalf("first occurrence should win, got lift %v", got[0].Lift)
	}
	if !reflect.DeepEqual(got[1].Antecedents, []category.Key{"loa", "tivi"}) {
		t.Fatalf("stored rule should keep artifact order, got %v", got[1].Antecedents)
	}
	for _, r := range got {
		if r.Lift < MinLift {
			t.Fatalf("rule below lift threshold survived: %+v", r)
		}
	}
}

func TestFileStore_LowLiftDuplicateDoesNotShadow(t *testing.T) {
	body := `[
		{"antecedents": ["tivi"], "consequents": ["loa"], "lift": 0.5},
		{"antecedents": ["tivi"], "consequents": ["loa"], "lift": 1.5}
	]`
	got := NewFileStore(writeArtifact(t, body), nil).LoadRules(context.Background())
	if len(got) != 1 || got[0].Lift != 1.5 {
		t.Fatalf("expected the lift 1.5 rule, got %+v", got)
	}
}

func TestFileStore_CanonicalisesLabels(t *testing.T) {
	body := `[{"antecedents": ["Ti vi", "TV"], "consequents": ["Loa âm thanh"], "lift": 1.4}]`
	got := NewFileStore(writeArtifact(t, body), category.DefaultAliasTable()).LoadRules(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].Antecedents, []category.Key{"tivi"}) || !reflect.DeepEqual(got[0].Consequents, []category.Key{"loa"}) {
		t.Fatalf("unexpected keys %+v", got[0])
	}
}

func TestFileStore_SkipsInvalidRecords(t *testing.T) {
	body := `[
		{"antecedents": [], "consequents": ["loa"], "lift": 2},
		{"antecedents": ["tivi"], "consequents": [""], "lift": 2},
		{"antecedents": ["tivi"], "consequents": ["loa"]},
		{"antecedents": ["quat"], "consequents": ["may_hut_am"], "lift": 1.1}
	]`
	got := NewFileStore(writeArtifact(t, body), nil).LoadRules(context.Background())
	if len(got) != 1 || got[0].Antecedents[0] != "quat" {
		t.Fatalf("expected only the valid record, got %+v", got)
	}
}

func TestStaticStore(t *testing.T) {
	s := NewStaticStore([]Rule{
		{Antecedents: []category.Key{"tivi"}, Consequents: []category.Key{"loa"}, Lift: 1.8},
		{Antecedents: []category.Key{"tivi"}, Consequents: []category.Key{"quat"}, Lift: 0.9},
	})
	got := s.LoadRules(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}
	got[0].Lift = 0
	if s.LoadRules(context.Background())[0].Lift != 1.8 {
		t.Fatal("LoadRules leaked internal slice")
	}
}

func TestRuleMatches(t *testing.T) {
	r := Rule{Antecedents: []category.Key{"tivi", "loa"}}
	if !r.Matches(map[category.Key]bool{"loa": true, "quat": true}) {
		t.Fatal("expected intersection to match")
	}
	if r.Matches(map[category.Key]bool{"quat": true}) {
		t.Fatal("unexpected match")
	}
}
