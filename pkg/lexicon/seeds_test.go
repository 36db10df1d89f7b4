package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSeedsExtendBuiltins(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, "local.yaml", `
categories:
  - name: suicide
    terms: ["tired of being alive"]
patterns:
  - name: goodbye_message
    phrases: ["this is my final message"]
`)

	r, err := NewRegistryFromSeeds(dir)
	if err != nil {
		t.Fatalf("NewRegistryFromSeeds: %v", err)
	}

	report := r.MatchCategories("I'm just tired of being alive")
	if !report.Has(CategorySuicide) {
		t.Error("seeded term should match")
	}

	// Built-in terms survive an extending overlay.
	report = r.MatchCategories("I want to die")
	if !report.Has(CategorySuicide) {
		t.Error("built-in term should still match after extend")
	}

	pat := r.DetectPatterns("this is my final message")
	if pat.Counts[PatternGoodbye] == 0 {
		t.Error("seeded phrase should match")
	}
}

func TestSeedsReplaceBuiltins(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, "replace.yaml", `
categories:
  - name: isolation
    replace: true
    weight: 1.5
    terms: ["totally isolated"]
`)

	r, err := NewRegistryFromSeeds(dir)
	if err != nil {
		t.Fatalf("NewRegistryFromSeeds: %v", err)
	}

	if r.MatchCategories("nobody cares").Has(CategoryIsolation) {
		t.Error("replaced category should drop built-in terms")
	}
	report := r.MatchCategories("I feel totally isolated")
	if !report.Has(CategoryIsolation) {
		t.Fatal("replacement term should match")
	}
	if got := report.Matches[CategoryIsolation].Severity; got != 1.5 {
		t.Errorf("expected seeded weight 1.5, got %v", got)
	}
}

func TestSeedsNewCategory(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, "extra.yaml", `
categories:
  - name: eating_disorder
    weight: 1.5
    terms: ["stopped eating entirely"]
`)

	r, err := NewRegistryFromSeeds(dir)
	if err != nil {
		t.Fatalf("NewRegistryFromSeeds: %v", err)
	}
	if !r.MatchCategories("I have stopped eating entirely").Has(Category("eating_disorder")) {
		t.Error("new seeded category should match")
	}
}

func TestSeedsRejectInvalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"missing name", "categories:\n  - terms: [\"x\"]\n"},
		{"new category without weight", "categories:\n  - name: new_cat\n    terms: [\"x\"]\n"},
		{"replace to empty", "patterns:\n  - name: farewell\n    replace: true\n    weight: 1.0\n"},
		{"bad yaml", "categories: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSeed(t, dir, "bad.yaml", tc.yaml)
			if _, err := NewRegistryFromSeeds(dir); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSeedsMissingDir(t *testing.T) {
	if _, err := NewRegistryFromSeeds("/nonexistent/seed/dir"); err == nil {
		t.Error("expected error for missing dir")
	}
}
