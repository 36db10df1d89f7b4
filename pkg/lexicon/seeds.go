package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Seed files let a deployment extend or replace the built-in lexicon without
// recompiling, such as localized term lists reviewed by clinicians. Files are
// plain YAML:
//
//	categories:
//	  - name: suicide
//	    weight: 3.0
//	    replace: false
//	    terms: ["..."]
//	patterns:
//	  - name: finality_statement
//	    weight: 3.0
//	    phrases: ["..."]
//
// With replace: false (the default) terms are appended to the built-in list;
// with replace: true they substitute it. A weight of 0 keeps the built-in
// weight.

type seedFile struct {
	Categories []categorySeed `yaml:"categories"`
	Patterns   []patternSeed  `yaml:"patterns"`
}

type categorySeed struct {
	Name    string   `yaml:"name"`
	Weight  float64  `yaml:"weight"`
	Replace bool     `yaml:"replace"`
	Terms   []string `yaml:"terms"`
}

type patternSeed struct {
	Name    string   `yaml:"name"`
	Weight  float64  `yaml:"weight"`
	Replace bool     `yaml:"replace"`
	Phrases []string `yaml:"phrases"`
}

// NewRegistryFromSeeds builds a registry from the built-in tables overlaid
// with every *.yaml / *.yml file in dir, applied in filename order so
// deployments get reproducible results.
func NewRegistryFromSeeds(dir string) (*Registry, error) {
	r := newRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file %s: %w", name, err)
		}
		var sf seedFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parse seed file %s: %w", name, err)
		}
		if err := r.applySeeds(sf); err != nil {
			return nil, fmt.Errorf("apply seed file %s: %w", name, err)
		}
	}

	return r, nil
}

func (r *Registry) applySeeds(sf seedFile) error {
	for _, cs := range sf.Categories {
		if cs.Name == "" {
			return fmt.Errorf("category seed with empty name")
		}
		cat := Category(cs.Name)
		entry := r.categories[cat] // zero value for new categories

		if cs.Replace {
			entry.Terms = nil
		}
		for _, t := range cs.Terms {
			entry.Terms = append(entry.Terms, Normalize(t))
		}
		if cs.Weight > 0 {
			entry.Weight = cs.Weight
		}
		if entry.Weight <= 0 {
			return fmt.Errorf("category %s has no weight", cs.Name)
		}
		if len(entry.Terms) == 0 {
			return fmt.Errorf("category %s has no terms", cs.Name)
		}
		r.categories[cat] = entry
	}

	for _, ps := range sf.Patterns {
		if ps.Name == "" {
			return fmt.Errorf("pattern seed with empty name")
		}
		pat := Pattern(ps.Name)
		entry := r.patterns[pat]

		if ps.Replace {
			entry.Phrases = nil
		}
		for _, p := range ps.Phrases {
			entry.Phrases = append(entry.Phrases, Normalize(p))
		}
		if ps.Weight > 0 {
			entry.Weight = ps.Weight
		}
		if entry.Weight <= 0 {
			return fmt.Errorf("pattern %s has no weight", ps.Name)
		}
		if len(entry.Phrases) == 0 {
			return fmt.Errorf("pattern %s has no phrases", ps.Name)
		}
		r.patterns[pat] = entry
	}

	return nil
}
