// Package importer loads species reference data from local files into the
// species store, so a deployment can resolve lookups without the upstream
// API.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ptaonline/tabletop/internal/dex"
)

// speciesDoc is the on-disk species schema, shared between the YAML and
// JSON encodings.
type speciesDoc struct {
	DexNo int      `yaml:"dex_no" json:"dexNo"`
	Name  string   `yaml:"name" json:"name"`
	Types []string `yaml:"types" json:"types"`
	Stats struct {
		HP             int `yaml:"hp" json:"hp"`
		Attack         int `yaml:"attack" json:"attack"`
		Defense        int `yaml:"defense" json:"defense"`
		SpecialAttack  int `yaml:"special_attack" json:"specialAttack"`
		SpecialDefense int `yaml:"special_defense" json:"specialDefense"`
		Speed          int `yaml:"speed" json:"speed"`
	} `yaml:"stats" json:"stats"`
}

// speciesFileDoc is a file's top level: one or more species entries.
type speciesFileDoc struct {
	Species []speciesDoc `yaml:"species" json:"species"`
}

// Source loads species from a format-specific location.
//
// Postcondition: returns at least one species, or a non-nil error.
type Source interface {
	Load(dir string) ([]dex.Species, error)
}

// FileSource loads species from every *.yaml, *.yml, and *.json file in a
// directory. Files are read in lexical order so re-runs are deterministic.
type FileSource struct{}

// Load reads and decodes every species file in dir.
//
// Precondition: dir must exist.
func (FileSource) Load(dir string) ([]dex.Species, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []dex.Species
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var doc speciesFileDoc
		if strings.EqualFold(filepath.Ext(name), ".json") {
			err = json.Unmarshal(data, &doc)
		} else {
			err = yaml.Unmarshal(data, &doc)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}

		for _, d := range doc.Species {
			out = append(out, dex.Species{
				DexNo: d.DexNo,
				Name:  d.Name,
				Types: d.Types,
				BaseStats: dex.BaseStats{
					HP:             d.Stats.HP,
					Attack:         d.Stats.Attack,
					Defense:        d.Stats.Defense,
					SpecialAttack:  d.Stats.SpecialAttack,
					SpecialDefense: d.Stats.SpecialDefense,
					Speed:          d.Stats.Speed,
				},
			})
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no species found in %s", dir)
	}
	return out, nil
}
