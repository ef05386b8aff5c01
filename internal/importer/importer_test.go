package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ptaonline/tabletop/internal/dex"
)

type fakeWriter struct {
	written []dex.Species
	failOn  string
}

func (w *fakeWriter) Upsert(ctx context.Context, sp dex.Species) error {
	if w.failOn != "" && sp.Name == w.failOn {
		return assert.AnError
	}
	w.written = append(w.written, sp)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const bulbasaurYAML = `species:
  - dex_no: 1
    name: Bulbasaur
    types: [grass, poison]
    stats:
      hp: 45
      attack: 49
      defense: 49
      special_attack: 65
      special_defense: 65
      speed: 45
`

const eeveeJSON = `{
  "species": [
    {
      "dexNo": 133,
      "name": "Eevee",
      "types": ["normal"],
      "stats": {"hp": 55, "attack": 55, "defense": 50, "specialAttack": 45, "specialDefense": 65, "speed": 55}
    }
  ]
}`

func TestFileSource_LoadsYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen1.yaml", bulbasaurYAML)
	writeFile(t, dir, "eevee.json", eeveeJSON)

	species, err := FileSource{}.Load(dir)
	require.NoError(t, err)
	require.Len(t, species, 2)

	// Lexical file order: eevee.json before gen1.yaml.
	assert.Equal(t, 133, species[0].DexNo)
	assert.Equal(t, "Eevee", species[0].Name)
	assert.Equal(t, 55, species[0].BaseStats.HP)
	assert.Equal(t, 45, species[0].BaseStats.SpecialAttack)

	assert.Equal(t, 1, species[1].DexNo)
	assert.Equal(t, "Bulbasaur", species[1].Name)
	assert.Equal(t, []string{"grass", "poison"}, species[1].Types)
}

func TestFileSource_EmptyDirFails(t *testing.T) {
	_, err := FileSource{}.Load(t.TempDir())
	assert.Error(t, err)
}

func TestFileSource_MalformedYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "species: [what")

	_, err := FileSource{}.Load(dir)
	assert.Error(t, err)
}

func TestImporter_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen1.yaml", bulbasaurYAML)
	writeFile(t, dir, "eevee.json", eeveeJSON)

	writer := &fakeWriter{}
	imp := New(FileSource{}, writer, zaptest.NewLogger(t))

	count, err := imp.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, writer.written, 2)
}

func TestImporter_RejectsDuplicateDexNo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", bulbasaurYAML)
	writeFile(t, dir, "b.yaml", bulbasaurYAML)

	imp := New(FileSource{}, &fakeWriter{}, zaptest.NewLogger(t))
	_, err := imp.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share dex number")
}

func TestImporter_RejectsInvalidStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `species:
  - dex_no: 7
    name: Squirtle
    types: [water]
    stats:
      hp: 0
      attack: 48
      defense: 65
      special_attack: 50
      special_defense: 64
      speed: 43
`)

	imp := New(FileSource{}, &fakeWriter{}, zaptest.NewLogger(t))
	_, err := imp.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hp must be 1-255")
}

func TestImporter_WriteFailureNamesSpecies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen1.yaml", bulbasaurYAML)

	imp := New(FileSource{}, &fakeWriter{failOn: "Bulbasaur"}, zaptest.NewLogger(t))
	_, err := imp.Run(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bulbasaur")
}
