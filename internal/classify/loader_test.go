package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

func writePack(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolateUserLexicons points the XDG config home at an empty temp dir so
// packs on the developer's machine cannot leak into test results.
func isolateUserLexicons(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func TestLoadPack_Extend(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "dairy.yaml", `
name: indian-dairy
mode: extend
sets:
  - category: vegan
    keywords: [Ghee, paneer]
`)

	lex := DefaultLexicon()
	require.NoError(t, LoadPack(&lex, path))

	vegan := lex.Sets[model.CategoryVegan]
	assert.True(t, vegan.Contains("ghee"), "extended keyword missing")
	assert.True(t, vegan.Contains("milk"), "builtin keyword lost on extend")
	assert.Equal(t, []string{path}, lex.Sources)
}

func TestLoadPack_Replace(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "strict.yaml", `
name: strict-gluten
mode: replace
sets:
  - category: gluten_free
    keywords: [wheat, oats]
`)

	lex := DefaultLexicon()
	require.NoError(t, LoadPack(&lex, path))

	gluten := lex.Sets[model.CategoryGlutenFree]
	assert.True(t, gluten.Contains("oats"))
	assert.False(t, gluten.Contains("barley"), "replace mode kept a builtin keyword")
}

func TestLoadPack_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown category",
			content: `
sets:
  - category: paleo
    keywords: [steak]
`,
		},
		{
			name: "unknown mode",
			content: `
mode: append
sets:
  - category: vegan
    keywords: [ghee]
`,
		},
		{
			name:    "no sets",
			content: `name: empty`,
		},
		{
			name: "keywords empty after normalize",
			content: `
sets:
  - category: vegan
    keywords: ["", "  "]
`,
		},
		{
			name:    "not yaml",
			content: "{]{]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePack(t, dir, "bad-"+filepath.Base(t.Name())+".yaml", tt.content)
			lex := DefaultLexicon()
			err := LoadPack(&lex, path)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidLexicon)
			assert.Contains(t, err.Error(), path, "error should name the offending file")
		})
	}
}

func TestLoadPack_MissingFile(t *testing.T) {
	lex := DefaultLexicon()
	err := LoadPack(&lex, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLexiconNotFound)
}

func TestLoad_DirectoryMergesInNameOrder(t *testing.T) {
	isolateUserLexicons(t)
	dir := t.TempDir()

	// 10-replace runs before 20-extend, so the extension must survive.
	writePack(t, dir, "10-replace.yaml", `
mode: replace
sets:
  - category: vegetarian
    keywords: [chicken]
`)
	writePack(t, dir, "20-extend.yaml", `
sets:
  - category: vegetarian
    keywords: [venison]
`)

	lex, err := Load([]string{dir}, nil)
	require.NoError(t, err)

	vegetarian := lex.Sets[model.CategoryVegetarian]
	assert.True(t, vegetarian.Contains("chicken"))
	assert.True(t, vegetarian.Contains("venison"))
	assert.False(t, vegetarian.Contains("gelatin"), "replace pack should have dropped builtins")
	assert.Len(t, lex.Sources, 2)
}

func TestLoad_ExplicitWinsOverConfigured(t *testing.T) {
	isolateUserLexicons(t)
	dir := t.TempDir()

	configured := writePack(t, dir, "configured.yaml", `
sets:
  - category: vegan
    keywords: [ghee]
`)
	explicit := writePack(t, dir, "explicit.yaml", `
mode: replace
sets:
  - category: vegan
    keywords: [milk]
`)

	lex, err := Load([]string{explicit}, []string{configured})
	require.NoError(t, err)

	vegan := lex.Sets[model.CategoryVegan]
	assert.True(t, vegan.Contains("milk"))
	assert.False(t, vegan.Contains("ghee"), "explicit replace pack must be applied last")
}

func TestLoad_UserLexiconDirectory(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)
	xdg.Reload()

	userDir := filepath.Join(confHome, "canieat", "lexicons")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	writePack(t, userDir, "mine.yaml", `
sets:
  - category: gluten_free
    keywords: [oats]
`)

	lex, err := Load(nil, nil)
	require.NoError(t, err)
	assert.True(t, lex.Sets[model.CategoryGlutenFree].Contains("oats"))
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	isolateUserLexicons(t)
	_, err := Load([]string{filepath.Join(t.TempDir(), "absent.yaml")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrLexiconNotFound)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "pack.yaml", `
name: test-pack
mode: extend
sets:
  - category: vegan
    keywords: [ghee, paneer, ghee]
  - category: gluten_free
    keywords: [oats]
`)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "test-pack", info.Name)
	assert.Equal(t, "extend", info.Mode)
	assert.Equal(t, 2, info.Keywords[model.CategoryVegan], "duplicate keyword should collapse")
	assert.Equal(t, 1, info.Keywords[model.CategoryGlutenFree])
}

func TestInspect_DefaultsNameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writePack(t, dir, "my-pack.yaml", `
sets:
  - category: vegan
    keywords: [ghee]
`)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "my-pack", info.Name)
}
