package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// Keyword packs are small YAML files layered over the builtin tables:
//
//	name: indian-dairy
//	mode: extend        # or replace
//	sets:
//	  - category: vegan
//	    keywords: [ghee, paneer, khoya]
//
// Packs are applied lowest precedence first: the user lexicon directory,
// then paths from the config file, then paths given on the command line.

// Pack merge modes.
const (
	packModeExtend  = "extend"
	packModeReplace = "replace"
)

type packFile struct {
	Name string    `yaml:"name"`
	Mode string    `yaml:"mode"`
	Sets []packSet `yaml:"sets"`
}

type packSet struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// PackInfo summarizes a parsed keyword pack for display.
type PackInfo struct {
	Name     string
	Mode     string
	Path     string
	Keywords map[model.Category]int
}

// Load builds the effective lexicon: the builtin tables plus every pack
// found in the user lexicon directory, the configured paths, and the
// explicit paths, in that order. Later packs win. Paths may name a single
// file or a directory of *.yaml/*.yml files merged in name order.
func Load(explicit, configured []string) (model.Lexicon, error) {
	lex := DefaultLexicon()

	// The user directory is optional; missing is not an error.
	if packs, err := listPacks(config.LexiconDir()); err == nil {
		for _, path := range packs {
			if err := LoadPack(&lex, path); err != nil {
				return model.Lexicon{}, err
			}
		}
	}

	for _, group := range [][]string{configured, explicit} {
		for _, raw := range group {
			paths, err := resolvePackPaths(raw)
			if err != nil {
				return model.Lexicon{}, err
			}
			for _, path := range paths {
				if err := LoadPack(&lex, path); err != nil {
					return model.Lexicon{}, err
				}
			}
		}
	}

	return lex, nil
}

// LoadPack reads one keyword pack file and merges it into lex.
func LoadPack(lex *model.Lexicon, path string) error {
	pack, err := parsePack(path)
	if err != nil {
		return err
	}

	replace := pack.Mode == packModeReplace
	for _, ps := range pack.Sets {
		category, _ := model.ParseCategory(ps.Category)
		set := model.KeywordSet{
			Name:     pack.Name,
			Category: category,
			Keywords: ps.Keywords,
		}
		lex.Merge(set, replace)
	}
	lex.Sources = append(lex.Sources, path)

	common.LogDebug("loaded keyword pack", common.Fields{
		"path": path,
		"name": pack.Name,
		"mode": pack.Mode,
		"sets": len(pack.Sets),
	})
	return nil
}

// Inspect parses and validates a pack without applying it, for the
// keywords validate command.
func Inspect(path string) (PackInfo, error) {
	pack, err := parsePack(path)
	if err != nil {
		return PackInfo{}, err
	}

	info := PackInfo{
		Name:     pack.Name,
		Mode:     pack.Mode,
		Path:     path,
		Keywords: make(map[model.Category]int, len(pack.Sets)),
	}
	for _, ps := range pack.Sets {
		category, _ := model.ParseCategory(ps.Category)
		set := model.KeywordSet{Name: pack.Name, Category: category, Keywords: ps.Keywords}
		set.Normalize()
		info.Keywords[category] += len(set.Keywords)
	}
	return info, nil
}

// parsePack reads and structurally validates one pack file. Every
// validation failure wraps ErrInvalidLexicon and names the file.
func parsePack(path string) (packFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return packFile{}, fmt.Errorf("%w: %s", common.ErrLexiconNotFound, path)
		}
		return packFile{}, fmt.Errorf("failed to read keyword pack %s: %w", path, err)
	}

	var pack packFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return packFile{}, fmt.Errorf("%w: %s: %v", common.ErrInvalidLexicon, path, err)
	}

	if pack.Name == "" {
		pack.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	switch pack.Mode {
	case "":
		pack.Mode = packModeExtend
	case packModeExtend, packModeReplace:
	default:
		return packFile{}, fmt.Errorf("%w: %s: mode must be %q or %q, got %q",
			common.ErrInvalidLexicon, path, packModeExtend, packModeReplace, pack.Mode)
	}
	if len(pack.Sets) == 0 {
		return packFile{}, fmt.Errorf("%w: %s: no keyword sets", common.ErrInvalidLexicon, path)
	}

	for _, ps := range pack.Sets {
		category, ok := model.ParseCategory(ps.Category)
		if !ok {
			return packFile{}, fmt.Errorf("%w: %s: unknown category %q",
				common.ErrInvalidLexicon, path, ps.Category)
		}
		set := model.KeywordSet{Name: pack.Name, Category: category, Keywords: ps.Keywords}
		set.Normalize()
		if len(set.Keywords) == 0 {
			return packFile{}, fmt.Errorf("%w: %s: category %s has no usable keywords",
				common.ErrInvalidLexicon, path, category)
		}
	}

	return pack, nil
}

// resolvePackPaths expands one user-supplied path into pack files. A
// directory contributes every *.yaml/*.yml inside it, in name order.
func resolvePackPaths(raw string) ([]string, error) {
	path := config.ExpandPath(raw)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrLexiconNotFound, raw)
		}
		return nil, fmt.Errorf("failed to stat lexicon path %s: %w", raw, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	packs, err := listPacks(path)
	if err != nil {
		return nil, err
	}
	if len(packs) == 0 {
		return nil, fmt.Errorf("%w: no packs in %s", common.ErrLexiconNotFound, raw)
	}
	return packs, nil
}

// listPacks returns the pack files directly inside dir, sorted by name.
func listPacks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon directory %s: %w", dir, err)
	}

	var packs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			packs = append(packs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(packs)
	return packs, nil
}
