package category

import (
	"fmt"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AliasTable maps canonical subcategory keys to the display spellings that
// may appear as category names in the catalog. It is immutable once built
// and safe for concurrent use.
type AliasTable struct {
	variants  map[Key][]string
	canonical map[Key]Key
}

// NewAliasTable builds a table from key -> variants. Keys are normalized.
// When a normalized variant is claimed by more than one key, table keys win
// over variants and otherwise the alphabetically first key wins.
func NewAliasTable(entries map[Key][]string) *AliasTable {
	t := &AliasTable{
		variants:  make(map[Key][]string, len(entries)),
		canonical: make(map[Key]Key, len(entries)*3),
	}

	keys := make([]Key, 0, len(entries))
	for k, vs := range entries {
		nk := Normalize(string(k))
		if nk == "" {
			continue
		}
		if _, dup := t.variants[nk]; !dup {
			keys = append(keys, nk)
		}
		t.variants[nk] = append(t.variants[nk], vs...)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		t.canonical[k] = k
	}
	for _, k := range keys {
		for _, v := range t.variants[k] {
			nv := Normalize(v)
			if nv == "" {
				continue
			}
			if _, taken := t.canonical[nv]; !taken {
				t.canonical[nv] = k
			}
		}
	}
	return t
}

// Variants returns the display spellings for key. Unknown keys are their own
// single variant.
func (t *AliasTable) Variants(key Key) []string {
	if vs, ok := t.variants[key]; ok && len(vs) > 0 {
		out := make([]string, len(vs))
		copy(out, vs)
		return out
	}
	return []string{string(key)}
}

// Canonical maps any label (display spelling, key, or artifact token) to its
// canonical key. Labels the table does not know normalize to themselves.
func (t *AliasTable) Canonical(label string) Key {
	n := Normalize(label)
	if k, ok := t.canonical[n]; ok {
		return k
	}
	return n
}

// Len returns the number of canonical keys.
func (t *AliasTable) Len() int { return len(t.variants) }

// LoadAliasFile reads a YAML document of the form
//
//	tivi: [Tivi, TV, Ti vi]
//	loa: [Loa, Loa âm thanh]
//
// An empty path returns DefaultAliasTable.
func LoadAliasFile(path string) (*AliasTable, error) {
	if path == "" {
		return DefaultAliasTable(), nil
	}

	k := koanf.New("::")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load alias file %s: %w", path, err)
	}

	raw := map[string][]string{}
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, fmt.Errorf("decode alias file %s: %w", path, err)
	}

	entries := make(map[Key][]string, len(raw))
	for key, vs := range raw {
		entries[Key(key)] = vs
	}
	return NewAliasTable(entries), nil
}
