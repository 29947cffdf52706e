// Package recipe provides the catalog of named argument presets.
package recipe

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

//go:embed recipes.json
var builtinJSON []byte

type Recipe struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Args  []string `json:"args"`
}

type catalogFile struct {
	Recipes []Recipe `json:"recipes"`
}

type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate recipe id: %s", e.ID)
}

// Catalog is read-only after construction. Lookup never fails loudly: an
// unknown id just reports false.
type Catalog struct {
	recipes []Recipe
	byID    map[string]int
}

func New(recipes []Recipe) (Catalog, error) {
	c := Catalog{byID: make(map[string]int, len(recipes))}
	for _, r := range recipes {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return Catalog{}, errors.New("recipe id is required")
		}
		if _, dup := c.byID[id]; dup {
			return Catalog{}, DuplicateIDError{ID: id}
		}
		r.ID = id
		if strings.TrimSpace(r.Label) == "" {
			r.Label = id
		}
		r.Args = append([]string(nil), r.Args...)
		c.byID[id] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c, nil
}

func Parse(b []byte) (Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(b, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse recipes: %w", err)
	}
	return New(f.Recipes)
}

// Builtin returns the catalog shipped with the binary.
func Builtin() Catalog {
	c, err := Parse(builtinJSON)
	if err != nil {
		panic(fmt.Sprintf("builtin recipes: %v", err))
	}
	return c
}

// Load returns the builtin catalog merged with the user file at path. User
// recipes replace builtins with the same id and are appended otherwise. A
// missing file is not an error.
func Load(path string) (Catalog, error) {
	base := Builtin()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, err
	}
	user, err := Parse(b)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return base.Merge(user), nil
}

func (c Catalog) Merge(over Catalog) Catalog {
	out := make([]Recipe, 0, len(c.recipes)+len(over.recipes))
	for _, r := range c.recipes {
		if o, ok := over.Lookup(r.ID); ok {
			out = append(out, o)
			continue
		}
		out = append(out, r)
	}
	for _, r := range over.recipes {
		if _, ok := c.byID[r.ID]; !ok {
			out = append(out, r)
		}
	}
	merged, _ := New(out)
	return merged
}

func (c Catalog) Lookup(id string) (Recipe, bool) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Recipe{}, false
	}
	r := c.recipes[i]
	r.Args = append([]string(nil), r.Args...)
	return r, true
}

func (c Catalog) All() []Recipe {
	out := make([]Recipe, len(c.recipes))
	for i, r := range c.recipes {
		r.Args = append([]string(nil), r.Args...)
		out[i] = r
	}
	return out
}

func (c Catalog) Len() int { return len(c.recipes) }

func (r Recipe) searchText() string {
	return r.ID + " " + r.Label + " " + strings.Join(r.Args, " ")
}

// Filter ranks recipes against query with a case-insensitive fuzzy match. A
// blank query returns the catalog in its natural order.
func (c Catalog) Filter(query string) []Recipe {
	q := strings.TrimSpace(query)
	if q == "" {
		return c.All()
	}
	targets := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		targets[i] = r.searchText()
	}
	ranks := fuzzy.RankFindFold(q, targets)
	sort.Stable(ranks)
	out := make([]Recipe, 0, len(ranks))
	for _, rk := range ranks {
		r := c.recipes[rk.OriginalIndex]
		r.Args = append([]string(nil), r.Args...)
		out = append(out, r)
	}
	return out
}
