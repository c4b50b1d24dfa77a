package breed

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Table maps unordered pairs of seed classes to an output class. Keys are
// stored lower-cased as "a+b"; Lookup tries both orderings so A+B and B+A
// are equivalent. A Table is immutable once built - reloads build a new one.
type Table struct {
	recipes map[string]string
}

// NewTable builds a table from raw "a+b" -> "out" entries, normalizing keys
func NewTable(raw map[string]string) *Table {
	recipes := make(map[string]string, len(raw))
	for k, v := range raw {
		recipes[strings.ToLower(k)] = v
	}
	return &Table{recipes: recipes}
}

// ParseJSON decodes a breed map file ({"water+fire": "steam", ...})
func ParseJSON(data []byte) (*Table, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid breed map: %w", err)
	}
	return NewTable(raw), nil
}

// Lookup returns the output class for the unordered pair (a, b), or
// ("", false) when no recipe exists. A missing recipe is a normal rejected
// breed, not an error.
func (t *Table) Lookup(a, b string) (string, bool) {
	if a == "" || b == "" {
		return "", false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if out, ok := t.recipes[la+"+"+lb]; ok {
		return out, true
	}
	if out, ok := t.recipes[lb+"+"+la]; ok {
		return out, true
	}
	return "", false
}

// Len returns the number of recipes in the table
func (t *Table) Len() int {
	return len(t.recipes)
}

// DefaultRecipes is the built-in breed map, used when no file is supplied
// or a reload fails before any table was loaded.
var DefaultRecipes = map[string]string{
	"water+fire":  "steam",
	"water+wind":  "wave",
	"water+earth": "plant",
	"water+wave":  "tsunami",
	"wind+earth":  "dust",
	"earth+fire":  "lava",
	"steam+water": "cloud",
}
