package breed

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

// Provider supplies the current breed table. Reload swaps the table
// wholesale; in-flight lookups see either the old or the new table, never a
// partially updated one. The engine depends only on this interface, never on
// a filesystem.
type Provider interface {
	Current() *Table
	Reload() error
}

// StaticProvider serves a fixed table. Used in tests and as the fallback
// when no breed map file is configured.
type StaticProvider struct {
	table *Table
}

// NewStaticProvider wraps a table in a Provider
func NewStaticProvider(t *Table) *StaticProvider {
	return &StaticProvider{table: t}
}

func (p *StaticProvider) Current() *Table { return p.table }
func (p *StaticProvider) Reload() error   { return nil }

// FileProvider loads the breed map from a JSON file and atomically swaps it
// on Reload. A failed reload keeps the previous table.
type FileProvider struct {
	path  string
	table atomic.Pointer[Table]
}

// NewFileProvider loads the initial table from path. When the file is
// missing it is seeded with the default recipes, matching first-run
// behavior.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := p.writeDefault(); err != nil {
			return nil, err
		}
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Current returns the active table
func (p *FileProvider) Current() *Table {
	return p.table.Load()
}

// Reload re-reads the file and swaps the table in one atomic store
func (p *FileProvider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read breed map %s: %w", p.path, err)
	}
	t, err := ParseJSON(data)
	if err != nil {
		return err
	}
	p.table.Store(t)
	slog.Info("Breed map loaded", "path", p.path, "recipes", t.Len())
	return nil
}

func (p *FileProvider) writeDefault() error {
	data := []byte("{\n")
	first := true
	// stable-ish seed file, order does not matter for correctness
	for k, v := range DefaultRecipes {
		if !first {
			data = append(data, ",\n"...)
		}
		first = false
		data = append(data, fmt.Sprintf("  %q: %q", k, v)...)
	}
	data = append(data, "\n}\n"...)
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("seed breed map %s: %w", p.path, err)
	}
	return nil
}
