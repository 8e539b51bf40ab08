package templates

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the on-disk shape of a YAML template fixture.
type fixtureFile struct {
	Templates []*Template `yaml:"templates"`
}

// Load parses YAML template definitions from r. The document holds a
// `templates` list; every entry is validated before being returned.
func Load(r io.Reader) ([]*Template, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("templates: failed to parse fixture: %w", err)
	}

	for _, t := range file.Templates {
		if t.TenantKey == "" {
			t.TenantKey = DefaultTenantKey
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Templates, nil
}

// LoadFS parses YAML template definitions from the named files in fsys.
func LoadFS(fsys fs.FS, paths ...string) ([]*Template, error) {
	var all []*Template
	for _, path := range paths {
		f, err := fsys.Open(path)
		if err != nil {
			return nil, fmt.Errorf("templates: failed to open fixture %s: %w", path, err)
		}

		parsed, err := Load(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("templates: %s: %w", path, err)
		}
		all = append(all, parsed...)
	}
	return all, nil
}

// Seed loads YAML fixtures and upserts every template into the store.
func Seed(ctx context.Context, store Store, fsys fs.FS, paths ...string) error {
	parsed, err := LoadFS(fsys, paths...)
	if err != nil {
		return err
	}
	for _, t := range parsed {
		if err := store.Upsert(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
