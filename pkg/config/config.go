// Package config loads and validates photosphere configurations.
//
// A Configuration is built once per pipeline run from a YAML document,
// normalized against Schema (defaults applied), and exposed both as a raw
// tree and as a typed Config. It may receive a single override merge, which
// produces a new Configuration and re-validates the whole document.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/photosphere/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Configuration is an immutable, validated configuration document.
type Configuration struct {
	tree    map[string]any
	typed   Config
	path    string
	baseDir string
	merged  bool
}

// Load reads, parses and validates the YAML file at path. Relative paths in
// the document resolve against the file's directory.
func Load(path string) (*Configuration, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &ValidationError{Path: path, Err: fmt.Errorf("read: %w", err)}
	}

	cfg, err := Parse(data, filepath.Dir(absPath))
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Path = path
		}
		return nil, err
	}
	cfg.path = absPath
	return cfg, nil
}

// Parse validates a YAML document held in memory.
func Parse(data []byte, baseDir string) (*Configuration, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("parse yaml: %w", err)}
	}
	return FromMap(doc, baseDir)
}

// FromMap validates an already decoded document. doc is not retained.
func FromMap(doc map[string]any, baseDir string) (*Configuration, error) {
	tree, err := schema.NormalizeDocument(Schema, doc)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	typed, err := decode(tree, baseDir)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	return &Configuration{tree: tree, typed: typed, baseDir: baseDir}, nil
}

func decode(tree map[string]any, baseDir string) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("decoder: %w", err)
	}
	if err := decoder.Decode(tree); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	cfg.AtomData = resolve(baseDir, cfg.AtomData)
	cfg.InputModel.Fname = resolve(baseDir, cfg.InputModel.Fname)
	return cfg, nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

// Typed returns the decoded view. The returned value does not share state
// with the Configuration.
func (c *Configuration) Typed() Config {
	return c.typed.clone()
}

// Tree returns a deep copy of the normalized document.
func (c *Configuration) Tree() map[string]any {
	return schema.DeepCopy(c.tree)
}

// Get returns the value at a dotted path in the normalized document.
func (c *Configuration) Get(path string) (any, bool) {
	v, ok := lookup(c.tree, splitKey(path))
	if !ok {
		return nil, false
	}
	if m, isMap := v.(map[string]any); isMap {
		return schema.DeepCopy(m), true
	}
	return v, true
}

// Path returns the absolute path of the source file, or "" for documents
// built from bytes or maps.
func (c *Configuration) Path() string { return c.path }

// BaseDir is the directory relative paths resolve against.
func (c *Configuration) BaseDir() string { return c.baseDir }

// Merged reports whether overrides were applied.
func (c *Configuration) Merged() bool { return c.merged }

func lookup(tree map[string]any, segments []string) (any, bool) {
	var current any = tree
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
