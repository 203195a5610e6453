package atomdata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/photosphere/pkg/domain"
	"gopkg.in/yaml.v3"
)

type document struct {
	Elements []domain.Element `yaml:"elements"`
}

// Load reads a YAML or JSON atom data file holding an `elements:` list.
func Load(path string) (*Dataset, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	elements, err := readFile(absPath)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	ds, err := NewDataset(absPath, elements)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return ds, nil
}

// Decode parses an atom data document from r.
func Decode(r io.Reader) ([]domain.Element, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.Elements, nil
}

func readFile(path string) ([]domain.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// CacheKey identifies the content at path by location, size and
// modification time. For a directory, size and time aggregate every regular
// file below it.
func CacheKey(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return fmt.Sprintf("%s@%d:%d", absPath, info.Size(), info.ModTime().UnixNano()), nil
	}

	var (
		size   int64
		files  int
		latest time.Time
	)
	err = filepath.WalkDir(absPath, func(_ string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		files++
		size += fi.Size()
		if fi.ModTime().After(latest) {
			latest = fi.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/@%d:%d:%d", absPath, files, size, latest.UnixNano()), nil
}
