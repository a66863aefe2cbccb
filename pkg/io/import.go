package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/language"
)

// ReadJSON decodes one JSON document from r into v.
func ReadJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// ImportJSON decodes the file at path into v. A missing file is reported
// as SOURCE_FILE_MISSING.
func ImportJSON(path string, v any) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeSourceFileMissing, err, "%s not found", path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := ReadJSON(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ImportCatalog reads a catalog written by [ExportCatalog]. Records missing
// their id take it from their key.
func ImportCatalog(path string) (language.Catalog, error) {
	var c language.Catalog
	if err := ImportJSON(path, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = language.Catalog{}
	}
	for code, r := range c {
		if r == nil {
			delete(c, code)
			continue
		}
		if r.ID == "" {
			r.ID = code
		}
	}
	return c, nil
}

// ImportFamilies reads the full family map from dir.
func ImportFamilies(dir string) (language.FamilyMap, error) {
	var m language.FamilyMap
	if err := ImportJSON(filepath.Join(dir, FullFamilyFile), &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = language.FamilyMap{}
	}
	return m, nil
}

// ImportChains reads the persisted parent chains from dir.
func ImportChains(dir string) (map[string][]string, error) {
	var chains map[string][]string
	if err := ImportJSON(filepath.Join(dir, ChainsFile), &chains); err != nil {
		return nil, err
	}
	if chains == nil {
		chains = map[string][]string{}
	}
	return chains, nil
}
