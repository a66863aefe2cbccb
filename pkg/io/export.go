package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lahtis/glfm/pkg/language"
)

// File names of the family artifacts.
const (
	ChainsFile        = "code_to_parent_chain.json"
	MacroFile         = "code_to_macrofamily.json"
	SuperMacroFile    = "code_to_super_macrofamily.json"
	UltimateMacroFile = "code_to_ultimate_macrofamily.json"
	FullFamilyFile    = "code_to_full_family_map.json"
)

// WriteJSON encodes v as indented JSON and writes it to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes v to path, replacing any existing file atomically.
// Missing parent directories are created.
func ExportJSON(path string, v any) error {
	return writeAtomic(path, func(w io.Writer) error { return WriteJSON(w, v) })
}

// WriteFile writes raw data to path the same way ExportJSON does.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ExportCatalog writes the catalog to path.
func ExportCatalog(path string, c language.Catalog) error {
	return ExportJSON(path, c)
}

// ExportFamilies writes the family artifacts of m into dir and returns the
// paths written, in a fixed order.
func ExportFamilies(dir string, m language.FamilyMap) ([]string, error) {
	files := []struct {
		name string
		v    any
	}{
		{ChainsFile, m.Chains()},
		{MacroFile, m.Level(func(l language.Lineage) language.Node { return l.Macro })},
		{SuperMacroFile, m.Level(func(l language.Lineage) language.Node { return l.SuperMacro })},
		{UltimateMacroFile, m.Level(func(l language.Lineage) language.Node { return l.UltimateMacro })},
		{FullFamilyFile, m},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := ExportJSON(path, f.v); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
