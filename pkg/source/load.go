package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lahtis/glfm/pkg/errors"
)

// Paths locates the source files. Empty optional paths are skipped.
type Paths struct {
	ISO6393           string // required
	ISONames          string
	ISOMacrolanguages string
	ISO6395           string // .rdf/.xml or .json
	CLDR              string
	Lexical           string
	Written           string
	Glottolog         string
	PosStats          string
	Uralic            string
	Families          string // .lua or .json
}

// Load reads every source concurrently and returns the normalized Set.
// A missing ISO 639-3 table is a SOURCE_FILE_MISSING error; any other
// missing file yields an empty table.
func Load(ctx context.Context, p Paths) (*Set, error) {
	if _, err := os.Stat(p.ISO6393); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceFileMissing, err, "iso 639-3 table %q", p.ISO6393)
	}

	set := NewSet()
	var (
		codes    map[string]ISOInfo
		aliases  map[string][]string
		macros   map[string][]string
		families map[string]string
	)

	g, ctx := errgroup.WithContext(ctx)
	load := func(path string, parse func([]byte) error) {
		g.Go(func() error {
			data, ok, err := readOptional(ctx, path)
			if err != nil || !ok {
				return err
			}
			return parse(data)
		})
	}

	load(p.ISO6393, func(b []byte) (err error) {
		codes, err = ParseISO6393(bytes.NewReader(b))
		return err
	})
	load(p.ISONames, func(b []byte) (err error) {
		aliases, err = ParseNameIndex(bytes.NewReader(b))
		return err
	})
	load(p.ISOMacrolanguages, func(b []byte) (err error) {
		macros, err = ParseMacrolanguages(bytes.NewReader(b))
		return err
	})
	load(p.ISO6395, func(b []byte) (err error) {
		if isXML(p.ISO6395) {
			families, err = ParseISO6395RDF(bytes.NewReader(b))
		} else {
			families, err = ParseISO6395JSON(b)
		}
		return err
	})
	load(p.CLDR, func(b []byte) (err error) {
		set.CLDR, err = ParseLikelySubtags(b)
		return err
	})
	load(p.Lexical, func(b []byte) (err error) {
		set.Lexical, err = ParseLexical(b)
		return err
	})
	load(p.Written, func(b []byte) (err error) {
		set.Written, err = ParseWritten(b)
		return err
	})
	load(p.Glottolog, func(b []byte) (err error) {
		set.Glottolog, err = ParseGlottolog(b)
		return err
	})
	load(p.PosStats, func(b []byte) (err error) {
		set.PosStats, err = ParsePOSStats(b)
		return err
	})
	load(p.Uralic, func(b []byte) (err error) {
		set.Uralic, err = ParseUralic(b)
		return err
	})
	load(p.Families, func(b []byte) (err error) {
		if strings.EqualFold(filepath.Ext(p.Families), ".lua") {
			set.Families = ParseFamilyModule(string(b))
			return nil
		}
		set.Families, err = ParseFamilyJSON(b)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	set.ISO = MergeISO(codes, aliases, macros, families)
	return set, nil
}

// LoadFamilies reads only the sources the family resolution stage needs:
// the ISO 639-5 family list and the Wiktionary family module. At least one
// of them must exist.
func LoadFamilies(ctx context.Context, p Paths) (*Set, error) {
	set := NewSet()
	found := false

	if data, ok, err := readOptional(ctx, p.ISO6395); err != nil {
		return nil, err
	} else if ok {
		found = true
		var families map[string]string
		if isXML(p.ISO6395) {
			families, err = ParseISO6395RDF(bytes.NewReader(data))
		} else {
			families, err = ParseISO6395JSON(data)
		}
		if err != nil {
			return nil, err
		}
		set.ISO = MergeISO(nil, nil, nil, families)
	}

	if data, ok, err := readOptional(ctx, p.Families); err != nil {
		return nil, err
	} else if ok {
		found = true
		if strings.EqualFold(filepath.Ext(p.Families), ".lua") {
			set.Families = ParseFamilyModule(string(data))
		} else if set.Families, err = ParseFamilyJSON(data); err != nil {
			return nil, err
		}
	}

	if !found {
		return nil, errors.New(errors.ErrCodeSourceFileMissing,
			"no family source: neither %q nor %q exists", p.ISO6395, p.Families)
	}
	return set, nil
}

func readOptional(ctx context.Context, path string) ([]byte, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

func isXML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rdf", ".xml":
		return true
	}
	return false
}
