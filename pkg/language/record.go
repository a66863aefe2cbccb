package language

import (
	"regexp"
	"sort"
	"strings"
)

// Sentinels shared by the source adapters and the derivers.
const (
	// Unknown marks a script or region that a source explicitly could not determine.
	Unknown = "UNKNOWN"

	// DefaultScript is the script assumed when no source names one.
	DefaultScript = "Latn"

	// RegionWorld is the UN M.49 code for "World", used when no region is known.
	RegionWorld = "001"
)

// IsUnknown reports whether s is empty or the UNKNOWN sentinel (any case).
func IsUnknown(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, Unknown)
}

var (
	scriptPattern = regexp.MustCompile(`^[A-Z][a-z]{3}$`)
	regionPattern = regexp.MustCompile(`^([A-Z]{2}|[0-9]{3})$`)
)

// IsScript reports whether s is an ISO 15924 script subtag ("Latn").
func IsScript(s string) bool { return scriptPattern.MatchString(s) }

// IsRegion reports whether s is an ISO 3166-1 alpha-2 or UN M.49 region
// subtag ("FI", "001").
func IsRegion(s string) bool { return regionPattern.MatchString(s) }

// Record is one entry of the unified catalog.
type Record struct {
	ID             string         `json:"id" bson:"_id"`
	Name           string         `json:"name" bson:"name"`
	OfficialName   string         `json:"official_name" bson:"official_name"`
	ISO639_1       string         `json:"iso639_1" bson:"iso639_1"`
	ISO639_2B      string         `json:"iso639_2B" bson:"iso639_2B"`
	ISO639_2T      string         `json:"iso639_2T" bson:"iso639_2T"`
	ISO639_3       string         `json:"iso639_3" bson:"iso639_3"`
	ISO639_5       string         `json:"iso639_5" bson:"iso639_5"`
	DefaultScript  string         `json:"default_script" bson:"default_script"`
	DefaultRegion  string         `json:"default_region" bson:"default_region"`
	BCP47          string         `json:"bcp47" bson:"bcp47"`
	Fallback       string         `json:"fallback" bson:"fallback"`
	UralicNLP      bool           `json:"uralicNLP" bson:"uralicNLP"`
	Written        bool           `json:"written" bson:"written"`
	WrittenScripts []string       `json:"written_scripts" bson:"written_scripts"`
	Glottocode     string         `json:"glottocode,omitempty" bson:"glottocode,omitempty"`
	Family         string         `json:"family,omitempty" bson:"family,omitempty"`
	Glottolog      *Glottolog     `json:"glottolog,omitempty" bson:"glottolog,omitempty"`
	PosStats       map[string]int `json:"pos_stats" bson:"pos_stats"`
}

// IsFamily reports whether the record describes a language family
// rather than an individual language.
func (r *Record) IsFamily() bool {
	return r.ISO639_5 != ""
}

// HasScript reports whether script is one of the record's written scripts.
func (r *Record) HasScript(script string) bool {
	for _, s := range r.WrittenScripts {
		if s == script {
			return true
		}
	}
	return false
}

// Glottolog holds the Glottolog attributes attached to a record.
type Glottolog struct {
	Macroarea string   `json:"macroarea,omitempty" bson:"macroarea,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Lineage   []string `json:"lineage,omitempty" bson:"lineage,omitempty"`
	Family    string   `json:"family,omitempty" bson:"family,omitempty"`
}

// Catalog maps a code to its record.
type Catalog map[string]*Record

// Codes returns the catalog's codes in sorted order.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Families returns the codes of family records in sorted order.
func (c Catalog) Families() []string {
	var codes []string
	for _, code := range c.Codes() {
		if c[code].IsFamily() {
			codes = append(codes, code)
		}
	}
	return codes
}

// Get returns the record for code, if present.
func (c Catalog) Get(code string) (*Record, bool) {
	r, ok := c[code]
	return r, ok
}
