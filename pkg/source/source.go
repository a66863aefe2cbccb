package source

import (
	"github.com/lahtis/glfm/pkg/language"
)

// ISOInfo is the normalized ISO 639 view of one code.
type ISOInfo struct {
	Name          string   `json:"name"`
	ISO639_1      string   `json:"iso639_1"`
	ISO639_2B     string   `json:"iso639_2B"`
	ISO639_2T     string   `json:"iso639_2T"`
	ISO639_3      string   `json:"iso639_3"`
	ISO639_5      string   `json:"iso639_5"`
	Scope         string   `json:"scope,omitempty"`
	Type          string   `json:"type,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	Macrolanguage string   `json:"macrolanguage,omitempty"` // set on individual languages
	Members       []string `json:"members,omitempty"`       // set on macrolanguages
}

// Attributes is the canonical shape every per-language source is normalized
// into. A source fills only the fields it knows about.
type Attributes struct {
	Name         string   `json:"name,omitempty"`
	OfficialName string   `json:"official_name,omitempty"`
	Scripts      []string `json:"scripts,omitempty"`
	Region       string   `json:"region,omitempty"`
	Family       string   `json:"family,omitempty"`
	Fallback     string   `json:"fallback,omitempty"`
	Glottocode   string   `json:"glottocode,omitempty"`
	Written      bool     `json:"written,omitempty"`
	WikidataItem string   `json:"wikidata_item,omitempty"`
}

// Table maps a code to its normalized attributes.
type Table map[string]Attributes

// FamilyEntry is one row of the Wiktionary family module.
type FamilyEntry struct {
	CanonicalName string `json:"canonicalName"`
	Parent        string `json:"family,omitempty"`
	WikidataItem  string `json:"wikidata_item,omitempty"`
}

// FamilyTable maps a Wiktionary family code to its entry.
type FamilyTable map[string]FamilyEntry

// Set is the full collection of loaded sources.
type Set struct {
	ISO       map[string]ISOInfo
	CLDR      map[string]string // likely subtags, "-" separated
	Lexical   Table             // Wiktionary language metadata
	Written   Table
	Glottolog map[string]language.Glottolog
	PosStats  map[string]map[string]int
	Uralic    map[string]bool
	Families  FamilyTable
}

// NewSet returns a Set with every table allocated and empty.
func NewSet() *Set {
	return &Set{
		ISO:       map[string]ISOInfo{},
		CLDR:      map[string]string{},
		Lexical:   Table{},
		Written:   Table{},
		Glottolog: map[string]language.Glottolog{},
		PosStats:  map[string]map[string]int{},
		Uralic:    map[string]bool{},
		Families:  FamilyTable{},
	}
}
