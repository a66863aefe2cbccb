package source

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// readTSV calls fn for every data row of a tab-separated file. The first
// row is skipped when it starts with header. Rows shorter than minCols are
// ignored.
func readTSV(r io.Reader, header string, minCols int, fn func(cols []string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			if strings.HasPrefix(line, header) {
				continue
			}
		}
		cols := strings.Split(line, "\t")
		if len(cols) < minCols {
			continue
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		fn(cols)
	}
	return sc.Err()
}

// ParseISO6393 parses the ISO 639-3 code table
// (Id, Part2B, Part2T, Part1, Scope, Language_Type, Ref_Name, ...).
func ParseISO6393(r io.Reader) (map[string]ISOInfo, error) {
	out := make(map[string]ISOInfo)
	err := readTSV(r, "Id\t", 7, func(c []string) {
		out[c[0]] = ISOInfo{
			Name:      c[6],
			ISO639_3:  c[0],
			ISO639_2B: c[1],
			ISO639_2T: c[2],
			ISO639_1:  c[3],
			Scope:     c[4],
			Type:      c[5],
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse iso 639-3 table: %w", err)
	}
	return out, nil
}

// ParseNameIndex parses the ISO 639-3 name index (Id, Print_Name, Inverted_Name)
// into sorted, de-duplicated alias lists.
func ParseNameIndex(r io.Reader) (map[string][]string, error) {
	sets := make(map[string]map[string]bool)
	err := readTSV(r, "Id\t", 3, func(c []string) {
		set := sets[c[0]]
		if set == nil {
			set = make(map[string]bool)
			sets[c[0]] = set
		}
		for _, name := range c[1:3] {
			if name != "" {
				set[name] = true
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse iso 639-3 name index: %w", err)
	}
	out := make(map[string][]string, len(sets))
	for code, set := range sets {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[code] = names
	}
	return out, nil
}

// ParseMacrolanguages parses the ISO 639-3 macrolanguage mappings
// (M_Id, I_Id, I_Status) into macrolanguage → member lists.
func ParseMacrolanguages(r io.Reader) (map[string][]string, error) {
	out := make(map[string][]string)
	err := readTSV(r, "M_Id\t", 2, func(c []string) {
		out[c[0]] = append(out[c[0]], c[1])
	})
	if err != nil {
		return nil, fmt.Errorf("parse iso 639-3 macrolanguages: %w", err)
	}
	return out, nil
}

const iso6395Prefix = "http://id.loc.gov/vocabulary/iso639-5/"

type rdfDocument struct {
	Descriptions []rdfDescription `xml:"Description"`
}

type rdfDescription struct {
	About  string     `xml:"about,attr"`
	Labels []rdfLabel `xml:"prefLabel"`
}

type rdfLabel struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// ParseISO6395RDF parses the Library of Congress ISO 639-5 SKOS RDF/XML
// export into family code → English label.
func ParseISO6395RDF(r io.Reader) (map[string]string, error) {
	var doc rdfDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse iso 639-5 rdf: %w", err)
	}
	out := make(map[string]string)
	for _, d := range doc.Descriptions {
		if !strings.HasPrefix(d.About, iso6395Prefix) {
			continue
		}
		code := strings.TrimPrefix(d.About, iso6395Prefix)
		if code == "" || strings.Contains(code, "/") {
			continue
		}
		out[code] = pickLabel(d.Labels)
	}
	return out, nil
}

func pickLabel(labels []rdfLabel) string {
	for _, l := range labels {
		if l.Lang == "en" || l.Lang == "" {
			return strings.TrimSpace(l.Value)
		}
	}
	if len(labels) > 0 {
		return strings.TrimSpace(labels[0].Value)
	}
	return ""
}

// ParseISO6395JSON parses ISO 639-5 families given as {code: label},
// {"matches": {code: label}}, {code: {"name": label}} or a list of codes.
func ParseISO6395JSON(data []byte) (map[string]string, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(map[string]string, len(list))
		for _, code := range list {
			out[code] = code
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse iso 639-5 json: %w", err)
	}
	if inner, ok := obj["matches"]; ok && len(obj) == 1 {
		return ParseISO6395JSON(inner)
	}

	out := make(map[string]string, len(obj))
	for code, raw := range obj {
		var label string
		if err := json.Unmarshal(raw, &label); err == nil {
			out[code] = label
			continue
		}
		var entry struct {
			Name optString `json:"name"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("parse iso 639-5 entry %q: %w", code, err)
		}
		out[code] = string(entry.Name)
	}
	return out, nil
}

// MergeISO combines the ISO tables into one code → ISOInfo map.
// Family entries (ISO 639-5) carry only their own code; a family code that
// collides with an ISO 639-3 code keeps the ISO 639-3 entry.
func MergeISO(codes map[string]ISOInfo, aliases, macros map[string][]string, families map[string]string) map[string]ISOInfo {
	out := make(map[string]ISOInfo, len(codes)+len(families))
	for code, info := range codes {
		if info.Name == "" {
			info.Name = code
		}
		info.Aliases = aliases[code]
		info.Members = macros[code]
		out[code] = info
	}
	macroCodes := make([]string, 0, len(macros))
	for macro := range macros {
		macroCodes = append(macroCodes, macro)
	}
	sort.Strings(macroCodes)
	for _, macro := range macroCodes {
		for _, m := range macros[macro] {
			if info, ok := out[m]; ok && info.Macrolanguage == "" {
				info.Macrolanguage = macro
				out[m] = info
			}
		}
	}
	for code, label := range families {
		if _, ok := out[code]; ok {
			continue
		}
		if label == "" {
			label = code
		}
		out[code] = ISOInfo{Name: label, ISO639_5: code}
	}
	return out
}
