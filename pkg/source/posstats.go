package source

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParsePOSStats parses part-of-speech statistics {code: {pos: count}}.
func ParsePOSStats(data []byte) (map[string]map[string]int, error) {
	var out map[string]map[string]int
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse pos stats: %w", err)
	}
	if out == nil {
		out = map[string]map[string]int{}
	}
	return out, nil
}

// POSSummary describes a Wiktextract scan.
type POSSummary struct {
	Lines     int
	Entries   int
	Malformed int
}

// BuildPOSStats streams a Wiktextract JSONL dump and counts entries per
// (lang_code, pos). When gzipped is true r is decompressed first.
// Malformed lines and entries without a language code or part of speech
// are skipped.
func BuildPOSStats(r io.Reader, gzipped bool) (map[string]map[string]int, POSSummary, error) {
	var sum POSSummary
	if gzipped {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, sum, fmt.Errorf("open wiktextract dump: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	stats := make(map[string]map[string]int)
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, err := br.ReadString('\n')
		if len(strings.TrimSpace(line)) > 0 {
			sum.Lines++
			var entry struct {
				LangCode string `json:"lang_code"`
				POS      string `json:"pos"`
			}
			if jerr := json.Unmarshal([]byte(line), &entry); jerr != nil {
				sum.Malformed++
			} else if entry.LangCode != "" && entry.POS != "" {
				counts := stats[entry.LangCode]
				if counts == nil {
					counts = make(map[string]int)
					stats[entry.LangCode] = counts
				}
				counts[entry.POS]++
				sum.Entries++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, sum, fmt.Errorf("read wiktextract dump: %w", err)
		}
	}
	return stats, sum, nil
}
