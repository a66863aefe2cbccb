package derive

import (
	"github.com/lahtis/glfm/pkg/source"
)

// Input is the per-code view of the sources a deriver may consult.
type Input struct {
	Code    string
	ISO     source.ISOInfo
	CLDR    map[string]string
	Lexical source.Attributes
	Written source.Attributes
}

// NewInput collects the attributes of code from set.
func NewInput(code string, set *source.Set) Input {
	return Input{
		Code:    code,
		ISO:     set.ISO[code],
		CLDR:    set.CLDR,
		Lexical: set.Lexical[code],
		Written: set.Written[code],
	}
}

// CLDRKey returns the likely-subtags key for the input: the ISO 639-1 code
// when the language has one, its own code otherwise.
func (in Input) CLDRKey() string {
	if in.ISO.ISO639_1 != "" {
		return in.ISO.ISO639_1
	}
	return in.Code
}

// likely returns the likely-subtags segments for the input, or nil.
func (in Input) likely() []string {
	tag, ok := in.CLDR[in.CLDRKey()]
	if !ok {
		return nil
	}
	return source.SplitLikely(tag)
}
