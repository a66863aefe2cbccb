package errors

import "testing"

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"iso 639-1", "fi", false},
		{"iso 639-3", "fin", false},
		{"iso 639-5", "urj", false},
		{"wiktionary sub-family", "urj-fin", false},

		{"empty", "", true},
		{"uppercase", "FIN", true},
		{"single letter", "f", true},
		{"path traversal", "../etc", true},
		{"trailing hyphen", "fin-", true},
		{"too long", "abc-defghijk-lmnopqrs-tuvwxyz-abcdefgh", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"Q33", false},
		{"Q20162172", false},
		{"Q0", true},
		{"q33", true},
		{"P279", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateQID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/glfm.json", false},
		{"absolute", "/tmp/glfm.json", false},
		{"dotted name", "out/..glfm.json", false},
		{"empty", "", true},
		{"traversal", "out/../../etc/passwd", true},
		{"null byte", "out\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidPath {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://www.wikidata.org/w/api.php"); err != nil {
		t.Errorf("ValidateURL(https) error = %v", err)
	}
	if err := ValidateURL("ftp://example.org"); err == nil {
		t.Error("ValidateURL(ftp) should fail")
	}
}
