package pipeline

import (
	"compress/gzip"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lahtis/glfm/pkg/cache"
	"github.com/lahtis/glfm/pkg/errors"
	glfmio "github.com/lahtis/glfm/pkg/io"
	"github.com/lahtis/glfm/pkg/source"
)

const isoTab = "Id\tPart2b\tPart2t\tPart1\tScope\tLanguage_Type\tRef_Name\tComment\n" +
	"fin\tfin\tfin\tfi\tI\tL\tFinnish\t\n" +
	"krl\t\t\t\tI\tL\tKarelian\t\n" +
	"xyz\t\t\t\tI\tL\tNowhere\t\n"

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		strategy string
		wantErr  bool
	}{
		{"wikidata", false},
		{"wiktionary", false},
		{"Wikidata", true}, // case-sensitive
		{"glottolog", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStrategy(tt.strategy)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStrategy(%q) error = %v, wantErr %v", tt.strategy, err, tt.wantErr)
		}
	}
}

func TestFamilyOptionsDefaults(t *testing.T) {
	o := FamilyOptions{Strategy: StrategyWiktionary, OutputDir: "out"}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.MaxDepth != 20 || o.FlushEvery != 20 || len(o.Generic) == 0 {
		t.Errorf("defaults not applied: %+v", o)
	}

	o = FamilyOptions{OutputDir: "out"}
	if err := o.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("wikidata without a remote: error = %v, want INVALID_INPUT", err)
	}

	o = FamilyOptions{Strategy: StrategyWiktionary, OutputDir: "out", MaxDepth: -1}
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("negative depth should fail")
	}
}

func TestRunIDs(t *testing.T) {
	a, b := quietRunner(), quietRunner()
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run ids %q and %q should be distinct and non-empty", a.RunID, b.RunID)
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	paths := source.Paths{
		ISO6393: writeFile(t, dir, "iso-639-3.tab", isoTab),
		CLDR:    writeFile(t, dir, "likely.json", `{"fi": "fi_Latn_FI"}`),
		Lexical: writeFile(t, dir, "wiktionary.json", `{"krl": {"name": "Karelian", "fallback": "fin"}}`),
		Written: writeFile(t, dir, "written.json", `{"fin": {"written": true, "scripts": ["Latn"]}}`),
	}

	res, err := quietRunner().Build(context.Background(), BuildOptions{Sources: paths, OutputDir: out})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Stats.Records != 3 {
		t.Errorf("Records = %d, want 3", res.Stats.Records)
	}
	if res.Diagnostics.Len() != 0 {
		t.Errorf("Diagnostics = %v, want none", res.Diagnostics)
	}
	if got := res.Catalog["fin"].BCP47; got != "fi-Latn-FI" {
		t.Errorf("fin bcp47 = %q, want fi-Latn-FI", got)
	}
	if got := res.Catalog["xyz"].BCP47; got != "xyz" {
		t.Errorf("xyz bcp47 = %q, want xyz", got)
	}
	if got := res.Catalog["krl"].Fallback; got != "fin" {
		t.Errorf("krl fallback = %q, want fin", got)
	}

	first, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	res2, err := quietRunner().Build(context.Background(), BuildOptions{Sources: paths, OutputDir: out})
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	second, _ := os.ReadFile(res2.Path)
	if string(first) != string(second) {
		t.Error("rebuilding from unchanged sources changed the catalog")
	}
}

func TestBuildMissingSourceWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	_, err := quietRunner().Build(context.Background(), BuildOptions{
		Sources:   source.Paths{ISO6393: filepath.Join(dir, "missing.tab")},
		OutputDir: out,
	})
	if !errors.Is(err, errors.ErrCodeSourceFileMissing) {
		t.Fatalf("error = %v, want SOURCE_FILE_MISSING", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output directory should not exist after an aborted build")
	}
}

func TestFamiliesWiktionary(t *testing.T) {
	dir := t.TempDir()
	module := `
m["urj"] = { "Uralic", 34271 }
m["urj-fin"] = { canonicalName = "Finnic", family = "urj" }
m["smi"] = { canonicalName = "Sami", family = "urj" }
`
	opts := FamilyOptions{
		Sources:   source.Paths{Families: writeFile(t, dir, "families.lua", module)},
		OutputDir: filepath.Join(dir, "families"),
		Strategy:  StrategyWiktionary,
	}

	res, err := quietRunner().Families(context.Background(), opts)
	if err != nil {
		t.Fatalf("Families: %v", err)
	}
	if len(res.Files) != 5 {
		t.Errorf("wrote %d files, want 5", len(res.Files))
	}
	fin := res.Families["urj-fin"]
	if fin.Macro.ID != "urj" || fin.Macro.Label != "Uralic" {
		t.Errorf("urj-fin macro = %+v", fin.Macro)
	}
	// urj has no parent, so its ultimate level falls back to the seed.
	if got := res.Families["urj"].UltimateMacro.ID; got != "urj" {
		t.Errorf("urj ultimate = %q, want urj", got)
	}

	// Reclassify from the persisted chains.
	opts.FromChains = true
	again, err := quietRunner().Families(context.Background(), opts)
	if err != nil {
		t.Fatalf("Families(FromChains): %v", err)
	}
	if again.Families["urj-fin"].Macro != fin.Macro {
		t.Errorf("reclassified macro = %+v, want %+v", again.Families["urj-fin"].Macro, fin.Macro)
	}
}

// offlineRemote fails every call, like an unreachable Wikidata.
type offlineRemote struct{}

func (offlineRemote) Parents(context.Context, string) ([]string, error) {
	return nil, stderrors.New("offline")
}

func (offlineRemote) Search(context.Context, string) (string, bool, error) {
	return "", false, stderrors.New("offline")
}

func (offlineRemote) Labels(context.Context, []string) (map[string]string, error) {
	return nil, stderrors.New("offline")
}

func TestFamiliesFromChainsUsesLabelCache(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "families")
	if err := glfmio.ExportJSON(filepath.Join(out, glfmio.ChainsFile), map[string][]string{"urj": {"Q1", "Q2"}}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	labelIDs, err := cache.OpenFileStore(filepath.Join(dir, "cache_label_to_qid.json"))
	if err != nil {
		t.Fatal(err)
	}
	for label, id := range map[string]string{"Uralic": "Q1", "Uralo-Siberian": "Q2", "Nowhere languages": ""} {
		if err := labelIDs.Set(ctx, label, id); err != nil {
			t.Fatal(err)
		}
	}

	res, err := quietRunner().Families(ctx, FamilyOptions{
		OutputDir:   out,
		Strategy:    StrategyWikidata,
		FromChains:  true,
		FetchLabels: false,
		Remote:      offlineRemote{},
		Caches:      FamilyCaches{LabelIDs: labelIDs},
	})
	if err != nil {
		t.Fatalf("Families(FromChains): %v", err)
	}

	urj := res.Families["urj"]
	if urj.Macro.ID != "Q1" || urj.Macro.Label != "Uralic" {
		t.Errorf("urj macro = %+v, want Q1 Uralic", urj.Macro)
	}
	if urj.UltimateMacro.ID != "Q2" || urj.UltimateMacro.Label != "Uralo-Siberian" {
		t.Errorf("urj ultimate = %+v, want Q2 Uralo-Siberian", urj.UltimateMacro)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, CatalogFile, `{
  "a": {"id": "a", "bcp47": "fi", "default_script": "Latn", "fallback": "b"},
  "b": {"id": "b", "bcp47": "et", "default_script": "Latn", "fallback": "a"}
}`)

	report, path, err := quietRunner().Validate(context.Background(), ValidateOptions{
		CatalogPath: catalog,
		OutputDir:   dir,
		Validators:  []string{"fallback", "bcp47"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := report.Results["fallback"].ByCode(errors.ErrCodeFallbackCycle).Len(); got != 2 {
		t.Errorf("cycle diagnostics = %d, want 2 (one per record)", got)
	}
	if report.Results["bcp47"].Len() != 0 {
		t.Errorf("bcp47 diagnostics = %v", report.Results["bcp47"])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), `"run_id"`) {
		t.Error("report is missing the run id")
	}
}

func TestPOSStats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.jsonl.gz")
	f, err := os.Create(input)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	_, _ = zw.Write([]byte(`{"lang_code": "fi", "pos": "noun"}
{"lang_code": "fi", "pos": "noun"}
not json
`))
	zw.Close()
	f.Close()

	output := filepath.Join(dir, POSStatsFile)
	sum, err := quietRunner().POSStats(context.Background(), POSStatsOptions{Input: input, Output: output})
	if err != nil {
		t.Fatalf("POSStats: %v", err)
	}
	if sum.Entries != 2 || sum.Malformed != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}
