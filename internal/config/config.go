// Package config loads the glfm configuration.
//
// Values come from a TOML file and GLFM_* environment variables.
// Priority: ENV > file > defaults (via env-default tags).
package config

import (
	"path/filepath"
	"time"

	"github.com/lahtis/glfm/pkg/source"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "glfm.toml"

// Config is the root configuration.
type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	Family  FamilyConfig  `toml:"family"`
	Cache   CacheConfig   `toml:"cache"`
	Publish PublishConfig `toml:"publish"`
	Server  ServerConfig  `toml:"server"`
}

// PathsConfig locates inputs and outputs. Relative source files are
// resolved against DataDir.
type PathsConfig struct {
	DataDir           string `toml:"data_dir"           env:"GLFM_DATA_DIR"            env-default:"data"`
	OutputDir         string `toml:"output_dir"         env:"GLFM_OUTPUT_DIR"          env-default:"output"`
	FamiliesDir       string `toml:"families_dir"       env:"GLFM_FAMILIES_DIR"        env-default:"output/maps"`
	ISO6393           string `toml:"iso639_3"           env:"GLFM_ISO639_3"            env-default:"iso-639-3.tab"`
	ISONames          string `toml:"iso639_3_names"     env:"GLFM_ISO639_3_NAMES"      env-default:"iso-639-3_Name_Index.tab"`
	ISOMacrolanguages string `toml:"iso639_3_macro"     env:"GLFM_ISO639_3_MACRO"      env-default:"iso-639-3-macrolanguages.tab"`
	ISO6395           string `toml:"iso639_5"           env:"GLFM_ISO639_5"            env-default:"iso_639_5.json"`
	CLDR              string `toml:"cldr"               env:"GLFM_CLDR"                env-default:"likelySubtags.json"`
	Lexical           string `toml:"wiktionary"         env:"GLFM_WIKTIONARY"          env-default:"wiktionary_languages.json"`
	Written           string `toml:"written"            env:"GLFM_WRITTEN"             env-default:"written_languages.json"`
	Glottolog         string `toml:"glottolog"          env:"GLFM_GLOTTOLOG"           env-default:"glottolog.json"`
	PosStats          string `toml:"pos_stats"          env:"GLFM_POS_STATS"           env-default:"pos_stats.json"`
	Uralic            string `toml:"uralic"             env:"GLFM_URALIC"              env-default:"uralic_languages.json"`
	Families          string `toml:"wiktionary_families" env:"GLFM_WIKTIONARY_FAMILIES" env-default:"wiktionary_families.lua"`
	Wiktextract       string `toml:"wiktextract"        env:"GLFM_WIKTEXTRACT"         env-default:"raw-wiktextract-data.jsonl.gz"`
}

// FamilyConfig configures family resolution.
type FamilyConfig struct {
	Strategy    string        `toml:"strategy"     env:"GLFM_FAMILY_STRATEGY"     env-default:"wikidata"`
	MaxDepth    int           `toml:"max_depth"    env:"GLFM_FAMILY_MAX_DEPTH"    env-default:"20"`
	Delay       time.Duration `toml:"delay"        env:"GLFM_FAMILY_DELAY"        env-default:"100ms"`
	FlushEvery  int           `toml:"flush_every"  env:"GLFM_FAMILY_FLUSH_EVERY"  env-default:"20"`
	Generic     []string      `toml:"generic"      env:"GLFM_FAMILY_GENERIC"      env-default:"Q20162172,Q34770,Q17376908,Q7048977,Q18205125"`
	SkipLabels  bool          `toml:"skip_labels"  env:"GLFM_FAMILY_SKIP_LABELS"`
	UserAgent   string        `toml:"user_agent"   env:"GLFM_USER_AGENT"          env-default:"glfm/1.0 (https://github.com/lahtis/glfm)"`
	Endpoint    string        `toml:"endpoint"     env:"GLFM_WIKIDATA_ENDPOINT"   env-default:"https://www.wikidata.org/w/api.php"`
}

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// CacheConfig configures the genealogy lookup cache. An empty Dir means
// the user cache directory.
type CacheConfig struct {
	Backend  string `toml:"backend"   env:"GLFM_CACHE_BACKEND" env-default:"file"`
	Dir      string `toml:"dir"       env:"GLFM_CACHE_DIR"`
	RedisURL string `toml:"redis_url" env:"GLFM_REDIS_URL"     env-default:"redis://localhost:6379/0"`
}

// PublishConfig configures MongoDB publishing.
type PublishConfig struct {
	MongoURI   string `toml:"mongo_uri"  env:"GLFM_MONGO_URI"        env-default:"mongodb://localhost:27017"`
	Database   string `toml:"database"   env:"GLFM_MONGO_DATABASE"   env-default:"glfm"`
	Collection string `toml:"collection" env:"GLFM_MONGO_COLLECTION" env-default:"languages"`
}

// ServerConfig configures the read-only API.
type ServerConfig struct {
	Addr string `toml:"addr" env:"GLFM_SERVER_ADDR" env-default:":8080"`
}

// Sources returns the source file locations.
func (p PathsConfig) Sources() source.Paths {
	return source.Paths{
		ISO6393:           p.resolve(p.ISO6393),
		ISONames:          p.resolve(p.ISONames),
		ISOMacrolanguages: p.resolve(p.ISOMacrolanguages),
		ISO6395:           p.resolve(p.ISO6395),
		CLDR:              p.resolve(p.CLDR),
		Lexical:           p.resolve(p.Lexical),
		Written:           p.resolve(p.Written),
		Glottolog:         p.resolve(p.Glottolog),
		PosStats:          p.resolve(p.PosStats),
		Uralic:            p.resolve(p.Uralic),
		Families:          p.resolve(p.Families),
	}
}

// WiktextractPath returns the location of the Wiktextract dump.
func (p PathsConfig) WiktextractPath() string {
	return p.resolve(p.Wiktextract)
}

func (p PathsConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.DataDir, name)
}
