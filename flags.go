package doorsheet

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/catalog"
	"github.com/flanksource/doorsheet/formatters/pdf"
	"github.com/flanksource/doorsheet/layout"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type AllFlags struct {
	GeneratorFlags `yaml:",inline"`
	logger.Flags   `yaml:"-"`
}

// GeneratorFlags select the catalog, layout and fonts a Generator is built from
type GeneratorFlags struct {
	AssetRoot    string        `yaml:"assets"`
	CatalogFile  string        `yaml:"catalog,omitempty"`
	LayoutFile   string        `yaml:"layout,omitempty"`
	FontFamily   string        `yaml:"font_family"`
	FontRegular  string        `yaml:"font_regular,omitempty"`
	FontBold     string        `yaml:"font_bold,omitempty"`
	OnEmpty      string        `yaml:"on_empty"`
	LegacyNaming bool          `yaml:"legacy_naming"`
	Debug        bool          `yaml:"debug"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	NoCache      bool          `yaml:"no_cache"`
	CacheDB      string        `yaml:"cache_db,omitempty"`
}

// GetEffectiveTTL returns the effective cache TTL considering the no-cache flag
func (g GeneratorFlags) GetEffectiveTTL() time.Duration {
	if g.NoCache {
		return 0
	}
	return g.CacheTTL
}

var Flags AllFlags = AllFlags{
	GeneratorFlags: GeneratorFlags{
		AssetRoot:  "static",
		FontFamily: pdf.DefaultFontSet().Family,
		OnEmpty:    string(catalog.EmptyAllow),
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds logging and generator flags to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.AssetRoot, "assets", Flags.AssetRoot, "Directory holding hazards/, risks/, obligation_signs/ and prohibition_signs/")
	flags.StringVar(&Flags.CatalogFile, "catalog", "", "YAML catalog file (replaces the built-in hazards and risks)")
	flags.StringVar(&Flags.LayoutFile, "layout", "", "YAML file overriding layout constants")
	flags.StringVar(&Flags.FontFamily, "font-family", Flags.FontFamily, "Font family, a PDF core font unless TTF files are given")
	flags.StringVar(&Flags.FontRegular, "font-regular", "", "Regular face TTF file")
	flags.StringVar(&Flags.FontBold, "font-bold", "", "Bold face TTF file")
	flags.StringVar(&Flags.OnEmpty, "on-empty", Flags.OnEmpty, "Empty hazard selection: allow, fail, default or default:<hazard>")
	flags.BoolVar(&Flags.LegacyNaming, "legacy-naming", false, "Name files after the first hazard")
	flags.BoolVar(&Flags.Debug, "debug-regions", false, "Outline layout regions on the sheet")

	flags.DurationVar(&Flags.CacheTTL, "cache-ttl", 0, "Cache TTL for rendered sheets, keyed on the request and the size and mtime of the icons and template used (0 disables the cache)")
	flags.BoolVar(&Flags.NoCache, "no-cache", false, "Disable caching (equivalent to --cache-ttl=0)")
	flags.StringVar(&Flags.CacheDB, "cache-db", "", "Sheet cache database (default ~/.cache/doorsheet.db)")
	return Flags
}

func (a AllFlags) String() string {
	data, _ := yaml.Marshal(a)
	return string(data)
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	logger.Debugf("Using flags:\n%s", a)
}

// Catalog loads the catalog file when set, the built-in catalog otherwise
func (g GeneratorFlags) Catalog() (*catalog.Catalog, error) {
	if g.CatalogFile != "" {
		return catalog.Load(g.CatalogFile)
	}
	return catalog.Default(g.AssetRoot)
}

// NewGenerator builds a Generator from the flag values
func (g GeneratorFlags) NewGenerator() (*Generator, error) {
	cat, err := g.Catalog()
	if err != nil {
		return nil, err
	}
	cfg := layout.DefaultConfig()
	if g.LayoutFile != "" {
		if cfg, err = layout.LoadConfig(g.LayoutFile); err != nil {
			return nil, err
		}
	}
	policy, err := catalog.ParseEmptyPolicy(g.OnEmpty)
	if err != nil {
		return nil, err
	}
	fonts := pdf.FontSet{Family: g.FontFamily, Regular: g.FontRegular, Bold: g.FontBold}
	return NewGenerator(cat, cfg, fonts, Options{
		EmptyPolicy:  policy,
		LegacyNaming: g.LegacyNaming,
		Debug:        g.Debug,
		Cache:        CacheConfig{TTL: g.GetEffectiveTTL(), DBPath: g.CacheDB},
	})
}
