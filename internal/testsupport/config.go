package testsupport

import (
	"path/filepath"
	"strings"
	"testing"

	"corpusmeta/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose inputs and outputs live in a unique temp
// directory per test. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Extract.DataDir = filepath.Join(base, "data")
	cfgVal.Extract.Output = filepath.Join(base, "metadata.csv")
	cfgVal.Merge.Left = filepath.Join(base, "segmented_linguistic-labels.csv")
	cfgVal.Merge.Right = filepath.Join(base, "segmented_acoustic-labels.csv")
	cfgVal.Merge.Output = filepath.Join(base, "segmented_combined.csv")
	cfgVal.Catalog.Path = filepath.Join(base, "state", "catalog.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalog enables the SQLite catalog at its temp location.
func WithCatalog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Enabled = true
	}
}

// WithReferenceYear overrides the year ages are computed against.
func WithReferenceYear(year int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.ReferenceYear = year
	}
}

// WithStrictFilenames turns on full-name matching.
func WithStrictFilenames() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Extract.StrictFilenames = true
	}
}

// WithInferKeys joins on every shared column instead of merge.keys.
func WithInferKeys() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Merge.InferKeys = true
	}
}

// WithCorruptCatalog enables the catalog but points it at a file that is not
// a SQLite database.
func WithCorruptCatalog() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Enabled = true
		WriteFile(b.t, b.cfg.Catalog.Path, strings.Repeat("not a catalog database\n", 64))
	}
}
