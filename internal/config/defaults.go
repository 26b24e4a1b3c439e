package config

const (
	defaultDataDir            = "data"
	defaultMetadataOutput     = "metadata.csv"
	defaultReferenceYear      = 2025
	defaultEmotionPlaceholder = "unknown"
	defaultMergeLeft          = "segmented_linguistic-labels.csv"
	defaultMergeRight         = "segmented_acoustic-labels.csv"
	defaultMergeOutput        = "segmented_combined.csv"
	defaultCatalogPath        = "~/.local/share/corpusmeta/catalog.db"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// DefaultMergeKeys lists the columns two segment tables must agree on to be
// joined. Downstream consumers assume exactly this schema.
var DefaultMergeKeys = []string{
	"file",
	"start",
	"end",
	"speaker",
	"gender",
	"age",
	"birth_year",
	"duration",
	"emotion",
	"text",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	keys := make([]string, len(DefaultMergeKeys))
	copy(keys, DefaultMergeKeys)
	return Config{
		Extract: Extract{
			DataDir:            defaultDataDir,
			Output:             defaultMetadataOutput,
			ReferenceYear:      defaultReferenceYear,
			EmotionPlaceholder: defaultEmotionPlaceholder,
		},
		Merge: Merge{
			Left:   defaultMergeLeft,
			Right:  defaultMergeRight,
			Output: defaultMergeOutput,
			Keys:   keys,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
