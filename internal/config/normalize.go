package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeExtract(); err != nil {
		return err
	}
	if err := c.normalizeMerge(); err != nil {
		return err
	}
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeExtract() error {
	var err error
	c.Extract.DataDir = strings.TrimSpace(c.Extract.DataDir)
	if c.Extract.DataDir == "" {
		c.Extract.DataDir = defaultDataDir
	}
	if c.Extract.DataDir, err = expandHome(c.Extract.DataDir); err != nil {
		return fmt.Errorf("extract.data_dir: %w", err)
	}
	c.Extract.DataDir = filepath.Clean(c.Extract.DataDir)

	c.Extract.Output = strings.TrimSpace(c.Extract.Output)
	if c.Extract.Output, err = expandHome(c.Extract.Output); err != nil {
		return fmt.Errorf("extract.output: %w", err)
	}

	if value, ok := os.LookupEnv("CORPUSMETA_REFERENCE_YEAR"); ok && strings.TrimSpace(value) != "" {
		year, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("CORPUSMETA_REFERENCE_YEAR: %w", err)
		}
		c.Extract.ReferenceYear = year
	}
	if c.Extract.EmotionPlaceholder == "" {
		c.Extract.EmotionPlaceholder = defaultEmotionPlaceholder
	}
	return nil
}

func (c *Config) normalizeMerge() error {
	for name, field := range map[string]*string{
		"merge.left":   &c.Merge.Left,
		"merge.right":  &c.Merge.Right,
		"merge.output": &c.Merge.Output,
	} {
		expanded, err := expandHome(strings.TrimSpace(*field))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = expanded
	}
	keys := c.Merge.Keys[:0]
	for _, key := range c.Merge.Keys {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	c.Merge.Keys = keys
	return nil
}

func (c *Config) normalizeCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	var err error
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if level, ok := os.LookupEnv("CORPUSMETA_LOG_LEVEL"); ok && strings.TrimSpace(level) != "" {
		c.Logging.Level = level
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" && c.Logging.File != "stdout" && c.Logging.File != "stderr" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
