package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExtract(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExtract() error {
	if c.Extract.Output == "" {
		return errors.New("extract.output must be set")
	}
	if c.Extract.ReferenceYear < 1000 || c.Extract.ReferenceYear > 9999 {
		return fmt.Errorf("extract.reference_year must be a four-digit year, got %d", c.Extract.ReferenceYear)
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.Output == "" {
		return errors.New("merge.output must be set")
	}
	if len(c.Merge.Keys) == 0 && !c.Merge.InferKeys {
		return errors.New("merge.keys must list at least one column when merge.infer_keys is false")
	}
	seen := make(map[string]struct{}, len(c.Merge.Keys))
	for _, key := range c.Merge.Keys {
		if _, dup := seen[key]; dup {
			return fmt.Errorf("merge.keys contains duplicate column %q", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.Enabled && strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set when catalog.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
