// Package config loads, normalizes, and validates corpusmeta configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CORPUSMETA_REFERENCE_YEAR. The Config type centralizes every knob the
// extract and merge pipelines need so both commands resolve inputs, outputs,
// and the catalog location in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
