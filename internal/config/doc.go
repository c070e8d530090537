// Package config loads, normalizes, and validates compsplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the COMPSPLIT_DICTIONARY
// environment fallback. The Config type centralizes the dictionary loading
// rules, segmentation limits, and logging knobs so the CLI resolves every
// setting in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical enum values, and clear validation errors.
package config
