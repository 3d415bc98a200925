// Package config loads, normalizes, and validates listcmp configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the LISTCMP_MODE and LISTCMP_CASE_SENSITIVE
// environment overrides. Commands obtain comparison settings, output
// preferences, and the workspace store location through this package so they
// see canonical values and clear validation errors.
package config
