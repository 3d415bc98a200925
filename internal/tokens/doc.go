// Package tokens turns raw delimited list content into comparable values.
//
// Content is split on runs of commas and newlines, trimmed, and converted to
// a Token according to the active Mode. Numeric mode silently discards
// fragments that do not parse as numbers; text mode keeps every non-empty
// fragment and folds it to lowercase when comparison is case-insensitive.
//
// Deduplication is a separate stage so callers can report pre-dedup counts.
// Dedupe preserves first-occurrence order, and under case-insensitive text
// comparison it keeps the first-seen casing of each value.
//
// Everything here is a pure function of its inputs; repeated calls with the
// same content and Config yield identical output.
package tokens
