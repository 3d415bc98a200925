// Package sorting orders tokens and list content under the active comparison mode.
//
// Numbers sort numerically. Text sorts with a locale-aware collator; when the
// comparison is case-insensitive the collator sees lowercase keys while the
// original values are returned. Sorting is stable and never mutates its input.
package sorting
