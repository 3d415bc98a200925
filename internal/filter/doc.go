// Package filter narrows list content to the lines matching a user pattern.
//
// A Spec is compiled once into a Matcher and then applied line by line.
// Patterns are plain text (optionally whole-word), wildcards where "*" matches
// any run of characters and the whole line must match, or regular expressions
// in RE2 syntax. Compilation failures are returned as *PatternError values
// wrapping ErrInvalidPattern so callers can keep the previous filter in place.
package filter
