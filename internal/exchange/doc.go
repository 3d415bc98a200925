// Package exchange converts workspaces to and from portable formats: a
// versioned JSON document, a human-readable block format, and CSV exports of
// comparison results.
package exchange
