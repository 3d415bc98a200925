// Package main hosts the listcmp CLI entrypoint and command graph.
//
// The Cobra command tree reads lists from files, stdin, or saved workspaces,
// runs them through the comparison engine, and renders the results as tables,
// JSON, or CSV. It resolves configuration once per invocation, applies flag
// overrides on top of it, and routes logs to stderr so stdout only carries
// results.
//
// Comparison, filtering, sorting and case logic live in the internal packages;
// commands here only gather input, persist workspaces, and format output.
package main
