// Package workspace owns the set of named lists a user compares and the
// explicit recomputation that turns them into comparison results.
//
// A Workspace always holds between MinLists and MaxLists lists. Each list has
// a stable integer id, a name, an optional category, raw content, and at most
// one active filter. Filters are non-destructive: the raw content is kept and
// the filtered text is substituted as the list's effective content whenever
// the workspace is snapshotted for comparison.
//
// There is no implicit reactivity. Callers take a Snapshot after changing
// lists or the comparison config and pass it to Compute, a pure function from
// (lists, config, selection) to a Report.
package workspace
