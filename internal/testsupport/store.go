package testsupport

import (
	"context"
	"testing"

	"listcmp/internal/config"
	"listcmp/internal/exchange"
	"listcmp/internal/store"
	"listcmp/internal/tokens"
	"listcmp/internal/workspace"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SaveWorkspace stores a workspace whose lists hold the given contents, in
// order, under name.
func SaveWorkspace(t testing.TB, st *store.Store, name string, contents ...string) *store.Record {
	t.Helper()

	opts := []workspace.Option{}
	if len(contents) > workspace.MinLists {
		opts = append(opts, workspace.WithListCount(len(contents)))
	}
	ws := workspace.New(opts...)
	for i, list := range ws.Lists() {
		if i < len(contents) {
			if err := ws.SetContent(list.ID, contents[i]); err != nil {
				t.Fatalf("SetContent: %v", err)
			}
		}
	}
	rec, err := st.Save(context.Background(), name, exchange.FromWorkspace(ws, tokens.Config{}))
	if err != nil {
		t.Fatalf("store.Save: %v", err)
	}
	return rec
}
