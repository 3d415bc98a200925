package setalgebra

import (
	"runtime"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"listcmp/internal/tokens"
)

// prepared is one list's deduplicated values together with their key set.
type prepared struct {
	values []tokens.Token
	keys   mapset.Set[tokens.Key]
}

// prepare tokenizes and deduplicates every list. Lists are independent, so the
// work fans out across goroutines; each result lands in its own slot, which
// keeps the output order identical to the input order.
func prepare(lists []List, cfg tokens.Config) []prepared {
	out := make([]prepared, len(lists))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range lists {
		g.Go(func() error {
			values := tokens.Values(lists[i].Content, cfg)
			keys := mapset.NewThreadUnsafeSetWithSize[tokens.Key](len(values))
			for _, v := range values {
				keys.Add(tokens.KeyOf(v, cfg))
			}
			out[i] = prepared{values: values, keys: keys}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// CompareAll computes per-list unique values and the values common to all lists.
//
// The returned slice has one entry per input list, in input order, followed by
// the common entry. A value is unique to a list when no other list contains an
// equal value under cfg; common values keep the order of the first list.
func CompareAll(lists []List, cfg tokens.Config) []Result {
	sets := prepare(lists, cfg)

	// owners counts how many lists contain each key; values are deduped per
	// list, so a count of one means the key belongs to a single list.
	owners := make(map[tokens.Key]int)
	for _, set := range sets {
		set.keys.Each(func(key tokens.Key) bool {
			owners[key]++
			return false
		})
	}

	results := make([]Result, 0, len(lists)+1)
	for i, list := range lists {
		unique := make([]tokens.Token, 0, len(sets[i].values))
		for _, value := range sets[i].values {
			if owners[tokens.KeyOf(value, cfg)] == 1 {
				unique = append(unique, value)
			}
		}
		results = append(results, Result{ListID: list.ID, UniqueValues: unique})
	}

	common := []tokens.Token{}
	if len(sets) > 0 {
		for _, value := range sets[0].values {
			if owners[tokens.KeyOf(value, cfg)] == len(sets) {
				common = append(common, value)
			}
		}
	}
	results = append(results, Result{Common: true, UniqueValues: common})
	return results
}

// CompareSubset computes the intersection or union of the selected lists.
//
// Fewer than two selected ids yields an empty result rather than an error.
// Ids absent from lists are ignored, repeated ids count once, and if fewer than
// two selected lists remain the result is empty. Intersection keeps the order
// of the first selected list; union keeps first-seen order across the
// selection, including the casing of the first occurrence.
func CompareSubset(lists []List, selected []int, cfg tokens.Config, op Op) []tokens.Token {
	if len(selected) < 2 {
		return []tokens.Token{}
	}
	chosen := resolveSelection(lists, selected)
	if len(chosen) < 2 {
		return []tokens.Token{}
	}
	sets := prepare(chosen, cfg)

	switch op {
	case OpUnion:
		total := 0
		for _, set := range sets {
			total += len(set.values)
		}
		combined := make([]tokens.Token, 0, total)
		for _, set := range sets {
			combined = append(combined, set.values...)
		}
		return tokens.Dedupe(combined, cfg)
	default:
		out := []tokens.Token{}
		for _, value := range sets[0].values {
			key := tokens.KeyOf(value, cfg)
			inAll := true
			for _, other := range sets[1:] {
				if !other.keys.Contains(key) {
					inAll = false
					break
				}
			}
			if inAll {
				out = append(out, value)
			}
		}
		return out
	}
}

func resolveSelection(lists []List, selected []int) []List {
	byID := make(map[int]List, len(lists))
	for _, list := range lists {
		if _, ok := byID[list.ID]; !ok {
			byID[list.ID] = list
		}
	}
	seen := make(map[int]struct{}, len(selected))
	chosen := make([]List, 0, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if list, ok := byID[id]; ok {
			chosen = append(chosen, list)
		}
	}
	return chosen
}
