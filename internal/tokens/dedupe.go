package tokens

// Dedupe removes repeated tokens while preserving first-occurrence order.
//
// Uniqueness is judged on KeyOf, so under case-insensitive text comparison
// "Apple" and "apple" collide and whichever appears first is the one kept.
func Dedupe(tokens []Token, cfg Config) []Token {
	if len(tokens) == 0 {
		return []Token{}
	}
	seen := make(map[Key]struct{}, len(tokens))
	out := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		key := KeyOf(token, cfg)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Values tokenizes and deduplicates raw content in one step.
func Values(raw string, cfg Config) []Token {
	return Dedupe(ParseInput(raw, cfg), cfg)
}

// Stats summarizes the token counts of one list's content.
type Stats struct {
	Total      int `json:"total"`
	Distinct   int `json:"distinct"`
	Duplicates int `json:"duplicates"`
}

// CountStats reports pre- and post-dedup counts for raw content. Duplicates is
// the number of tokens removed by Dedupe.
func CountStats(raw string, cfg Config) Stats {
	parsed := ParseInput(raw, cfg)
	distinct := len(Dedupe(parsed, cfg))
	return Stats{
		Total:      len(parsed),
		Distinct:   distinct,
		Duplicates: len(parsed) - distinct,
	}
}

// DuplicatesCount returns how many tokens in raw repeat an earlier one.
func DuplicatesCount(raw string, cfg Config) int {
	return CountStats(raw, cfg).Duplicates
}
