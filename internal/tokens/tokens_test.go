package tokens_test

import (
	"encoding/json"
	"slices"
	"testing"

	"listcmp/internal/tokens"
)

var (
	numeric       = tokens.Config{Mode: tokens.ModeNumeric}
	textFolded    = tokens.Config{Mode: tokens.ModeText}
	textSensitive = tokens.Config{Mode: tokens.ModeText, CaseSensitive: true}
)

func texts(values []tokens.Token) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Text())
	}
	return out
}

func TestParseInputSplitsOnSeparatorRuns(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cfg  tokens.Config
		want []string
	}{
		{"empty", "", textFolded, []string{}},
		{"commas and newlines", "a,b\nc", textSensitive, []string{"a", "b", "c"}},
		{"separator runs", "a,,\n\n,b", textSensitive, []string{"a", "b"}},
		{"trims fragments", "  a  ,\t b \n", textSensitive, []string{"a", "b"}},
		{"blank fragments dropped", " , \n , x", textSensitive, []string{"x"}},
		{"folds case", "Apple,BANANA", textFolded, []string{"apple", "banana"}},
		{"keeps case", "Apple,BANANA", textSensitive, []string{"Apple", "BANANA"}},
		{"keeps duplicates", "a,a,A", textFolded, []string{"a", "a", "a"}},
		{"numeric drops text", "1,abc,2", numeric, []string{"1", "2"}},
		{"numeric decimals", "1.50, -2e3", numeric, []string{"1.5", "-2000"}},
		{"numeric rejects NaN", "NaN,3", numeric, []string{"3"}},
		{"numeric leading prefix", "12abc, 3.5kg, -.5e1x", numeric, []string{"12", "3.5", "-5"}},
		{"numeric stops at underscore", "1_000", numeric, []string{"1"}},
		{"numeric rejects inf spelling", "inf,Inf,4", numeric, []string{"4"}},
		{"numeric infinity", "Infinity,-Infinity", numeric, []string{"Infinity", "-Infinity"}},
		{"numeric dangling exponent", "2e,7.", numeric, []string{"2", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(tokens.ParseInput(tt.raw, tt.cfg))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ParseInput(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseInputNumericTokens(t *testing.T) {
	got := tokens.ParseInput("1,abc,2", numeric)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
	for i, want := range []float64{1, 2} {
		if !got[i].IsNumeric() || got[i].Number() != want {
			t.Fatalf("token %d = %v, want numeric %v", i, got[i], want)
		}
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	input := []tokens.Token{tokens.Text("Apple"), tokens.Text("banana"), tokens.Text("apple"), tokens.Text("APPLE"), tokens.Text("Banana")}

	got := texts(tokens.Dedupe(input, textFolded))
	if want := []string{"Apple", "banana"}; !slices.Equal(got, want) {
		t.Fatalf("case-insensitive dedupe = %q, want %q", got, want)
	}

	got = texts(tokens.Dedupe(input, textSensitive))
	if want := []string{"Apple", "banana", "apple", "APPLE", "Banana"}; !slices.Equal(got, want) {
		t.Fatalf("case-sensitive dedupe = %q, want %q", got, want)
	}
}

func TestDedupeNumericTreatsSignedZeroAsEqual(t *testing.T) {
	got := tokens.Dedupe(tokens.ParseInput("0,-0,1,1.0", numeric), numeric)
	if want := []string{"0", "1"}; !slices.Equal(texts(got), want) {
		t.Fatalf("numeric dedupe = %q, want %q", texts(got), want)
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	raws := []string{"b,a,b,c,a", "Apple,apple,Banana,BANANA", "3,1,3,2,1", ""}
	for _, cfg := range []tokens.Config{numeric, textFolded, textSensitive} {
		for _, raw := range raws {
			input := tokens.ParseInput(raw, cfg)
			once := tokens.Dedupe(input, cfg)
			twice := tokens.Dedupe(once, cfg)
			if !slices.Equal(texts(once), texts(twice)) {
				t.Fatalf("dedupe not idempotent for %q (%v): %q vs %q", raw, cfg.Mode, texts(once), texts(twice))
			}
		}
	}
}

func TestDedupeOutputIsSubsequence(t *testing.T) {
	input := tokens.ParseInput("c,a,c,b,a,d", textSensitive)
	out := tokens.Dedupe(input, textSensitive)
	i := 0
	for _, token := range input {
		if i < len(out) && token.Text() == out[i].Text() {
			i++
		}
	}
	if i != len(out) {
		t.Fatalf("dedupe output %q is not a subsequence of %q", texts(out), texts(input))
	}
}

func TestEqualHonoursCasePolicy(t *testing.T) {
	a, b := tokens.Text("Apple"), tokens.Text("apple")
	if !tokens.Equal(a, b, textFolded) {
		t.Fatal("expected Apple and apple to be equal when case-insensitive")
	}
	if tokens.Equal(a, b, textSensitive) {
		t.Fatal("expected Apple and apple to differ when case-sensitive")
	}
	if !tokens.Equal(tokens.Number(2), tokens.Number(2.0), numeric) {
		t.Fatal("expected numeric equality")
	}
}

func TestDuplicatesCount(t *testing.T) {
	if got := tokens.DuplicatesCount("1,2,2,3,3,3", numeric); got != 3 {
		t.Fatalf("DuplicatesCount = %d, want 3", got)
	}
	stats := tokens.CountStats("Apple\napple\nx,,y", textFolded)
	if stats.Total != 4 || stats.Distinct != 3 || stats.Duplicates != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := tokens.ParseMode(" Numeric "); err != nil || mode != tokens.ModeNumeric {
		t.Fatalf("ParseMode numeric = %v, %v", mode, err)
	}
	if mode, err := tokens.ParseMode("text"); err != nil || mode != tokens.ModeText {
		t.Fatalf("ParseMode text = %v, %v", mode, err)
	}
	if _, err := tokens.ParseMode("binary"); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		1:       "1",
		1.5:     "1.5",
		-2000:   "-2000",
		1e21:    "1e+21",
		1e-7:    "1e-7",
		0.00001: "0.00001",
	}
	for value, want := range tests {
		if got := tokens.FormatNumber(value); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestTokenMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]tokens.Token{tokens.Number(2.5), tokens.Text("x")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[2.5,"x"]` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}
