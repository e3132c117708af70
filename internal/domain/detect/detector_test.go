package detect

import (
	"testing"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

func TestDetectFiltersBaselineAndSimpleWords(t *testing.T) {
	t.Parallel()

	d := New()
	candidates := d.Detect("Das ist ein Haus der Gerechtigkeit.")

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].Word != "Gerechtigkeit" {
		t.Errorf("expected Gerechtigkeit, got %q", candidates[0].Word)
	}
	if candidates[0].Difficulty != domain.DifficultyC1 {
		t.Errorf("expected C1, got %s", candidates[0].Difficulty)
	}
	if candidates[0].SuggestedTranslation != "" {
		t.Errorf("expected empty suggested translation, got %q", candidates[0].SuggestedTranslation)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	t.Parallel()

	d := New()
	candidates := d.Detect("")
	if candidates == nil {
		t.Fatal("expected non-nil slice for empty input")
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %d", len(candidates))
	}
}

func TestDetectBaselineIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	d := New()
	// "Werden" is baseline despite the sentence-initial capital; matching
	// happens on the lowercase form.
	candidates := d.Detect("Werden wir über die Versammlung sprechen")

	words := make(map[string]bool)
	for _, c := range candidates {
		words[c.Word] = true
	}
	if words["Werden"] {
		t.Error("baseline word should be filtered regardless of case")
	}
	if !words["Versammlung"] {
		t.Error("expected Versammlung to be detected")
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	words := Tokenize("Das Grundgesetz, seit 1949!")
	expected := []string{"Das", "Grundgesetz", "seit"}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %d: %v", len(expected), len(words), words)
	}
	for i, want := range expected {
		if words[i] != want {
			t.Errorf("word %d: expected %q, got %q", i, want, words[i])
		}
	}

	if empty := Tokenize(""); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil result for empty input, got %v", empty)
	}
}

func TestDetectSplitsOnNonLetters(t *testing.T) {
	t.Parallel()

	d := New()
	candidates := d.Detect("Einbürgerung,Wohnungssuche;ογ123Grundgesetz")

	expected := []string{"Einbürgerung", "Wohnungssuche", "Grundgesetz"}
	if len(candidates) != len(expected) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(expected), len(candidates), candidates)
	}
	for i, want := range expected {
		if candidates[i].Word != want {
			t.Errorf("candidate %d: expected %q, got %q", i, want, candidates[i].Word)
		}
	}
}

func TestLongCapitalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want bool
	}{
		{"Lehrerin", true},      // exactly 8 characters
		{"Schule", false},       // capitalized but short
		{"regierung", false},    // long but lowercase
		{"BUNDESTAG", false},    // all caps is not the noun shape
		{"Grundgesetz", true},
	}

	for _, tt := range tests {
		if got := LongCapitalized(tt.word); got != tt.want {
			t.Errorf("LongCapitalized(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestDerivationalSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want bool
	}{
		{"Bildung", true},   // -ung, shorter than the length floor
		{"Freiheit", true},  // -heit
		{"Wissenschaft", true},
		{"Ergebnis", true},  // -nis
		{"herzlich", false}, // suffix but not capitalized
		{"Haus", false},
	}

	for _, tt := range tests {
		if got := DerivationalSuffix(tt.word); got != tt.want {
			t.Errorf("DerivationalSuffix(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestContainsDiacritic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want bool
	}{
		{"schön", true},
		{"Straße", true},
		{"Übung", true}, // uppercase umlaut matches via lowercasing
		{"Haus", false},
		{"strasse", false},
	}

	for _, tt := range tests {
		if got := ContainsDiacritic(tt.word); got != tt.want {
			t.Errorf("ContainsDiacritic(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

// Short umlaut words are flagged by the diacritic rule even though they fail
// both length-gated rules, and land in the A2 tier.
func TestDetectShortDiacriticWord(t *testing.T) {
	t.Parallel()

	d := New()
	candidates := d.Detect("total schön heute")

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].Word != "schön" {
		t.Errorf("expected schön, got %q", candidates[0].Word)
	}
	if candidates[0].Difficulty != domain.DifficultyA2 {
		t.Errorf("expected A2 for a short diacritic word, got %s", candidates[0].Difficulty)
	}
}

func TestEstimateDifficultyBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want domain.Difficulty
	}{
		{"abcdefg", domain.DifficultyA2},       // 7
		{"abcdefgh", domain.DifficultyB1},      // 8
		{"abcdefghi", domain.DifficultyB1},     // 9
		{"abcdefghij", domain.DifficultyB2},    // 10
		{"abcdefghijk", domain.DifficultyB2},   // 11
		{"abcdefghijkl", domain.DifficultyC1},  // 12
		{"Staatsangehörigkeit", domain.DifficultyC1},
		{"größer", domain.DifficultyA2}, // 6 characters despite 8 bytes
	}

	for _, tt := range tests {
		if got := EstimateDifficulty(tt.word); got != tt.want {
			t.Errorf("EstimateDifficulty(%q) = %s, want %s", tt.word, got, tt.want)
		}
	}
}

func TestDetectorOptions(t *testing.T) {
	t.Parallel()

	d := New(
		WithBaseline([]string{"Versammlung"}),
		WithPredicates(ContainsDiacritic),
	)

	candidates := d.Detect("Versammlung Grundgesetz schön")
	if len(candidates) != 1 || candidates[0].Word != "schön" {
		t.Errorf("expected only the diacritic word with custom options, got %+v", candidates)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	d := New()
	stats := d.Classify([]string{
		"das",           // baseline -> B1 bucket
		"Haus",          // unclassified -> A2
		"schön",         // advanced, short -> A2 + Advanced
		"Lehrerin",      // advanced, 8 -> B1 + Advanced
		"Demokratie",    // advanced, 10 -> B2 + Advanced
		"Gerechtigkeit", // advanced, 13 -> C1 + Advanced
	})

	if stats.Total != 6 {
		t.Errorf("expected total 6, got %d", stats.Total)
	}
	if stats.Advanced != 4 {
		t.Errorf("expected 4 advanced, got %d", stats.Advanced)
	}
	if stats.A2 != 2 {
		t.Errorf("expected A2 = 2, got %d", stats.A2)
	}
	if stats.B1 != 2 {
		t.Errorf("expected B1 = 2, got %d", stats.B1)
	}
	if stats.B2 != 1 {
		t.Errorf("expected B2 = 1, got %d", stats.B2)
	}
	if stats.C1 != 1 {
		t.Errorf("expected C1 = 1, got %d", stats.C1)
	}
	if stats.A1 != 0 {
		t.Errorf("expected A1 = 0, got %d", stats.A1)
	}
}

func TestClassifyEmpty(t *testing.T) {
	t.Parallel()

	stats := New().Classify(nil)
	if stats.Total != 0 || stats.Advanced != 0 {
		t.Errorf("expected zero stats for empty input, got %+v", stats)
	}
}
