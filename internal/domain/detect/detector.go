// Package detect implements the advanced-vocabulary detector: a pure,
// German-specific heuristic that scans free text for words likely above a B1
// baseline and estimates their CEFR tier from character length. It performs
// no translation, no I/O, and never fails; malformed or empty input simply
// yields no candidates.
package detect

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// Candidate is one detected advanced word. SuggestedTranslation is always an
// empty placeholder here; translation happens downstream.
type Candidate struct {
	Word                 string            `json:"word"`
	Difficulty           domain.Difficulty `json:"difficulty"`
	SuggestedTranslation string            `json:"suggested_translation"`
}

// Predicate decides whether a token that survived baseline filtering counts
// as advanced. Predicates are evaluated in order and short-circuit on the
// first match, so new heuristics can be appended without touching the
// classification or tier-estimation logic.
type Predicate func(word string) bool

// tokenPattern extracts word-like runs: ASCII letters plus the four
// German-specific letters. Everything else acts as a separator.
var tokenPattern = regexp.MustCompile(`[A-Za-zäöüß]+`)

const diacritics = "äöüß"

// derivationalSuffixes are endings that signal abstract nouns (-tät, -ung,
// -heit, -keit, -schaft, -nis) or derived adjectives (-lich, -bar, -sam,
// -voll, -los).
var derivationalSuffixes = []string{
	"tät", "ung", "heit", "keit", "schaft", "nis",
	"lich", "bar", "sam", "voll", "los",
}

// Detector flags candidate advanced vocabulary in German text. The zero value
// is not usable; construct with New. A Detector is immutable after
// construction and safe for concurrent use.
type Detector struct {
	baseline   map[string]struct{}
	predicates []Predicate
}

// Option customizes a Detector.
type Option func(*Detector)

// WithBaseline replaces the stock baseline vocabulary. Matching against the
// baseline is done on the lowercase form of each token.
func WithBaseline(words []string) Option {
	return func(d *Detector) {
		d.baseline = make(map[string]struct{}, len(words))
		for _, w := range words {
			d.baseline[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithPredicates replaces the stock advanced-word predicates.
func WithPredicates(predicates ...Predicate) Option {
	return func(d *Detector) {
		d.predicates = predicates
	}
}

// New creates a Detector with the default baseline vocabulary and the default
// predicate chain.
func New(opts ...Option) *Detector {
	d := &Detector{}
	WithBaseline(baselineWords)(d)
	d.predicates = DefaultPredicates()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultPredicates returns the stock predicate chain, in evaluation order:
//
//  1. long capitalized words: length of at least 8 with a noun-like shape,
//  2. capitalized words carrying a derivational suffix,
//  3. words containing a German diacritic, at any length.
//
// The diacritic rule deliberately overrides the length floor of the first two
// rules; short umlaut words are flagged and land in the A2 tier.
func DefaultPredicates() []Predicate {
	return []Predicate{
		LongCapitalized,
		DerivationalSuffix,
		ContainsDiacritic,
	}
}

// Tokenize splits text into word tokens: maximal runs of Latin letters plus
// the German umlauts and eszett. Digits, punctuation, and any other script
// act as separators. Empty input yields an empty, non-nil result.
func Tokenize(text string) []string {
	words := tokenPattern.FindAllString(text, -1)
	if words == nil {
		return []string{}
	}
	return words
}

// Detect scans text and returns the advanced-word candidates in encounter
// order. Empty input yields an empty result. Tokens whose lowercase form is
// in the baseline are dropped before any predicate runs; tokens matching no
// predicate are dropped silently.
func (d *Detector) Detect(text string) []Candidate {
	candidates := []Candidate{}
	if text == "" {
		return candidates
	}

	for _, word := range Tokenize(text) {
		if _, basic := d.baseline[strings.ToLower(word)]; basic {
			continue
		}
		if !d.isAdvanced(word) {
			continue
		}
		candidates = append(candidates, Candidate{
			Word:                 word,
			Difficulty:           EstimateDifficulty(word),
			SuggestedTranslation: "",
		})
	}
	return candidates
}

func (d *Detector) isAdvanced(word string) bool {
	for _, predicate := range d.predicates {
		if predicate(word) {
			return true
		}
	}
	return false
}

// LongCapitalized matches words of at least 8 characters with a
// capitalized-noun shape: an uppercase first letter followed only by
// lowercase letters. This approximates German noun capitalization.
func LongCapitalized(word string) bool {
	return wordLength(word) >= 8 && capitalizedShape(word)
}

// DerivationalSuffix matches capitalized words ending in one of the
// derivational suffixes, regardless of length.
func DerivationalSuffix(word string) bool {
	if !capitalizedShape(word) {
		return false
	}
	lower := strings.ToLower(word)
	for _, suffix := range derivationalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// ContainsDiacritic matches any word containing ä, ö, ü or ß in either case.
func ContainsDiacritic(word string) bool {
	return strings.ContainsAny(strings.ToLower(word), diacritics)
}

// EstimateDifficulty maps a flagged word to a tier purely by character
// length: ≥12 is C1, 10–11 is B2, 8–9 is B1, anything shorter is A2. The
// short bucket is only reachable through the diacritic rule.
func EstimateDifficulty(word string) domain.Difficulty {
	switch length := wordLength(word); {
	case length >= 12:
		return domain.DifficultyC1
	case length >= 10:
		return domain.DifficultyB2
	case length >= 8:
		return domain.DifficultyB1
	default:
		return domain.DifficultyA2
	}
}

// capitalizedShape reports whether word starts with an uppercase letter and
// continues in lowercase only.
func capitalizedShape(word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// wordLength counts characters, not bytes; umlauts are multi-byte in UTF-8.
func wordLength(word string) int {
	return len([]rune(word))
}
