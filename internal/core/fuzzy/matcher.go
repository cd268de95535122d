// Package fuzzy contains the pure text-similarity logic used to decide
// whether two human-written phrases describe the same canvas item.
// It never mutates state; the merge engine uses it as its dedupe oracle.
package fuzzy

import (
	"strings"
	"unicode"
)

// Default thresholds. Empirically chosen for short architecture phrases;
// kept configurable rather than re-derived.
const (
	DefaultPartialOverlapRatio = 0.4
	DefaultJaccardThreshold    = 0.72
	DefaultMinSharedTokens     = 2
)

// Matcher scores similarity between two strings and judges near-duplicates.
// The zero value is not usable; construct with NewMatcher.
type Matcher struct {
	// PartialOverlapRatio is the minimum intersection/min(|A|,|B|) for the
	// partial-overlap rule, which catches overlap on short phrases that
	// pure Jaccard would penalize.
	PartialOverlapRatio float64

	// JaccardThreshold is the minimum full Jaccard score for a match.
	JaccardThreshold float64

	// MinSharedTokens is the minimum intersection size for the
	// partial-overlap rule, so generic single-word overlap cannot trigger it.
	MinSharedTokens int
}

// NewMatcher returns a Matcher with the default thresholds.
func NewMatcher() *Matcher {
	return &Matcher{
		PartialOverlapRatio: DefaultPartialOverlapRatio,
		JaccardThreshold:    DefaultJaccardThreshold,
		MinSharedTokens:     DefaultMinSharedTokens,
	}
}

// Canonicalize lowercases, turns punctuation into spaces, and collapses
// whitespace.
func Canonicalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenSet builds the match token set for a canonical string: unigrams
// longer than 2 characters plus adjacent-pair bigrams (concatenated, no
// separator). Bigrams bridge tokenization differences like "pub sub"
// vs "pubsub".
func tokenSet(canonical string) map[string]struct{} {
	tokens := strings.Fields(canonical)
	set := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		if len(t) > 2 {
			set[t] = struct{}{}
		}
	}
	for i := 0; i+1 < len(tokens); i++ {
		set[tokens[i]+tokens[i+1]] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// Similarity returns the Jaccard similarity of the two strings' token
// sets, in [0,1]. Returns 0 when either canonical form or either token
// set is empty.
func (m *Matcher) Similarity(a, b string) float64 {
	ca, cb := Canonicalize(a), Canonicalize(b)
	if ca == "" || cb == "" {
		return 0
	}
	sa, sb := tokenSet(ca), tokenSet(cb)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := intersectionSize(sa, sb)
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// IsNearDuplicate reports whether a and b describe the same item.
//
// Layered policy: exact or containment matches on the canonical (and
// whitespace-free) forms short-circuit true, catching rewordings and
// typos. Otherwise a partial-overlap rule (shared tokens >=
// MinSharedTokens and intersection/min ratio >= PartialOverlapRatio)
// handles short phrases, and the full Jaccard score handles the rest.
// Pure Jaccard alone penalizes short strings and containment alone
// over-triggers on generic phrases; the combination balances both.
func (m *Matcher) IsNearDuplicate(a, b string) bool {
	ca, cb := Canonicalize(a), Canonicalize(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return true
	}
	compactA := strings.ReplaceAll(ca, " ", "")
	compactB := strings.ReplaceAll(cb, " ", "")
	if strings.Contains(compactA, compactB) || strings.Contains(compactB, compactA) {
		return true
	}

	sa, sb := tokenSet(ca), tokenSet(cb)
	if len(sa) == 0 || len(sb) == 0 {
		return false
	}
	inter := intersectionSize(sa, sb)
	smaller := len(sa)
	if len(sb) < smaller {
		smaller = len(sb)
	}
	if inter >= m.MinSharedTokens && float64(inter)/float64(smaller) >= m.PartialOverlapRatio {
		return true
	}
	union := len(sa) + len(sb) - inter
	return float64(inter)/float64(union) >= m.JaccardThreshold
}
