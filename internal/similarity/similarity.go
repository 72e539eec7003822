// Package similarity scores how closely a spoken transcript matches a target
// phrase using order-independent word overlap.
package similarity

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// FeedbackTier is the qualitative bucket derived from a similarity score.
type FeedbackTier int

const (
	TierTryAgain FeedbackTier = iota
	TierKeepPracticing
	TierGood
	TierExcellent
)

// Tier thresholds are inclusive lower bounds.
const (
	ExcellentThreshold      = 80
	GoodThreshold           = 60
	KeepPracticingThreshold = 40
)

// blankPattern matches the fill-in-the-blank placeholder used in exercises.
var blankPattern = regexp.MustCompile(`_{2,}`)

// String returns the user-facing label for the tier.
func (t FeedbackTier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierKeepPracticing:
		return "Keep Practicing"
	default:
		return "Try Again"
	}
}

// Score returns the percentage (0-100) of target tokens matched by the
// spoken tokens. Each spoken token that appears anywhere in the target counts
// as one match, so repeated spoken words count independently; the result is
// clamped to 100.
func Score(target, spoken string) int {
	targetTokens := Tokenize(blankPattern.ReplaceAllString(target, " "))
	spokenTokens := Tokenize(spoken)
	if len(spokenTokens) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(targetTokens))
	for _, tok := range targetTokens {
		set[tok] = struct{}{}
	}

	matches := 0
	for _, tok := range spokenTokens {
		if _, ok := set[tok]; ok {
			matches++
		}
	}

	score := int(math.Round(100 * float64(matches) / float64(max(1, len(targetTokens)))))
	return min(score, 100)
}

// Tokenize normalizes s (NFC, English lowercase, trimmed) and splits it on
// whitespace.
func Tokenize(s string) []string {
	// A Caser carries state, so each call gets its own.
	s = cases.Lower(language.English).String(norm.NFC.String(strings.TrimSpace(s)))
	return strings.Fields(s)
}

// Tier maps a score to its feedback tier.
func Tier(score int) FeedbackTier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	case score >= KeepPracticingThreshold:
		return TierKeepPracticing
	default:
		return TierTryAgain
	}
}
