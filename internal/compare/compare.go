// internal/compare/compare.go
//
// Word comparator: classifies every letter of a guess against a solution.
// Responsibilities:
//   - Normalize both words to lowercase before any comparison.
//   - Two-pass scoring: exact matches first (final, never revisited),
//     then present/absent resolution against per-letter occurrence budgets.
//   - Honor duplicate-letter semantics: correct + present verdicts for a
//     letter never exceed its occurrence count in the solution, and ties
//     are broken in favor of earlier guess positions.
//
// Notes:
//   - Pure functions only; no state persists between comparisons.
//   - Works on runes, so non-ASCII letters score correctly too.

package compare

import (
	"errors"
	"strings"
)

// ErrLengthMismatch is returned when guess and solution differ in length.
// Callers (the session) are expected to rule this out before delegating.
var ErrLengthMismatch = errors.New("compare: guess and solution length mismatch")

// Words compares a guess against a solution and returns one verdict per
// guess position, in position order.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (non-exact) solution letters; these counts are
//     the occurrence budget available to the present pass.
//
// Pass 2:
//   - For each non-exact guess letter, left to right: if budget remains
//     for that letter, mark present and decrement; otherwise absent.
//
// Comparing two empty words yields an empty result, not an error.
func Words(guess, solution string) (Result, error) {
	g := []rune(strings.ToLower(guess))
	s := []rune(strings.ToLower(solution))
	if len(g) != len(s) {
		return nil, ErrLengthMismatch
	}

	res := make(Result, len(g))

	// First pass: exact matches are final. Everything the guess did not
	// hit exactly stays in the budget for the second pass.
	budget := make(map[rune]int, len(s))
	for i := range g {
		if g[i] == s[i] {
			res[i] = LetterVerdict{Letter: g[i], Verdict: VerdictCorrect}
		} else {
			budget[s[i]]++
		}
	}

	// Second pass: earlier guess positions claim budget before later ones.
	for i := range g {
		if res[i].Verdict == VerdictCorrect {
			continue
		}
		v := VerdictAbsent
		if budget[g[i]] > 0 {
			v = VerdictPresent
			budget[g[i]]--
		}
		res[i] = LetterVerdict{Letter: g[i], Verdict: v}
	}
	return res, nil
}

// Occurrences counts how often each letter appears in w (after lowercasing).
func Occurrences(w string) map[rune]int {
	counts := make(map[rune]int, len(w))
	for _, r := range strings.ToLower(w) {
		counts[r]++
	}
	return counts
}
