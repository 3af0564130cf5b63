package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// vv is shorthand for building expected verdict sequences.
func vv(s string) []Verdict {
	out := make([]Verdict, 0, len(s))
	for _, r := range s {
		switch r {
		case 'C':
			out = append(out, VerdictCorrect)
		case 'P':
			out = append(out, VerdictPresent)
		case 'A':
			out = append(out, VerdictAbsent)
		}
	}
	return out
}

func TestWordsScenarios(t *testing.T) {
	cases := []struct {
		name     string
		guess    string
		solution string
		want     string
	}{
		{"identical", "abc", "abc", "CCC"},
		{"single miss", "abc", "axc", "CAC"},
		{"duplicate guess letter, one exact", "aac", "abb", "CAA"},
		{"duplicate guess letter, one present", "aac", "bba", "PAA"},
		{"exact consumes budget first", "axaf", "aabg", "CAPA"},
		{"left-to-right present preference", "xaaf", "abba", "APPA"},
		{"all absent", "xyz", "abc", "AAA"},
		{"full wordle words", "crane", "cocoa", "CAPAA"},
		{"present before later exact", "allee", "ladle", "PPPAC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Words(tc.guess, tc.solution)
			assert.NoError(t, err)
			assert.Equal(t, vv(tc.want), res.Verdicts())
		})
	}
}

func TestWordsSelfComparisonAllCorrect(t *testing.T) {
	for _, w := range []string{"a", "crane", "llama", "abba", "zzzzz"} {
		res, err := Words(w, w)
		assert.NoError(t, err)
		assert.True(t, res.AllCorrect(), "compare(%q,%q)", w, w)
	}
}

func TestWordsDisjointAllAbsent(t *testing.T) {
	res, err := Words("abcde", "fghij")
	assert.NoError(t, err)
	for _, lv := range res {
		assert.Equal(t, VerdictAbsent, lv.Verdict)
	}
}

// Correct+present verdicts for a letter must never exceed its count in
// the solution, whatever the duplicate structure of the guess.
func TestWordsBudgetInvariant(t *testing.T) {
	pairs := []struct{ guess, solution string }{
		{"aaaaa", "abcda"},
		{"ababa", "babab"},
		{"llama", "label"},
		{"geese", "eagle"},
		{"xaaf", "abba"},
		{"aac", "bba"},
	}
	for _, p := range pairs {
		res, err := Words(p.guess, p.solution)
		assert.NoError(t, err)
		claimed := make(map[rune]int)
		for _, lv := range res {
			if lv.Verdict != VerdictAbsent {
				claimed[lv.Letter]++
			}
		}
		occ := Occurrences(p.solution)
		for r, n := range claimed {
			assert.LessOrEqual(t, n, occ[r],
				"letter %q over-claimed in %q vs %q", r, p.guess, p.solution)
		}
	}
}

func TestWordsCaseInsensitive(t *testing.T) {
	upper, err := Words("ABC", "abc")
	assert.NoError(t, err)
	lower, err := Words("abc", "abc")
	assert.NoError(t, err)
	assert.Equal(t, lower, upper)

	// Verdicts carry the normalized letter.
	res, err := Words("XaB", "abx")
	assert.NoError(t, err)
	assert.Equal(t, 'x', res[0].Letter)
}

func TestWordsLengthMismatch(t *testing.T) {
	_, err := Words("abcd", "abc")
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = Words("", "abc")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestWordsEmpty(t *testing.T) {
	res, err := Words("", "")
	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestOccurrences(t *testing.T) {
	occ := Occurrences("Abba")
	assert.Equal(t, 2, occ['a'])
	assert.Equal(t, 2, occ['b'])
	assert.Equal(t, 0, occ['c'])
}
