// internal/compare/types.go
//
// Core type definitions for the word comparator.
// Defines:
//   - Verdict: per-letter classification of a guess (correct/present/absent).
//   - LetterVerdict: one verdict together with the letter it refers to.
//   - Result: the ordered verdict sequence for a whole guess.

package compare

import "encoding/json"

// Verdict classifies a single guess letter against the solution.
// Possible values:
//   - "correct": letter matches both value and position.
//   - "present": letter exists in the solution, wrong position,
//     and its occurrence budget is not yet exhausted.
//   - "absent":  letter does not occur in the solution, or every
//     occurrence is already claimed by a correct or earlier present.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// LetterVerdict pairs a verdict with the normalized (lowercased) letter
// it was computed for.
type LetterVerdict struct {
	Letter  rune
	Verdict Verdict
}

// letterVerdictJSON is the wire shape: the letter travels as a string,
// not as a raw rune codepoint.
type letterVerdictJSON struct {
	Letter  string  `json:"letter"`
	Verdict Verdict `json:"verdict"`
}

func (lv LetterVerdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(letterVerdictJSON{Letter: string(lv.Letter), Verdict: lv.Verdict})
}

func (lv *LetterVerdict) UnmarshalJSON(b []byte) error {
	var aux letterVerdictJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r := []rune(aux.Letter); len(r) > 0 {
		lv.Letter = r[0]
	}
	lv.Verdict = aux.Verdict
	return nil
}

// Result is the per-position verdict sequence for one guess.
// Its length always equals the guess length.
type Result []LetterVerdict

// AllCorrect reports whether every position is VerdictCorrect.
// An empty result is vacuously all-correct.
func (r Result) AllCorrect() bool {
	for _, lv := range r {
		if lv.Verdict != VerdictCorrect {
			return false
		}
	}
	return true
}

// Verdicts returns just the verdict sequence, without letters.
func (r Result) Verdicts() []Verdict {
	out := make([]Verdict, len(r))
	for i, lv := range r {
		out[i] = lv.Verdict
	}
	return out
}
