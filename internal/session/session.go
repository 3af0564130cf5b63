// internal/session/session.go
//
// Game session for a single board: one fixed solution, up to six guesses.
// Responsibilities:
//   - Create sessions with a solution drawn from an injected word list.
//   - Validate and apply guesses: unknown words become invalid-marker rows,
//     known words are scored by the comparator.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The solution lives in an unexported field and is never serialized;
//     Reveal only returns it once the session is finished.
//   - Guesses are independent of each other. Each row is computed from
//     (guess, solution) alone, so rows never change once set.
//   - The board is a fixed-size array with runtime bounds checking; the
//     seventh guess is rejected with ErrBoardFull.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/johanneslumpe/typescriptle/internal/compare"
	"github.com/johanneslumpe/typescriptle/internal/words"
)

// MaxGuesses is the number of guess slots on a board.
const MaxGuesses = 6

// RowKind distinguishes the three shapes a board row can take.
type RowKind string

const (
	// RowEmpty is the placeholder for a slot with no guess yet.
	RowEmpty RowKind = "empty"
	// RowInvalid marks a guess that failed word-list validation.
	// The slot is consumed but carries no verdicts.
	RowInvalid RowKind = "invalid"
	// RowScored carries the comparator verdicts for a valid guess.
	RowScored RowKind = "scored"
)

// Row is one board row: a marker kind plus, for scored rows, the
// per-letter verdicts.
type Row struct {
	Kind  RowKind        `json:"kind"`
	Marks compare.Result `json:"marks,omitempty"`
}

// ErrBoardFull is returned when a guess is applied to a board whose six
// slots are already consumed.
var ErrBoardFull = errors.New("session: board full")

// ErrFinished is returned when a guess is applied after the game is won.
var ErrFinished = errors.New("session: game finished")

// Session holds one board. The zero value is not usable; use New.
type Session struct {
	id       string
	solution string // lowercase; never exposed while playing
	list     *words.List
	rows     [MaxGuesses]Row
	used     int
	finished bool
	won      bool
}

// New constructs a session for the given solution.
// The solution is lowercased and must match the list's word length;
// it does not have to be in the list, so fixed test answers work.
func New(list *words.List, solution string) (*Session, error) {
	solution = strings.ToLower(strings.TrimSpace(solution))
	if len(solution) != list.Length() {
		return nil, fmt.Errorf("session: solution length %d, want %d", len(solution), list.Length())
	}
	s := &Session{
		id:       randomID(),
		solution: solution,
		list:     list,
	}
	for i := range s.rows {
		s.rows[i] = Row{Kind: RowEmpty}
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ApplyGuess fills the next free slot with the outcome for guess.
// Unknown or wrong-length words consume the slot as an invalid-marker
// row; list words are scored by the comparator. Returns the new row and
// the state string ("playing"/"won"/"lost").
func (s *Session) ApplyGuess(guess string) (Row, string, error) {
	if s.won {
		return Row{}, s.State(), ErrFinished
	}
	if s.used >= MaxGuesses {
		return Row{}, s.State(), ErrBoardFull
	}
	guess = strings.ToLower(strings.TrimSpace(guess))

	// Validation failures resolve locally into a marker row; they are
	// not errors and later guesses are unaffected. The length check also
	// guarantees the comparator never sees mismatched lengths from here.
	if len(guess) != len(s.solution) || !s.list.Contains(guess) {
		row := Row{Kind: RowInvalid}
		s.commit(row)
		return row, s.State(), nil
	}

	marks, err := compare.Words(guess, s.solution)
	if err != nil {
		return Row{}, s.State(), err
	}
	row := Row{Kind: RowScored, Marks: marks}
	s.commit(row)
	if marks.AllCorrect() {
		s.finished, s.won = true, true
	}
	return row, s.State(), nil
}

// commit writes row into the next slot and updates the finished flag.
func (s *Session) commit(row Row) {
	s.rows[s.used] = row
	s.used++
	if s.used >= MaxGuesses {
		s.finished = true
	}
}

// Rows returns the full six-row board. Unplayed slots are RowEmpty.
func (s *Session) Rows() [MaxGuesses]Row { return s.rows }

// GuessesUsed reports how many slots are consumed.
func (s *Session) GuessesUsed() int { return s.used }

// State reports a coarse string representation of the session state.
func (s *Session) State() string {
	if s.finished {
		if s.won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Reveal returns the solution once the session is finished, else "".
// Keeping the word back until then is the whole point of the unexported
// field: clients only ever see verdicts.
func (s *Session) Reveal() string {
	if !s.finished {
		return ""
	}
	return s.solution
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
