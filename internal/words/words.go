// internal/words/words.go
//
// Word list management for the comparator and session layers.
//
// Responsibilities:
//   - Hold the answer list and the allowed-guess set for one game setup.
//   - Case-insensitive membership tests (the guess validator).
//   - Solution selection: by index or cryptographically random.
//   - Prefix lookup via a patricia trie (client autocomplete support).
//
// Word lists:
//   - "answers": canonical solutions (fixed length, lowercase a-z).
//   - "allowed": valid guesses (always a superset of answers).
//
// The list is an explicit value handed to whoever needs it; there is no
// package-level global state. Construct one with New, FromFiles, FromDB,
// or Embedded and inject it.

package words

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultLength is the word length used when none is configured.
const DefaultLength = 5

// --- embedded tiny defaults (server runs even with nothing configured) ---

//go:embed default_small_answers.txt
var embeddedAnswers string

//go:embed default_small_allowed.txt
var embeddedAllowed string

// List is an immutable word-list pair: answers plus allowed guesses.
type List struct {
	length  int
	answers []string
	allowed map[string]struct{}
	prefix  *patricia.Trie // allowed words keyed by themselves
}

// New builds a List from raw answer and allowed slices.
// Entries are lowercased, trimmed, and dropped unless they are exactly
// length alphabetic letters. Answers are always part of the allowed set.
// Returns an error if the answers list ends up empty.
func New(answers, allowed []string, length int) (*List, error) {
	if length <= 0 {
		length = DefaultLength
	}
	l := &List{
		length:  length,
		allowed: make(map[string]struct{}),
		prefix:  patricia.NewTrie(),
	}
	for _, w := range answers {
		if w, ok := normalize(w, length); ok {
			l.answers = append(l.answers, w)
			l.add(w)
		}
	}
	for _, w := range allowed {
		if w, ok := normalize(w, length); ok {
			l.add(w)
		}
	}
	if len(l.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return l, nil
}

// FromFiles loads answers and allowed guesses from one-word-per-line files.
// If allowedPath is empty, the answers file serves for both.
func FromFiles(answersPath, allowedPath string, length int) (*List, error) {
	ans, err := readWordFile(answersPath)
	if err != nil {
		return nil, err
	}
	all := ans
	if allowedPath != "" {
		all, err = readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
	}
	return New(ans, all, length)
}

// Embedded returns the built-in small default lists.
func Embedded() (*List, error) {
	return New(splitLines(embeddedAnswers), splitLines(embeddedAllowed), DefaultLength)
}

// add places w in the allowed set and the prefix trie.
func (l *List) add(w string) {
	if _, dup := l.allowed[w]; dup {
		return
	}
	l.allowed[w] = struct{}{}
	l.prefix.Insert(patricia.Prefix(w), w)
}

// Length returns the fixed word length of this list.
func (l *List) Length() int { return l.length }

// Contains reports whether w is a valid guess (case-insensitive).
func (l *List) Contains(w string) bool {
	_, ok := l.allowed[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Answers returns the canonical answer list (all lowercase).
// Callers must not mutate the returned slice.
func (l *List) Answers() []string { return l.answers }

// AnswerAt returns the answer at index i, for deterministic selection.
func (l *List) AnswerAt(i int) (string, error) {
	if i < 0 || i >= len(l.answers) {
		return "", fmt.Errorf("words: answer index %d out of range [0,%d)", i, len(l.answers))
	}
	return l.answers[i], nil
}

// RandomAnswer returns a cryptographically random answer.
func (l *List) RandomAnswer() string {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	return l.answers[nBig.Int64()]
}

// errEnough stops a trie visit early once limit words are collected.
var errEnough = errors.New("enough")

// WithPrefix returns up to limit allowed words starting with p,
// in trie visit order. An empty prefix matches everything.
func (l *List) WithPrefix(p string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	out := make([]string, 0, limit)
	_ = l.prefix.VisitSubtree(patricia.Prefix(strings.ToLower(strings.TrimSpace(p))),
		func(_ patricia.Prefix, item patricia.Item) error {
			out = append(out, item.(string))
			if len(out) >= limit {
				return errEnough
			}
			return nil
		})
	return out
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount, allowedCount int) {
	return len(l.answers), len(l.allowed)
}

// normalize lowercases and trims w, then checks length and a-z content.
func normalize(w string, length int) (string, bool) {
	w = strings.TrimSpace(strings.ToLower(w))
	if len(w) != length || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// splitLines processes an embedded multiline string into raw entries.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
