// internal/words/sqlite.go
//
// SQLite-backed word list source. The words table is seeded by the
// migrations in ./sql and can be extended at runtime; is_answer marks
// rows that may be chosen as solutions.

package words

import (
	"context"
	"database/sql"
	"fmt"
)

// FromDB loads a List from the words table of db.
//
// Schema expected:
//
//	CREATE TABLE words (word TEXT PRIMARY KEY, is_answer INTEGER NOT NULL);
func FromDB(ctx context.Context, db *sql.DB, length int) (*List, error) {
	rows, err := db.QueryContext(ctx, `SELECT word, is_answer FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("words: query words table: %w", err)
	}
	defer rows.Close()

	var answers, allowed []string
	for rows.Next() {
		var w string
		var isAnswer int
		if err := rows.Scan(&w, &isAnswer); err != nil {
			return nil, fmt.Errorf("words: scan words row: %w", err)
		}
		if isAnswer != 0 {
			answers = append(answers, w)
		}
		allowed = append(allowed, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(answers, allowed, length)
}
