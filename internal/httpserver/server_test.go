package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/johanneslumpe/typescriptle/internal/compare"
	"github.com/johanneslumpe/typescriptle/internal/session"
	"github.com/johanneslumpe/typescriptle/internal/store"
	"github.com/johanneslumpe/typescriptle/internal/words"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			games_played  INTEGER NOT NULL DEFAULT 0,
			wins          INTEGER NOT NULL DEFAULT 0,
			streak        INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE daily_results (
			user_id    TEXT NOT NULL,
			date       TEXT NOT NULL,
			word_index INTEGER NOT NULL,
			guesses    INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, date)
		);`)
	assert.NoError(t, err)

	list, err := words.New(
		[]string{"crane", "slate"},
		[]string{"crane", "slate", "trace", "stare", "cribs"},
		5,
	)
	assert.NoError(t, err)
	return New(store.NewMemoryStore(), list, db)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDebugWords(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/debug/words", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]int
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out["answers"])
	assert.Equal(t, 5, out["allowed"])
}

func TestSuggest(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/words/suggest?prefix=cr&limit=5", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Prefix string   `json:"prefix"`
		Words  []string `json:"words"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"crane", "cribs"}, out.Words)
}

func TestGameFlow(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/game/new", map[string]string{"answer": "crane"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		GameID string `json:"gameId"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.GameID)

	// Unknown word: marker row, slot consumed, no HTTP error.
	rec = doJSON(t, srv, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "zzzzz"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Row      session.Row `json:"row"`
		State    string      `json:"state"`
		Guesses  int         `json:"guesses"`
		Solution string      `json:"solution"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, session.RowInvalid, res.Row.Kind)
	assert.Equal(t, "playing", res.State)
	assert.Equal(t, 1, res.Guesses)
	assert.Empty(t, res.Solution)

	// Valid scored guess.
	rec = doJSON(t, srv, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "trace"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, session.RowScored, res.Row.Kind)
	assert.Equal(t, []compare.Verdict{
		compare.VerdictAbsent, compare.VerdictCorrect, compare.VerdictCorrect,
		compare.VerdictPresent, compare.VerdictCorrect,
	}, res.Row.Marks.Verdicts())

	// Winning guess reveals the solution.
	rec = doJSON(t, srv, http.MethodPost, "/game/guess",
		map[string]string{"gameId": created.GameID, "guess": "CRANE"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "won", res.State)
	assert.Equal(t, "crane", res.Solution)

	// Board shows scored + invalid + empty rows.
	rec = doJSON(t, srv, http.MethodGet, "/game/board?gameId="+created.GameID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var board struct {
		Rows  []session.Row `json:"rows"`
		State string        `json:"state"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &board))
	assert.Len(t, board.Rows, session.MaxGuesses)
	assert.Equal(t, session.RowInvalid, board.Rows[0].Kind)
	assert.Equal(t, session.RowScored, board.Rows[1].Kind)
	assert.Equal(t, session.RowEmpty, board.Rows[3].Kind)
	assert.Equal(t, "won", board.State)
}

func TestGuessUnknownGame(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/game/guess",
		map[string]string{"gameId": "nope", "guess": "crane"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGameBadAnswerIndex(t *testing.T) {
	srv := testServer(t)
	idx := 99
	rec := doJSON(t, srv, http.MethodPost, "/game/new",
		map[string]any{"answerIndex": idx}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthSignupLoginStats(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/auth/signup",
		map[string]string{"username": "player_1", "password": "longenough"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	assert.NotEmpty(t, cookies)

	rec = doJSON(t, srv, http.MethodGet, "/auth/me", nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Username string `json:"username"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "player_1", me.Username)

	rec = doJSON(t, srv, http.MethodGet, "/stats/me", nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.GamesPlayed)

	// Wrong password rejected.
	rec = doJSON(t, srv, http.MethodPost, "/auth/login",
		map[string]string{"username": "player_1", "password": "wrongwrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Gated route without auth.
	rec = doJSON(t, srv, http.MethodGet, "/stats/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDailyFlow(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/daily/new", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		GameID string `json:"gameId"`
		Date   string `json:"date"`
		Played bool   `json:"played"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Played)
	assert.NotEmpty(t, created.GameID)
	anonCookies := rec.Result().Cookies()
	assert.NotEmpty(t, anonCookies)

	// Same anon user gets the same board back.
	rec = doJSON(t, srv, http.MethodPost, "/daily/new", nil, anonCookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	var again struct {
		GameID string `json:"gameId"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, created.GameID, again.GameID)

	rec = doJSON(t, srv, http.MethodPost, "/daily/guess",
		map[string]string{"gameId": created.GameID, "word": "stare"}, anonCookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Row     session.Row `json:"row"`
		State   string      `json:"state"`
		Guesses int         `json:"guesses"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, session.RowScored, res.Row.Kind)
	assert.Equal(t, 1, res.Guesses)

	rec = doJSON(t, srv, http.MethodGet, "/daily/leaderboard", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
