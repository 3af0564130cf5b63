// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily board (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily board
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can finish once per day (enforced by DB + in-memory session).
// Boards are held in memory for active play; only the finished result is
// persisted. Deterministic word selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/johanneslumpe/typescriptle/internal/daily"
	"github.com/johanneslumpe/typescriptle/internal/session"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailyEntry // active boards keyed by userID|date
	mu       sync.Mutex             // guards sessions
}

// dailyEntry pairs an active board with its selection metadata.
type dailyEntry struct {
	Sess      *session.Session
	WordIndex int
	Start     time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailyEntry),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic word index, and answer.
func (d *dailyServer) dateKeyNow() (date string, idx int, answer string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	answers := d.srv.list.Answers()
	if len(answers) == 0 {
		return date, 0, ""
	}
	idx = daily.WordIndex(now, d.salt, len(answers))
	return date, idx, answers[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily board for the current date.
// If the user already has a DB row for today, Played=true is returned.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, idx, answer := d.dateKeyNow()
	if answer == "" {
		http.Error(w, `{"error":"no_answers"}`, http.StatusInternalServerError)
		return
	}

	// Already finished today (persisted in DB)?
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse or create the board in memory.
	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.sessions[key]; ok {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: e.Sess.ID(), Date: date, Played: false})
		return
	}
	sess, err := session.New(d.srv.list, answer)
	if err != nil {
		http.Error(w, `{"error":"bad_answer"}`, http.StatusInternalServerError)
		return
	}
	d.sessions[key] = &dailyEntry{Sess: sess, WordIndex: idx, Start: time.Now()}
	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.ID(), Date: date, Played: false})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Row     session.Row `json:"row"`
	State   string      `json:"state"` // playing | won | lost | locked
	Guesses int         `json:"guesses"`
}

// handleGuess applies a guess to today's daily board.
// Invalid words come back as marker rows, exactly like the free-play mode.
// The result row is persisted once the board is won.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if p.GameID == "" || p.Word == "" {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()
	key := uid + "|" + date

	d.mu.Lock()
	e, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || e.Sess.ID() != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	row, state, err := e.Sess.ApplyGuess(p.Word)
	if err != nil {
		// Board already consumed; report locked rather than an error body.
		_ = json.NewEncoder(w).Encode(dailyGuessRes{State: "locked", Guesses: e.Sess.GuessesUsed()})
		return
	}

	if state == "won" {
		elapsed := int(time.Since(e.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: date, WordIndex: e.WordIndex,
			Guesses: e.Sess.GuessesUsed(), ElapsedMs: elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(dailyGuessRes{Row: row, State: state, Guesses: e.Sess.GuessesUsed()})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
