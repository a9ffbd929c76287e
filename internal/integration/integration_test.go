package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"kwiz-client/internal/api"
	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
	filestore "kwiz-client/internal/infra/file"
	"kwiz-client/internal/ui"
)

// kwizServer is an in-process stand-in for the remote service, with a
// two-question quiz and a recorded answer log.
type kwizServer struct {
	*httptest.Server

	mu          sync.Mutex
	submissions []map[string]any
	nextCalls   int
}

func (s *kwizServer) recordedSubmissions() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.submissions...)
}

func newKwizServer(t *testing.T) *kwizServer {
	t.Helper()
	server := &kwizServer{}
	mux := http.NewServeMux()

	questions := []map[string]any{
		{
			"id": 11, "text": "Capital do Brasil?", "time_limit": 20,
			"options": []map[string]any{
				{"id": 1, "text": "Rio de Janeiro", "is_correct": false},
				{"id": 3, "text": "Brasília", "is_correct": true},
			},
		},
		{
			"id": 12, "text": "Capital da França?", "time_limit": 15,
			"options": []map[string]any{
				{"id": 5, "text": "Paris", "is_correct": true},
				{"id": 6, "text": "Lyon", "is_correct": false},
			},
		},
	}

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["phone"] != "11999999999" || req["password"] != "secret" {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "abc123",
			"data":    map[string]any{"id": 1, "name": "Ana"},
		})
	})
	mux.HandleFunc("/quizzes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": 7, "title": "Capitais", "questions": []any{struct{}{}, struct{}{}}, "isTimerEnabled": true},
		}})
	})
	mux.HandleFunc("/game-sessions", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "code": "XYZ9"})
	})
	mux.HandleFunc("/game-sessions/XYZ9/start", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "question": questions[0]})
	})
	mux.HandleFunc("/game-sessions/XYZ9/answer", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		server.mu.Lock()
		server.submissions = append(server.submissions, req)
		server.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "points": 120})
	})
	mux.HandleFunc("/game-sessions/XYZ9/next", func(w http.ResponseWriter, _ *http.Request) {
		server.mu.Lock()
		server.nextCalls++
		call := server.nextCalls
		server.mu.Unlock()
		if call == 1 {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "question": questions[1]})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	server.Server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// login runs the real authentication flow against the fake server and
// returns a token-carrying client plus the credential it persisted.
func login(t *testing.T, server *kwizServer) (*api.Client, domain.Credential, *filestore.CredentialStore) {
	t.Helper()
	ctx := context.Background()
	client := api.New(server.URL, nil)
	store := filestore.NewCredentialStore(filepath.Join(t.TempDir(), "session.json"))
	auth := app.NewAuthenticator(client, store)

	credential, err := auth.Login(ctx, app.LoginInput{Phone: "11999999999", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return client.WithToken(credential.Token), credential, store
}

func TestLoginPersistsSessionAndGreets(t *testing.T) {
	server := newKwizServer(t)
	_, credential, store := login(t, server)

	if credential.Token != "abc123" || credential.User.Name != "Ana" {
		t.Fatalf("credential = %+v", credential)
	}

	restored, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("restore = (%v, %v)", ok, err)
	}
	if restored.Token != credential.Token {
		t.Fatalf("restored token = %q", restored.Token)
	}

	var out bytes.Buffer
	ui.Greeting(&out, restored.User.Name)
	if !strings.Contains(out.String(), "Olá, Ana!") {
		t.Fatalf("greeting = %q", out.String())
	}
}

func startGame(t *testing.T, server *kwizServer) *app.Game {
	t.Helper()
	ctx := context.Background()
	client, _, _ := login(t, server)

	session, err := client.CreateGameSession(ctx, 7, "Capitais")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.Code != "XYZ9" {
		t.Fatalf("session code = %q", session.Code)
	}

	game := app.NewGame(client, session, 30)
	if err := game.Begin(ctx); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return game
}

func TestCountdownRunsOutWithoutSubmitting(t *testing.T) {
	server := newKwizServer(t)
	game := startGame(t, server)

	question, ok := game.Question()
	if !ok || question.TimeLimit != 20 {
		t.Fatalf("question = (%+v, %v)", question, ok)
	}
	if game.Remaining() != 20 {
		t.Fatalf("remaining = %d, want 20", game.Remaining())
	}

	for i := 0; i < 20; i++ {
		game.Tick()
	}
	if game.State() != app.StateLocked {
		t.Fatalf("state after countdown = %v, want locked", game.State())
	}
	if game.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", game.Remaining())
	}
	if got := server.recordedSubmissions(); len(got) != 0 {
		t.Fatalf("timeout must not submit, server saw %v", got)
	}
}

func TestAnswerSubmissionCarriesRemainingSeconds(t *testing.T) {
	server := newKwizServer(t)
	game := startGame(t, server)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		game.Tick()
	}
	if err := game.Select(ctx, 3); err != nil {
		t.Fatalf("select: %v", err)
	}
	if game.State() != app.StateLocked {
		t.Fatalf("state = %v, want locked", game.State())
	}
	if game.Score() != 120 {
		t.Fatalf("score = %d, want 120", game.Score())
	}

	got := server.recordedSubmissions()
	if len(got) != 1 {
		t.Fatalf("submissions = %d, want 1", len(got))
	}
	if got[0]["answer_id"].(float64) != 3 || got[0]["question_id"].(float64) != 11 || got[0]["time"].(float64) != 17 {
		t.Fatalf("submission payload = %v", got[0])
	}
}

func TestAdvanceResetsAndCompletionFinishes(t *testing.T) {
	server := newKwizServer(t)
	game := startGame(t, server)
	ctx := context.Background()

	if err := game.Select(ctx, 3); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := game.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if game.QuestionNumber() != 2 {
		t.Fatalf("question number = %d, want 2", game.QuestionNumber())
	}
	if game.Remaining() != 15 {
		t.Fatalf("remaining = %d, want the new question's limit", game.Remaining())
	}
	if _, selected := game.Selected(); selected {
		t.Fatalf("selection must clear between questions")
	}
	if game.Score() != 120 {
		t.Fatalf("score = %d, must carry across questions", game.Score())
	}

	if err := game.Select(ctx, 5); err != nil {
		t.Fatalf("select second: %v", err)
	}
	if err := game.Advance(ctx); err != nil {
		t.Fatalf("advance to completion: %v", err)
	}
	if game.State() != app.StateFinished {
		t.Fatalf("state = %v, want finished", game.State())
	}
	if game.Score() != 240 {
		t.Fatalf("final score = %d, want 240", game.Score())
	}
}
