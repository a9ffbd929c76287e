package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
	"kwiz-client/internal/logger"
)

type recordedSubmission struct {
	AnswerID   int64
	QuestionID int64
	Remaining  int
}

type fakeGameAPI struct {
	questions   []domain.Question
	cursor      int
	points      int
	startErrs   []error
	submissions []recordedSubmission
}

func (f *fakeGameAPI) StartGameSession(_ context.Context, _ string) (*domain.Question, error) {
	if len(f.startErrs) > 0 {
		err := f.startErrs[0]
		f.startErrs = f.startErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.cursor = 1
	return &f.questions[0], nil
}

func (f *fakeGameAPI) SubmitAnswer(_ context.Context, _ string, answerID, questionID int64, remaining int) (domain.AnswerResult, error) {
	f.submissions = append(f.submissions, recordedSubmission{answerID, questionID, remaining})
	return domain.AnswerResult{Points: f.points}, nil
}

func (f *fakeGameAPI) NextQuestion(_ context.Context, _ string) (*domain.Question, error) {
	if f.cursor >= len(f.questions) {
		return nil, nil
	}
	question := f.questions[f.cursor]
	f.cursor++
	return &question, nil
}

func oneQuestionAPI() *fakeGameAPI {
	return &fakeGameAPI{
		points: 120,
		questions: []domain.Question{
			{
				ID:        11,
				Text:      "Capital do Brasil?",
				TimeLimit: 20,
				Options: []domain.Option{
					{ID: 1, Text: "Rio de Janeiro"},
					{ID: 3, Text: "Brasília", IsCorrect: true},
				},
			},
		},
	}
}

type testRunnerEnv struct {
	runner *gameRunner
	api    *fakeGameAPI
	game   *app.Game
	out    *bytes.Buffer
	ticks  chan time.Time
	lines  chan string
	stops  int
}

func newRunnerEnv(api *fakeGameAPI) *testRunnerEnv {
	env := &testRunnerEnv{
		api:   api,
		out:   &bytes.Buffer{},
		ticks: make(chan time.Time, 32),
		lines: make(chan string, 8),
	}
	env.game = app.NewGame(api, domain.GameSession{Code: "XYZ9", QuizID: 7}, 30)
	env.runner = &gameRunner{
		game:        env.game,
		lines:       env.lines,
		out:         env.out,
		resultDelay: time.Millisecond,
		newTicker: func() (<-chan time.Time, func()) {
			return env.ticks, func() { env.stops++ }
		},
		sleep: func(time.Duration) {},
		log:   logger.New("test"),
	}
	return env
}

func TestRunnerAnswerLocksSubmitsAndFinishes(t *testing.T) {
	env := newRunnerEnv(oneQuestionAPI())
	env.lines <- "b"

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if env.game.State() != app.StateFinished {
		t.Fatalf("state = %v, want finished", env.game.State())
	}
	if len(env.api.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(env.api.submissions))
	}
	got := env.api.submissions[0]
	if got.AnswerID != 3 || got.QuestionID != 11 || got.Remaining != 20 {
		t.Fatalf("unexpected submission: %+v", got)
	}
	if env.stops == 0 {
		t.Fatalf("countdown ticker was never cancelled")
	}

	text := env.out.String()
	if !strings.Contains(text, "✓ Correto! Parabéns!") {
		t.Fatalf("missing result line: %q", text)
	}
	if !strings.Contains(text, "Pontuação final: 120") {
		t.Fatalf("missing final score: %q", text)
	}
}

func TestRunnerTimeoutLocksAndAdvances(t *testing.T) {
	api := oneQuestionAPI()
	api.questions[0].TimeLimit = 2
	env := newRunnerEnv(api)
	env.ticks <- time.Time{}
	env.ticks <- time.Time{}

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if env.game.State() != app.StateFinished {
		t.Fatalf("state = %v, want finished", env.game.State())
	}
	if len(env.api.submissions) != 0 {
		t.Fatalf("timeout must not submit, got %+v", env.api.submissions)
	}
	if !strings.Contains(env.out.String(), "Tempo esgotado!") {
		t.Fatalf("missing timeout line: %q", env.out.String())
	}
}

func TestRunnerExitCommandAbandonsGame(t *testing.T) {
	env := newRunnerEnv(oneQuestionAPI())
	env.lines <- "sair"

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.game.State() != app.StateExited {
		t.Fatalf("state = %v, want exited", env.game.State())
	}
	if len(env.api.submissions) != 0 {
		t.Fatalf("exit must not notify the server")
	}
	if !strings.Contains(env.out.String(), "Você saiu do jogo.") {
		t.Fatalf("missing exit message: %q", env.out.String())
	}
}

func TestRunnerInvalidAnswerIsRejectedWithoutLocking(t *testing.T) {
	env := newRunnerEnv(oneQuestionAPI())
	env.lines <- "z"
	env.lines <- "b"

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(env.api.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(env.api.submissions))
	}
	if !strings.Contains(env.out.String(), "Resposta inválida.") {
		t.Fatalf("missing invalid-answer notice: %q", env.out.String())
	}
}

func TestRunnerStartFailureOffersRetry(t *testing.T) {
	api := oneQuestionAPI()
	api.startErrs = []error{errors.New("unreachable"), nil}
	env := newRunnerEnv(api)
	env.lines <- "s"
	env.lines <- "b"

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.game.State() != app.StateFinished {
		t.Fatalf("state = %v, want finished after retry", env.game.State())
	}
	if !strings.Contains(env.out.String(), "Tentar novamente?") {
		t.Fatalf("missing retry prompt: %q", env.out.String())
	}
}

func TestRunnerStartFailureDeclinedCancels(t *testing.T) {
	api := oneQuestionAPI()
	api.startErrs = []error{errors.New("unreachable")}
	env := newRunnerEnv(api)
	env.lines <- "n"

	if err := env.runner.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.game.State() != app.StateExited {
		t.Fatalf("state = %v, want exited", env.game.State())
	}
	if !strings.Contains(env.out.String(), "Jogo cancelado.") {
		t.Fatalf("missing cancel message: %q", env.out.String())
	}
}
