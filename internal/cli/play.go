package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kwiz-client/internal/api"
	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
	"kwiz-client/internal/logger"
	"kwiz-client/internal/ui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <quiz-id>",
		Short: "Play a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("quiz id must be a number: %q", args[0])
			}
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			client, _, err := rt.authenticated(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					fmt.Fprintln(out, "Não logado. Use: kwiz login")
				}
				return err
			}

			quiz := domain.Quiz{ID: quizID}
			if quizzes, err := app.NewCatalog(client).Quizzes(cmd.Context()); err == nil {
				for _, q := range quizzes {
					if q.ID == quizID {
						quiz = q
						break
					}
				}
			}
			lines := lineChannel(cmd.InOrStdin())
			return runPlayThrough(cmd.Context(), rt, client, out, lines, quiz)
		},
	}
}

// runPlayThrough creates the session handle and hands the terminal to a
// game runner until the play-through ends.
func runPlayThrough(ctx context.Context, rt *runtime, client *api.Client, out io.Writer, lines <-chan string, quiz domain.Quiz) error {
	session, err := client.CreateGameSession(ctx, quiz.ID, quiz.Title)
	if err != nil {
		rt.log.WithError(err).Warn("create game session failed")
		fmt.Fprintln(out, "Não foi possível criar a sessão de jogo.")
		return err
	}
	game := app.NewGame(client, session, rt.cfg.DefaultTimeLimit())
	runner := newGameRunner(game, lines, out, rt.resultDelay())
	return runner.Run(ctx)
}

// tickerFactory arms one countdown and returns its channel plus a stop
// function. Injected so tests drive ticks by hand.
type tickerFactory func() (<-chan time.Time, func())

// gameRunner owns the terminal side of one play-through: the per-question
// countdown ticker, keyboard input, and rendering. All machine
// transitions happen on this goroutine.
type gameRunner struct {
	game        *app.Game
	lines       <-chan string
	out         io.Writer
	resultDelay time.Duration
	newTicker   tickerFactory
	sleep       func(time.Duration)
	log         *logger.Logger
}

func newGameRunner(game *app.Game, lines <-chan string, out io.Writer, resultDelay time.Duration) *gameRunner {
	return &gameRunner{
		game:        game,
		lines:       lines,
		out:         out,
		resultDelay: resultDelay,
		newTicker: func() (<-chan time.Time, func()) {
			ticker := time.NewTicker(time.Second)
			return ticker.C, ticker.Stop
		},
		sleep: time.Sleep,
		log:   logger.New("play"),
	}
}

// Run drives the machine from Loading to Finished or Exited.
func (r *gameRunner) Run(ctx context.Context) error {
	for {
		err := r.game.Begin(ctx)
		if err == nil {
			break
		}
		r.log.WithError(err).Warn("start game failed")
		fmt.Fprint(r.out, "Não foi possível iniciar o jogo. Tentar novamente? (s/n): ")
		line, ok := <-r.lines
		if !ok || !isYes(line) {
			r.game.Exit()
			fmt.Fprintln(r.out, "Jogo cancelado.")
			return nil
		}
	}

	for r.game.State() == app.StateAwaitingAnswer {
		if err := r.playQuestion(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}
			r.log.WithError(err).Warn("question flow failed")
		}
	}

	switch r.game.State() {
	case app.StateFinished:
		ui.RenderFinalScore(r.out, r.game.Score())
	case app.StateExited:
		fmt.Fprintln(r.out, "Você saiu do jogo.")
	}
	return nil
}

// playQuestion runs one question: it arms a fresh countdown ticker and
// cancels it the moment the machine leaves Awaiting-Answer, so no tick
// can fire into a locked or discarded state.
func (r *gameRunner) playQuestion(ctx context.Context) error {
	question, ok := r.game.Question()
	if !ok {
		return nil
	}
	ui.RenderQuestion(r.out, r.game.QuestionNumber(), question, r.game.Remaining(), r.game.Score())

	ticks, stop := r.newTicker()
	for r.game.State() == app.StateAwaitingAnswer {
		select {
		case <-ctx.Done():
			stop()
			r.game.Exit()
			return ctx.Err()
		case <-ticks:
			r.game.Tick()
			if r.game.State() == app.StateAwaitingAnswer {
				ui.RenderCountdown(r.out, r.game.Remaining())
			}
		case line, open := <-r.lines:
			if !open || isExit(line) {
				stop()
				r.game.Exit()
				return nil
			}
			optionID, valid := ui.OptionForLetter(question, line)
			if !valid {
				fmt.Fprintln(r.out, "Resposta inválida.")
				continue
			}
			stop()
			if err := r.game.Select(ctx, optionID); err != nil {
				r.log.WithError(err).Warn("answer submission failed")
			}
		}
	}
	stop()

	if r.game.State() != app.StateLocked {
		return nil
	}
	selected, hasSelected := r.game.Selected()
	ui.RenderResult(r.out, question, selected, hasSelected, r.game.Correct(), r.game.LastAwarded())
	// The delay starts only after the submission response; advancing is
	// never raced by an in-flight answer.
	r.sleep(r.resultDelay)
	return r.game.Advance(ctx)
}

func lineChannel(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
	}()
	return ch
}

func isExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "sair", "exit", "q":
		return true
	}
	return false
}

func isYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
