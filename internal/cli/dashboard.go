package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kwiz-client/internal/api"
	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
	"kwiz-client/internal/ui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard with quizzes, turmas, and stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rt)
		},
	}
}

func runDashboard(ctx context.Context, in io.Reader, out io.Writer, rt *runtime) error {
	client, credential, err := rt.authenticated(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			fmt.Fprintln(out, "Não logado. Use: kwiz login")
			return nil
		}
		return err
	}
	catalog := app.NewCatalog(client)

	ui.Greeting(out, credential.User.Name)
	if overview, err := catalog.Overview(ctx, credential.User.ID); err != nil {
		rt.log.WithError(err).Warn("overview fetch failed")
		fmt.Fprintln(out, "Não foi possível carregar o painel.")
	} else {
		fmt.Fprintf(out, "%d quizzes · %d turmas · %d XP\n",
			len(overview.Quizzes), len(overview.Turmas), overview.Stats.TotalAchievements)
	}
	printDashboardHelp(out)

	lines := lineChannel(in)
	for {
		fmt.Fprint(out, "\n> ")
		line, open := <-lines
		if !open {
			fmt.Fprintln(out)
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		args := strings.Fields(line)

		switch strings.ToLower(args[0]) {
		case "help", "ajuda":
			printDashboardHelp(out)
		case "exit", "sair":
			return nil
		case "logout":
			if err := rt.auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Sessão encerrada.")
			return nil
		case "quizzes":
			showQuizzes(ctx, out, catalog)
		case "turmas":
			if turmas, err := catalog.Turmas(ctx); err != nil {
				fmt.Fprintln(out, "Não foi possível carregar as turmas.")
			} else {
				ui.RenderTurmas(out, turmas)
			}
		case "turma":
			if len(args) < 2 {
				fmt.Fprintln(out, "uso: turma <id>")
				continue
			}
			showTurmaDetail(ctx, out, catalog, args[1])
		case "stats":
			if stats, err := catalog.Stats(ctx, credential.User.ID); err != nil {
				fmt.Fprintln(out, "Não foi possível carregar as estatísticas.")
			} else {
				ui.RenderStats(out, stats)
			}
		case "play", "jogar":
			if len(args) < 2 {
				fmt.Fprintln(out, "uso: play <quiz-id>")
				continue
			}
			playFromDashboard(ctx, rt, client, out, lines, catalog, args[1])
		default:
			fmt.Fprintln(out, "Comando desconhecido. Digite 'help'.")
		}
	}
}

func showQuizzes(ctx context.Context, out io.Writer, catalog *app.Catalog) {
	quizzes, err := catalog.Quizzes(ctx)
	if err != nil {
		fmt.Fprintln(out, "Não foi possível carregar os quizzes.")
		return
	}
	ui.RenderQuizzes(out, quizzes)
}

// showTurmaDetail is read-only: the server exposes no join flow for a
// selected turma.
func showTurmaDetail(ctx context.Context, out io.Writer, catalog *app.Catalog, rawID string) {
	turmaID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintln(out, "uso: turma <id>")
		return
	}
	turmas, err := catalog.Turmas(ctx)
	if err != nil {
		fmt.Fprintln(out, "Não foi possível carregar as turmas.")
		return
	}
	for _, turma := range turmas {
		if turma.ID == turmaID {
			fmt.Fprintf(out, "%s\n  Código: %s\n  Membros: %d\n", turma.Name, turma.Code, len(turma.Members))
			return
		}
	}
	fmt.Fprintln(out, "Turma não encontrada.")
}

func playFromDashboard(ctx context.Context, rt *runtime, client *api.Client, out io.Writer, lines <-chan string, catalog *app.Catalog, rawID string) {
	quizID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintln(out, "uso: play <quiz-id>")
		return
	}
	quizzes, err := catalog.Quizzes(ctx)
	if err != nil {
		fmt.Fprintln(out, "Não foi possível carregar os quizzes.")
		return
	}
	var quiz *domain.Quiz
	for i := range quizzes {
		if quizzes[i].ID == quizID {
			quiz = &quizzes[i]
			break
		}
	}
	if quiz == nil {
		fmt.Fprintln(out, "Quiz não encontrado.")
		return
	}

	if err := runPlayThrough(ctx, rt, client, out, lines, *quiz); err != nil {
		rt.log.WithError(err).Warn("play-through failed")
	}
	// Back to the quizzes tab once the play-through ends.
	showQuizzes(ctx, out, catalog)
}

func printDashboardHelp(out io.Writer) {
	fmt.Fprintln(out, "Comandos:")
	fmt.Fprintln(out, "  quizzes")
	fmt.Fprintln(out, "  turmas")
	fmt.Fprintln(out, "  turma <id>")
	fmt.Fprintln(out, "  stats")
	fmt.Fprintln(out, "  play <quiz-id>")
	fmt.Fprintln(out, "  logout")
	fmt.Fprintln(out, "  exit")
}
