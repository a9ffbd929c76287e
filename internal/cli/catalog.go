package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
	"kwiz-client/internal/ui"
)

func newQuizzesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List your quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, out io.Writer, catalog *app.Catalog, _ domain.Credential) error {
				quizzes, err := catalog.Quizzes(ctx)
				if err != nil {
					fmt.Fprintln(out, "Não foi possível carregar os quizzes.")
					return err
				}
				ui.RenderQuizzes(out, quizzes)
				return nil
			})
		},
	}
}

func newTurmasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turmas",
		Short: "List your classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, out io.Writer, catalog *app.Catalog, _ domain.Credential) error {
				turmas, err := catalog.Turmas(ctx)
				if err != nil {
					fmt.Fprintln(out, "Não foi possível carregar as turmas.")
					return err
				}
				ui.RenderTurmas(out, turmas)
				return nil
			})
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your overall statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, out io.Writer, catalog *app.Catalog, credential domain.Credential) error {
				stats, err := catalog.Stats(ctx, credential.User.ID)
				if err != nil {
					fmt.Fprintln(out, "Não foi possível carregar as estatísticas.")
					return err
				}
				ui.RenderStats(out, stats)
				return nil
			})
		},
	}
}

// withCatalog wires an authenticated catalog for one-shot listing
// commands and routes unauthenticated users to login.
func withCatalog(cmd *cobra.Command, run func(context.Context, io.Writer, *app.Catalog, domain.Credential) error) error {
	rt, err := newRuntime(configPath, serverURL)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	client, credential, err := rt.authenticated(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			fmt.Fprintln(out, "Não logado. Use: kwiz login")
		}
		return err
	}
	if err := run(cmd.Context(), out, app.NewCatalog(client), credential); err != nil {
		rt.log.WithError(err).Warn("catalog fetch failed")
		return err
	}
	return nil
}
