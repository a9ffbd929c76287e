package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"kwiz-client/internal/app"
	"kwiz-client/internal/domain"
)

func newLoginCmd() *cobra.Command {
	var phone, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with phone and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if phone == "" {
				phone = promptLine(reader, out, "Telefone: ")
			}
			if password == "" {
				password = promptLine(reader, out, "Senha: ")
			}

			credential, err := rt.auth.Login(cmd.Context(), app.LoginInput{Phone: phone, Password: password})
			if err != nil {
				if errors.Is(err, domain.ErrLoginFailed) {
					fmt.Fprintln(out, "Telefone ou senha incorretos.")
					return err
				}
				rt.log.WithError(err).Warn("login failed")
				fmt.Fprintln(out, "Não foi possível entrar. Tente novamente.")
				return err
			}
			fmt.Fprintf(out, "Bem-vindo, %s!\n", credential.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "account phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, phone, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if name == "" {
				name = promptLine(reader, out, "Nome completo: ")
			}
			if phone == "" {
				phone = promptLine(reader, out, "Telefone: ")
			}
			if password == "" {
				password = promptLine(reader, out, "Senha: ")
			}

			credential, err := rt.auth.Register(cmd.Context(), app.RegisterInput{Name: name, Phone: phone, Password: password})
			if err != nil {
				rt.log.WithError(err).Warn("register failed")
				fmt.Fprintln(out, "Não foi possível criar a conta.")
				return err
			}
			fmt.Fprintf(out, "Conta criada. Bem-vindo, %s!\n", credential.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "account phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			if err := rt.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(configPath, serverURL)
			if err != nil {
				return err
			}
			credential, ok, err := rt.auth.Restore(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "Não logado. Use: kwiz login")
				return nil
			}
			fmt.Fprintf(out, "%s (id %d)\n", credential.User.Name, credential.User.ID)
			return nil
		},
	}
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
