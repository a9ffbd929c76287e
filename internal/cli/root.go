package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	serverURL  string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("KWIZ_CONFIG")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envServer := os.Getenv("KWIZ_SERVER")

	cmd := &cobra.Command{
		Use:           "kwiz",
		Short:         "Terminal client for the Kwiz quiz service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&serverURL, "server", envServer, "override the API base URL")
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newQuizzesCmd())
	cmd.AddCommand(newTurmasCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}
