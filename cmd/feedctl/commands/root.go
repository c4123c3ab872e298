package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/wavefeed/wavefeed/client"
	"github.com/wavefeed/wavefeed/cmd/feedctl/tui"
)

var (
	// Global flags
	serverURL string
	token     string
)

// rootCmd opens the interactive feed
var rootCmd = &cobra.Command{
	Use:   "feedctl",
	Short: "Terminal client for the wavefeed post API",
	Long: `feedctl browses the wavefeed social feed from the terminal.

Running it without a subcommand opens the interactive feed where you can
read posts, like them, comment, and publish new posts with attached media.
Subcommands cover the same operations non-interactively.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := tui.NewFeedModel(newClient(), client.NewState())
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

func newClient() *client.Client {
	return client.New(serverURL, token)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080/api/v1", "Base URL of the wavefeed API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("FEED_TOKEN"), "Bearer token issued by the auth service")
}
