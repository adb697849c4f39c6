package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/nest/utils"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "nest",
	Short: "Nest - build a static site from Markdown pages and posts",
	Long: `Nest turns the Markdown documents under _pages and _posts into HTML,
rendering each one through a template from _templates.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(utils.NewLogger(logLevel))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}
