package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ZacxDev/nest/config"
	"github.com/ZacxDev/nest/generator"
	"github.com/ZacxDev/nest/utils"
)

var buildCmd = &cobra.Command{
	Use:   "build [site-root]",
	Short: "Build the static site",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteRoot := "."
		if len(args) == 1 {
			siteRoot = args[0]
		}
		configFile, _ := cmd.Flags().GetString("config")
		output, _ := cmd.Flags().GetString("output")

		return runBuild(cmd, afero.NewOsFs(), siteRoot, configFile, output)
	},
}

func runBuild(cmd *cobra.Command, fs afero.Fs, siteRoot, configFile, output string) error {
	cfg, err := config.Load(fs, siteRoot, configFile)
	if err != nil {
		return err
	}
	if output != "" {
		cfg.OutputDir = output
	}

	logger := slog.Default()
	if logLevel == "" {
		logger = utils.NewLogger(cfg.LogLevel)
	}

	g, err := generator.New(siteRoot, cfg, generator.WithFs(fs), generator.WithLogger(logger))
	if err != nil {
		return err
	}

	report, err := g.Generate(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d posts into %s\n",
		len(report.Pages), len(report.Posts), cfg.OutputRoot(siteRoot))
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("output", "o", "", "output directory (default: the site root)")
	buildCmd.Flags().StringP("config", "c", "", "config file (default: <site-root>/site.yaml)")
}
