// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harukei/github-digest/internal/config"
	"github.com/harukei/github-digest/internal/gateway"
	"github.com/harukei/github-digest/internal/report"
	"github.com/harukei/github-digest/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetches today's activity and writes the Markdown digest",
	Long: `Fetches closed issues, merged pull requests, and commits for every
configured repository since midnight UTC, and writes the assembled digest to a
Markdown file. A repository whose fetch fails is logged and left out of the
digest; the remaining repositories still get their sections.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

		// Missing credentials are the only fatal condition; fail before any
		// network activity.
		creds, err := config.LoadCredentials()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		configPath, _ := cmd.Flags().GetString("config")
		repos, err := config.LoadRepositories(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		outputPath, _ := cmd.Flags().GetString("output")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(creds.Token, creds.User, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		digest := usecase.NewDigest(githubGateway, creds.User, logger)

		// The activity window is computed once per run and shared by every
		// collector call, even when the run straddles a UTC midnight.
		now := time.Now().UTC()
		since := now.Truncate(24 * time.Hour)

		reports := digest.Build(ctx, repos, since, concurrency)

		doc := report.Render(reports, now)
		if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		logger.Info().Str("path", outputPath).Int("repositories", len(reports)).Msg("report written")
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("config", "repos.yaml", "Path to the repository list (YAML)")
	reportCmd.Flags().String("output", "daily_report.md", "Path of the Markdown report to write")
	reportCmd.Flags().Int("concurrency", 1, "Number of repositories fetched at once (1 = sequential)")
}
