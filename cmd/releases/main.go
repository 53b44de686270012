package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"release-viewer/internal/adapters/primary/terminal"
	"release-viewer/internal/adapters/secondary/github"
	"release-viewer/internal/adapters/secondary/session"
	"release-viewer/internal/config"
	"release-viewer/internal/core/domain"
	"release-viewer/internal/core/services"
)

const cliScope = "cli"

type listOptions struct {
	limit  int
	filter string
	query  string
	owner  string
	repo   string
	token  string
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)

	opts := &listOptions{}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "Lists releases and their downloadable assets",
		Example: "releases list --limit 10 --filter .pdf --query weekly",
		Args:    cobra.NoArgs,
		RunE:    list(cfg, opts),
	}
	listCmd.Flags().IntVarP(&opts.limit, "limit", "n", cfg.Viewer.DefaultLimit, "number of releases to show")
	listCmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "only show assets ending with this extension, e.g. .pdf")
	listCmd.Flags().StringVarP(&opts.query, "query", "q", "", "only show assets whose name contains this text")
	listCmd.Flags().StringVar(&opts.owner, "owner", cfg.GitHub.Owner, "repository owner")
	listCmd.Flags().StringVar(&opts.repo, "repo", cfg.GitHub.Repo, "repository name")
	listCmd.Flags().StringVar(&opts.token, "token", "", "GitHub API token (defaults to GITHUB_TOKEN)")

	rootCmd := &cobra.Command{
		Use:           "releases",
		Short:         "Browse published releases from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(listCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func list(cfg *config.Config, opts *listOptions) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		gh := cfg.GitHub
		gh.Owner = opts.owner
		gh.Repo = opts.repo
		if opts.token != "" {
			gh.Token = opts.token
		}

		svc := services.NewReleaseService(
			github.NewReleaseClient(&gh, nil),
			session.NewMemoryCache(),
			cfg.Viewer.Location(),
			cfg.Viewer.DefaultLimit,
			nil,
		)

		q := domain.Query{Limit: opts.limit, FilterExt: opts.filter, Search: opts.query}
		view, err := svc.Load(cmd.Context(), cliScope, q, false)
		if err != nil {
			return err
		}

		return terminal.NewPresenter(cmd.OutOrStdout()).Render(view)
	}
}
