package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chat-orchestrator/internal/adapter/repository"
	"chat-orchestrator/internal/domain"
	"chat-orchestrator/internal/infra"
	"chat-orchestrator/internal/infra/config"
)

var (
	version = "dev"

	// tail flags
	tailSession string
	tailLimit   int

	// purge flags
	purgeBefore string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "historyctl",
	Short:   "Inspect and maintain stored conversation history",
	Version: version,
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the most recent turns of a session",
	RunE:  runTail,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show turn counts per session",
	RunE:  runStats,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete turns older than a cutoff date",
	Long: `Delete conversation turns created before the cutoff.

Retention is not enforced by the chat service itself; run this from a
scheduled job instead.

Examples:
  historyctl purge --before 2026-01-01`,
	RunE: runPurge,
}

func init() {
	tailCmd.Flags().StringVar(&tailSession, "session", "", "session id (required)")
	tailCmd.Flags().IntVar(&tailLimit, "limit", 10, "number of turns to print")
	_ = tailCmd.MarkFlagRequired("session")

	purgeCmd.Flags().StringVar(&purgeBefore, "before", "", "cutoff date YYYY-MM-DD (required)")
	_ = purgeCmd.MarkFlagRequired("before")

	rootCmd.AddCommand(tailCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(purgeCmd)
}

func openRepo(ctx context.Context) (domain.ConversationRepository, func(), error) {
	cfg := config.Load()
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	pool, err := infra.NewPostgresDB(ctx, dsn, infra.PoolConfig{MaxConns: 2, MinConns: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return repository.NewConversationRepository(pool), pool.Close, nil
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, closeFn, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	turns, err := repo.Recent(ctx, tailSession, tailLimit)
	if err != nil {
		return err
	}

	// Recent returns newest first; print chronologically
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		fmt.Printf("[%s]\nUser: %s\nBot:  %s\n\n", t.CreatedAt.Format(time.RFC3339), t.UserMessage, t.BotResponse)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, closeFn, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	stats, err := repo.Stats(ctx)
	if err != nil {
		return err
	}

	for _, s := range stats {
		fmt.Printf("%s\t%d turns\tlast %s\n", s.SessionID, s.TurnCount, s.LastTurn.Format(time.RFC3339))
	}
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	cutoff, err := time.Parse("2006-01-02", purgeBefore)
	if err != nil {
		return fmt.Errorf("invalid --before date: %w", err)
	}

	ctx := cmd.Context()
	repo, closeFn, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	deleted, err := repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	fmt.Printf("deleted %d turns\n", deleted)
	return nil
}
