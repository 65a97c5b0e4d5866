// Command admin is the operator CLI for the contest database: inspect
// matches, print the leaderboard, and verify audit records by deterministic
// replay.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"cricket-contest/internal/database"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/logger"
	"cricket-contest/internal/repository"
	"cricket-contest/internal/service"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "contest-admin",
	Short: "Fantasy cricket contest operations tool",
	Long:  "Inspect matches, print standings and verify scoring audit records.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "contest.db", "path to SQLite database")

	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(replayCmd)
}

func openDB() (*sql.DB, zerolog.Logger, error) {
	log := logger.SetLevel(zerolog.WarnLevel)
	db, err := database.Open(dbPath, log)
	if err != nil {
		return nil, log, fmt.Errorf("open database: %w", err)
	}
	return db, log, nil
}

func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current standings",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, log, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewLeaderboardRepository(db, log)
	entries, err := repo.GetLeaderboard(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No scored matches yet.")
		return nil
	}

	table := newTable()
	table.Header("RANK", "PARTICIPANT", "TOTAL", "MATCHES")
	for _, entry := range entries {
		table.Append(entry.Rank, entry.ParticipantID,
			fmt.Sprintf("%.2f", entry.TotalScore), entry.MatchesScored)
	}
	table.Render()
	return nil
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches",
	Args:  cobra.NoArgs,
	RunE:  runMatches,
}

func runMatches(cmd *cobra.Command, args []string) error {
	db, log, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewMatchRepository(db, log)
	matches, err := repo.List(context.Background())
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches stored yet.")
		return nil
	}

	table := newTable()
	table.Header("MATCH ID", "NAME", "VENUE", "STARTS AT")
	for _, match := range matches {
		table.Append(match.MatchID, match.Name, match.Venue,
			match.StartsAt.Format("2006-01-02 15:04"))
	}
	table.Render()
	return nil
}

var replayCmd = &cobra.Command{
	Use:   "replay <audit-id>",
	Short: "Recompute an audit record from its stored inputs and compare",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, log, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	registry, err := engine.LoadRegistry()
	if err != nil {
		return err
	}

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db, log), registry, log)
	status, err := auditSvc.GetAuditRecord(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Audit %s (match %s, participant %s, rules %s)\n",
		status.Record.ID, status.Record.MatchID,
		status.Record.ParticipantID, status.Record.RuleVersion)
	fmt.Printf("Stored total: %g  hash: %s\n", status.Record.Result.Total, status.Record.ContentHash)

	if status.Replay.OK {
		fmt.Println("Replay: OK, record reproduces exactly")
		return nil
	}

	fmt.Println("Replay: MISMATCH, possible tampering or scoring logic drift; escalate")
	table := newTable()
	table.Header("FIELD", "STORED", "RECOMPUTED")
	for _, diff := range status.Replay.Diffs {
		table.Append(diff.Field, diff.Stored, diff.Recomputed)
	}
	table.Render()
	return nil
}
