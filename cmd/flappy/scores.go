package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MorganGautherot/flappybird-godmod/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the local leaderboard",
	Long: `Display the best stored sessions, human and bot alike. The seed
column lets any entry be replayed with 'flappy replay --seed'.

Examples:
  flappy scores
  flappy scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	top, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores")
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-10s  %-9s  %-9s  %s\n", "Rank", "Score", "Seed", "Player", "Duration", "Date")
	fmt.Printf("  %-4s  %-7s  %-10s  %-9s  %-9s  %s\n", "----", "-----", "----", "------", "--------", "----")

	for i, entry := range top {
		player := entry.Bot
		if player == "" {
			player = "human"
		}
		fmt.Printf("  %-4d  %-7d  %-10d  %-9s  %-8.1fs  %s\n",
			i+1, entry.Score, entry.Seed, player, entry.Duration,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Sessions: %d  Best: %d  Average: %.2f\n",
			stats.Sessions, stats.HighScore, stats.AvgScore)
	}
}
