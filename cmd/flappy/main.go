// flappy is a deterministic Flappy Bird for the terminal, with seeded
// sessions, predictive bot play, replay and batch simulation.
//
// Usage:
//
//	flappy play                - Play interactively (or watch a bot)
//	flappy batch -n 100        - Run many bot sessions and collect results
//	flappy replay --seed 42    - Replay a recorded session
//	flappy scores              - Show the local leaderboard
//	flappy serve               - Serve the game over SSH
//
// Global flags:
//
//	--seed <value>   - RNG seed (0 = derived from the clock)
//	--config <path>  - Path to a custom game config YAML
//	--db <path>      - Session database path (default: ~/.flappybird/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   uint32
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Deterministic Flappy Bird with seeded replays and bot play",
	Long: `flappy is a terminal Flappy Bird built around reproducibility: every
session runs under an explicit RNG seed, so any game can be replayed
exactly, watched, or re-run by a bot.

Available commands:
  play     - Play interactively, or watch a bot with --bot
  batch    - Run many bot sessions concurrently and export results
  replay   - Re-run a session by seed or from a batch results file
  scores   - View the local leaderboard
  serve    - Start SSH server for remote play

Examples:
  flappy play
  flappy play --bot two_pipes --seed 42
  flappy batch -n 100 --bot single --output results.csv
  flappy replay --seed 42 --bot single
  flappy replay --csv results.csv --game-id 17 --visual
  flappy serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "RNG seed (0 = derived from the clock)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappybird/sessions.db", "Path to session database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
