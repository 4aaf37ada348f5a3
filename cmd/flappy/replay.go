package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MorganGautherot/flappybird-godmod/internal/batch"
	"github.com/MorganGautherot/flappybird-godmod/internal/bot"
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/platform/tui"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

var (
	flagReplayBot    string
	flagReplayCSV    string
	flagReplayGameID int
	flagReplayVisual bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-run a session by seed",
	Long: `Re-run a bot session under a known seed and report the outcome. The
seed comes either from --seed directly or from a batch results file via
--csv and --game-id.

The same seed, config and bot always reproduce the identical session,
so a replayed score matching the recorded one confirms the run. With
--visual the replay renders live in the terminal instead of printing
the result.

Examples:
  flappy replay --seed 42 --bot single
  flappy replay --csv results.csv --game-id 17
  flappy replay --csv results.csv --game-id 17 --visual`,
	Args: cobra.NoArgs,
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayBot, "bot", "single", "Bot policy: single or two_pipes")
	replayCmd.Flags().StringVar(&flagReplayCSV, "csv", "", "Batch results file to look the seed up in")
	replayCmd.Flags().IntVar(&flagReplayGameID, "game-id", 0, "Game id within the results file")
	replayCmd.Flags().BoolVar(&flagReplayVisual, "visual", false, "Render the replay in the terminal")
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	variant, err := bot.ParseVariant(flagReplayBot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	var recorded *sim.Record
	if flagReplayCSV != "" {
		rec, err := lookupRecord(flagReplayCSV, flagReplayGameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		seed = rec.Seed
		recorded = &rec
	}
	if seed == 0 {
		fmt.Fprintln(os.Stderr, "Error: need --seed, or --csv with --game-id")
		os.Exit(1)
	}

	if flagReplayVisual {
		runVisualReplay(&cfg, seed, variant)
		return
	}

	session, err := sim.NewSession(&cfg, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rec := session.Run(context.Background(), bot.New(variant, &cfg), batch.DefaultTickCap)

	fmt.Printf("Replay of seed %d (%s)\n", seed, variant)
	fmt.Printf("  Score:    %d\n", rec.Score)
	fmt.Printf("  Duration: %.1fs\n", rec.Duration)
	fmt.Printf("  Status:   %s\n", rec.Status)

	if recorded != nil {
		if rec.Score == recorded.Score && rec.PipesPassed == recorded.PipesPassed {
			fmt.Printf("  Matches game %d from %s\n", recorded.GameID, flagReplayCSV)
		} else {
			fmt.Printf("  DIVERGED from game %d: recorded score %d, replayed %d\n",
				recorded.GameID, recorded.Score, rec.Score)
			fmt.Println("  (different config or bot variant than the original run?)")
			os.Exit(1)
		}
	}
}

// lookupRecord finds the recorded session in a batch results file.
func lookupRecord(path string, gameID int) (sim.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Record{}, err
	}
	defer f.Close()

	records, err := batch.ReadCSV(f)
	if err != nil {
		return sim.Record{}, err
	}
	return batch.FindByGameID(records, gameID)
}

// runVisualReplay renders the bot session live instead of summarizing it.
func runVisualReplay(cfg *config.Game, seed uint32, variant bot.Variant) {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err := tui.Run(tui.Options{
		Config:     cfg,
		Seed:       seed,
		Driver:     bot.New(variant, cfg),
		DriverName: string(variant),
		Width:      width,
		Height:     height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
}
