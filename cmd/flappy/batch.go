package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MorganGautherot/flappybird-godmod/internal/batch"
	"github.com/MorganGautherot/flappybird-godmod/internal/bot"
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
	"github.com/MorganGautherot/flappybird-godmod/internal/storage"
)

var (
	flagBatchGames   int
	flagBatchBot     string
	flagBatchWorkers int
	flagBatchOutput  string
	flagBatchTickCap int
	flagBatchNoStore bool
	flagBatchVerbose bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many bot sessions and collect the results",
	Long: `Run N independent bot sessions concurrently. Session n plays under
seed <base-seed>+n, so a whole batch reproduces exactly from its base
seed and any single game can be replayed later by its seed.

Results go to the session database and, with --output, to a CSV file.

Examples:
  flappy batch -n 100 --bot single
  flappy batch -n 1000 --bot two_pipes --workers 8 --output results.csv
  flappy batch -n 50 --seed 42 --bot single`,
	Args: cobra.NoArgs,
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&flagBatchGames, "games", "n", 10, "Number of sessions to run")
	batchCmd.Flags().StringVar(&flagBatchBot, "bot", "single", "Bot policy: single or two_pipes")
	batchCmd.Flags().IntVar(&flagBatchWorkers, "workers", 4, "Concurrent sessions")
	batchCmd.Flags().StringVarP(&flagBatchOutput, "output", "o", "", "Write results to a CSV file")
	batchCmd.Flags().IntVar(&flagBatchTickCap, "tick-cap", batch.DefaultTickCap, "Per-session tick bound")
	batchCmd.Flags().BoolVar(&flagBatchNoStore, "no-store", false, "Skip the session database")
	batchCmd.Flags().BoolVarP(&flagBatchVerbose, "verbose", "v", false, "Log every finished session")
}

func runBatch(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-batch",
	})
	if flagBatchVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	variant, err := bot.ParseVariant(flagBatchBot)
	if err != nil {
		logger.Fatal("bad bot flag", "error", err)
	}

	baseSeed := core.ResolveSeed(flagSeed)
	runner, err := batch.NewRunner(&cfg, batch.Options{
		Games:    flagBatchGames,
		BaseSeed: baseSeed,
		Variant:  variant,
		Workers:  flagBatchWorkers,
		TickCap:  flagBatchTickCap,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("cannot start batch", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running batch",
		"games", flagBatchGames, "bot", variant, "base_seed", baseSeed, "workers", flagBatchWorkers)

	records, runErr := runner.Run(ctx)
	if runErr != nil {
		logger.Warn("batch interrupted", "error", runErr)
	}

	if flagBatchOutput != "" {
		f, err := os.Create(flagBatchOutput)
		if err != nil {
			logger.Fatal("cannot create output file", "error", err)
		}
		if err := batch.WriteCSV(f, records); err != nil {
			f.Close()
			logger.Fatal("cannot write results", "error", err)
		}
		if err := f.Close(); err != nil {
			logger.Fatal("cannot close output file", "error", err)
		}
		logger.Info("results written", "path", flagBatchOutput)
	}

	if !flagBatchNoStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open session database", "error", err)
		} else {
			if err := store.SaveBatch(records, string(variant)); err != nil {
				logger.Warn("could not persist batch", "error", err)
			}
			store.Close()
		}
	}

	summary := batch.Summarize(records)
	fmt.Printf("\nBatch summary (%s, base seed %d)\n", variant, baseSeed)
	fmt.Printf("  Games:      %d (%d completed, %d aborted)\n", summary.Games, summary.Completed, summary.Aborted)
	fmt.Printf("  Best score: %d\n", summary.BestScore)
	fmt.Printf("  Mean score: %.2f (median %.1f)\n", summary.MeanScore, summary.MedianScore)
	fmt.Printf("  Mean time:  %.1fs\n", summary.MeanSeconds)
}
