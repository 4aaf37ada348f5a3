package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MorganGautherot/flappybird-godmod/internal/bot"
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/platform/tui"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
	"github.com/MorganGautherot/flappybird-godmod/internal/storage"
)

var flagPlayBot string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game, or watch a bot play it",
	Long: `Start an interactive game in the terminal.

Controls:
  Space/Up/W - Flap
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

With --bot the session is driven by the named policy instead of the
keyboard, rendered live so you can watch it play.

Examples:
  flappy play
  flappy play --seed 42
  flappy play --bot single
  flappy play --bot two_pipes --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayBot, "bot", "", "Bot policy: single or two_pipes (empty = human play)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var driver sim.ActionSource
	if flagPlayBot != "" {
		variant, err := bot.ParseVariant(flagPlayBot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		driver = bot.New(variant, &cfg)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config:     &cfg,
		Seed:       flagSeed,
		Driver:     driver,
		DriverName: flagPlayBot,
		Store:      store,
		Width:      width,
		Height:     height,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
