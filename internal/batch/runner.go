package batch

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MorganGautherot/flappybird-godmod/internal/bot"
	"github.com/MorganGautherot/flappybird-godmod/internal/config"
	"github.com/MorganGautherot/flappybird-godmod/internal/core"
	"github.com/MorganGautherot/flappybird-godmod/internal/sim"
)

// DefaultTickCap bounds a single batch session. At 30 ticks per second
// this is ten minutes of simulated play, far past any interesting run.
const DefaultTickCap = 18000

var errNoGames = errors.New("batch: games must be positive")

// Options configures a batch run.
type Options struct {
	Games    int         // number of sessions
	BaseSeed uint32      // session n runs seed BaseSeed+n
	Variant  bot.Variant // bot policy driving every session
	Workers  int         // concurrent sessions; <=0 means Games
	TickCap  int         // per-session tick bound; <=0 means DefaultTickCap
	Logger   *log.Logger // progress logging; nil disables it
}

// Summary aggregates a finished batch.
type Summary struct {
	Games       int
	Completed   int
	Aborted     int
	BestScore   int
	WorstScore  int
	MeanScore   float64
	MedianScore float64
	MeanSeconds float64
}

// Runner executes independent bot sessions concurrently. Each session
// derives its own seed, so results are a pure function of (config,
// BaseSeed, Variant) regardless of worker count or scheduling.
type Runner struct {
	cfg  *config.Game
	opts Options
}

// NewRunner validates the batch options against the game configuration.
func NewRunner(cfg *config.Game, opts Options) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Games <= 0 {
		return nil, errNoGames
	}
	if _, err := bot.ParseVariant(string(opts.Variant)); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 || opts.Workers > opts.Games {
		opts.Workers = opts.Games
	}
	if opts.TickCap <= 0 {
		opts.TickCap = DefaultTickCap
	}
	return &Runner{cfg: cfg, opts: opts}, nil
}

// Run plays all sessions and returns their records ordered by game id.
// Cancelling the context aborts in-flight sessions; their records carry
// the aborted status and sessions not yet started are skipped.
func (r *Runner) Run(ctx context.Context) ([]sim.Record, error) {
	start := time.Now()

	jobs := make(chan int)
	var (
		mu      sync.Mutex
		records []sim.Record
		wg      sync.WaitGroup
	)

	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				rec, err := r.playOne(ctx, n)
				if err != nil {
					if r.opts.Logger != nil {
						r.opts.Logger.Error("session failed", "game", n, "err", err)
					}
					continue
				}
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			}
		}()
	}

feed:
	for n := 1; n <= r.opts.Games; n++ {
		select {
		case jobs <- n:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(records, func(i, j int) bool {
		return records[i].GameID < records[j].GameID
	})

	if r.opts.Logger != nil {
		r.opts.Logger.Info("batch finished",
			"games", len(records),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	return records, ctx.Err()
}

// playOne runs game n to termination under the derived seed.
func (r *Runner) playOne(ctx context.Context, n int) (sim.Record, error) {
	seed := core.SessionSeed(r.opts.BaseSeed, n)

	session, err := sim.NewSession(r.cfg, seed)
	if err != nil {
		return sim.Record{}, err
	}

	rec := session.Run(ctx, bot.New(r.opts.Variant, r.cfg), r.opts.TickCap)
	rec.GameID = n

	if r.opts.Logger != nil {
		r.opts.Logger.Debug("session done",
			"game", n, "seed", seed, "score", rec.Score, "status", rec.Status)
	}
	return rec, nil
}

// Summarize computes aggregate statistics over batch records.
func Summarize(records []sim.Record) Summary {
	s := Summary{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	s.WorstScore = math.MaxInt
	var scoreSum, secSum float64
	for _, rec := range records {
		switch rec.Status {
		case sim.StatusAborted:
			s.Aborted++
		default:
			s.Completed++
		}
		if rec.Score > s.BestScore {
			s.BestScore = rec.Score
		}
		if rec.Score < s.WorstScore {
			s.WorstScore = rec.Score
		}
		scoreSum += float64(rec.Score)
		secSum += rec.Duration
	}
	s.MeanScore = scoreSum / float64(len(records))
	s.MeanSeconds = secSum / float64(len(records))

	scores := make([]int, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		s.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		s.MedianScore = float64(scores[mid])
	}
	return s
}
