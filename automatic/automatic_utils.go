package automatic

// Computer vs computer arena: many games between two presets, played
// concurrently, with every action logged.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/pylos/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// playingMu makes checking and raising IsPlaying one step.
var playingMu sync.Mutex

// claimArena marks an arena as running. It returns false if one already
// is.
func claimArena() bool {
	playingMu.Lock()
	defer playingMu.Unlock()
	if IsPlaying.Value() > 0 {
		return false
	}
	IsPlaying.Add(1)
	return true
}

func releaseArena() {
	playingMu.Lock()
	defer playingMu.Unlock()
	IsPlaying.Add(-1)
}

// turnLogger writes rows from logChan as CSV until the channel is closed.
func turnLogger(w io.Writer, logChan chan []string, done chan struct{}) {
	defer close(done)
	cw := csv.NewWriter(w)
	if err := cw.Write(LogHeader); err != nil {
		log.Err(err).Msg("turn-log-header")
	}
	for row := range logChan {
		if err := cw.Write(row); err != nil {
			log.Err(err).Msg("turn-log-write")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Err(err).Msg("turn-log-flush")
	}
	log.Debug().Msg("exiting-turn-logger")
}

// PlayArena plays the configured number of games between player1 and
// player2 and returns the report of the games that finished. Games run
// concurrently, each with its own engine and players.
func PlayArena(ctx context.Context, cfg *config.Config) (*Report, error) {
	if !claimArena() {
		return nil, ErrAlreadyPlaying
	}
	defer releaseArena()
	p1 := cfg.GetString(config.ConfigPlayer1)
	p2 := cfg.GetString(config.ConfigPlayer2)
	for _, name := range []string{p1, p2} {
		if _, err := cfg.Preset(name); err != nil {
			return nil, err
		}
	}
	numGames := cfg.GetInt(config.ConfigArenaGames)
	threads := cfg.GetInt(config.ConfigArenaThreads)
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	seeds, err := arenaSeeds(cfg.GetString(config.ConfigArenaSeeds), numGames)
	if err != nil {
		return nil, err
	}

	var logChan chan []string
	done := make(chan struct{})
	if out := cfg.GetString(config.ConfigArenaOutput); out != "" {
		logfile, err := os.Create(out)
		if err != nil {
			return nil, err
		}
		defer logfile.Close()
		logChan = make(chan []string, 100)
		go turnLogger(logfile, logChan, done)
	} else {
		close(done)
	}

	log.Info().Int("games", numGames).Int("threads", threads).
		Str("player1", p1).Str("player2", p2).Msg("starting-arena")
	CVCCounter.Set(0)

	results := make([]Result, numGames)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(threads)
	for i := 0; i < numGames && ctx.Err() == nil; i++ {
		eg.Go(func() error {
			r := NewGameRunner(logChan, cfg)
			if err := r.Init(p1, p2); err != nil {
				return err
			}
			r.StartGame(i, seeds[i])
			res, err := r.PlayGame(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%100 == 0 {
				log.Info().Int64("finished", n).Msg("arena-progress")
			}
			return nil
		})
	}
	err = eg.Wait()
	if logChan != nil {
		close(logChan)
	}
	<-done
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("arena stopped early")
		err = nil
	}
	return NewReport(p1, p2, results), err
}
