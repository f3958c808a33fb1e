// Command cachebench rebuilds the hard-fork and weight caches against a
// synthetic in-memory chain and reports the resulting cache state. It
// exists purely as a harness for exercising pkg/consensuscache end to end;
// it owns no on-disk format or network surface of its own.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
	"github.com/nspcc-dev/cuprate-consensus/pkg/consensuscache"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	app := cli.NewApp()
	app.Name = "cachebench"
	app.Usage = "rebuild the consensus state caches against a synthetic chain"
	app.Flags = []cli.Flag{
		cli.Uint64Flag{Name: "height", Value: 20000, Usage: "synthetic chain height to build"},
		cli.Uint64Flag{Name: "window", Value: config.DefaultMainnetWindow, Usage: "hard-fork vote window size"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "zap log level"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	runID := uuid.New()

	logCfg := config.Logger{LogLevel: c.String("log-level")}
	log, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("run_id", runID.String()))

	height := c.Uint64("height")
	store := buildSyntheticChain(height)

	cache := consensuscache.New(consensuscache.Config{
		HardFork: config.HardForkConfig{Network: config.Mainnet, Window: c.Uint64("window")},
		Logger:   log,
	})

	ctx := context.Background()
	if err := cache.Init(ctx, store); err != nil {
		return fmt.Errorf("init consensus caches: %w", err)
	}

	hfState := cache.HardFork()
	wcache := cache.Weight()
	lastHeight, _ := hfState.LastHeight()
	fork := hfState.CurrentVersion()

	fmt.Printf("run_id=%s height=%d current_fork=%s next_block_weight_limit=%d\n",
		runID, lastHeight, fork, wcache.NextBlockWeightLimit(fork))
	return nil
}

// buildSyntheticChain builds a chain store of the given height with a fixed
// seed so runs are reproducible: block weights jitter around 50_000 and
// every block votes for the current mainnet schedule's version at its
// height.
func buildSyntheticChain(height uint64) *chainstore.Fake {
	store := chainstore.NewFake()
	schedule := config.NewHardForkSchedule(config.Mainnet)
	rng := rand.New(rand.NewSource(1))

	for h := uint64(0); h < height; h++ {
		weight := uint64(40_000 + rng.Intn(20_000))
		store.Append(
			chainstore.BlockWeights{BlockWeight: weight, LongTermWeight: weight},
			config.BlockHfInfo{Version: schedule.VersionAtOrBelow(h), Vote: byte(schedule.VersionAtOrBelow(h))},
		)
	}
	return store
}
