// Package consensuscache wires the hard-fork and weight caches together
// behind a single entry point for the block validator, adding the
// structured logging the bare pkg/hardfork and pkg/weight packages leave to
// their caller.
package consensuscache

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
	"github.com/nspcc-dev/cuprate-consensus/pkg/hardfork"
	"github.com/nspcc-dev/cuprate-consensus/pkg/weight"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Config is the construction-time configuration for a Cache.
type Config struct {
	HardFork config.HardForkConfig
	// Logger is used for cache rebuild and fork-activation messages. A nil
	// Logger defaults to zap.NewNop(), matching the teacher's
	// WatchdogConfig nil-check-and-default convention.
	Logger *zap.Logger
}

// Cache bundles a HardForkState and a weight.Cache rebuilt from the same
// chain store, for single-writer/single-reader use by the validator. It is
// not safe for concurrent Ingest/NewBlock calls from multiple goroutines;
// the atomic.Bool below only guards against a double Init, the same
// started-once pattern the teacher's consensus.Watchdog uses for Start.
type Cache struct {
	cfg Config
	log *zap.Logger

	hf    *hardfork.State
	wcach *weight.Cache

	initialized *atomic.Bool
}

// New returns an uninitialised Cache; call Init before using it.
func New(cfg Config) *Cache {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		cfg:         cfg,
		log:         log,
		initialized: atomic.NewBool(false),
	}
}

// Init rebuilds both caches from store. It is an error to call Init more
// than once on the same Cache.
func (c *Cache) Init(ctx context.Context, store chainstore.Store) error {
	if !c.initialized.CAS(false, true) {
		return fmt.Errorf("consensuscache: already initialized")
	}

	hf, err := hardfork.Init(ctx, c.cfg.HardFork, store)
	if err != nil {
		return fmt.Errorf("consensuscache: init hard-fork state: %w", err)
	}
	wcach, err := weight.InitCache(ctx, store)
	if err != nil {
		return fmt.Errorf("consensuscache: init weight cache: %w", err)
	}

	c.hf = hf
	c.wcach = wcach

	height, haveHeight := hf.LastHeight()
	c.log.Info("consensus caches rebuilt",
		zap.String("network", c.cfg.HardFork.Network.String()),
		zap.Bool("have_height", haveHeight),
		zap.Uint64("last_height", height),
		zap.Stringer("current_version", hf.CurrentVersion()))
	return nil
}

// HardFork returns the wrapped hard-fork state. Panics if Init has not run.
func (c *Cache) HardFork() *hardfork.State {
	c.mustBeInitialized()
	return c.hf
}

// Weight returns the wrapped weight cache. Panics if Init has not run.
func (c *Cache) Weight() *weight.Cache {
	c.mustBeInitialized()
	return c.wcach
}

func (c *Cache) mustBeInitialized() {
	if !c.initialized.Load() {
		panic("consensuscache: cache used before Init")
	}
}

// IngestBlock applies one newly-accepted block to both caches: the
// hard-fork vote/height state and the weight windows. Both ingests must
// target the same height as the hard-fork state's own bookkeeping; the
// caller is the validator, which processes blocks strictly in order.
func (c *Cache) IngestBlock(ctx context.Context, height uint64, hf config.BlockHfInfo, blockWeight, longTermWeight uint64, store chainstore.Store) error {
	c.mustBeInitialized()

	before := c.hf.CurrentVersion()
	if err := c.hf.Ingest(ctx, hf, height, store); err != nil {
		return fmt.Errorf("consensuscache: ingest hard-fork vote at %d: %w", height, err)
	}
	if err := c.wcach.NewBlock(ctx, height, blockWeight, longTermWeight, store); err != nil {
		return fmt.Errorf("consensuscache: ingest block weight at %d: %w", height, err)
	}

	after := c.hf.CurrentVersion()
	if after != before {
		c.log.Info("hard fork activated",
			zap.Uint64("height", height),
			zap.Stringer("from", before),
			zap.Stringer("to", after))
	}
	c.log.Debug("ingested block into consensus caches",
		zap.Uint64("height", height),
		zap.Uint64("block_weight", blockWeight),
		zap.Uint64("long_term_weight", longTermWeight))
	return nil
}
