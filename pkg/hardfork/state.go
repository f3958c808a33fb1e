package hardfork

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/cuprate-consensus/pkg/chainstore"
	"github.com/nspcc-dev/cuprate-consensus/pkg/config"
)

// State combines a HardForkSchedule with a rolling VoteWindow to report the
// currently active fork and to admit or reject candidate blocks.
type State struct {
	schedule *config.HardForkSchedule
	window   *VoteWindow
	cfg      config.HardForkConfig

	currentVersion config.HardForkVersion
	nextVersion    config.HardForkVersion
	hasNext        bool
	lastHeight     uint64
	haveHeight     bool
}

// Init builds a State from scratch by reading the chain store: it tallies
// the votes of the trailing window of blocks, sets CurrentVersion from the
// tip, and then greedily advances the fork for as long as the activation
// rule keeps firing. On a fresh chain (height == 0) CurrentVersion is V1.
func Init(ctx context.Context, cfg config.HardForkConfig, store chainstore.Store) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hardfork: invalid config: %w", err)
	}

	height, err := store.ChainHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("hardfork: fetch chain height: %w", err)
	}

	s := &State{
		schedule: config.NewHardForkSchedule(cfg.Network),
		window:   NewVoteWindow(),
		cfg:      cfg,
	}

	if height == 0 {
		s.currentVersion = config.V1
		s.setNext()
		s.haveHeight = false
		return s, nil
	}

	lo := uint64(0)
	if height > cfg.Window {
		lo = height - cfg.Window
	}
	infos, err := store.HFInfoInRange(ctx, lo, height)
	if err != nil {
		return nil, fmt.Errorf("hardfork: fetch vote window: %w", err)
	}
	for _, info := range infos {
		s.window.Add(config.NormalizeVote(info.Vote))
	}

	tip, err := store.HFInfoAt(ctx, height-1)
	if err != nil {
		return nil, fmt.Errorf("hardfork: fetch tip version: %w", err)
	}
	if !config.IsHardForkVersionValid(tip.Version) {
		return nil, fmt.Errorf("hardfork: %w: block %d has version %v", ErrInvalidHardForkVersion, height-1, tip.Version)
	}
	s.currentVersion = tip.Version
	s.lastHeight = height - 1
	s.haveHeight = true
	s.setNext()

	s.advance()
	return s, nil
}

// ErrInvalidHardForkVersion is returned when a fetched block bears an
// unknown major version. The chain store is assumed to return only
// validated blocks; seeing this means the store itself is corrupt or
// misbehaving, but it still surfaces as a regular error rather than a
// panic since it originates from external data.
var ErrInvalidHardForkVersion = errors.New("invalid hard-fork version")

func (s *State) setNext() {
	next, ok := s.currentVersion.Next()
	s.nextVersion = next
	s.hasNext = ok
}

// advance repeatedly attempts to promote CurrentVersion while the
// activation rule keeps firing: the candidate's height threshold must be
// met and its vote count within the window must reach the configured
// threshold.
func (s *State) advance() {
	for s.hasNext {
		v := s.nextVersion
		heightOK := s.nextBlockHeight() >= s.schedule.ActivationHeight(v)
		votesOK := s.window.VotesFor(v) >= s.schedule.VotesNeeded(v, s.cfg.Window)
		if heightOK && votesOK {
			s.currentVersion = v
			s.setNext()
			continue
		}
		break
	}
}

// nextBlockHeight is the height of the block that has not yet been ingested:
// 0 on a fresh chain, or LastHeight()+1 otherwise.
func (s *State) nextBlockHeight() uint64 {
	if !s.haveHeight {
		return 0
	}
	return s.lastHeight + 1
}

// CurrentVersion returns the active protocol version.
func (s *State) CurrentVersion() config.HardForkVersion {
	return s.currentVersion
}

// NextVersion returns the next version to activate and true, or (0, false)
// if CurrentVersion is already the highest known version.
func (s *State) NextVersion() (config.HardForkVersion, bool) {
	return s.nextVersion, s.hasNext
}

// LastHeight returns the height of the most recently ingested block. The
// second return value is false on a fresh chain that has not ingested
// anything yet.
func (s *State) LastHeight() (uint64, bool) {
	return s.lastHeight, s.haveHeight
}

// CheckBlock reports whether info is acceptable as the next block's
// hard-fork info: its version must equal CurrentVersion and its
// (normalised) vote must be at least CurrentVersion.
func (s *State) CheckBlock(info config.BlockHfInfo) bool {
	if info.Version != s.currentVersion {
		return false
	}
	vote := config.NormalizeVote(info.Vote)
	return vote.Cmp(s.currentVersion) >= 0
}

// Ingest records the acceptance of a new block at height, evicting the
// vote that falls out of the trailing window (if any) before re-running
// the activation rule. height must be exactly one greater than the height
// passed to the previous Ingest (or, for the very first call following
// Init on a fresh chain, 0) — anything else is a height-ordering violation
// and a fatal programmer error.
func (s *State) Ingest(ctx context.Context, vote config.BlockHfInfo, height uint64, store chainstore.Store) error {
	expected := s.nextBlockHeight()
	if height != expected {
		panic(fmt.Sprintf("hardfork: height-ordering violation: ingest at %d, expected %d", height, expected))
	}
	if !config.IsHardForkVersionValid(vote.Version) {
		return fmt.Errorf("hardfork: %w: block %d has version %v", ErrInvalidHardForkVersion, height, vote.Version)
	}

	// Fetch before mutating: if the chain-store call is cancelled, the
	// window must be left untouched (spec §5).
	totalBefore := s.window.Total()
	var evicted config.BlockHfInfo
	needsEvict := totalBefore+1 > s.cfg.Window
	if needsEvict {
		evictHeight := height - totalBefore
		var err error
		evicted, err = store.HFInfoAt(ctx, evictHeight)
		if err != nil {
			return fmt.Errorf("hardfork: fetch evicted vote at %d: %w", evictHeight, err)
		}
	}

	s.window.Add(config.NormalizeVote(vote.Vote))
	if needsEvict {
		s.window.Remove(config.NormalizeVote(evicted.Vote))
	}

	s.lastHeight = height
	s.haveHeight = true
	s.advance()
	return nil
}
