package config

// mainnetActivationHeights is the exact Monero mainnet hard-fork schedule:
// the height at or above which each version's rules first apply.
var mainnetActivationHeights = map[HardForkVersion]uint64{
	V1:  0,
	V2:  1009827,
	V3:  1141317,
	V4:  1220516,
	V5:  1288616,
	V6:  1400000,
	V7:  1546000,
	V8:  1685555,
	V9:  1686275,
	V10: 1788000,
	V11: 1788720,
	V12: 1978433,
	V13: 2210000,
	V14: 2210720,
	V15: 2688888,
	V16: 2689608,
}

// HardForkSchedule is a pure, stateless lookup over a network's hard-fork
// activation table and vote thresholds. The zero value is not usable;
// construct one with NewHardForkSchedule.
type HardForkSchedule struct {
	network           Network
	activationHeights map[HardForkVersion]uint64
}

// NewHardForkSchedule returns the schedule for network. Only Mainnet has a
// built-in activation table; Testnet and Stagenet get an empty schedule:
// ActivationHeight panics on it, since using an unconfigured schedule is a
// programmer error, not a recoverable one, while VersionAtOrBelow returns
// V1 for every height.
func NewHardForkSchedule(network Network) *HardForkSchedule {
	s := &HardForkSchedule{network: network}
	switch network {
	case Mainnet:
		s.activationHeights = mainnetActivationHeights
	case Testnet, Stagenet:
		s.activationHeights = nil
	default:
		panic("consensuscache: unknown network passed to NewHardForkSchedule")
	}
	return s
}

// Network returns the network this schedule was built for.
func (s *HardForkSchedule) Network() Network {
	return s.network
}

// ActivationHeight returns the height at which version first becomes
// eligible to activate on this schedule's network.
func (s *HardForkSchedule) ActivationHeight(version HardForkVersion) uint64 {
	h, ok := s.activationHeights[version]
	if !ok {
		panic("consensuscache: no activation height configured for " + version.String() +
			" on network " + s.network.String())
	}
	return h
}

// VersionAtOrBelow returns the greatest version whose activation height is
// less than or equal to height.
func (s *HardForkSchedule) VersionAtOrBelow(height uint64) HardForkVersion {
	best := V1
	for _, v := range allVersions {
		h, ok := s.activationHeights[v]
		if !ok {
			continue
		}
		if h <= height && v.Cmp(best) > 0 {
			best = v
		}
	}
	return best
}

// ThresholdPct returns the vote-share percentage (0..=100) required for
// version to activate. Every Monero mainnet fork activates purely by
// height, so this is always 0 there; voting is evaluated regardless so the
// same activation rule can drive other networks once their tables exist.
func (s *HardForkSchedule) ThresholdPct(version HardForkVersion) uint64 {
	switch s.network {
	case Mainnet:
		return 0
	default:
		return 0
	}
}

// VotesNeeded returns the number of votes within a window of the given size
// required to meet ThresholdPct(version), rounded up.
func (s *HardForkSchedule) VotesNeeded(version HardForkVersion, window uint64) uint64 {
	pct := s.ThresholdPct(version)
	return (pct*window + 99) / 100
}
