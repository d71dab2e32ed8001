package progression

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLadder  = errors.New("invalid ladder configuration")
	ErrNegativePoints = errors.New("negative point total")
)

// GoalMaximumReached is reported as the next goal on the final Act.
const GoalMaximumReached = "maximum reached"

const ranksPerAct = 3

type LadderConfig struct {
	Tiers []Tier
	Acts  []Act
}

// Ladder is the validated, immutable tier/act configuration. Build one with
// NewLadder at startup; a config that fails validation must abort the process.
type Ladder struct {
	tiers []Tier
	acts  []Act
}

func NewLadder(cfg LadderConfig) (Ladder, error) {
	if len(cfg.Tiers) == 0 {
		return Ladder{}, fmt.Errorf("%w: no tiers", ErrInvalidLadder)
	}
	if len(cfg.Acts) == 0 {
		return Ladder{}, fmt.Errorf("%w: no acts", ErrInvalidLadder)
	}

	tiers := make([]Tier, len(cfg.Tiers))
	copy(tiers, cfg.Tiers)
	if err := validateBrackets("tier", tierBrackets(tiers)); err != nil {
		return Ladder{}, err
	}

	acts := make([]Act, len(cfg.Acts))
	for i, act := range cfg.Acts {
		act.Ordinal = i
		act.Ranks = append([]Rank(nil), act.Ranks...)
		acts[i] = act
	}
	if err := validateBrackets("act", actBrackets(acts)); err != nil {
		return Ladder{}, err
	}
	for _, act := range acts {
		if len(act.Ranks) != ranksPerAct {
			return Ladder{}, fmt.Errorf("%w: act %q has %d ranks, want %d", ErrInvalidLadder, act.ID, len(act.Ranks), ranksPerAct)
		}
		if err := validateBrackets("rank of act "+act.ID, rankBrackets(act.Ranks)); err != nil {
			return Ladder{}, err
		}
		if act.Ranks[0].MinPoints != act.MinPoints {
			return Ladder{}, fmt.Errorf("%w: act %q first rank starts at %d, want %d", ErrInvalidLadder, act.ID, act.Ranks[0].MinPoints, act.MinPoints)
		}
		if last := act.Ranks[ranksPerAct-1]; last.MaxPoints != act.MaxPoints {
			return Ladder{}, fmt.Errorf("%w: act %q last rank ends at %d, want %d", ErrInvalidLadder, act.ID, last.MaxPoints, act.MaxPoints)
		}
	}
	if tiers[0].MinPoints != 0 {
		return Ladder{}, fmt.Errorf("%w: first tier must start at 0", ErrInvalidLadder)
	}
	if acts[0].MinPoints != 0 {
		return Ladder{}, fmt.Errorf("%w: first act must start at 0", ErrInvalidLadder)
	}

	return Ladder{tiers: tiers, acts: acts}, nil
}

type bracket struct {
	min int64
	max int64
}

func tierBrackets(tiers []Tier) []bracket {
	out := make([]bracket, len(tiers))
	for i, t := range tiers {
		out[i] = bracket{min: t.MinPoints, max: t.MaxPoints}
	}
	return out
}

func actBrackets(acts []Act) []bracket {
	out := make([]bracket, len(acts))
	for i, a := range acts {
		out[i] = bracket{min: a.MinPoints, max: a.MaxPoints}
	}
	return out
}

func rankBrackets(ranks []Rank) []bracket {
	out := make([]bracket, len(ranks))
	for i, r := range ranks {
		out[i] = bracket{min: r.MinPoints, max: r.MaxPoints}
	}
	return out
}

// validateBrackets enforces the contiguity contract: strictly ascending,
// non-overlapping, gapless ranges with only the final entry unbounded.
func validateBrackets(kind string, brackets []bracket) error {
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last {
			if b.max != Unbounded {
				return fmt.Errorf("%w: final %s bracket must be unbounded", ErrInvalidLadder, kind)
			}
		} else {
			if b.max == Unbounded {
				return fmt.Errorf("%w: %s bracket %d is unbounded but not final", ErrInvalidLadder, kind, i)
			}
			if b.max < b.min {
				return fmt.Errorf("%w: %s bracket %d has max %d below min %d", ErrInvalidLadder, kind, i, b.max, b.min)
			}
			if next := brackets[i+1]; next.min != b.max+1 {
				return fmt.Errorf("%w: %s bracket %d ends at %d but next starts at %d", ErrInvalidLadder, kind, i, b.max, next.min)
			}
		}
	}
	return nil
}

func (b bracket) contains(points int64) bool {
	return points >= b.min && (b.max == Unbounded || points <= b.max)
}

func (l Ladder) Tiers() []Tier {
	return append([]Tier(nil), l.tiers...)
}

func (l Ladder) Acts() []Act {
	out := make([]Act, len(l.acts))
	for i, act := range l.acts {
		act.Ranks = append([]Rank(nil), act.Ranks...)
		out[i] = act
	}
	return out
}

// ResolveTier returns the single tier bracket containing points.
func (l Ladder) ResolveTier(points int64) (Tier, error) {
	if points < 0 {
		return Tier{}, ErrNegativePoints
	}
	for _, t := range l.tiers {
		if (bracket{min: t.MinPoints, max: t.MaxPoints}).contains(points) {
			return t, nil
		}
	}
	// Unreachable once NewLadder has validated coverage from 0.
	return l.tiers[len(l.tiers)-1], nil
}

// ResolveAct returns the act containing points and the rank within it.
func (l Ladder) ResolveAct(points int64) (Act, Rank, error) {
	if points < 0 {
		return Act{}, Rank{}, ErrNegativePoints
	}
	for _, act := range l.acts {
		if !(bracket{min: act.MinPoints, max: act.MaxPoints}).contains(points) {
			continue
		}
		for _, rank := range act.Ranks {
			if (bracket{min: rank.MinPoints, max: rank.MaxPoints}).contains(points) {
				return act, rank, nil
			}
		}
		return act, act.Ranks[len(act.Ranks)-1], nil
	}
	last := l.acts[len(l.acts)-1]
	return last, last.Ranks[len(last.Ranks)-1], nil
}

// NextAct returns the act following the one containing points. ok is false on
// the final act.
func (l Ladder) NextAct(points int64) (Act, bool, error) {
	act, _, err := l.ResolveAct(points)
	if err != nil {
		return Act{}, false, err
	}
	if act.Ordinal+1 >= len(l.acts) {
		return Act{}, false, nil
	}
	return l.acts[act.Ordinal+1], true, nil
}

// ActByOrdinal looks an act up by its load-time position.
func (l Ladder) ActByOrdinal(ordinal int) (Act, bool) {
	if ordinal < 0 || ordinal >= len(l.acts) {
		return Act{}, false
	}
	return l.acts[ordinal], true
}

// DetailedProgress computes the normalized position within the current act.
// The final act, and any degenerate single-point act, reports 100% with zero
// points to the next boundary.
func (l Ladder) DetailedProgress(points int64) (ActProgress, error) {
	act, rank, err := l.ResolveAct(points)
	if err != nil {
		return ActProgress{}, err
	}

	out := ActProgress{Act: act, Rank: rank}

	if act.MaxPoints == Unbounded || act.MaxPoints == act.MinPoints {
		out.ProgressPercent = 100
	} else {
		pct := 100 * float64(points-act.MinPoints) / float64(act.MaxPoints-act.MinPoints)
		out.ProgressPercent = clampFloat(pct, 0, 100)
	}

	next, ok, err := l.NextAct(points)
	if err != nil {
		return ActProgress{}, err
	}
	if !ok {
		out.GoalName = GoalMaximumReached
		return out, nil
	}
	out.GoalName = next.Ranks[0].Name
	if delta := next.MinPoints - points; delta > 0 {
		out.PointsToNext = delta
	}
	return out, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
