package score

import "github.com/afriday11/phasefinity/internal/config"

// HandLevel is one hand type's progression record.
type HandLevel struct {
	Level          int     `json:"level"`
	BaseMultiplier float64 `json:"baseMultiplier"`
	RunMultiplier  int     `json:"runMultiplier"`
	TimesPlayed    int     `json:"timesPlayed"`
}

// Ledger tracks progression per hand type. Caller-owned: the calculator
// only reads it, and every mutation is an explicit operation invoked by the
// run. Operations only ever increment, so level >= 1, runMultiplier >= 1
// and timesPlayed >= 0 hold by construction.
type Ledger struct {
	levels map[HandType]HandLevel
	hands  map[string]config.HandConfig
}

// NewLedger builds a ledger at the config baseline. The hands table must
// already be validated (every hand type present).
func NewLedger(hands map[string]config.HandConfig) *Ledger {
	l := &Ledger{hands: hands}
	l.Reset()
	return l
}

// Reset restores every hand type to level 1, the config base multiplier,
// run multiplier 1 and zero plays. Invoked on new game only, never on
// level advance, so base-level upgrades carry across levels within a run.
func (l *Ledger) Reset() {
	l.levels = make(map[HandType]HandLevel, len(HandTypes))
	for _, ht := range HandTypes {
		l.levels[ht] = HandLevel{
			Level:          1,
			BaseMultiplier: l.hands[string(ht)].BaseMultiplier,
			RunMultiplier:  1,
			TimesPlayed:    0,
		}
	}
}

func (l *Ledger) Level(handType HandType) HandLevel {
	return l.levels[handType]
}

// TotalMultiplier is the multiplier the base scoring stage starts from.
func (l *Ledger) TotalMultiplier(handType HandType) float64 {
	hl := l.levels[handType]
	return hl.BaseMultiplier * float64(hl.RunMultiplier)
}

func (l *Ledger) IncrementTimesPlayed(handType HandType) {
	hl := l.levels[handType]
	hl.TimesPlayed++
	l.levels[handType] = hl
}

// UpgradeBaseLevel permanently raises a hand's level, adding the
// per-hand-type multiplier delta from the config.
func (l *Ledger) UpgradeBaseLevel(handType HandType) {
	hl := l.levels[handType]
	hl.Level++
	hl.BaseMultiplier += l.hands[string(handType)].LevelMultiplier
	l.levels[handType] = hl
}

// UpgradeRunMultiplier applies a temporary in-run boost; Reset clears it.
func (l *Ledger) UpgradeRunMultiplier(handType HandType) {
	hl := l.levels[handType]
	hl.RunMultiplier++
	l.levels[handType] = hl
}

// Snapshot copies the full ledger state for state exports.
func (l *Ledger) Snapshot() map[HandType]HandLevel {
	out := make(map[HandType]HandLevel, len(l.levels))
	for ht, hl := range l.levels {
		out[ht] = hl
	}
	return out
}
