package score_test

import (
	"testing"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/score"
)

func TestLedgerBaseline(t *testing.T) {
	cfg := config.Default()
	ledger := score.NewLedger(cfg.Game.Hands)

	for _, ht := range score.HandTypes {
		hl := ledger.Level(ht)
		if hl.Level != 1 || hl.RunMultiplier != 1 || hl.TimesPlayed != 0 {
			t.Fatalf("%s not at baseline: %+v", ht, hl)
		}
		if hl.BaseMultiplier != cfg.Game.Hands[string(ht)].BaseMultiplier {
			t.Fatalf("%s base multiplier %v does not match config", ht, hl.BaseMultiplier)
		}
	}
}

func TestLedgerIncrementTimesPlayed(t *testing.T) {
	ledger := score.NewLedger(config.Default().Game.Hands)

	ledger.IncrementTimesPlayed(score.HandPair)
	ledger.IncrementTimesPlayed(score.HandPair)
	ledger.IncrementTimesPlayed(score.HandFlush)

	if got := ledger.Level(score.HandPair).TimesPlayed; got != 2 {
		t.Fatalf("expected pair played twice, got %d", got)
	}
	if got := ledger.Level(score.HandFlush).TimesPlayed; got != 1 {
		t.Fatalf("expected flush played once, got %d", got)
	}
	if got := ledger.Level(score.HandStraight).TimesPlayed; got != 0 {
		t.Fatalf("straight must be untouched, got %d", got)
	}
}

func TestLedgerUpgradeBaseLevel(t *testing.T) {
	ledger := score.NewLedger(config.Default().Game.Hands)

	ledger.UpgradeBaseLevel(score.HandPair)

	hl := ledger.Level(score.HandPair)
	if hl.Level != 2 {
		t.Fatalf("expected level 2, got %d", hl.Level)
	}
	// pair: base 2 + levelMultiplier 1.
	if hl.BaseMultiplier != 3 {
		t.Fatalf("expected base multiplier 3, got %v", hl.BaseMultiplier)
	}
}

func TestLedgerTotalMultiplier(t *testing.T) {
	ledger := score.NewLedger(config.Default().Game.Hands)

	ledger.UpgradeBaseLevel(score.HandPair)     // base 3
	ledger.UpgradeRunMultiplier(score.HandPair) // run 2

	if got := ledger.TotalMultiplier(score.HandPair); got != 6 {
		t.Fatalf("expected 3*2 = 6, got %v", got)
	}
}

func TestLedgerResetRestoresBaseline(t *testing.T) {
	ledger := score.NewLedger(config.Default().Game.Hands)

	ledger.UpgradeBaseLevel(score.HandPair)
	ledger.UpgradeRunMultiplier(score.HandFlush)
	ledger.IncrementTimesPlayed(score.HandStraight)

	ledger.Reset()

	for _, ht := range score.HandTypes {
		hl := ledger.Level(ht)
		if hl.Level != 1 || hl.RunMultiplier != 1 || hl.TimesPlayed != 0 {
			t.Fatalf("%s not reset: %+v", ht, hl)
		}
	}
	if ledger.Level(score.HandPair).BaseMultiplier != 2 {
		t.Fatalf("pair base multiplier not restored")
	}
}

func TestLedgerSnapshotIsACopy(t *testing.T) {
	ledger := score.NewLedger(config.Default().Game.Hands)

	snap := ledger.Snapshot()
	entry := snap[score.HandPair]
	entry.TimesPlayed = 99
	snap[score.HandPair] = entry

	if ledger.Level(score.HandPair).TimesPlayed != 0 {
		t.Fatalf("mutating a snapshot leaked into the ledger")
	}
}
