package score_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/score"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
)

func gameCfg(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg := config.Default()
	return &cfg.Game
}

func jokerByKey(t *testing.T, cfg *config.GameConfig, key string) score.Joker {
	t.Helper()
	for _, jc := range cfg.Jokers {
		if jc.Key == key {
			return score.JokerFromConfig(jc)
		}
	}
	t.Fatalf("no joker %q in config", key)
	return score.Joker{}
}

func mustScore(t *testing.T, cards []score.Card, handType score.HandType, ledger *score.Ledger, jokers []score.Joker, cfg *config.GameConfig) score.ScoreCalculation {
	t.Helper()
	calc, err := score.CalculateScore(cards, handType, ledger, jokers, cfg)
	if err != nil {
		t.Fatalf("CalculateScore: %v", err)
	}
	return calc
}

func TestCalculatePairOfFives(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 5, score.SuitHearts),
		card(2, 5, score.SuitSpades),
	}

	calc := mustScore(t, cards, score.HandPair, ledger, nil, cfg)

	// base 10 chips x2, plus 5+5 card chips.
	if calc.BaseChips != 10 || calc.BaseMultiplier != 2 {
		t.Fatalf("unexpected base values: %+v", calc)
	}
	if calc.CurrentChips != 20 || calc.CurrentMultiplier != 2 {
		t.Fatalf("unexpected running totals: %+v", calc)
	}
	if calc.FinalScore != 40 {
		t.Fatalf("expected 40, got %d", calc.FinalScore)
	}
	if !strings.Contains(calc.Bonuses, "Base hand: pair (10 chips)") {
		t.Fatalf("missing base trail entry: %s", calc.Bonuses)
	}
	if !strings.Contains(calc.Bonuses, "Card bonuses: 5♥: +5, 5♠: +5") {
		t.Fatalf("missing card trail entry: %s", calc.Bonuses)
	}
}

func TestCalculateAceBeatsFaceBonus(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	// Broadway straight, mixed suits: both an ace and face cards present.
	cards := []score.Card{
		card(1, score.RankAce, score.SuitHearts),
		card(2, score.RankKing, score.SuitSpades),
		card(3, score.RankQueen, score.SuitDiamonds),
		card(4, score.RankJack, score.SuitClubs),
		card(5, 10, score.SuitHearts),
	}

	calc := mustScore(t, cards, score.HandStraight, ledger, nil, cfg)

	// chips 40+11+10+10+10+10 = 91, mult 5*1.5 = 7.5, floor(682.5) = 682.
	if calc.CurrentChips != 91 || calc.CurrentMultiplier != 7.5 {
		t.Fatalf("unexpected totals: %+v", calc)
	}
	if calc.FinalScore != 682 {
		t.Fatalf("expected 682 (floored), got %d", calc.FinalScore)
	}
	if !strings.Contains(calc.Bonuses, "Ace bonus!") {
		t.Fatalf("missing ace bonus: %s", calc.Bonuses)
	}
	if strings.Contains(calc.Bonuses, "Face card bonus!") {
		t.Fatalf("face bonus must not stack with the ace bonus: %s", calc.Bonuses)
	}
}

func TestCalculateFaceBonusWithoutAce(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, score.RankKing, score.SuitSpades),
		card(2, score.RankKing, score.SuitHearts),
	}

	calc := mustScore(t, cards, score.HandPair, ledger, nil, cfg)

	// chips 10+10+10 = 30, mult 2*1.25 = 2.5.
	if calc.FinalScore != 75 {
		t.Fatalf("expected 75, got %d", calc.FinalScore)
	}
	if !strings.Contains(calc.Bonuses, "Face card bonus!") {
		t.Fatalf("missing face bonus: %s", calc.Bonuses)
	}
}

func TestCalculateSuitBonusAllHearts(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 2, score.SuitHearts),
		card(2, 4, score.SuitHearts),
		card(3, 6, score.SuitHearts),
		card(4, 8, score.SuitHearts),
		card(5, 10, score.SuitHearts),
	}

	calc := mustScore(t, cards, score.HandFlush, ledger, nil, cfg)

	// chips 50+30 card chips +15 hearts bonus = 95, mult 6.
	if calc.FinalScore != 570 {
		t.Fatalf("expected 570, got %d", calc.FinalScore)
	}
	if !strings.Contains(calc.Bonuses, "hearts suit bonus!") {
		t.Fatalf("missing suit bonus: %s", calc.Bonuses)
	}
}

func TestCalculateNoSuitBonusOnMixedSuits(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 5, score.SuitHearts),
		card(2, 5, score.SuitSpades),
	}

	calc := mustScore(t, cards, score.HandPair, ledger, nil, cfg)
	if strings.Contains(calc.Bonuses, "suit bonus") {
		t.Fatalf("mixed suits must not earn a suit bonus: %s", calc.Bonuses)
	}
}

func TestCalculateMissingHandConfig(t *testing.T) {
	cfg := gameCfg(t)
	cfg.Hands = map[string]config.HandConfig{}
	ledger := score.NewLedger(cfg.Hands)

	_, err := score.CalculateScore(nil, score.HandPair, ledger, nil, cfg)
	if !errors.Is(err, appErr.ErrHandConfigMissing) {
		t.Fatalf("expected ErrHandConfigMissing, got %v", err)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 9, score.SuitHearts),
		card(2, 9, score.SuitSpades),
		card(3, 9, score.SuitDiamonds),
	}
	jokers := []score.Joker{jokerByKey(t, cfg, "steady_joker")}

	before := ledger.Snapshot()
	first := mustScore(t, cards, score.HandThreeOfAKind, ledger, jokers, cfg)
	second := mustScore(t, cards, score.HandThreeOfAKind, ledger, jokers, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calculation diverged:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(before, ledger.Snapshot()) {
		t.Fatalf("calculation mutated the ledger")
	}
}

func TestCalculateRunMultiplierRaisesScore(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 5, score.SuitHearts),
		card(2, 5, score.SuitSpades),
	}

	base := mustScore(t, cards, score.HandPair, ledger, nil, cfg)
	ledger.UpgradeRunMultiplier(score.HandPair)
	boosted := mustScore(t, cards, score.HandPair, ledger, nil, cfg)

	if boosted.FinalScore <= base.FinalScore {
		t.Fatalf("run multiplier upgrade did not raise the score: %d -> %d", base.FinalScore, boosted.FinalScore)
	}
	// mult doubles: floor(20*4) = 80.
	if boosted.FinalScore != 80 {
		t.Fatalf("expected 80, got %d", boosted.FinalScore)
	}
}

func TestCalculateAlwaysJoker(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 5, score.SuitHearts),
		card(2, 5, score.SuitSpades),
	}

	calc := mustScore(t, cards, score.HandPair, ledger, []score.Joker{jokerByKey(t, cfg, "steady_joker")}, cfg)

	// chips 20, mult 2+2 = 4.
	if calc.FinalScore != 80 {
		t.Fatalf("expected 80, got %d", calc.FinalScore)
	}
	if !strings.Contains(calc.Bonuses, "Steady Joker: +2 mult") {
		t.Fatalf("missing joker trail entry: %s", calc.Bonuses)
	}
}

func TestCalculateSuitJokerCountsMatches(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 2, score.SuitHearts),
		card(2, 4, score.SuitHearts),
		card(3, 6, score.SuitHearts),
		card(4, 8, score.SuitHearts),
		card(5, 10, score.SuitHearts),
	}

	calc := mustScore(t, cards, score.HandFlush, ledger, []score.Joker{jokerByKey(t, cfg, "heart_collector")}, cfg)

	// suit bonus chips 95, heart collector +1 mult per heart = +5 on 6.
	if calc.CurrentMultiplier != 11 {
		t.Fatalf("expected multiplier 11 (five hearts), got %v", calc.CurrentMultiplier)
	}
	if !strings.Contains(calc.Bonuses, "Heart Collector: +5 mult") {
		t.Fatalf("missing per-match trail entry: %s", calc.Bonuses)
	}
}

func TestCalculateHandTypeJokerStaysQuiet(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{card(1, 9, score.SuitClubs)}

	with := mustScore(t, cards, score.HandHighCard, ledger, []score.Joker{jokerByKey(t, cfg, "pair_pal")}, cfg)
	without := mustScore(t, cards, score.HandHighCard, ledger, nil, cfg)

	if with.FinalScore != without.FinalScore {
		t.Fatalf("pair joker changed a highCard score: %d vs %d", with.FinalScore, without.FinalScore)
	}
	if strings.Contains(with.Bonuses, "Pair Pal") {
		t.Fatalf("non-firing joker must not appear in the trail: %s", with.Bonuses)
	}
}

func TestCalculateJokerOrderAffectsTrailNotScore(t *testing.T) {
	cfg := gameCfg(t)
	ledger := score.NewLedger(cfg.Hands)
	cards := []score.Card{
		card(1, 5, score.SuitHearts),
		card(2, 5, score.SuitSpades),
	}
	steady := jokerByKey(t, cfg, "steady_joker")
	hoarder := jokerByKey(t, cfg, "chip_hoarder")

	ab := mustScore(t, cards, score.HandPair, ledger, []score.Joker{steady, hoarder}, cfg)
	ba := mustScore(t, cards, score.HandPair, ledger, []score.Joker{hoarder, steady}, cfg)

	if ab.FinalScore != ba.FinalScore {
		t.Fatalf("additive jokers must commute numerically: %d vs %d", ab.FinalScore, ba.FinalScore)
	}
	if strings.Index(ab.Bonuses, "Steady Joker") > strings.Index(ab.Bonuses, "Chip Hoarder") {
		t.Fatalf("trail must follow equip order: %s", ab.Bonuses)
	}
	if strings.Index(ba.Bonuses, "Chip Hoarder") > strings.Index(ba.Bonuses, "Steady Joker") {
		t.Fatalf("trail must follow equip order: %s", ba.Bonuses)
	}
}
