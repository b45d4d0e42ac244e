package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/afriday11/phasefinity/internal/config"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
)

// ScoreCalculation is the single-use result of scoring one played hand.
type ScoreCalculation struct {
	BaseChips         float64  `json:"baseChips"`
	BaseMultiplier    float64  `json:"baseMultiplier"`
	CurrentChips      float64  `json:"currentChips"`
	CurrentMultiplier float64  `json:"currentMultiplier"`
	HandType          HandType `json:"handType"`
	FinalScore        int      `json:"finalScore"`
	Bonuses           string   `json:"bonuses"`
}

// CalculateScore turns a classified hand into a final score. Pure: it reads
// the ledger and never mutates it; incrementing times-played is the
// caller's separate step, taken after this returns, so a hand's own play
// never affects its own score.
//
// Stages run in a fixed order, each reading the chips/multiplier state the
// previous one left: base values, per-card chip bonuses, ace/face and suit
// bonuses, then the joker pipeline in equip order. Only the final score is
// floored to an integer.
func CalculateScore(contributing []Card, handType HandType, ledger *Ledger, jokers []Joker, cfg *config.GameConfig) (ScoreCalculation, error) {
	handCfg, ok := cfg.Hands[string(handType)]
	if !ok {
		return ScoreCalculation{}, fmt.Errorf("%w: %s", appErr.ErrHandConfigMissing, handType)
	}

	baseChips := handCfg.BaseChips
	baseMult := ledger.TotalMultiplier(handType)

	chips := baseChips
	mult := baseMult
	trail := []string{fmt.Sprintf("Base hand: %s (%s chips)", handType, fmtNum(chips))}

	// Card values: Ace 11, face cards 10, number cards their rank.
	cardFragments := make([]string, 0, len(contributing))
	for _, c := range contributing {
		bonus := cardChipValue(c.Rank)
		chips += bonus
		cardFragments = append(cardFragments, fmt.Sprintf("%s: +%s", c.Label(), fmtNum(bonus)))
	}
	if len(cardFragments) > 0 {
		trail = append(trail, "Card bonuses: "+strings.Join(cardFragments, ", "))
	}

	// Ace beats face: the two multiplier bonuses are mutually exclusive.
	if containsAce(contributing) {
		mult *= cfg.Bonuses.AceMultiplier
		trail = append(trail, "Ace bonus!")
	} else if containsFace(contributing) {
		mult *= cfg.Bonuses.FaceMultiplier
		trail = append(trail, "Face card bonus!")
	}
	if suit, ok := singleSuit(contributing); ok {
		if bonus := cfg.Bonuses.SuitChips[string(suit)]; bonus != 0 {
			chips += bonus
			trail = append(trail, fmt.Sprintf("%s suit bonus!", suit))
		}
	}

	// Jokers, left to right. Each evaluates the hand content independently
	// and applies its bonus additively to the running totals.
	for _, j := range jokers {
		chipBonus, multBonus := j.bonus(contributing, handType)
		if chipBonus != 0 {
			chips += chipBonus
			trail = append(trail, fmt.Sprintf("%s: +%s chips", j.Name, fmtNum(chipBonus)))
		}
		if multBonus != 0 {
			mult += multBonus
			trail = append(trail, fmt.Sprintf("%s: +%s mult", j.Name, fmtNum(multBonus)))
		}
	}

	return ScoreCalculation{
		BaseChips:         baseChips,
		BaseMultiplier:    baseMult,
		CurrentChips:      chips,
		CurrentMultiplier: mult,
		HandType:          handType,
		FinalScore:        int(math.Floor(chips * mult)),
		Bonuses:           strings.Join(trail, " • "),
	}, nil
}

func cardChipValue(r Rank) float64 {
	switch {
	case r == RankAce:
		return 11
	case r.IsFace():
		return 10
	default:
		return float64(r)
	}
}

func containsAce(cards []Card) bool {
	for _, c := range cards {
		if c.Rank == RankAce {
			return true
		}
	}
	return false
}

func containsFace(cards []Card) bool {
	for _, c := range cards {
		if c.Rank.IsFace() {
			return true
		}
	}
	return false
}

// singleSuit reports the shared suit when every card matches; false for an
// empty set.
func singleSuit(cards []Card) (Suit, bool) {
	if len(cards) == 0 {
		return "", false
	}
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return "", false
		}
	}
	return cards[0].Suit, true
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
