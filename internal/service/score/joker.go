package score

import (
	"fmt"

	"github.com/afriday11/phasefinity/internal/config"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
)

// TriggerKind discriminates the trigger variant.
type TriggerKind string

const (
	TriggerAlways      TriggerKind = "always"
	TriggerOnScoreSuit TriggerKind = "onScoreSuit"
	TriggerOnHandType  TriggerKind = "onHandType"
)

// Trigger is a tagged variant: Suit is set iff Kind is onScoreSuit,
// HandType iff Kind is onHandType. Config validation enforces this, so
// evaluation has no unknown-trigger path.
type Trigger struct {
	Kind     TriggerKind `json:"kind"`
	Suit     Suit        `json:"suit,omitempty"`
	HandType HandType    `json:"handType,omitempty"`
}

type Reward string

const (
	RewardChips Reward = "chips"
	RewardMult  Reward = "mult"
)

// Joker is an immutable catalog entry.
type Joker struct {
	ID      int     `json:"id"`
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Cost    int     `json:"cost"`
	Reward  Reward  `json:"reward"`
	Value   float64 `json:"value"`
	Trigger Trigger `json:"trigger"`
}

// JokerFromConfig converts a validated config entry.
func JokerFromConfig(jc config.JokerConfig) Joker {
	return Joker{
		ID:     jc.ID,
		Key:    jc.Key,
		Name:   jc.Name,
		Cost:   jc.Cost,
		Reward: Reward(jc.Reward),
		Value:  jc.Value,
		Trigger: Trigger{
			Kind:     TriggerKind(jc.Trigger),
			Suit:     Suit(jc.Suit),
			HandType: HandType(jc.HandType),
		},
	}
}

// Description renders the joker for shop and powerup screens.
func (j Joker) Description() string {
	rewardText := "chips"
	if j.Reward == RewardMult {
		rewardText = "multiplier"
	}
	switch j.Trigger.Kind {
	case TriggerOnScoreSuit:
		return fmt.Sprintf("Adds +%s %s per %s card in hand", fmtNum(j.Value), rewardText, j.Trigger.Suit)
	case TriggerOnHandType:
		return fmt.Sprintf("Adds +%s %s when playing a %s", fmtNum(j.Value), rewardText, j.Trigger.HandType)
	default:
		return fmt.Sprintf("Adds +%s %s to every hand", fmtNum(j.Value), rewardText)
	}
}

// bonus evaluates one joker against the contributing cards and hand type.
// Jokers read hand content, never the running chips/mult totals.
func (j Joker) bonus(cards []Card, handType HandType) (chipBonus, multBonus float64) {
	fired := 0.0
	switch j.Trigger.Kind {
	case TriggerAlways:
		fired = 1
	case TriggerOnScoreSuit:
		for _, c := range cards {
			if c.Suit == j.Trigger.Suit {
				fired++
			}
		}
	case TriggerOnHandType:
		if handType == j.Trigger.HandType {
			fired = 1
		}
	}
	if fired == 0 {
		return 0, 0
	}
	if j.Reward == RewardMult {
		return 0, j.Value * fired
	}
	return j.Value * fired, 0
}

// MaxEquippedJokers is the fixed capacity of the joker rack.
const MaxEquippedJokers = 5

// Rack is the ordered list of equipped jokers. Equip order is evaluation
// order; unequip splices without reordering the rest.
type Rack struct {
	jokers []Joker
	cap    int
}

func NewRack(capacity int) *Rack {
	if capacity < 1 {
		capacity = MaxEquippedJokers
	}
	return &Rack{cap: capacity}
}

// Equip appends the joker. A full rack rejects without state change.
func (r *Rack) Equip(j Joker) error {
	if len(r.jokers) >= r.cap {
		return appErr.ErrJokerCapacity
	}
	for _, equipped := range r.jokers {
		if equipped.ID == j.ID {
			return appErr.ErrJokerAlreadyEquipped
		}
	}
	r.jokers = append(r.jokers, j)
	return nil
}

func (r *Rack) Unequip(jokerID int) bool {
	for i, j := range r.jokers {
		if j.ID == jokerID {
			r.jokers = append(r.jokers[:i], r.jokers[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Rack) Clear() {
	r.jokers = nil
}

func (r *Rack) Has(jokerID int) bool {
	for _, j := range r.jokers {
		if j.ID == jokerID {
			return true
		}
	}
	return false
}

// Jokers returns a copy in equip order.
func (r *Rack) Jokers() []Joker {
	return append([]Joker(nil), r.jokers...)
}

func (r *Rack) Len() int {
	return len(r.jokers)
}
