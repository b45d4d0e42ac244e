package score

import (
	"fmt"
	"math/rand"

	"github.com/afriday11/phasefinity/internal/config"
)

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitSpades   Suit = "spades"
	SuitClubs    Suit = "clubs"
)

// Suits in deck-construction order.
var Suits = []Suit{SuitHearts, SuitSpades, SuitClubs, SuitDiamonds}

func (s Suit) Symbol() string {
	switch s {
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitSpades:
		return "♠"
	case SuitClubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank is the numeric card value, 2 through 14 with Ace high.
type Rank int

const (
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

func (r Rank) Label() string {
	switch r {
	case RankAce:
		return "A"
	case RankKing:
		return "K"
	case RankQueen:
		return "Q"
	case RankJack:
		return "J"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// IsFace reports whether the rank is J, Q or K. Aces are not face cards.
func (r Rank) IsFace() bool {
	return r >= RankJack && r <= RankKing
}

// ParseRank resolves a config rank label ("2".."10", "J", "Q", "K", "A").
func ParseRank(label string) (Rank, bool) {
	for r := Rank(2); r <= RankAce; r++ {
		if r.Label() == label {
			return r, true
		}
	}
	return 0, false
}

// Card is an immutable value; the engine only ever reads rank and suit.
// Board position and selection live with the run, not here.
type Card struct {
	ID   int  `json:"id"`
	Rank Rank `json:"value"`
	Suit Suit `json:"suit"`
}

func (c Card) Label() string {
	return c.Rank.Label() + c.Suit.Symbol()
}

type Deck []Card

// NewDeck builds the 13x4 cross product, repeated opts.Copies times, minus
// the excluded rank when the alternate ruleset asks for one. Order is
// deterministic; shuffle separately.
func NewDeck(opts config.DeckConfig) Deck {
	copies := opts.Copies
	if copies < 1 {
		copies = 1
	}
	var excluded Rank
	if opts.ExcludeRank != "" {
		if r, ok := ParseRank(opts.ExcludeRank); ok {
			excluded = r
		}
	}

	deck := make(Deck, 0, copies*52)
	id := 1
	for copyIdx := 0; copyIdx < copies; copyIdx++ {
		for _, suit := range Suits {
			for r := Rank(2); r <= RankAce; r++ {
				if r == excluded {
					continue
				}
				deck = append(deck, Card{ID: id, Rank: r, Suit: suit})
				id++
			}
		}
	}
	return deck
}

// Shuffle permutes the deck in place with the caller's rng (Fisher-Yates).
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
