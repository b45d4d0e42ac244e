package score_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/score"
)

func countByCard(deck score.Deck) map[string]int {
	counts := make(map[string]int)
	for _, c := range deck {
		counts[c.Label()]++
	}
	return counts
}

func TestNewDeckStandard(t *testing.T) {
	deck := score.NewDeck(config.DeckConfig{Copies: 1})
	if len(deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(deck))
	}
	for label, n := range countByCard(deck) {
		if n != 1 {
			t.Fatalf("card %s appears %d times", label, n)
		}
	}
	seen := make(map[int]bool, len(deck))
	for _, c := range deck {
		if seen[c.ID] {
			t.Fatalf("duplicate card ID %d", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestNewDeckDoubleDeck(t *testing.T) {
	deck := score.NewDeck(config.DeckConfig{Copies: 2})
	if len(deck) != 104 {
		t.Fatalf("expected 104 cards, got %d", len(deck))
	}
	for label, n := range countByCard(deck) {
		if n != 2 {
			t.Fatalf("card %s appears %d times, want 2", label, n)
		}
	}
}

func TestNewDeckExcludedRank(t *testing.T) {
	deck := score.NewDeck(config.DeckConfig{Copies: 1, ExcludeRank: "10"})
	if len(deck) != 48 {
		t.Fatalf("expected 48 cards, got %d", len(deck))
	}
	for _, c := range deck {
		if c.Rank == 10 {
			t.Fatalf("excluded rank still present: %v", c)
		}
	}
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	opts := config.DeckConfig{Copies: 1}

	a := score.NewDeck(opts)
	b := score.NewDeck(opts)
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different orders")
	}

	c := score.NewDeck(opts)
	c.Shuffle(rand.New(rand.NewSource(8)))
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds produced the same order")
	}
}

func TestShufflePreservesCards(t *testing.T) {
	deck := score.NewDeck(config.DeckConfig{Copies: 1})
	deck.Shuffle(rand.New(rand.NewSource(99)))

	if len(deck) != 52 {
		t.Fatalf("shuffle changed deck size: %d", len(deck))
	}
	for label, n := range countByCard(deck) {
		if n != 1 {
			t.Fatalf("card %s appears %d times after shuffle", label, n)
		}
	}
}

func TestParseRank(t *testing.T) {
	cases := map[string]score.Rank{
		"2": 2, "10": 10, "J": score.RankJack,
		"Q": score.RankQueen, "K": score.RankKing, "A": score.RankAce,
	}
	for label, want := range cases {
		got, ok := score.ParseRank(label)
		if !ok || got != want {
			t.Fatalf("ParseRank(%q) = %v, %v; want %v", label, got, ok, want)
		}
	}
	if _, ok := score.ParseRank("1"); ok {
		t.Fatalf("ParseRank must reject unknown labels")
	}
}
