package score

import "sort"

// HandType identifies a poker hand classification.
type HandType string

const (
	HandHighCard      HandType = "highCard"
	HandPair          HandType = "pair"
	HandTwoPair       HandType = "twoPair"
	HandThreeOfAKind  HandType = "threeOfAKind"
	HandStraight      HandType = "straight"
	HandFlush         HandType = "flush"
	HandFullHouse     HandType = "fullHouse"
	HandFourOfAKind   HandType = "fourOfAKind"
	HandStraightFlush HandType = "straightFlush"
)

// HandTypes lists every hand type, weakest first.
var HandTypes = []HandType{
	HandHighCard, HandPair, HandTwoPair, HandThreeOfAKind, HandStraight,
	HandFlush, HandFullHouse, HandFourOfAKind, HandStraightFlush,
}

// Classification is the result of classifying a played card set: the single
// best-fitting hand type plus exactly the cards that form it.
type Classification struct {
	HandType     HandType `json:"handType"`
	Contributing []Card   `json:"contributingCards"`
}

// Classify determines the best poker hand type for an arbitrary card set
// and selects the contributing cards. Deterministic: ties within equal
// ranks resolve by input order. An empty set classifies as highCard with no
// contributing cards so the function stays total.
func Classify(cards []Card) Classification {
	if len(cards) == 0 {
		return Classification{HandType: HandHighCard, Contributing: nil}
	}

	rankCounts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		rankCounts[c.Rank]++
	}

	straight := hasStraight(rankCounts)
	flush := isFlush(cards)

	switch {
	case straight && flush:
		return Classification{HandStraightFlush, straightCards(cards, rankCounts)}
	case countOf(rankCounts, 4) >= 1:
		return Classification{HandFourOfAKind, cardsOfRank(cards, bestRankWithCount(rankCounts, 4))}
	case countOf(rankCounts, 3) >= 1 && countOf(rankCounts, 2) >= 1:
		trips := cardsOfRank(cards, bestRankWithCount(rankCounts, 3))
		pair := cardsOfRank(cards, bestRankWithCount(rankCounts, 2))
		return Classification{HandFullHouse, append(trips, pair...)}
	case flush:
		return Classification{HandFlush, flushCards(cards)}
	case straight:
		return Classification{HandStraight, straightCards(cards, rankCounts)}
	case countOf(rankCounts, 3) >= 1:
		return Classification{HandThreeOfAKind, cardsOfRank(cards, bestRankWithCount(rankCounts, 3))}
	case countOf(rankCounts, 2) == 2:
		return Classification{HandTwoPair, cardsWithCount(cards, rankCounts, 2)}
	case countOf(rankCounts, 2) == 1:
		return Classification{HandPair, cardsWithCount(cards, rankCounts, 2)}
	default:
		return Classification{HandHighCard, []Card{highestCard(cards)}}
	}
}

// bestRankWithCount returns the highest rank whose group has exactly n
// members. Callers guarantee one exists.
func bestRankWithCount(rankCounts map[Rank]int, n int) Rank {
	best := Rank(0)
	for r, count := range rankCounts {
		if count == n && r > best {
			best = r
		}
	}
	return best
}

func cardsOfRank(cards []Card, rank Rank) []Card {
	out := make([]Card, 0, 4)
	for _, c := range cards {
		if c.Rank == rank {
			out = append(out, c)
		}
	}
	return out
}

func countOf(rankCounts map[Rank]int, n int) int {
	total := 0
	for _, count := range rankCounts {
		if count == n {
			total++
		}
	}
	return total
}

// hasStraight checks for 5 consecutive distinct ranks, or the wheel
// (A-2-3-4-5) with the Ace played low.
func hasStraight(rankCounts map[Rank]int) bool {
	if len(rankCounts) < 5 {
		return false
	}
	ranks := distinctRanksDescending(rankCounts)
	for i := 0; i+4 < len(ranks); i++ {
		if ranks[i]-ranks[i+4] == 4 {
			return true
		}
	}
	return isWheel(rankCounts)
}

func isWheel(rankCounts map[Rank]int) bool {
	for _, r := range []Rank{RankAce, 2, 3, 4, 5} {
		if rankCounts[r] == 0 {
			return false
		}
	}
	return true
}

// isFlush requires every card to share one suit; fewer than 5 cards can
// never be a flush.
func isFlush(cards []Card) bool {
	if len(cards) < 5 {
		return false
	}
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func distinctRanksDescending(rankCounts map[Rank]int) []Rank {
	ranks := make([]Rank, 0, len(rankCounts))
	for r := range rankCounts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}

// straightCards picks the 5 cards forming the highest run. When the wheel
// is the only qualifying run the literal Ace card is included as the low
// end. One card per rank, first occurrence in input order.
func straightCards(cards []Card, rankCounts map[Rank]int) []Card {
	ranks := distinctRanksDescending(rankCounts)
	for i := 0; i+4 < len(ranks); i++ {
		if ranks[i]-ranks[i+4] == 4 {
			return firstCardsForRanks(cards, ranks[i:i+5])
		}
	}
	if isWheel(rankCounts) {
		return firstCardsForRanks(cards, []Rank{5, 4, 3, 2, RankAce})
	}
	return nil
}

func firstCardsForRanks(cards []Card, ranks []Rank) []Card {
	out := make([]Card, 0, len(ranks))
	for _, r := range ranks {
		for _, c := range cards {
			if c.Rank == r {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// flushCards returns the 5 highest cards of the flush; excess lower cards
// of the suit do not contribute. Stable sort keeps input order within a
// rank.
func flushCards(cards []Card) []Card {
	sorted := append([]Card(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	return sorted
}

// cardsWithCount returns, in input order, every card whose rank group has
// exactly n members.
func cardsWithCount(cards []Card, rankCounts map[Rank]int, n int) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if rankCounts[c.Rank] == n {
			out = append(out, c)
		}
	}
	return out
}

func highestCard(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best
}
