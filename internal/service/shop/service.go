package shop

import (
	"math/rand"
	"sort"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/score"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
)

// OfferCount is how many jokers a powerup screen presents.
const OfferCount = 3

// Service owns the immutable joker catalog. It is caller-owned and shared
// between runs; per-run state (coins, the equipped rack) stays with the run.
type Service struct {
	catalog []score.Joker
	byID    map[int]score.Joker
}

func NewService(jokers []config.JokerConfig) *Service {
	catalog := make([]score.Joker, 0, len(jokers))
	byID := make(map[int]score.Joker, len(jokers))
	for _, jc := range jokers {
		j := score.JokerFromConfig(jc)
		catalog = append(catalog, j)
		byID[j.ID] = j
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].ID < catalog[j].ID })
	return &Service{catalog: catalog, byID: byID}
}

// Catalog returns the full catalog in ID order.
func (s *Service) Catalog() []score.Joker {
	return append([]score.Joker(nil), s.catalog...)
}

func (s *Service) Joker(id int) (score.Joker, error) {
	j, ok := s.byID[id]
	if !ok {
		return score.Joker{}, appErr.ErrJokerNotFound
	}
	return j, nil
}

// Available lists the catalog minus already-equipped jokers, for the shop
// screen.
func (s *Service) Available(equippedIDs []int) []score.Joker {
	equipped := make(map[int]bool, len(equippedIDs))
	for _, id := range equippedIDs {
		equipped[id] = true
	}
	out := make([]score.Joker, 0, len(s.catalog))
	for _, j := range s.catalog {
		if !equipped[j.ID] {
			out = append(out, j)
		}
	}
	return out
}

// Offers draws up to OfferCount random unequipped jokers for the powerup
// screen. Fewer remain when the player owns most of the catalog; an empty
// slice means nothing is left to offer.
func (s *Service) Offers(rng *rand.Rand, equippedIDs []int) []score.Joker {
	pool := s.Available(equippedIDs)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > OfferCount {
		pool = pool[:OfferCount]
	}
	return pool
}
