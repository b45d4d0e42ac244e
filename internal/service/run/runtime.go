package run

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/score"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
	"github.com/afriday11/phasefinity/pkg/logger"

	"go.uber.org/zap"
)

type Status string

const (
	StatusPlaying   Status = "playing"
	StatusPowerup   Status = "powerupPending"
	StatusWon       Status = "won"
	StatusLost      Status = "lost"
	StatusAbandoned Status = "abandoned"
)

// maxSelectedCards caps how many cards a single play can hold.
const maxSelectedCards = 5

// GameState is the full client-facing snapshot of one run.
type GameState struct {
	RunID         string                            `json:"runId"`
	ShareCode     string                            `json:"shareCode"`
	Seed          int64                             `json:"seed"`
	Status        Status                            `json:"status"`
	Level         int                               `json:"level"`
	RequiredScore int                               `json:"requiredScore"`
	LevelScore    int                               `json:"levelScore"`
	TotalScore    int                               `json:"totalScore"`
	TurnsLeft     int                               `json:"turnsLeft"`
	DiscardsLeft  int                               `json:"discardsLeft"`
	Coins         int                               `json:"coins"`
	HandsPlayed   int                               `json:"handsPlayed"`
	DeckRemaining int                               `json:"deckRemaining"`
	Hand          []score.Card                      `json:"hand"`
	Selected      []int                             `json:"selected"`
	Jokers        []score.Joker                     `json:"jokers"`
	Offers        []score.Joker                     `json:"offers,omitempty"`
	LastHand      *score.ScoreCalculation           `json:"lastHand,omitempty"`
	HandLevels    map[score.HandType]score.HandLevel `json:"handLevels"`
}

type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

// PlayResult reports what one play did, for persistence and responses.
type PlayResult struct {
	Cards         []score.Card
	Calc          score.ScoreCalculation
	Level         int
	LevelComplete bool
	CoinsAwarded  int
	Won           bool
	Lost          bool
}

// offerFunc draws the powerup offers at level completion. Injected so the
// runtime stays decoupled from the shop catalog.
type offerFunc func(rng *rand.Rand, equippedIDs []int) []score.Joker

// Runtime is the in-memory state of one live run. All access goes through
// the mutex; the *Locked helpers assume it is held.
type Runtime struct {
	id        string
	shareCode string
	seed      int64
	rng       *rand.Rand
	cfg       *config.GameConfig
	offerFn   offerFunc

	deck        []score.Card
	hand        []score.Card
	discardPile []score.Card
	selected    []int

	ledger *score.Ledger
	rack   *score.Rack

	status       Status
	level        int
	levelScore   int
	totalScore   int
	turnsLeft    int
	discardsLeft int
	coins        int
	handsPlayed  int
	offers       []score.Joker
	lastCalc     *score.ScoreCalculation

	subscribers map[string]chan OutgoingMessage
	seq         int64

	mu sync.Mutex
}

func newRuntime(id, shareCode string, seed int64, cfg *config.GameConfig, offerFn offerFunc) (*Runtime, error) {
	levelCfg, ok := cfg.Level(1)
	if !ok {
		return nil, fmt.Errorf("%w: level 1", appErr.ErrLevelConfigMissing)
	}

	rt := &Runtime{
		id:           id,
		shareCode:    shareCode,
		seed:         seed,
		rng:          rand.New(rand.NewSource(seed)),
		cfg:          cfg,
		offerFn:      offerFn,
		ledger:       score.NewLedger(cfg.Hands),
		rack:         score.NewRack(cfg.MaxJokers),
		status:       StatusPlaying,
		level:        1,
		turnsLeft:    levelCfg.Turns,
		discardsLeft: levelCfg.Discards,
		coins:        cfg.StartingCoins,
		subscribers:  make(map[string]chan OutgoingMessage),
	}
	rt.dealFreshLocked()
	return rt, nil
}

// dealFreshLocked rebuilds and reshuffles the deck, then deals a new hand.
func (rt *Runtime) dealFreshLocked() {
	deck := score.NewDeck(rt.cfg.Deck)
	deck.Shuffle(rt.rng)
	rt.deck = deck
	rt.hand = nil
	rt.discardPile = nil
	rt.selected = nil
	rt.drawLocked(rt.cfg.HandSize)
}

// drawLocked moves up to n cards from the deck to the hand, recycling the
// discard pile when the deck runs dry.
func (rt *Runtime) drawLocked(n int) {
	for i := 0; i < n; i++ {
		if len(rt.deck) == 0 {
			if len(rt.discardPile) == 0 {
				return
			}
			recycled := score.Deck(rt.discardPile)
			recycled.Shuffle(rt.rng)
			rt.deck = recycled
			rt.discardPile = nil
		}
		rt.hand = append(rt.hand, rt.deck[0])
		rt.deck = rt.deck[1:]
	}
}

func (rt *Runtime) ensureActiveLocked() error {
	switch rt.status {
	case StatusPlaying:
		return nil
	case StatusPowerup:
		return appErr.ErrPowerupPending
	default:
		return appErr.ErrGameOver
	}
}

// ToggleSelect flips a card's selection, capped at maxSelectedCards.
func (rt *Runtime) ToggleSelect(cardID int) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.ensureActiveLocked(); err != nil {
		return err
	}
	if rt.cardIndexLocked(cardID) < 0 {
		return appErr.ErrCardNotInHand
	}
	for i, id := range rt.selected {
		if id == cardID {
			rt.selected = append(rt.selected[:i], rt.selected[i+1:]...)
			rt.broadcastStateLocked()
			return nil
		}
	}
	if len(rt.selected) >= maxSelectedCards {
		return appErr.ErrSelectionLimit
	}
	rt.selected = append(rt.selected, cardID)
	rt.broadcastStateLocked()
	return nil
}

// SortHand reorders the hand by rank (descending) or by suit groups.
func (rt *Runtime) SortHand(by string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.ensureActiveLocked(); err != nil {
		return err
	}
	switch by {
	case "rank":
		sort.SliceStable(rt.hand, func(i, j int) bool {
			return rt.hand[i].Rank > rt.hand[j].Rank
		})
	case "suit":
		suitOrder := map[score.Suit]int{
			score.SuitHearts: 0, score.SuitSpades: 1,
			score.SuitClubs: 2, score.SuitDiamonds: 3,
		}
		sort.SliceStable(rt.hand, func(i, j int) bool {
			if suitOrder[rt.hand[i].Suit] != suitOrder[rt.hand[j].Suit] {
				return suitOrder[rt.hand[i].Suit] < suitOrder[rt.hand[j].Suit]
			}
			return rt.hand[i].Rank > rt.hand[j].Rank
		})
	default:
		return fmt.Errorf("unsupported sort %q", by)
	}
	rt.broadcastStateLocked()
	return nil
}

// Play scores the selected cards and advances the run. The ledger is read
// before times-played is incremented, so the play never boosts itself.
func (rt *Runtime) Play() (*PlayResult, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.ensureActiveLocked(); err != nil {
		return nil, err
	}
	if len(rt.selected) == 0 {
		return nil, appErr.ErrNoCardsSelected
	}
	if rt.turnsLeft <= 0 {
		return nil, appErr.ErrNoTurnsRemaining
	}

	played := rt.selectedCardsLocked()
	classification := score.Classify(played)
	calc, err := score.CalculateScore(
		classification.Contributing,
		classification.HandType,
		rt.ledger,
		rt.rack.Jokers(),
		rt.cfg,
	)
	if err != nil {
		return nil, err
	}
	rt.ledger.IncrementTimesPlayed(classification.HandType)

	rt.turnsLeft--
	rt.handsPlayed++
	rt.levelScore += calc.FinalScore
	rt.totalScore += calc.FinalScore
	rt.lastCalc = &calc
	rt.removeSelectedLocked()
	rt.drawLocked(rt.cfg.HandSize - len(rt.hand))

	result := &PlayResult{
		Cards: played,
		Calc:  calc,
		Level: rt.level,
	}

	levelCfg, _ := rt.cfg.Level(rt.level)
	switch {
	case rt.levelScore >= levelCfg.RequiredScore:
		result.LevelComplete = true
		result.CoinsAwarded = rt.cfg.Coins.LevelCompletion + rt.turnsLeft*rt.cfg.Coins.UnusedTurnBonus
		rt.coins += result.CoinsAwarded
		if _, hasNext := rt.cfg.Level(rt.level + 1); hasNext {
			rt.status = StatusPowerup
			rt.offers = rt.offerFn(rt.rng, rt.equippedIDsLocked())
		} else {
			rt.status = StatusWon
			result.Won = true
		}
	case rt.turnsLeft == 0:
		rt.status = StatusLost
		result.Lost = true
	}

	rt.broadcastStateLocked()
	return result, nil
}

// Discard swaps the selected cards for fresh ones, consuming a discard.
func (rt *Runtime) Discard() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.ensureActiveLocked(); err != nil {
		return err
	}
	if len(rt.selected) == 0 {
		return appErr.ErrNoCardsSelected
	}
	if rt.discardsLeft <= 0 {
		return appErr.ErrNoDiscardsRemaining
	}

	rt.discardsLeft--
	rt.removeSelectedLocked()
	rt.drawLocked(rt.cfg.HandSize - len(rt.hand))
	rt.broadcastStateLocked()
	return nil
}

// ChoosePowerup equips one of the offered jokers and starts the next level.
// A full rack rejects the choice and keeps the offer open, so the player can
// still skip or unequip first.
func (rt *Runtime) ChoosePowerup(jokerID int) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.status != StatusPowerup {
		return appErr.ErrNoPowerupPending
	}
	var chosen *score.Joker
	for i := range rt.offers {
		if rt.offers[i].ID == jokerID {
			chosen = &rt.offers[i]
			break
		}
	}
	if chosen == nil {
		return appErr.ErrPowerupNotOffered
	}
	if err := rt.rack.Equip(*chosen); err != nil {
		return err
	}
	rt.advanceLevelLocked()
	return nil
}

// SkipPowerup declines the offers and starts the next level.
func (rt *Runtime) SkipPowerup() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.status != StatusPowerup {
		return appErr.ErrNoPowerupPending
	}
	rt.advanceLevelLocked()
	return nil
}

func (rt *Runtime) advanceLevelLocked() {
	rt.level++
	levelCfg, ok := rt.cfg.Level(rt.level)
	if !ok {
		rt.status = StatusWon
		rt.offers = nil
		rt.broadcastStateLocked()
		return
	}
	rt.status = StatusPlaying
	rt.levelScore = 0
	rt.turnsLeft = levelCfg.Turns
	rt.discardsLeft = levelCfg.Discards
	rt.offers = nil
	rt.lastCalc = nil
	rt.dealFreshLocked()
	rt.broadcastStateLocked()
}

// BuyJoker equips a catalog joker in exchange for coins. Equip runs before
// the coin deduction so a rejected purchase costs nothing.
func (rt *Runtime) BuyJoker(j score.Joker) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.ensureActiveLocked(); err != nil {
		return err
	}
	if rt.coins < j.Cost {
		return appErr.ErrInsufficientCoins
	}
	if err := rt.rack.Equip(j); err != nil {
		return err
	}
	rt.coins -= j.Cost
	rt.broadcastStateLocked()
	return nil
}

// RemoveJoker unequips without refund.
func (rt *Runtime) RemoveJoker(jokerID int) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if !rt.rack.Unequip(jokerID) {
		return appErr.ErrJokerNotFound
	}
	rt.broadcastStateLocked()
	return nil
}

// Abandon ends the run and closes every subscriber.
func (rt *Runtime) Abandon() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.status = StatusAbandoned
	rt.broadcastStateLocked()
	for connID, ch := range rt.subscribers {
		delete(rt.subscribers, connID)
		close(ch)
	}
}

func (rt *Runtime) State() GameState {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.exportStateLocked()
}

func (rt *Runtime) Coins() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.coins
}

func (rt *Runtime) equippedIDsLocked() []int {
	jokers := rt.rack.Jokers()
	ids := make([]int, 0, len(jokers))
	for _, j := range jokers {
		ids = append(ids, j.ID)
	}
	return ids
}

func (rt *Runtime) cardIndexLocked(cardID int) int {
	for i, c := range rt.hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// selectedCardsLocked returns the selected cards in selection order.
func (rt *Runtime) selectedCardsLocked() []score.Card {
	out := make([]score.Card, 0, len(rt.selected))
	for _, id := range rt.selected {
		if idx := rt.cardIndexLocked(id); idx >= 0 {
			out = append(out, rt.hand[idx])
		}
	}
	return out
}

// removeSelectedLocked moves the selected cards from hand to discard pile
// and clears the selection.
func (rt *Runtime) removeSelectedLocked() {
	selected := make(map[int]bool, len(rt.selected))
	for _, id := range rt.selected {
		selected[id] = true
	}
	kept := rt.hand[:0]
	for _, c := range rt.hand {
		if selected[c.ID] {
			rt.discardPile = append(rt.discardPile, c)
		} else {
			kept = append(kept, c)
		}
	}
	rt.hand = kept
	rt.selected = nil
}

func (rt *Runtime) exportStateLocked() GameState {
	requiredScore := 0
	if levelCfg, ok := rt.cfg.Level(rt.level); ok {
		requiredScore = levelCfg.RequiredScore
	}
	return GameState{
		RunID:         rt.id,
		ShareCode:     rt.shareCode,
		Seed:          rt.seed,
		Status:        rt.status,
		Level:         rt.level,
		RequiredScore: requiredScore,
		LevelScore:    rt.levelScore,
		TotalScore:    rt.totalScore,
		TurnsLeft:     rt.turnsLeft,
		DiscardsLeft:  rt.discardsLeft,
		Coins:         rt.coins,
		HandsPlayed:   rt.handsPlayed,
		DeckRemaining: len(rt.deck),
		Hand:          append([]score.Card(nil), rt.hand...),
		Selected:      append([]int(nil), rt.selected...),
		Jokers:        rt.rack.Jokers(),
		Offers:        append([]score.Joker(nil), rt.offers...),
		LastHand:      rt.lastCalc,
		HandLevels:    rt.ledger.Snapshot(),
	}
}

// Subscribe registers a websocket connection and pushes the current state.
func (rt *Runtime) Subscribe(connID string) chan OutgoingMessage {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	ch := make(chan OutgoingMessage, 8)
	rt.subscribers[connID] = ch
	rt.pushMessageLocked(connID, OutgoingMessage{
		Type: "state",
		Seq:  rt.nextSeqLocked(),
		Data: rt.exportStateLocked(),
	})
	return ch
}

func (rt *Runtime) Unsubscribe(connID string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if ch, ok := rt.subscribers[connID]; ok {
		delete(rt.subscribers, connID)
		close(ch)
	}
}

func (rt *Runtime) broadcastStateLocked() {
	if len(rt.subscribers) == 0 {
		return
	}
	msg := OutgoingMessage{
		Type: "state",
		Seq:  rt.nextSeqLocked(),
		Data: rt.exportStateLocked(),
	}
	for connID, ch := range rt.subscribers {
		select {
		case ch <- msg:
		default:
			logger.Log.Warn("ws subscriber channel full",
				zap.String("connID", connID),
				zap.String("runID", rt.id),
			)
		}
	}
}

func (rt *Runtime) pushMessageLocked(connID string, msg OutgoingMessage) {
	if ch, ok := rt.subscribers[connID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.Warn("ws subscriber channel full",
				zap.String("connID", connID),
				zap.String("runID", rt.id),
			)
		}
	}
}

func (rt *Runtime) nextSeqLocked() int64 {
	rt.seq++
	return rt.seq
}
