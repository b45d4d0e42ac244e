package errors

import "errors"

// Run lifecycle
var (
	ErrRunNotFound         = errors.New("run not found")
	ErrGameOver            = errors.New("run is over")
	ErrNoTurnsRemaining    = errors.New("no turns remaining")
	ErrNoDiscardsRemaining = errors.New("no discards remaining")
	ErrNoCardsSelected     = errors.New("no cards selected")
	ErrCardNotInHand       = errors.New("card is not in hand")
	ErrNoPowerupPending    = errors.New("no powerup selection pending")
	ErrPowerupPending      = errors.New("powerup selection pending")
	ErrPowerupNotOffered   = errors.New("powerup was not offered")
	ErrSelectionLimit      = errors.New("selection limit reached")
)

// Jokers & economy
var (
	ErrJokerCapacity        = errors.New("joker capacity exceeded")
	ErrJokerNotFound        = errors.New("joker not found")
	ErrJokerAlreadyEquipped = errors.New("joker already equipped")
	ErrInsufficientCoins    = errors.New("insufficient coins")
)

// Configuration. These indicate an incomplete game table and are fatal at
// startup; they should never surface on a validated config.
var (
	ErrHandConfigMissing  = errors.New("hand configuration missing")
	ErrLevelConfigMissing = errors.New("level configuration missing")
)
