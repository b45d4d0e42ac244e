package run

import (
	"context"
	"sync"

	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/model"
	"github.com/afriday11/phasefinity/internal/service/history"
	"github.com/afriday11/phasefinity/internal/service/score"
	"github.com/afriday11/phasefinity/internal/service/shop"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
	"github.com/afriday11/phasefinity/pkg/logger"
	"github.com/afriday11/phasefinity/pkg/utils/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages live run runtimes and mirrors their progress into the
// history tables. Runtimes live in memory only; a restart forgets them.
type Service struct {
	cfg      *config.GameConfig
	history  *history.Service
	shop     *shop.Service
	runtimes sync.Map // runID -> *Runtime
}

func NewService(cfg *config.GameConfig, historySvc *history.Service, shopSvc *shop.Service) *Service {
	return &Service{
		cfg:     cfg,
		history: historySvc,
		shop:    shopSvc,
	}
}

// CreateRun starts a new run. Seed 0 means pick one; the chosen seed is part
// of the returned state so a deck order can be replayed.
func (s *Service) CreateRun(ctx context.Context, seed int64) (GameState, error) {
	if seed == 0 {
		seed = random.Seed()
	}

	id := uuid.NewString()
	rt, err := newRuntime(id, random.Code(8), seed, s.cfg, s.shop.Offers)
	if err != nil {
		return GameState{}, err
	}
	s.runtimes.Store(id, rt)

	state := rt.State()
	if err := s.history.CreateRun(ctx, model.RunRecord{
		ID:        id,
		ShareCode: state.ShareCode,
		Seed:      seed,
		Level:     state.Level,
		Coins:     state.Coins,
		Status:    string(state.Status),
	}); err != nil {
		s.runtimes.Delete(id)
		return GameState{}, err
	}
	return state, nil
}

func (s *Service) runtime(runID string) (*Runtime, error) {
	if v, ok := s.runtimes.Load(runID); ok {
		return v.(*Runtime), nil
	}
	return nil, appErr.ErrRunNotFound
}

func (s *Service) State(runID string) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	return rt.State(), nil
}

func (s *Service) SelectCard(runID string, cardID int) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.ToggleSelect(cardID); err != nil {
		return GameState{}, err
	}
	return rt.State(), nil
}

func (s *Service) SortHand(runID, by string) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.SortHand(by); err != nil {
		return GameState{}, err
	}
	return rt.State(), nil
}

// PlayHand scores the selection and records the hand. Persistence failures
// are logged, not returned: the play already happened in memory.
func (s *Service) PlayHand(ctx context.Context, runID string) (GameState, *PlayResult, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, nil, err
	}
	result, err := rt.Play()
	if err != nil {
		return GameState{}, nil, err
	}

	if _, err := s.history.RecordHand(ctx, history.HandParams{
		RunID: runID,
		Level: result.Level,
		Cards: result.Cards,
		Calc:  result.Calc,
	}); err != nil {
		logger.Log.Warn("failed to record hand", zap.String("runID", runID), zap.Error(err))
	}
	s.syncRecord(ctx, runID, rt)
	return rt.State(), result, nil
}

func (s *Service) DiscardCards(ctx context.Context, runID string) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.Discard(); err != nil {
		return GameState{}, err
	}
	return rt.State(), nil
}

func (s *Service) ChoosePowerup(ctx context.Context, runID string, jokerID int) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.ChoosePowerup(jokerID); err != nil {
		return GameState{}, err
	}
	s.syncRecord(ctx, runID, rt)
	return rt.State(), nil
}

func (s *Service) SkipPowerup(ctx context.Context, runID string) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.SkipPowerup(); err != nil {
		return GameState{}, err
	}
	s.syncRecord(ctx, runID, rt)
	return rt.State(), nil
}

func (s *Service) BuyJoker(ctx context.Context, runID string, jokerID int) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	j, err := s.shop.Joker(jokerID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.BuyJoker(j); err != nil {
		return GameState{}, err
	}
	s.syncRecord(ctx, runID, rt)
	return rt.State(), nil
}

func (s *Service) RemoveJoker(runID string, jokerID int) (GameState, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return GameState{}, err
	}
	if err := rt.RemoveJoker(jokerID); err != nil {
		return GameState{}, err
	}
	return rt.State(), nil
}

// DeleteRun abandons a live run and drops its runtime.
func (s *Service) DeleteRun(ctx context.Context, runID string) error {
	rt, err := s.runtime(runID)
	if err != nil {
		return err
	}
	rt.Abandon()
	s.runtimes.Delete(runID)
	s.syncRecord(ctx, runID, rt)
	return nil
}

// AvailableJokers lists the shop catalog minus the run's equipped jokers.
func (s *Service) AvailableJokers(runID string) ([]score.Joker, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return nil, err
	}
	state := rt.State()
	ids := make([]int, 0, len(state.Jokers))
	for _, j := range state.Jokers {
		ids = append(ids, j.ID)
	}
	return s.shop.Available(ids), nil
}

// Subscribe attaches a websocket connection to a run's state feed.
func (s *Service) Subscribe(runID string) (string, chan OutgoingMessage, error) {
	rt, err := s.runtime(runID)
	if err != nil {
		return "", nil, err
	}
	connID := uuid.NewString()
	return connID, rt.Subscribe(connID), nil
}

func (s *Service) Unsubscribe(runID, connID string) {
	if rt, err := s.runtime(runID); err == nil {
		rt.Unsubscribe(connID)
	}
}

// syncRecord pushes the runtime's headline numbers into the run record.
func (s *Service) syncRecord(ctx context.Context, runID string, rt *Runtime) {
	state := rt.State()
	ended := state.Status == StatusWon || state.Status == StatusLost || state.Status == StatusAbandoned
	if err := s.history.UpdateRun(ctx, runID, history.RunUpdate{
		Level:       state.Level,
		Score:       state.TotalScore,
		Coins:       state.Coins,
		Status:      string(state.Status),
		HandsPlayed: state.HandsPlayed,
		Ended:       ended,
	}); err != nil {
		logger.Log.Warn("failed to sync run record",
			zap.String("runID", runID),
			zap.Error(err),
		)
	}
}
