package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/afriday11/phasefinity/internal/model"
	"github.com/afriday11/phasefinity/internal/service/score"
	appErr "github.com/afriday11/phasefinity/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service persists run records and per-hand score logs.
type Service struct {
	db *gorm.DB
}

type ListResult struct {
	Items []model.RunRecord
	Total int64
}

// HandParams captures one scored hand for the log.
type HandParams struct {
	RunID string
	Level int
	Cards []score.Card
	Calc  score.ScoreCalculation
}

// RunUpdate carries the fields the run pushes back after each play.
type RunUpdate struct {
	Level       int
	Score       int
	Coins       int
	Status      string
	HandsPlayed int
	Ended       bool
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateRun(ctx context.Context, rec model.RunRecord) error {
	return s.db.WithContext(ctx).Create(&rec).Error
}

func (s *Service) GetRun(ctx context.Context, runID string) (*model.RunRecord, error) {
	var rec model.RunRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", runID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.ErrRunNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) UpdateRun(ctx context.Context, runID string, update RunUpdate) error {
	updates := map[string]interface{}{
		"level":        update.Level,
		"score":        update.Score,
		"coins":        update.Coins,
		"status":       update.Status,
		"hands_played": update.HandsPlayed,
	}
	if update.Ended {
		now := time.Now()
		updates["ended_at"] = &now
	}

	result := s.db.WithContext(ctx).
		Model(&model.RunRecord{}).
		Where("id = ?", runID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErr.ErrRunNotFound
	}
	return nil
}

// RecordHand appends one hand to the run's history.
func (s *Service) RecordHand(ctx context.Context, params HandParams) (*model.HandLog, error) {
	cardsJSON, err := json.Marshal(params.Cards)
	if err != nil {
		return nil, err
	}

	log := model.HandLog{
		RunID:      params.RunID,
		Level:      params.Level,
		HandType:   string(params.Calc.HandType),
		CardsJSON:  datatypes.JSON(cardsJSON),
		BaseChips:  params.Calc.BaseChips,
		Multiplier: params.Calc.CurrentMultiplier,
		FinalScore: params.Calc.FinalScore,
		Bonuses:    params.Calc.Bonuses,
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// RunHands lists a run's hands, oldest first.
func (s *Service) RunHands(ctx context.Context, runID string) ([]model.HandLog, error) {
	var logs []model.HandLog
	if err := s.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRuns pages over past runs, newest first.
func (s *Service) ListRuns(ctx context.Context, page, size int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	var total int64
	if err := s.db.WithContext(ctx).
		Model(&model.RunRecord{}).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.RunRecord
	if total > 0 {
		offset := (page - 1) * size
		if err := s.db.WithContext(ctx).
			Model(&model.RunRecord{}).
			Order("created_at DESC").
			Limit(size).
			Offset(offset).
			Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &ListResult{Items: items, Total: total}, nil
}
