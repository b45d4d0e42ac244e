package model

import (
	"time"

	"gorm.io/datatypes"
)

// RunRecord is the durable row behind one run. The live runtime state stays
// in memory; this row carries only what the history screens list.
type RunRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	ShareCode   string `gorm:"size:12;index"`
	Seed        int64
	Level       int
	Score       int
	Coins       int
	Status      string `gorm:"default:active;not null"` // active/won/lost/abandoned
	HandsPlayed int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EndedAt     *time.Time
}

// HandLog records one scored hand for the run's hand history.
type HandLog struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	RunID      string `gorm:"size:36;index"`
	Level      int
	HandType   string
	CardsJSON  datatypes.JSON `gorm:"type:jsonb"`
	BaseChips  float64
	Multiplier float64
	FinalScore int
	Bonuses    string `gorm:"size:1024"`
	CreatedAt  time.Time
}
