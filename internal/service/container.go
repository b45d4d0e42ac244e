package service

import (
	"github.com/afriday11/phasefinity/internal/config"
	"github.com/afriday11/phasefinity/internal/service/history"
	"github.com/afriday11/phasefinity/internal/service/run"
	"github.com/afriday11/phasefinity/internal/service/shop"

	"gorm.io/gorm"
)

type Container struct {
	Run     *run.Service
	Shop    *shop.Service
	History *history.Service
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	historySvc := history.NewService(db)
	shopSvc := shop.NewService(cfg.Game.Jokers)
	return &Container{
		History: historySvc,
		Shop:    shopSvc,
		Run:     run.NewService(&cfg.Game, historySvc, shopSvc),
	}
}
