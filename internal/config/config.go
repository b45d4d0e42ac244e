package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// GameConfig holds every static table the scoring engine and run flow read.
// Loaded once at startup, read-only afterwards.
type GameConfig struct {
	HandSize      int           `mapstructure:"handSize"`
	MaxJokers     int           `mapstructure:"maxJokers"`
	StartingCoins int           `mapstructure:"startingCoins"`
	Deck          DeckConfig    `mapstructure:"deck"`
	Bonuses       BonusConfig   `mapstructure:"bonuses"`
	Coins         CoinConfig    `mapstructure:"coins"`
	Hands         map[string]HandConfig `mapstructure:"hands"`
	Levels        []LevelConfig `mapstructure:"levels"`
	Jokers        []JokerConfig `mapstructure:"jokers"`
}

type DeckConfig struct {
	Copies      int    `mapstructure:"copies"`
	ExcludeRank string `mapstructure:"excludeRank"` // "", or a rank label like "10"
}

type BonusConfig struct {
	AceMultiplier  float64            `mapstructure:"aceMultiplier"`
	FaceMultiplier float64            `mapstructure:"faceMultiplier"`
	SuitChips      map[string]float64 `mapstructure:"suitChips"`
}

type CoinConfig struct {
	LevelCompletion int `mapstructure:"levelCompletion"`
	UnusedTurnBonus int `mapstructure:"unusedTurnBonus"`
}

type HandConfig struct {
	Name            string  `mapstructure:"name"`
	BaseChips       float64 `mapstructure:"baseChips"`
	BaseMultiplier  float64 `mapstructure:"baseMultiplier"`
	LevelMultiplier float64 `mapstructure:"levelMultiplier"`
}

type LevelConfig struct {
	Level         int `mapstructure:"level"`
	RequiredScore int `mapstructure:"requiredScore"`
	Turns         int `mapstructure:"turns"`
	Discards      int `mapstructure:"discards"`
}

type JokerConfig struct {
	ID       int     `mapstructure:"id"`
	Key      string  `mapstructure:"key"`
	Name     string  `mapstructure:"name"`
	Cost     int     `mapstructure:"cost"`
	Reward   string  `mapstructure:"reward"`  // chips, mult
	Value    float64 `mapstructure:"value"`
	Trigger  string  `mapstructure:"trigger"` // always, onScoreSuit, onHandType
	Suit     string  `mapstructure:"suit"`
	HandType string  `mapstructure:"handType"`
}

// Load reads the yaml file at path over the built-in defaults and validates
// the result. The config is returned rather than stored in a package global
// so callers own it explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level returns the configuration for one level, or false when the level
// table has no entry (the run treats that as completing the game).
func (g *GameConfig) Level(level int) (LevelConfig, bool) {
	for _, lc := range g.Levels {
		if lc.Level == level {
			return lc, true
		}
	}
	return LevelConfig{}, false
}

var requiredHandTypes = []string{
	"highCard", "pair", "twoPair", "threeOfAKind", "straight",
	"flush", "fullHouse", "fourOfAKind", "straightFlush",
}

var validSuits = map[string]bool{
	"hearts": true, "diamonds": true, "spades": true, "clubs": true,
}

// Validate checks the game tables are complete. An incomplete table is a
// startup failure, never a silently wrong score.
func (c *Config) Validate() error {
	g := &c.Game

	if g.HandSize < 1 {
		return fmt.Errorf("game.handSize must be >= 1")
	}
	if g.MaxJokers < 1 {
		return fmt.Errorf("game.maxJokers must be >= 1")
	}
	if g.Deck.Copies < 1 {
		return fmt.Errorf("game.deck.copies must be >= 1")
	}
	if g.Bonuses.AceMultiplier <= 0 || g.Bonuses.FaceMultiplier <= 0 {
		return fmt.Errorf("game.bonuses multiplier factors must be > 0")
	}
	for suit := range validSuits {
		if _, ok := g.Bonuses.SuitChips[suit]; !ok {
			return fmt.Errorf("game.bonuses.suitChips missing suit %q", suit)
		}
	}

	for _, ht := range requiredHandTypes {
		if _, ok := g.Hands[ht]; !ok {
			return fmt.Errorf("game.hands missing hand type %q", ht)
		}
	}
	for ht := range g.Hands {
		if !containsString(requiredHandTypes, ht) {
			return fmt.Errorf("game.hands has unknown hand type %q", ht)
		}
	}

	if len(g.Levels) == 0 {
		return fmt.Errorf("game.levels must not be empty")
	}
	seenLevels := make(map[int]bool, len(g.Levels))
	for _, lc := range g.Levels {
		if lc.Level < 1 || lc.RequiredScore < 1 || lc.Turns < 1 || lc.Discards < 0 {
			return fmt.Errorf("game.levels entry %d is invalid", lc.Level)
		}
		if seenLevels[lc.Level] {
			return fmt.Errorf("game.levels has duplicate level %d", lc.Level)
		}
		seenLevels[lc.Level] = true
	}
	if _, ok := g.Level(1); !ok {
		return fmt.Errorf("game.levels must define level 1")
	}

	seenJokers := make(map[int]bool, len(g.Jokers))
	for _, j := range g.Jokers {
		if j.ID < 1 || j.Name == "" || j.Cost < 0 || j.Value <= 0 {
			return fmt.Errorf("joker %q is invalid", j.Key)
		}
		if seenJokers[j.ID] {
			return fmt.Errorf("joker id %d is duplicated", j.ID)
		}
		seenJokers[j.ID] = true
		if j.Reward != "chips" && j.Reward != "mult" {
			return fmt.Errorf("joker %q has unknown reward %q", j.Key, j.Reward)
		}
		switch j.Trigger {
		case "always":
			if j.Suit != "" || j.HandType != "" {
				return fmt.Errorf("joker %q: always trigger takes no suit or hand type", j.Key)
			}
		case "onScoreSuit":
			if !validSuits[j.Suit] {
				return fmt.Errorf("joker %q: onScoreSuit requires a valid suit", j.Key)
			}
		case "onHandType":
			if !containsString(requiredHandTypes, j.HandType) {
				return fmt.Errorf("joker %q: onHandType requires a valid hand type", j.Key)
			}
		default:
			return fmt.Errorf("joker %q has unknown trigger %q", j.Key, j.Trigger)
		}
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
