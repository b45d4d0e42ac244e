package config

// Default returns the built-in configuration. A config file overrides it
// section by section; the shipped config.yaml mirrors these values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			// In-memory by default: history dies with the process.
			DSN: "file::memory:?cache=shared",
		},
		Game: defaultGame(),
	}
}

func defaultGame() GameConfig {
	return GameConfig{
		HandSize:      8,
		MaxJokers:     5,
		StartingCoins: 5,
		Deck: DeckConfig{
			Copies:      1,
			ExcludeRank: "",
		},
		Bonuses: BonusConfig{
			AceMultiplier:  1.5,
			FaceMultiplier: 1.25,
			SuitChips: map[string]float64{
				"hearts":   15,
				"spades":   10,
				"diamonds": 10,
				"clubs":    5,
			},
		},
		Coins: CoinConfig{
			LevelCompletion: 5,
			UnusedTurnBonus: 1,
		},
		Hands: map[string]HandConfig{
			"highCard":      {Name: "High Card", BaseChips: 5, BaseMultiplier: 1, LevelMultiplier: 0},
			"pair":          {Name: "Pair", BaseChips: 10, BaseMultiplier: 2, LevelMultiplier: 1},
			"twoPair":       {Name: "Two Pair", BaseChips: 20, BaseMultiplier: 3, LevelMultiplier: 1},
			"threeOfAKind":  {Name: "Three of a Kind", BaseChips: 30, BaseMultiplier: 4, LevelMultiplier: 2},
			"straight":      {Name: "Straight", BaseChips: 40, BaseMultiplier: 5, LevelMultiplier: 2},
			"flush":         {Name: "Flush", BaseChips: 50, BaseMultiplier: 6, LevelMultiplier: 3},
			"fullHouse":     {Name: "Full House", BaseChips: 40, BaseMultiplier: 4, LevelMultiplier: 2},
			"fourOfAKind":   {Name: "Four of a Kind", BaseChips: 60, BaseMultiplier: 7, LevelMultiplier: 3},
			"straightFlush": {Name: "Straight Flush", BaseChips: 100, BaseMultiplier: 8, LevelMultiplier: 4},
		},
		Levels: []LevelConfig{
			{Level: 1, RequiredScore: 100, Turns: 4, Discards: 3},
			{Level: 2, RequiredScore: 200, Turns: 4, Discards: 3},
			{Level: 3, RequiredScore: 350, Turns: 4, Discards: 3},
			{Level: 4, RequiredScore: 500, Turns: 5, Discards: 3},
			{Level: 5, RequiredScore: 750, Turns: 5, Discards: 4},
			{Level: 6, RequiredScore: 1000, Turns: 5, Discards: 4},
			{Level: 7, RequiredScore: 1500, Turns: 6, Discards: 4},
			{Level: 8, RequiredScore: 2000, Turns: 6, Discards: 5},
		},
		Jokers: []JokerConfig{
			{ID: 1, Key: "steady_joker", Name: "Steady Joker", Cost: 4, Reward: "mult", Value: 2, Trigger: "always"},
			{ID: 2, Key: "chip_hoarder", Name: "Chip Hoarder", Cost: 3, Reward: "chips", Value: 25, Trigger: "always"},
			{ID: 3, Key: "heart_collector", Name: "Heart Collector", Cost: 5, Reward: "mult", Value: 1, Trigger: "onScoreSuit", Suit: "hearts"},
			{ID: 4, Key: "diamond_miner", Name: "Diamond Miner", Cost: 5, Reward: "chips", Value: 12, Trigger: "onScoreSuit", Suit: "diamonds"},
			{ID: 5, Key: "spade_spike", Name: "Spade Spike", Cost: 5, Reward: "mult", Value: 1, Trigger: "onScoreSuit", Suit: "spades"},
			{ID: 6, Key: "club_cruncher", Name: "Club Cruncher", Cost: 5, Reward: "chips", Value: 12, Trigger: "onScoreSuit", Suit: "clubs"},
			{ID: 7, Key: "pair_pal", Name: "Pair Pal", Cost: 4, Reward: "chips", Value: 50, Trigger: "onHandType", HandType: "pair"},
			{ID: 8, Key: "double_trouble", Name: "Double Trouble", Cost: 5, Reward: "chips", Value: 80, Trigger: "onHandType", HandType: "twoPair"},
			{ID: 9, Key: "trip_wire", Name: "Trip Wire", Cost: 6, Reward: "mult", Value: 8, Trigger: "onHandType", HandType: "threeOfAKind"},
			{ID: 10, Key: "flush_fund", Name: "Flush Fund", Cost: 6, Reward: "chips", Value: 100, Trigger: "onHandType", HandType: "flush"},
			{ID: 11, Key: "straight_shooter", Name: "Straight Shooter", Cost: 6, Reward: "mult", Value: 10, Trigger: "onHandType", HandType: "straight"},
			{ID: 12, Key: "full_boat", Name: "Full Boat", Cost: 7, Reward: "mult", Value: 12, Trigger: "onHandType", HandType: "fullHouse"},
		},
	}
}
