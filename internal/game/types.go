package game

import "time"

type Mode string

const (
	ModeNormal Mode = "normal"
	// ModeChaos only changes the sky backdrop in the client. It has no
	// effect on settlement math or card odds.
	ModeChaos Mode = "chaos"
)

type ReturnMode string

const (
	// ReturnSimulated replays each asset's precomputed series, looping.
	ReturnSimulated ReturnMode = "simulated"
	// ReturnRandom draws fresh daily noise from each asset's range, so
	// replaying the same day gives different returns. That is the point:
	// it models market noise, not a reproducibility bug.
	ReturnRandom ReturnMode = "random"
)

type AssetAllocation struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	ShortName   string  `json:"short_name"`
	Type        string  `json:"type"`
	Allocation  float64 `json:"allocation"`
}

type CardKind string

const (
	CardMission CardKind = "mission"
	CardEvent   CardKind = "event"
)

type CardStatus string

const (
	StatusPending   CardStatus = "pending"
	StatusActive    CardStatus = "active"
	StatusCompleted CardStatus = "completed"
	StatusDeclined  CardStatus = "declined"
	StatusExpired   CardStatus = "expired"
)

// Card is an offered mission or event waiting for the player's answer.
type Card struct {
	InstanceID   string   `json:"instance_id"`
	Kind         CardKind `json:"kind"`
	RefID        string   `json:"ref_id"`
	OfferedAtDay int      `json:"offered_at_day"`
}

type MissionInstance struct {
	InstanceID     string     `json:"instance_id"`
	RefID          string     `json:"ref_id"`
	Status         CardStatus `json:"status"`
	AcceptedAtDay  int        `json:"accepted_at_day"`
	AcceptedAt     time.Time  `json:"accepted_at"`
	CompletedAtDay int        `json:"completed_at_day,omitempty"`
}

type EventInstance struct {
	InstanceID    string     `json:"instance_id"`
	RefID         string     `json:"ref_id"`
	Status        CardStatus `json:"status"`
	AcceptedAtDay int        `json:"accepted_at_day"`
	AcceptedAt    time.Time  `json:"accepted_at"`
}

// PlayerCard archives every card the player has answered, for the
// collection view. Append-only.
type PlayerCard struct {
	InstanceID    string     `json:"instance_id"`
	Kind          CardKind   `json:"kind"`
	RefID         string     `json:"ref_id"`
	Status        CardStatus `json:"status"`
	ObtainedAtDay int        `json:"obtained_at_day"`
	IsNew         bool       `json:"is_new"`
}

type PerformancePoint struct {
	Day             int                `json:"day"`
	PortfolioReturn float64            `json:"portfolio_return"`
	TotalCoins      int64              `json:"total_coins"`
	AssetReturns    map[string]float64 `json:"asset_returns"`
}

// GameState is the aggregate the engine reads and replaces wholesale.
// There is exactly one logical writer per session, so no field-level
// locking anywhere below the service.
type GameState struct {
	CurrentDay     int                `json:"current_day"`
	Stars          int                `json:"stars"`
	Level          int                `json:"level"`
	Mode           Mode               `json:"mode"`
	Coins          int64              `json:"coins"`
	Allocations    []AssetAllocation  `json:"allocations"`
	ActiveMissions []MissionInstance  `json:"active_missions"`
	ActiveEvents   []EventInstance    `json:"active_events"`
	PendingCards   []Card             `json:"pending_cards"`
	PlayerCards    []PlayerCard       `json:"player_cards"`
	History        []PerformancePoint `json:"history"`
}

type AssetSettlement struct {
	ID                   string  `json:"id"`
	BaseReturn           float64 `json:"base_return"`
	AdjustedReturn       float64 `json:"adjusted_return"`
	ContributionFraction float64 `json:"contribution_fraction"`
	CoinDelta            int64   `json:"coin_delta"`
}

// SettlementResult is the per-day report handed to the UI and the
// advisor. It is not persisted as its own entity; the capped history
// ring keeps a derived entry.
type SettlementResult struct {
	Day             int               `json:"day"`
	PortfolioReturn float64           `json:"portfolio_return"`
	CoinDelta       int64             `json:"coin_delta"`
	CoinsAfter      int64             `json:"coins_after"`
	PerAsset        []AssetSettlement `json:"per_asset"`
}

// CompletedMission reports a mission finished during an update pass.
type CompletedMission struct {
	RefID       string `json:"ref_id"`
	Title       string `json:"title"`
	RewardStars int    `json:"reward_stars"`
}

type LevelProgress struct {
	Level          int     `json:"level"`
	Title          string  `json:"title"`
	StarsIntoLevel int     `json:"stars_into_level"`
	StarsToNext    int     `json:"stars_to_next"`
	PercentToNext  float64 `json:"percent_to_next"`
}

type LevelChange struct {
	LeveledUp bool `json:"leveled_up"`
	OldLevel  int  `json:"old_level"`
	NewLevel  int  `json:"new_level"`
}

// Session wraps a GameState with its durable identity.
type Session struct {
	ID          string    `json:"id"`
	AutoAdvance bool      `json:"auto_advance"`
	State       GameState `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserAchievement struct {
	AchievementID string    `json:"achievement_id"`
	AchievedAt    time.Time `json:"achieved_at"`
	StarRating    int       `json:"star_rating"`
	TrophyGrade   string    `json:"trophy_grade"`
}

type AchievementSummary struct {
	TotalStars   int               `json:"total_stars"`
	Unlocked     []UserAchievement `json:"unlocked"`
	TrophyCounts map[string]int    `json:"trophy_counts"`
}

type AllocationInput struct {
	ID         string  `json:"id"`
	Allocation float64 `json:"allocation"`
}

// Trigger names the player action that may spawn new cards.
type Trigger string

const (
	TriggerApply   Trigger = "apply"
	TriggerNextDay Trigger = "next_day"
	TriggerInit    Trigger = "init"
)
