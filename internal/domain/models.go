package domain

import "time"

// BattleStatus tracks the lifecycle of a 1v1 battle.
// Transitions are monotonic: waiting -> active -> complete.
type BattleStatus string

const (
	BattleWaiting  BattleStatus = "waiting"
	BattleActive   BattleStatus = "active"
	BattleComplete BattleStatus = "complete"
)

// Question is a single multiple-choice question drawn from the bank.
type Question struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"question"`
	Options    []string `json:"options"`
	Correct    string   `json:"correct"`
	XP         int      `json:"xp"`
	Difficulty int      `json:"difficulty"`
}

// BattleSession is a point-in-time view of a battle. The question set is
// snapshotted at creation; later bank changes never touch an in-flight battle.
type BattleSession struct {
	ID        string         `json:"id"`
	Creator   string         `json:"creator"`
	Opponent  string         `json:"opponent,omitempty"`
	Topic     string         `json:"topic"`
	Questions []Question     `json:"questions"`
	Scores    map[string]int `json:"scores"`
	Status    BattleStatus   `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

// BattleSummary is the listing view of a joinable battle.
type BattleSummary struct {
	ID        string    `json:"id"`
	Creator   string    `json:"creator"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
}

// BattleResult captures the frozen outcome of a completed battle.
type BattleResult struct {
	BattleID    string         `json:"battleId"`
	Topic       string         `json:"topic"`
	Winner      string         `json:"winner"`
	Scores      map[string]int `json:"scores"`
	CompletedAt time.Time      `json:"completedAt"`
}

// TopicSummary describes one category of the question bank.
type TopicSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
	Difficulty    int    `json:"difficulty"`
}

// LeaderboardEntry is a row of the accumulated battle-points leaderboard.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}
