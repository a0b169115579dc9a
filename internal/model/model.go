package model

import (
	"encoding/json"
	"time"
)

// Game statuses.
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Action kinds recorded in a game's history.
const (
	ActionLoad           = "load"
	ActionMerge          = "merge"
	ActionMove           = "move"
	ActionAttack         = "attack"
	ActionEndTurn        = "end_turn"
	ActionEditUnit       = "edit_unit"
	ActionEditStronghold = "edit_stronghold"
)

// Game represents one Kriegspiel game.
type Game struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Scenario      string     `json:"scenario"`
	Status        string     `json:"status"` // active, finished
	CurrentPlayer int        `json:"current_player"`
	Turn          int        `json:"turn"`
	Winner        *int       `json:"winner,omitempty"`
	Loser         *int       `json:"loser,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// Action is one applied action with the game snapshot it produced.
type Action struct {
	ID         string          `json:"id"`
	GameID     string          `json:"game_id"`
	Seq        int             `json:"seq"`
	Turn       int             `json:"turn"`
	Player     int             `json:"player"`
	Kind       string          `json:"kind"`
	From       int             `json:"from"` // -1 when unused
	To         int             `json:"to"`   // -1 when unused
	Payload    string          `json:"payload,omitempty"`
	StateAfter json.RawMessage `json:"state_after"`
	CreatedAt  time.Time       `json:"created_at"`
}
