package repository

import (
	"context"
	"encoding/json"

	"github.com/freeeve/kriegspiel/internal/model"
)

// GameRepository defines game data operations.
type GameRepository interface {
	Create(ctx context.Context, name, scenario string, currentPlayer int) (*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	List(ctx context.Context, status string) ([]model.Game, error)
	UpdateProgress(ctx context.Context, id string, currentPlayer, turn int) error
	SetFinished(ctx context.Context, id string, winner, loser int) error
}

// ActionRepository defines the append-only action history.
type ActionRepository interface {
	Append(ctx context.Context, a *model.Action) (*model.Action, error)
	ListByGame(ctx context.Context, gameID string) ([]model.Action, error)
	Latest(ctx context.Context, gameID string) (*model.Action, error)
}

// BoardCache defines live game snapshot operations (Redis).
type BoardCache interface {
	SetSnapshot(ctx context.Context, gameID string, snapshot json.RawMessage) error
	GetSnapshot(ctx context.Context, gameID string) (json.RawMessage, error)
	DeleteGame(ctx context.Context, gameID string) error
}
