package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/kriegspiel/internal/model"
)

// ActionRepo handles the append-only actions table.
type ActionRepo struct {
	db *sql.DB
}

// NewActionRepo creates an ActionRepo.
func NewActionRepo(db *sql.DB) *ActionRepo {
	return &ActionRepo{db: db}
}

const actionColumns = `id, game_id, seq, turn, player, kind, from_cell, to_cell, payload, state_after, created_at`

func scanAction(row rowScanner) (*model.Action, error) {
	var a model.Action
	var state []byte
	if err := row.Scan(&a.ID, &a.GameID, &a.Seq, &a.Turn, &a.Player, &a.Kind,
		&a.From, &a.To, &a.Payload, &state, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.StateAfter = state
	return &a, nil
}

// Append stores a with the next sequence number of its game.
func (r *ActionRepo) Append(ctx context.Context, a *model.Action) (*model.Action, error) {
	out, err := scanAction(r.db.QueryRowContext(ctx,
		`INSERT INTO actions (game_id, seq, turn, player, kind, from_cell, to_cell, payload, state_after)
		 VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM actions WHERE game_id = $1), $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+actionColumns,
		a.GameID, a.Turn, a.Player, a.Kind, a.From, a.To, a.Payload, a.StateAfter,
	))
	if err != nil {
		return nil, fmt.Errorf("append action: %w", err)
	}
	return out, nil
}

// ListByGame returns a game's actions in order.
func (r *ActionRepo) ListByGame(ctx context.Context, gameID string) ([]model.Action, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE game_id = $1 ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var actions []model.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, *a)
	}
	return actions, rows.Err()
}

// Latest returns the most recent action of a game, or nil when there is none.
func (r *ActionRepo) Latest(ctx context.Context, gameID string) (*model.Action, error) {
	a, err := scanAction(r.db.QueryRowContext(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE game_id = $1 ORDER BY seq DESC LIMIT 1`, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest action: %w", err)
	}
	return a, nil
}
