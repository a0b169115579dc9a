package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/kriegspiel/internal/model"
)

// GameRepo handles games table operations.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

const gameColumns = `id, name, scenario, status, current_player, turn, winner, loser, created_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*model.Game, error) {
	var g model.Game
	var winner, loser sql.NullInt64
	if err := row.Scan(&g.ID, &g.Name, &g.Scenario, &g.Status, &g.CurrentPlayer, &g.Turn,
		&winner, &loser, &g.CreatedAt, &g.FinishedAt); err != nil {
		return nil, err
	}
	if winner.Valid {
		w := int(winner.Int64)
		g.Winner = &w
	}
	if loser.Valid {
		l := int(loser.Int64)
		g.Loser = &l
	}
	return &g, nil
}

// Create inserts a new active game.
func (r *GameRepo) Create(ctx context.Context, name, scenario string, currentPlayer int) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`INSERT INTO games (name, scenario, current_player)
		 VALUES ($1, $2, $3)
		 RETURNING `+gameColumns,
		name, scenario, currentPlayer,
	))
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// FindByID returns a game by ID, or nil when it does not exist.
func (r *GameRepo) FindByID(ctx context.Context, id string) (*model.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	return g, nil
}

// List returns games with the given status, or all games when status is
// empty, most recent first.
func (r *GameRepo) List(ctx context.Context, status string) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games
		 WHERE $1 = '' OR status = $1
		 ORDER BY created_at DESC LIMIT 100`, status)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// UpdateProgress records whose turn it is.
func (r *GameRepo) UpdateProgress(ctx context.Context, id string, currentPlayer, turn int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET current_player = $1, turn = $2 WHERE id = $3`,
		currentPlayer, turn, id,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// SetFinished marks a game as finished.
func (r *GameRepo) SetFinished(ctx context.Context, id string, winner, loser int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE games SET status = 'finished', winner = $1, loser = $2, finished_at = now() WHERE id = $3`,
		winner, loser, id,
	)
	if err != nil {
		return fmt.Errorf("set finished: %w", err)
	}
	return nil
}
