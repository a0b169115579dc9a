package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kriegspiel/internal/logger"
	"github.com/freeeve/kriegspiel/internal/model"
	"github.com/freeeve/kriegspiel/internal/repository"
	"github.com/freeeve/kriegspiel/pkg/kriegspiel"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameFinished    = errors.New("game is finished")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrNoHistory       = errors.New("game has no recorded state")
)

// CustomScenario names games created from arbitrary board text.
const CustomScenario = "custom"

// GameService applies actions to stored games. Actions on one game are
// serialized; the engine itself is not safe for concurrent use.
type GameService struct {
	games       repository.GameRepository
	actions     repository.ActionRepository
	cache       repository.BoardCache
	broadcaster Broadcaster
	size        kriegspiel.Size

	// gameLocks holds one mutex per game ID.
	gameLocks sync.Map
}

// NewGameService creates a GameService for boards of the given size.
func NewGameService(
	games repository.GameRepository,
	actions repository.ActionRepository,
	cache repository.BoardCache,
	broadcaster Broadcaster,
	size kriegspiel.Size,
) *GameService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &GameService{
		games:       games,
		actions:     actions,
		cache:       cache,
		broadcaster: broadcaster,
		size:        size,
	}
}

// gameLock returns the mutex for a given game ID.
func (s *GameService) gameLock(gameID string) *sync.Mutex {
	v, _ := s.gameLocks.LoadOrStore(gameID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// CreateGame starts a game from a built-in scenario.
func (s *GameService) CreateGame(ctx context.Context, name, scenario string) (*model.Game, error) {
	sc, ok := kriegspiel.ScenarioByName(scenario)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}
	return s.createGame(ctx, name, sc.Name, sc.Board)
}

// CreateGameFromBoard starts a game from board text.
func (s *GameService) CreateGameFromBoard(ctx context.Context, name, board string) (*model.Game, error) {
	return s.createGame(ctx, name, CustomScenario, board)
}

func (s *GameService) createGame(ctx context.Context, name, scenario, board string) (*model.Game, error) {
	gs := kriegspiel.LoadBoard(board, s.rosterFor(board), s.size)

	game, err := s.games.Create(ctx, name, scenario, int(gs.Current))
	if err != nil {
		return nil, err
	}

	mu := s.gameLock(game.ID)
	mu.Lock()
	defer mu.Unlock()

	ctx = logger.WithActionID(ctx, logger.NewActionID())
	if err := s.record(ctx, game.ID, gs.Current, gs, model.Action{
		Kind:    model.ActionLoad,
		From:    -1,
		To:      -1,
		Payload: board,
	}); err != nil {
		return nil, err
	}

	log.Info().Str("gameId", game.ID).Str("scenario", scenario).
		Int("players", len(gs.Roster.Players)).Msg("Game created")
	return game, nil
}

// rosterFor keeps the default players that own something on the board.
func (s *GameService) rosterFor(board string) kriegspiel.Roster {
	ids := kriegspiel.BoardPlayers(board, s.size)
	if len(ids) == 0 {
		return kriegspiel.DefaultRoster()
	}
	return kriegspiel.DefaultRoster().Subset(ids)
}

// GetGame returns a game record.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListGames returns games with the given status ("" for all).
func (s *GameService) ListGames(ctx context.Context, status string) ([]model.Game, error) {
	return s.games.List(ctx, status)
}

// History returns the recorded actions of a game in order.
func (s *GameService) History(ctx context.Context, gameID string) ([]model.Action, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.actions.ListByGame(ctx, gameID)
}

// State returns the current state of a game.
func (s *GameService) State(ctx context.Context, gameID string) (*kriegspiel.GameState, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.loadState(ctx, gameID)
}

// loadState reads the live snapshot, falling back to the latest recorded
// action when the cache has none.
func (s *GameService) loadState(ctx context.Context, gameID string) (*kriegspiel.GameState, error) {
	data, err := s.cache.GetSnapshot(ctx, gameID)
	if err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Snapshot cache read failed, using history")
		data = nil
	}
	if data == nil {
		latest, err := s.actions.Latest(ctx, gameID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, ErrNoHistory
		}
		data = latest.StateAfter
		if err := s.cache.SetSnapshot(ctx, gameID, data); err != nil {
			log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to restore snapshot cache")
		}
	}

	var snap kriegspiel.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap.Restore()
}

// Supplied returns the supplied cells of player, ascending.
func (s *GameService) Supplied(ctx context.Context, gameID string, player kriegspiel.PlayerID) ([]kriegspiel.CellID, error) {
	gs, err := s.State(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return gs.Supply[player].Sorted(), nil
}

// CanAttack reports whether player may attack cell, with the relative offense.
func (s *GameService) CanAttack(ctx context.Context, gameID string, player kriegspiel.PlayerID, cell kriegspiel.CellID) (bool, int, error) {
	gs, err := s.State(ctx, gameID)
	if err != nil {
		return false, 0, err
	}
	ok, rel := kriegspiel.CanAttack(gs, player, cell)
	return ok, rel, nil
}

// ControlledCells counts the cells each player controls.
func (s *GameService) ControlledCells(ctx context.Context, gameID string) (map[kriegspiel.PlayerID]int, error) {
	gs, err := s.State(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return kriegspiel.ControlledCells(kriegspiel.ControlAreaOf(gs)), nil
}

// Move moves the unit at from to to on behalf of player.
func (s *GameService) Move(ctx context.Context, gameID string, player kriegspiel.PlayerID, from, to kriegspiel.CellID) error {
	_, err := s.apply(ctx, gameID, &player, model.Action{Kind: model.ActionMove, From: int(from), To: int(to)},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			return nil, kriegspiel.MovePiece(gs, from, to)
		})
	return err
}

// Attack attacks cell on behalf of player.
func (s *GameService) Attack(ctx context.Context, gameID string, player kriegspiel.PlayerID, cell kriegspiel.CellID) (kriegspiel.AttackOutcome, error) {
	var outcome kriegspiel.AttackOutcome
	_, err := s.apply(ctx, gameID, &player, model.Action{Kind: model.ActionAttack, From: -1, To: int(cell)},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			var err error
			outcome, err = kriegspiel.Attack(gs, cell)
			return nil, err
		})
	return outcome, err
}

// EndTurn ends player's turn. It returns the result when the game is over.
func (s *GameService) EndTurn(ctx context.Context, gameID string, player kriegspiel.PlayerID) (*kriegspiel.Result, error) {
	return s.apply(ctx, gameID, &player, model.Action{Kind: model.ActionEndTurn, From: -1, To: -1},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			if r, over := kriegspiel.EndTurn(gs); over {
				return &r, nil
			}
			return nil, nil
		})
}

// EditUnit replaces the unit on cell; nil clears it.
func (s *GameService) EditUnit(ctx context.Context, gameID string, cell kriegspiel.CellID, u *kriegspiel.Unit) error {
	payload := ""
	if u != nil {
		payload = fmt.Sprintf("%s.%d", u.Type, u.Owner)
	}
	_, err := s.apply(ctx, gameID, nil, model.Action{Kind: model.ActionEditUnit, From: -1, To: int(cell), Payload: payload},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			return nil, kriegspiel.EditUnit(gs, cell, u)
		})
	return err
}

// EditStronghold replaces the stronghold on cell; nil clears it.
func (s *GameService) EditStronghold(ctx context.Context, gameID string, cell kriegspiel.CellID, st *kriegspiel.Stronghold) error {
	payload := ""
	if st != nil {
		payload = fmt.Sprintf("%s.%d", st.Type, st.Owner)
	}
	_, err := s.apply(ctx, gameID, nil, model.Action{Kind: model.ActionEditStronghold, From: -1, To: int(cell), Payload: payload},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			return nil, kriegspiel.EditStronghold(gs, cell, st)
		})
	return err
}

// LoadBoard replaces the whole board of a game. The roster is kept.
func (s *GameService) LoadBoard(ctx context.Context, gameID, board string) error {
	_, err := s.apply(ctx, gameID, nil, model.Action{Kind: model.ActionLoad, From: -1, To: -1, Payload: board},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			*gs = *kriegspiel.LoadBoard(board, gs.Roster, gs.Size)
			return nil, nil
		})
	return err
}

// MergeBoard overlays board text on a game.
func (s *GameService) MergeBoard(ctx context.Context, gameID, board string) error {
	_, err := s.apply(ctx, gameID, nil, model.Action{Kind: model.ActionMerge, From: -1, To: -1, Payload: board},
		func(gs *kriegspiel.GameState) (*kriegspiel.Result, error) {
			kriegspiel.MergeBoard(gs, board)
			return nil, nil
		})
	return err
}

// apply runs fn against the current state of a game under the game's lock
// and records the result. A nil player skips the turn check.
func (s *GameService) apply(
	ctx context.Context,
	gameID string,
	player *kriegspiel.PlayerID,
	act model.Action,
	fn func(gs *kriegspiel.GameState) (*kriegspiel.Result, error),
) (*kriegspiel.Result, error) {
	mu := s.gameLock(gameID)
	mu.Lock()
	defer mu.Unlock()

	ctx = logger.WithActionID(ctx, logger.NewActionID())
	l := logger.ForAction(ctx).With().Str("gameId", gameID).Str("action", act.Kind).Logger()

	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status == model.StatusFinished {
		return nil, ErrGameFinished
	}

	gs, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if player != nil && *player != gs.Current {
		l.Debug().Int("player", int(*player)).Int("current", int(gs.Current)).Msg("Action out of turn")
		return nil, ErrNotYourTurn
	}

	actor := gs.Current
	turn := gs.Turn
	result, err := fn(gs)
	if err != nil {
		l.Info().Int("player", int(actor)).Int("from", act.From).Int("to", act.To).Msg("Action rejected")
		return nil, fmt.Errorf("%s: %w", act.Kind, err)
	}

	act.Turn = turn
	if err := s.record(ctx, gameID, actor, gs, act); err != nil {
		return nil, err
	}
	if gs.Current != actor || gs.Turn != turn {
		if err := s.games.UpdateProgress(ctx, gameID, int(gs.Current), gs.Turn); err != nil {
			return nil, err
		}
	}
	l.Info().Int("player", int(actor)).Int("from", act.From).Int("to", act.To).
		Int("turn", gs.Turn).Msg("Action applied")

	if result != nil {
		if err := s.finish(ctx, gameID, *result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// record appends act with the snapshot of gs and refreshes the cache.
func (s *GameService) record(ctx context.Context, gameID string, actor kriegspiel.PlayerID, gs *kriegspiel.GameState, act model.Action) error {
	data, err := json.Marshal(kriegspiel.NewSnapshot(gs))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	act.GameID = gameID
	act.Player = int(actor)
	act.StateAfter = data

	saved, err := s.actions.Append(ctx, &act)
	if err != nil {
		return err
	}
	if err := s.cache.SetSnapshot(ctx, gameID, data); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to cache snapshot")
	}
	logger.LogBoard(logger.ForAction(ctx), "Board after action", kriegspiel.EncodeBoard(gs))

	s.broadcaster.BroadcastGameEvent(gameID, act.Kind, map[string]any{
		"seq":    saved.Seq,
		"player": act.Player,
		"from":   act.From,
		"to":     act.To,
		"turn":   gs.Turn,
	})
	return nil
}

func (s *GameService) finish(ctx context.Context, gameID string, r kriegspiel.Result) error {
	if err := s.games.SetFinished(ctx, gameID, int(r.Winner), int(r.Loser)); err != nil {
		return err
	}
	if err := s.cache.DeleteGame(ctx, gameID); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("Failed to delete cached game")
	}
	log.Info().Str("gameId", gameID).Int("winner", int(r.Winner)).Int("loser", int(r.Loser)).Msg("Game ended")
	s.broadcaster.BroadcastGameEvent(gameID, "game_ended", map[string]any{
		"winner": int(r.Winner),
		"loser":  int(r.Loser),
	})
	return nil
}
