package kriegspiel

import (
	"errors"
	"slices"
)

// ErrIllegalAction is returned by every action that is not currently legal.
// The state is left untouched; callers learn the reason by asking CanPick,
// CanPut or CanAttack.
var ErrIllegalAction = errors.New("kriegspiel: illegal action")

// MoveRange lists the cells a unit of the given speed standing on from could
// move to: the (2*speed+1)-square centred on from, restricted to the board,
// to cells without a unit and to non-Mountain cells. Speed 0 yields at most
// from itself, which is always occupied by the mover.
func MoveRange(gs *GameState, from CellID, speed int) []CellID {
	p := gs.Size.Pos(from)
	var cells []CellID
	for dy := -speed; dy <= speed; dy++ {
		for dx := -speed; dx <= speed; dx++ {
			c := gs.Size.Cell(p.X+dx, p.Y+dy)
			if c == InvalidCell || gs.Units[c] != nil || gs.isStronghold(c, Mountain) {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}

// CanPick reports whether player may select the unit on cell for a move.
//
// A cell that was the destination of one of this turn's moves is rejected
// even when a different unit now stands there.
func CanPick(gs *GameState, player PlayerID, cell CellID) bool {
	moves := gs.Moves[player]
	if gs.Attacks[player] != nil || len(moves) >= MaxMoves {
		return false
	}
	if slices.ContainsFunc(moves, func(m Move) bool { return m.To == cell }) {
		return false
	}
	if r := gs.RetreatOf(player); r.Pending() {
		return cell == r.From
	}
	u := gs.UnitAt(cell)
	return u != nil && u.Owner == player && (u.Supplied || u.Kind() == KindRelay)
}

// CanPut reports whether the unit on from may be placed on to.
func CanPut(gs *GameState, from, to CellID) bool {
	u := gs.UnitAt(from)
	return u != nil && slices.Contains(MoveRange(gs, from, u.Speed()), to)
}

// MovePiece moves the current player's unit from one cell to another.
func MovePiece(gs *GameState, from, to CellID) error {
	player := gs.Current
	u := gs.UnitAt(from)
	if u == nil || !CanPick(gs, player, from) || !CanPut(gs, from, to) {
		return ErrIllegalAction
	}

	gs.Units[from] = nil
	u.Supplied = false
	gs.Units[to] = u
	gs.Moves[player] = append(gs.Moves[player], Move{From: from, To: to})
	if gs.RetreatOf(player).Pending() {
		gs.Retreats[player] = Retreat{From: InvalidCell, To: to}
	}

	update(gs)
	return nil
}

// Attack resolves the current player's attack on cell and returns its outcome.
func Attack(gs *GameState, cell CellID) (AttackOutcome, error) {
	player := gs.Current
	ok, rel := CanAttack(gs, player, cell)
	if !ok {
		return OutcomeNone, ErrIllegalAction
	}

	target := gs.Units[cell]
	before := *target
	gs.Attacks[player] = &AttackRecord{Target: cell, Unit: &before}

	outcome := OutcomeOf(rel)
	switch outcome {
	case OutcomeRetreat:
		target.Retreating = true
		gs.Retreats[target.Owner] = Retreat{From: cell, To: InvalidCell}
	case OutcomeCapture:
		gs.Units[cell] = nil
	}

	update(gs)
	return outcome, nil
}

// BeginTurn starts the current player's turn. It clears their move and attack
// records and settles a pending forced retreat: a retreating unit with no
// free neighbouring cell, or out of supply, is captured.
func BeginTurn(gs *GameState) {
	player := gs.Current
	gs.Phase = PhaseBegin
	gs.Moves[player] = nil
	gs.Attacks[player] = nil

	if r := gs.RetreatOf(player); r.Pending() {
		u := gs.UnitAt(r.From)
		if len(MoveRange(gs, r.From, 1)) == 0 || u == nil || !u.Supplied {
			gs.Units[r.From] = nil
			gs.Retreats[player] = NoRetreat
		}
	}

	update(gs)
	gs.Phase = PhaseActing
}

// Result names the winner and loser of a finished game.
type Result struct {
	Winner PlayerID
	Loser  PlayerID
}

// EndTurn closes the current player's turn, passes play to the next player in
// rotation and starts their turn. It reports the game result when the player
// now to move has lost.
func EndTurn(gs *GameState) (Result, bool) {
	player := gs.Current
	gs.Phase = PhaseEnd

	if r := gs.RetreatOf(player); r.Completed() {
		if u := gs.UnitAt(r.To); u != nil {
			u.Retreating = false
			gs.Retreats[player] = NoRetreat
		}
	}
	update(gs)

	gs.Current = gs.Roster.Next(player)
	gs.Turn++
	BeginTurn(gs)
	return Winner(gs)
}

// Winner evaluates the win condition for the player to move: when the board
// has any stronghold and that player owns no depot, they lose to the next
// player in rotation.
func Winner(gs *GameState) (Result, bool) {
	hasStronghold := slices.ContainsFunc(gs.Strongholds, func(s *Stronghold) bool { return s != nil })
	if !hasStronghold || gs.DepotCount(gs.Current) > 0 {
		return Result{}, false
	}
	return Result{Winner: gs.Roster.Next(gs.Current), Loser: gs.Current}, true
}

// update runs after every mutation: supply for all players, then the
// stronghold sweep. A depot whose owner faces a supplied, offensive unit of
// a player that is neither the owner nor the owner's ally is destroyed and
// recorded as the current player's attack. Every other non-Mountain
// stronghold belongs to its occupant when the occupant can receive its
// defense bonus, and to nobody otherwise.
func update(gs *GameState) {
	RefreshSupply(gs)
	for c, s := range gs.Strongholds {
		if s == nil || s.Type == Mountain {
			continue
		}
		u := gs.Units[c]
		if s.Type == Depot && s.Owner != NoPlayer {
			if u != nil && gs.Roster.Hostile(s.Owner, u.Owner) && u.Offense() > 0 && u.Supplied {
				gs.Attacks[gs.Current] = &AttackRecord{Target: CellID(c), Depot: true}
				gs.Strongholds[c] = nil
			}
			continue
		}
		if u != nil && u.CanAddDef() {
			s.Owner = u.Owner
		} else {
			s.Owner = NoPlayer
		}
	}
}
