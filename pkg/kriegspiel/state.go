package kriegspiel

import "slices"

// TurnPhase tracks where the current player is within a turn.
type TurnPhase string

const (
	PhaseBegin  TurnPhase = "begin"
	PhaseActing TurnPhase = "acting"
	PhaseEnd    TurnPhase = "end"
)

// MaxMoves is the number of move records a player may make per turn.
const MaxMoves = 5

// Move records one movement within the current turn.
type Move struct {
	From CellID
	To   CellID
}

// AttackRecord is the single attack a player may make per turn. Depot is set
// when the record was synthesized by a depot capture instead of an attack.
type AttackRecord struct {
	Target CellID
	Unit   *Unit // copy of the attacked unit before the outcome was applied
	Depot  bool
}

// Retreat is a player's forced-retreat pair. From is set while the retreat is
// pending; To is set once the retreating unit has moved.
type Retreat struct {
	From CellID
	To   CellID
}

// NoRetreat is the cleared pair.
var NoRetreat = Retreat{From: InvalidCell, To: InvalidCell}

// Pending reports whether a unit still has to retreat.
func (r Retreat) Pending() bool { return r.From != InvalidCell }

// Completed reports whether the retreat move has been made this turn.
func (r Retreat) Completed() bool { return r.To != InvalidCell }

// GameState is the complete mutable aggregate of one game. It is owned by a
// single caller at a time; nothing in this package keeps a reference to it.
type GameState struct {
	Size    Size
	Roster  Roster
	Current PlayerID
	Phase   TurnPhase
	Turn    int

	Units       []*Unit       // indexed by CellID
	Strongholds []*Stronghold // indexed by CellID

	Supply   map[PlayerID]CellSet
	Moves    map[PlayerID][]Move
	Attacks  map[PlayerID]*AttackRecord
	Retreats map[PlayerID]Retreat
}

// NewGameState returns an empty board for roster with the first player to
// move. Supply is not computed; LoadBoard is the usual entry point.
func NewGameState(size Size, roster Roster) *GameState {
	gs := &GameState{
		Size:        size,
		Roster:      roster,
		Current:     NoPlayer,
		Phase:       PhaseBegin,
		Units:       make([]*Unit, size.Cells()),
		Strongholds: make([]*Stronghold, size.Cells()),
		Supply:      make(map[PlayerID]CellSet, len(roster.Players)),
		Moves:       make(map[PlayerID][]Move, len(roster.Players)),
		Attacks:     make(map[PlayerID]*AttackRecord, len(roster.Players)),
		Retreats:    make(map[PlayerID]Retreat, len(roster.Players)),
	}
	for _, p := range roster.Players {
		gs.Supply[p.ID] = CellSet{}
		gs.Retreats[p.ID] = NoRetreat
	}
	if len(roster.Players) > 0 {
		gs.Current = roster.Players[0].ID
	}
	return gs
}

// UnitAt returns the unit on cell, or nil for an empty or off-board cell.
func (gs *GameState) UnitAt(cell CellID) *Unit {
	if !gs.Size.Contains(cell) {
		return nil
	}
	return gs.Units[cell]
}

// StrongholdAt returns the stronghold on cell, or nil.
func (gs *GameState) StrongholdAt(cell CellID) *Stronghold {
	if !gs.Size.Contains(cell) {
		return nil
	}
	return gs.Strongholds[cell]
}

// isStronghold reports whether cell holds a stronghold of type t.
func (gs *GameState) isStronghold(cell CellID, t StrongholdType) bool {
	s := gs.StrongholdAt(cell)
	return s != nil && s.Type == t
}

// RetreatOf returns p's forced-retreat pair, NoRetreat when none was recorded.
func (gs *GameState) RetreatOf(p PlayerID) Retreat {
	if r, ok := gs.Retreats[p]; ok {
		return r
	}
	return NoRetreat
}

// UnitCells returns the cells holding units owned by p, ascending.
func (gs *GameState) UnitCells(p PlayerID) []CellID {
	var cells []CellID
	for c, u := range gs.Units {
		if u != nil && u.Owner == p {
			cells = append(cells, CellID(c))
		}
	}
	return cells
}

// DepotCount returns the number of depots owned by p.
func (gs *GameState) DepotCount(p PlayerID) int {
	n := 0
	for _, s := range gs.Strongholds {
		if s != nil && s.Type == Depot && s.Owner == p {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Mutations to the clone do not affect gs, which
// lets callers evaluate an action speculatively.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Size:        gs.Size,
		Roster:      gs.Roster.Clone(),
		Current:     gs.Current,
		Phase:       gs.Phase,
		Turn:        gs.Turn,
		Units:       make([]*Unit, len(gs.Units)),
		Strongholds: make([]*Stronghold, len(gs.Strongholds)),
		Supply:      make(map[PlayerID]CellSet, len(gs.Supply)),
		Moves:       make(map[PlayerID][]Move, len(gs.Moves)),
		Attacks:     make(map[PlayerID]*AttackRecord, len(gs.Attacks)),
		Retreats:    make(map[PlayerID]Retreat, len(gs.Retreats)),
	}
	for i, u := range gs.Units {
		if u != nil {
			cp := *u
			c.Units[i] = &cp
		}
	}
	for i, s := range gs.Strongholds {
		if s != nil {
			cp := *s
			c.Strongholds[i] = &cp
		}
	}
	for p, set := range gs.Supply {
		cs := make(CellSet, len(set))
		for cell := range set {
			cs[cell] = true
		}
		c.Supply[p] = cs
	}
	for p, moves := range gs.Moves {
		c.Moves[p] = slices.Clone(moves)
	}
	for p, rec := range gs.Attacks {
		if rec == nil {
			c.Attacks[p] = nil
			continue
		}
		cp := *rec
		if rec.Unit != nil {
			u := *rec.Unit
			cp.Unit = &u
		}
		c.Attacks[p] = &cp
	}
	for p, r := range gs.Retreats {
		c.Retreats[p] = r
	}
	return c
}
