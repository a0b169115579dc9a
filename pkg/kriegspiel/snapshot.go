package kriegspiel

import "fmt"

// Snapshot is the persisted form of a GameState: the board text plus the
// per-turn bookkeeping the board text does not carry.
type Snapshot struct {
	Width      int                        `json:"width"`
	Height     int                        `json:"height"`
	Board      string                     `json:"board"`
	Roster     Roster                     `json:"roster"`
	Current    PlayerID                   `json:"current"`
	Phase      TurnPhase                  `json:"phase"`
	Turn       int                        `json:"turn"`
	Supplied   []CellID                   `json:"supplied"`
	Retreating []CellID                   `json:"retreating,omitempty"`
	Moves      map[PlayerID][]Move        `json:"moves,omitempty"`
	Attacks    map[PlayerID]*AttackRecord `json:"attacks,omitempty"`
	Retreats   map[PlayerID]Retreat       `json:"retreats,omitempty"`
}

// NewSnapshot captures gs.
func NewSnapshot(gs *GameState) *Snapshot {
	c := gs.Clone()
	s := &Snapshot{
		Width:    c.Size.Width,
		Height:   c.Size.Height,
		Board:    EncodeBoard(c),
		Roster:   c.Roster,
		Current:  c.Current,
		Phase:    c.Phase,
		Turn:     c.Turn,
		Moves:    c.Moves,
		Attacks:  c.Attacks,
		Retreats: c.Retreats,
	}
	for i, u := range c.Units {
		if u == nil {
			continue
		}
		if u.Supplied {
			s.Supplied = append(s.Supplied, CellID(i))
		}
		if u.Retreating {
			s.Retreating = append(s.Retreating, CellID(i))
		}
	}
	return s
}

// Restore rebuilds the game state. Supply sets are rebuilt from the stored
// unit flags, so the result matches the captured state exactly.
func (s *Snapshot) Restore() (*GameState, error) {
	size := Size{Width: s.Width, Height: s.Height}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid board size %dx%d", s.Width, s.Height)
	}

	gs := NewGameState(size, s.Roster.Clone())
	gs.Units, gs.Strongholds = DecodeBoard(s.Board, size)
	gs.Current = s.Current
	gs.Phase = s.Phase
	gs.Turn = s.Turn

	for _, u := range gs.Units {
		if u != nil {
			u.Supplied = false
		}
	}
	for _, c := range s.Supplied {
		if u := gs.UnitAt(c); u != nil {
			u.Supplied = true
		}
	}
	for _, c := range s.Retreating {
		if u := gs.UnitAt(c); u != nil {
			u.Retreating = true
		}
	}
	for _, p := range gs.Roster.Players {
		gs.Supply[p.ID] = CellSet{}
	}
	for c, u := range gs.Units {
		if u != nil && u.Supplied {
			if gs.Supply[u.Owner] == nil {
				gs.Supply[u.Owner] = CellSet{}
			}
			gs.Supply[u.Owner][CellID(c)] = true
		}
	}

	restored := (&GameState{Moves: s.Moves, Attacks: s.Attacks, Retreats: s.Retreats}).Clone()
	for p, m := range restored.Moves {
		gs.Moves[p] = m
	}
	for p, a := range restored.Attacks {
		gs.Attacks[p] = a
	}
	for p, r := range restored.Retreats {
		gs.Retreats[p] = r
	}
	return gs, nil
}
