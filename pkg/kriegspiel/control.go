package kriegspiel

// ControlCell is one cell of the control map.
type ControlCell struct {
	Control PlayerID         // NoPlayer when nobody controls the cell
	RelDef  map[PlayerID]int // defense at the cell minus the next player's offense
}

// ControlAreaOf derives the control map of gs. An occupied cell is controlled
// by its occupant's owner; an empty cell by the single player with the highest
// positive relative defense, and by nobody on a tie. The result is computed
// from the current state on every call.
func ControlAreaOf(gs *GameState) []ControlCell {
	area := make([]ControlCell, gs.Size.Cells())
	for c := range area {
		cell := CellID(c)
		cc := ControlCell{Control: NoPlayer, RelDef: make(map[PlayerID]int, len(gs.Roster.Players))}

		best, tied := 0, false
		for _, p := range gs.Roster.Players {
			def, _ := BattleFactor(gs, p.ID, false, cell)
			off, _ := BattleFactor(gs, gs.Roster.Next(p.ID), true, cell)
			rel := def - off
			cc.RelDef[p.ID] = rel
			switch {
			case rel > best:
				best, tied = rel, false
				cc.Control = p.ID
			case rel == best && rel > 0:
				tied = true
			}
		}
		if tied {
			cc.Control = NoPlayer
		}
		if u := gs.Units[c]; u != nil {
			cc.Control = u.Owner
		}
		area[c] = cc
	}
	return area
}

// ControlledCells counts the cells each player controls.
func ControlledCells(area []ControlCell) map[PlayerID]int {
	counts := make(map[PlayerID]int)
	for _, cc := range area {
		if cc.Control != NoPlayer {
			counts[cc.Control]++
		}
	}
	return counts
}
