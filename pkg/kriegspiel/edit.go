package kriegspiel

// EditUnit places u on cell, or clears the cell when u is nil.
func EditUnit(gs *GameState, cell CellID, u *Unit) error {
	if !gs.Size.Contains(cell) {
		return ErrIllegalAction
	}
	gs.Units[cell] = u
	update(gs)
	return nil
}

// EditStronghold places s on cell, or clears the cell's stronghold when s is nil.
func EditStronghold(gs *GameState, cell CellID, s *Stronghold) error {
	if !gs.Size.Contains(cell) {
		return ErrIllegalAction
	}
	gs.Strongholds[cell] = s
	update(gs)
	return nil
}

// LoadBoard builds a fresh game from board text with the first roster player
// to move and their turn already begun.
func LoadBoard(text string, roster Roster, size Size) *GameState {
	gs := NewGameState(size, roster)
	gs.Units, gs.Strongholds = DecodeBoard(text, size)
	update(gs)
	BeginTurn(gs)
	return gs
}

// MergeBoard overlays the units of board text onto gs. Empty overlay cells
// leave the current unit in place, and strongholds are never touched.
func MergeBoard(gs *GameState, text string) {
	units, _ := DecodeBoard(text, gs.Size)
	for c, u := range units {
		if u != nil {
			gs.Units[c] = u
		}
	}
	update(gs)
}
