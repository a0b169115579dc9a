package kriegspiel

// RelayHops bounds how many times supply may be relayed onward.
const RelayHops = 4

// DirectSupplyFrom traces the supply rays leaving source on behalf of player.
// A ray stops before a Mountain or before a unit that is hostile to player,
// supplied, and has offense.
func DirectSupplyFrom(gs *GameState, source CellID, player PlayerID) []Ray {
	return RayCast(gs, source, func(u *Unit, cell CellID) bool {
		if gs.isStronghold(cell, Mountain) {
			return false
		}
		return u == nil || !(gs.Roster.Hostile(player, u.Owner) && u.Offense() > 0 && u.Supplied)
	}, 1, Unbounded)
}

// DirectSupplyLines returns every cell player receives direct supply on,
// together with the ray groups that produced it, one group per source. Sources
// are depots owned by player or an ally and, for up to RelayHops rounds, the
// friendly relays standing on an already supplied cell.
func DirectSupplyLines(gs *GameState, player PlayerID) (CellSet, [][]Ray) {
	var groups [][]Ray
	var relays []CellID
	for c := range gs.Size.Cells() {
		cell := CellID(c)
		if s := gs.Strongholds[c]; s != nil && s.Type == Depot && s.Owner != NoPlayer && gs.Roster.Friendly(player, s.Owner) {
			groups = append(groups, DirectSupplyFrom(gs, cell, player))
		}
		if u := gs.Units[c]; u != nil && u.Kind() == KindRelay && gs.Roster.Friendly(player, u.Owner) {
			relays = append(relays, cell)
		}
	}

	supplied := CellSet{}
	for _, g := range groups {
		supplied.addAll(rayCells(g))
	}

	emitted := make(map[CellID]bool, len(relays))
	for range RelayHops {
		var round [][]Ray
		for _, r := range relays {
			if supplied[r] && !emitted[r] {
				emitted[r] = true
				round = append(round, DirectSupplyFrom(gs, r, player))
			}
		}
		if len(round) == 0 {
			break
		}
		groups = append(groups, round...)
		for _, g := range round {
			supplied.addAll(rayCells(g))
		}
	}
	return supplied, groups
}

// SuppliedCells returns the cells of player's units that are in supply:
// those on a directly supplied cell, plus every unit connected to one of them
// through a chain of player's own units at distance 1.
func SuppliedCells(gs *GameState, player PlayerID) CellSet {
	direct, _ := DirectSupplyLines(gs, player)

	supplied := CellSet{}
	var queue []CellID
	for _, c := range gs.UnitCells(player) {
		if direct[c] {
			supplied[c] = true
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		p := gs.Size.Pos(c)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := gs.Size.Cell(p.X+dx, p.Y+dy)
				if n == InvalidCell || supplied[n] {
					continue
				}
				if u := gs.Units[n]; u != nil && u.Owner == player {
					supplied[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return supplied
}

// maxSupplyPasses bounds RefreshSupply on boards whose blocking units keep
// cutting each other's supply on alternate passes.
const maxSupplyPasses = 8

// RefreshSupply recomputes every roster player's supplied set and the
// Supplied flag of every unit, repeating until no flag changes. Each pass
// computes all sets against the flags left by the previous pass, so a unit
// that just regained supply blocks hostile rays on the next pass.
func RefreshSupply(gs *GameState) {
	for range maxSupplyPasses {
		if !refreshSupplyPass(gs) {
			return
		}
	}
}

// refreshSupplyPass reports whether any Supplied flag changed.
func refreshSupplyPass(gs *GameState) bool {
	next := make(map[PlayerID]CellSet, len(gs.Roster.Players))
	for _, p := range gs.Roster.Players {
		next[p.ID] = SuppliedCells(gs, p.ID)
	}
	gs.Supply = next
	changed := false
	for c, u := range gs.Units {
		if u == nil {
			continue
		}
		supplied := next[u.Owner][CellID(c)]
		if u.Supplied != supplied {
			u.Supplied = supplied
			changed = true
		}
	}
	return changed
}
