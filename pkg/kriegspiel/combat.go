package kriegspiel

import "slices"

const (
	// BattleRadius is how far FireRange looks for contributing units.
	BattleRadius = 3
	// ChargeReach is the furthest a charging cavalry may stand from its target.
	ChargeReach = 4
	// ChargeBonus is the flat offense added per charging cavalry.
	ChargeBonus = 3
)

// FireRange returns the distinct cells reachable from cell within r steps
// along the eight compass lines without crossing a Mountain. The cell itself
// is included unless it is a Mountain.
func FireRange(gs *GameState, cell CellID, r int) []CellID {
	rays := RayCast(gs, cell, func(_ *Unit, c CellID) bool {
		return !gs.isStronghold(c, Mountain)
	}, 0, r)

	seen := make(CellSet)
	var out []CellID
	for _, c := range rayCells(rays) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ChargedCavalries returns the rows of cavalry charging the unit on cell. A
// row is an unbroken line starting next to the target of cavalry that is
// supplied, not retreating and not inside a Fortress. When player is nil the
// cavalry must be hostile to the target's owner; otherwise it must belong to
// *player. Targets on a Fortress or Pass, and empty cells, cannot be charged.
func ChargedCavalries(gs *GameState, cell CellID, player *PlayerID) []Ray {
	target := gs.UnitAt(cell)
	if target == nil || gs.isStronghold(cell, Fortress) || gs.isStronghold(cell, Pass) {
		return nil
	}
	return RayCast(gs, cell, func(u *Unit, c CellID) bool {
		if u == nil || u.Kind() != KindCavalry || !u.Supplied || u.Retreating || gs.isStronghold(c, Fortress) {
			return false
		}
		if player != nil {
			return u.Owner == *player
		}
		return gs.Roster.Hostile(target.Owner, u.Owner)
	}, 1, ChargeReach)
}

// BattleFactor sums player's offense (offense=true) or defense at cell and
// returns the total with the contributing cells.
//
// A unit contributes when it is player's, supplied, within BattleRadius on a
// clear line and within its own range of cell; for offense it must also not be
// retreating and have offense. Offense against another player's unit adds
// player's charging cavalry (ChargeBonus each, plus their own offense).
// Defense adds the bonus of the stronghold under every contributing unit that
// can receive it.
func BattleFactor(gs *GameState, player PlayerID, offense bool, cell CellID) (int, []CellID) {
	at := gs.Size.Pos(cell)
	var contributing []CellID
	for _, c := range FireRange(gs, cell, BattleRadius) {
		u := gs.Units[c]
		if u == nil || u.Owner != player || !u.Supplied || Distance(at, gs.Size.Pos(c)) > u.Range() {
			continue
		}
		if offense && (u.Retreating || u.Offense() == 0) {
			continue
		}
		contributing = append(contributing, c)
	}

	bonus := 0
	if target := gs.UnitAt(cell); offense && target != nil && target.Owner != player {
		for _, row := range ChargedCavalries(gs, cell, &player) {
			for _, c := range row.Cells {
				bonus += ChargeBonus
				if !slices.Contains(contributing, c) {
					contributing = append(contributing, c)
				}
			}
		}
	} else if !offense {
		for _, c := range contributing {
			s := gs.Strongholds[c]
			if s != nil && s.DefenseAdd() > 0 && gs.Units[c].CanAddDef() {
				bonus += s.DefenseAdd()
			}
		}
	}

	total := bonus
	for _, c := range contributing {
		if offense {
			total += gs.Units[c].Offense()
		} else {
			total += gs.Units[c].Defense()
		}
	}
	return total, contributing
}

// AttackOutcome is the effect of a legal attack on the defending unit.
type AttackOutcome int

const (
	OutcomeNone    AttackOutcome = iota // attack is illegal
	OutcomeRetreat                      // defender survives and must retreat
	OutcomeCapture                      // defender is removed
)

func (o AttackOutcome) String() string {
	switch o {
	case OutcomeRetreat:
		return "retreat"
	case OutcomeCapture:
		return "capture"
	}
	return "none"
}

// OutcomeOf maps a relative offense to its outcome. A margin of exactly one
// forces a retreat; two or more captures.
func OutcomeOf(relativeOffense int) AttackOutcome {
	switch {
	case relativeOffense <= 0:
		return OutcomeNone
	case relativeOffense == 1:
		return OutcomeRetreat
	default:
		return OutcomeCapture
	}
}

// CanAttack reports whether player may attack the unit on cell, and the
// relative offense (player's offense minus the defender's defense). The
// attacker must have no pending retreat and no attack this turn, and the
// target must be hostile to player. The relative offense is 0 whenever those
// preconditions fail.
func CanAttack(gs *GameState, player PlayerID, cell CellID) (bool, int) {
	target := gs.UnitAt(cell)
	if gs.RetreatOf(player).Pending() || gs.Attacks[player] != nil || target == nil || !gs.Roster.Hostile(player, target.Owner) {
		return false, 0
	}
	off, _ := BattleFactor(gs, player, true, cell)
	def, _ := BattleFactor(gs, target.Owner, false, cell)
	rel := off - def
	return rel > 0, rel
}
