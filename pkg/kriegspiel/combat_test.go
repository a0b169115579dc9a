package kriegspiel

import (
	"slices"
	"testing"
)

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		rel  int
		want AttackOutcome
	}{
		{-3, OutcomeNone},
		{0, OutcomeNone},
		{1, OutcomeRetreat},
		{2, OutcomeCapture},
		{9, OutcomeCapture},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.rel); got != tt.want {
			t.Errorf("OutcomeOf(%d): got %v, want %v", tt.rel, got, tt.want)
		}
	}
}

// duelState puts a player 1 artillery (defense 8) at (5,5) and the given
// player 0 attackers to its west.
func duelState(attackers map[int]UnitType) (*GameState, CellID) {
	gs := newTestState(10, 10)
	target := putUnit(gs, 5, 5, Artillery, 1)
	for x, ut := range attackers {
		putUnit(gs, x, 5, ut, 0)
	}
	return gs, target
}

func TestCanAttack_RelativeOffense(t *testing.T) {
	tests := []struct {
		name      string
		attackers map[int]UnitType
		wantOK    bool
		wantRel   int
	}{
		{"equal", map[int]UnitType{4: Infantry, 3: Infantry}, false, 0},
		{"one point", map[int]UnitType{4: Infantry, 2: Artillery}, true, 1},
		{"two points", map[int]UnitType{4: Artillery, 2: Artillery}, true, 2},
		{"out of range", map[int]UnitType{2: Infantry}, false, -8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs, target := duelState(tt.attackers)
			ok, rel := CanAttack(gs, 0, target)
			if ok != tt.wantOK || rel != tt.wantRel {
				t.Errorf("CanAttack: got (%v, %d), want (%v, %d)", ok, rel, tt.wantOK, tt.wantRel)
			}
		})
	}
}

func TestCanAttack_Preconditions(t *testing.T) {
	gs, target := duelState(map[int]UnitType{4: Artillery, 2: Artillery})

	if ok, rel := CanAttack(gs, 1, target); ok || rel != 0 {
		t.Errorf("own unit: got (%v, %d), want (false, 0)", ok, rel)
	}
	if ok, _ := CanAttack(gs, 0, gs.Size.Cell(7, 7)); ok {
		t.Error("empty cell should not be attackable")
	}

	gs.Roster.Alliances[0] = []PlayerID{1}
	if ok, _ := CanAttack(gs, 0, target); ok {
		t.Error("allied unit should not be attackable")
	}
	gs.Roster.Alliances[0] = nil

	gs.Attacks[0] = &AttackRecord{Target: target}
	if ok, _ := CanAttack(gs, 0, target); ok {
		t.Error("second attack in a turn should be rejected")
	}
	gs.Attacks[0] = nil

	gs.Retreats[0] = Retreat{From: 0, To: InvalidCell}
	if ok, rel := CanAttack(gs, 0, target); ok || rel != 0 {
		t.Errorf("pending retreat: got (%v, %d), want (false, 0)", ok, rel)
	}
}

func TestBattleFactor_MountainBlocksFire(t *testing.T) {
	gs, target := duelState(map[int]UnitType{4: Infantry, 2: Artillery})
	putStronghold(gs, 3, 5, Mountain, NoPlayer)

	off, cells := BattleFactor(gs, 0, true, target)
	if off != 4 {
		t.Errorf("offense: got %d, want 4", off)
	}
	if len(cells) != 1 || cells[0] != gs.Size.Cell(4, 5) {
		t.Errorf("contributing: got %v", cells)
	}
}

func TestBattleFactor_ExcludesUnsuppliedAndRetreating(t *testing.T) {
	gs, target := duelState(map[int]UnitType{4: Infantry, 3: Infantry})
	gs.Units[gs.Size.Cell(4, 5)].Supplied = false
	gs.Units[gs.Size.Cell(3, 5)].Retreating = true

	if off, _ := BattleFactor(gs, 0, true, target); off != 0 {
		t.Errorf("offense: got %d, want 0", off)
	}
	// Retreating units still defend.
	if def, _ := BattleFactor(gs, 0, false, gs.Size.Cell(3, 5)); def != 6 {
		t.Errorf("defense: got %d, want 6", def)
	}
}

func TestBattleFactor_StrongholdDefense(t *testing.T) {
	gs := newTestState(10, 10)
	inf := putUnit(gs, 5, 5, Infantry, 1)
	putStronghold(gs, 5, 5, Fortress, 1)
	cav := putUnit(gs, 2, 2, Cavalry, 1)
	putStronghold(gs, 2, 2, Pass, 1)

	if def, _ := BattleFactor(gs, 1, false, inf); def != 10 {
		t.Errorf("infantry in fortress: got %d, want 10", def)
	}
	if def, _ := BattleFactor(gs, 1, false, cav); def != 5 {
		t.Errorf("cavalry on pass: got %d, want 5", def)
	}
}

func TestBattleFactor_CavalryCharge(t *testing.T) {
	gs := newTestState(10, 10)
	target := putUnit(gs, 5, 5, Infantry, 1)
	putUnit(gs, 6, 5, Cavalry, 0)
	putUnit(gs, 7, 5, CavalryWolf, 0)

	rows := ChargedCavalries(gs, target, nil)
	if len(rows) != 1 || len(rows[0].Cells) != 2 {
		t.Fatalf("charge rows: got %+v", rows)
	}

	off, cells := BattleFactor(gs, 0, true, target)
	if off != 14 {
		t.Errorf("offense: got %d, want 14", off)
	}
	if len(cells) != 2 {
		t.Errorf("contributing: got %v, want 2 cells", cells)
	}
	if ok, rel := CanAttack(gs, 0, target); !ok || rel != 8 {
		t.Errorf("CanAttack: got (%v, %d), want (true, 8)", ok, rel)
	}
}

func TestChargedCavalries_Blocked(t *testing.T) {
	gs := newTestState(10, 10)
	target := putUnit(gs, 5, 5, Infantry, 1)
	putUnit(gs, 6, 5, Infantry, 0)
	putUnit(gs, 7, 5, Cavalry, 0)
	putUnit(gs, 5, 6, Cavalry, 0)

	rows := ChargedCavalries(gs, target, nil)
	if len(rows) != 1 || rows[0].Dir != (Position{0, 1}) {
		t.Errorf("rows: got %+v, want only the southern row", rows)
	}

	putStronghold(gs, 5, 5, Fortress, 1)
	if rows := ChargedCavalries(gs, target, nil); rows != nil {
		t.Errorf("target in fortress: got %+v, want none", rows)
	}
}

func TestChargedCavalries_PlayerFilter(t *testing.T) {
	gs := NewGameState(Size{Width: 10, Height: 10}, NewRoster(3))
	target := putUnit(gs, 5, 5, Infantry, 1)
	putUnit(gs, 6, 5, Cavalry, 0)
	putUnit(gs, 4, 5, Cavalry, 2)

	if rows := ChargedCavalries(gs, target, nil); len(rows) != 2 {
		t.Errorf("any hostile: got %d rows, want 2", len(rows))
	}
	p := PlayerID(2)
	rows := ChargedCavalries(gs, target, &p)
	if len(rows) != 1 || !slices.Equal(rows[0].Cells, []CellID{gs.Size.Cell(4, 5)}) {
		t.Errorf("player 2 only: got %+v", rows)
	}
}
