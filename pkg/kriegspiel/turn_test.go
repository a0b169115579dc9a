package kriegspiel

import (
	"errors"
	"slices"
	"testing"
)

// frontState is a 10x10 board with one depot per player. Player 0 holds the
// west of row 5 with an infantry at (4,5) and an artillery at (2,5); player 1
// has an artillery at (5,5) supplied along the diagonal from its depot.
func frontState(t *testing.T) (*GameState, CellID) {
	t.Helper()
	gs := newTestState(10, 10)
	putStronghold(gs, 0, 5, Depot, 0)
	putStronghold(gs, 9, 9, Depot, 1)
	putUnit(gs, 4, 5, Infantry, 0)
	putUnit(gs, 2, 5, Artillery, 0)
	target := putUnit(gs, 5, 5, Artillery, 1)
	BeginTurn(gs)
	for c, u := range gs.Units {
		if u != nil && !u.Supplied {
			t.Fatalf("cell %d should start supplied", c)
		}
	}
	return gs, target
}

func TestMoveRange(t *testing.T) {
	gs := newTestState(10, 10)
	corner := putUnit(gs, 0, 0, Cavalry, 0)
	putUnit(gs, 1, 1, Infantry, 0)
	putStronghold(gs, 2, 0, Mountain, NoPlayer)

	got := MoveRange(gs, corner, 2)
	if len(got) != 6 {
		t.Errorf("speed 2 from corner: got %d cells %v, want 6", len(got), got)
	}
	if slices.Contains(got, gs.Size.Cell(2, 0)) {
		t.Error("mountain should not be in move range")
	}
	if got := MoveRange(gs, corner, 0); len(got) != 0 {
		t.Errorf("speed 0: got %v, want none", got)
	}
}

func TestMoveRange_NoRowWrap(t *testing.T) {
	gs := newTestState(10, 10)
	edge := putUnit(gs, 9, 4, Infantry, 0)
	for _, c := range MoveRange(gs, edge, 1) {
		if p := gs.Size.Pos(c); p.X < 8 {
			t.Errorf("cell %d (%v) wraps to the other side of the board", c, p)
		}
	}
}

func TestMovePiece(t *testing.T) {
	gs, _ := frontState(t)
	from := gs.Size.Cell(4, 5)
	to := gs.Size.Cell(3, 4)

	if err := MovePiece(gs, from, to); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if gs.Units[from] != nil || gs.Units[to] == nil {
		t.Fatal("unit did not move")
	}
	if want := []Move{{From: from, To: to}}; !slices.Equal(gs.Moves[0], want) {
		t.Errorf("moves: got %v, want %v", gs.Moves[0], want)
	}
	if !gs.Units[to].Supplied {
		t.Error("supply should be recomputed after the move")
	}
}

func TestMovePiece_Illegal(t *testing.T) {
	gs, target := frontState(t)
	before := EncodeBoard(gs)

	tests := []struct {
		name     string
		from, to CellID
	}{
		{"too far", gs.Size.Cell(4, 5), gs.Size.Cell(4, 3)},
		{"occupied", gs.Size.Cell(4, 5), target},
		{"enemy unit", target, gs.Size.Cell(6, 6)},
		{"empty cell", gs.Size.Cell(7, 1), gs.Size.Cell(7, 2)},
		{"off board", InvalidCell, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := MovePiece(gs, tt.from, tt.to); !errors.Is(err, ErrIllegalAction) {
				t.Errorf("err: got %v, want ErrIllegalAction", err)
			}
		})
	}
	if after := EncodeBoard(gs); after != before {
		t.Errorf("rejected moves changed the board:\n%s\n%s", before, after)
	}
	if len(gs.Moves[0]) != 0 {
		t.Errorf("rejected moves recorded: %v", gs.Moves[0])
	}
}

func TestCanPick_RejectsPriorDestination(t *testing.T) {
	gs, _ := frontState(t)
	from := gs.Size.Cell(4, 5)
	to := gs.Size.Cell(3, 4)
	if err := MovePiece(gs, from, to); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if CanPick(gs, 0, to) {
		t.Error("moved unit should not be pickable again")
	}

	// A different unit standing on the recorded destination is rejected too.
	gs.Units[to] = NewUnit(Cavalry, 0)
	RefreshSupply(gs)
	if !gs.Units[to].Supplied {
		t.Fatal("replacement unit should be supplied")
	}
	if CanPick(gs, 0, to) {
		t.Error("prior destination should not be pickable")
	}
	if !CanPick(gs, 0, gs.Size.Cell(2, 5)) {
		t.Error("unmoved unit should be pickable")
	}
}

func TestCanPick_Rules(t *testing.T) {
	gs, target := frontState(t)
	art := gs.Size.Cell(2, 5)

	if CanPick(gs, 0, target) {
		t.Error("other player's unit should not be pickable")
	}

	gs.Units[art].Supplied = false
	if CanPick(gs, 0, art) {
		t.Error("unsupplied unit should not be pickable")
	}
	relay := putUnit(gs, 7, 1, Relay, 0)
	gs.Units[relay].Supplied = false
	if !CanPick(gs, 0, relay) {
		t.Error("relay should be pickable without supply")
	}
	gs.Units[art].Supplied = true

	gs.Moves[0] = make([]Move, MaxMoves)
	for i := range gs.Moves[0] {
		gs.Moves[0][i] = Move{From: InvalidCell, To: InvalidCell}
	}
	if CanPick(gs, 0, art) {
		t.Error("no pick after the move budget is spent")
	}
	gs.Moves[0] = nil

	gs.Attacks[0] = &AttackRecord{Target: target}
	if CanPick(gs, 0, art) {
		t.Error("no pick after attacking")
	}
}

func TestAttack_Retreat(t *testing.T) {
	gs, target := frontState(t)

	outcome, err := Attack(gs, target)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if outcome != OutcomeRetreat {
		t.Fatalf("outcome: got %v, want retreat", outcome)
	}
	u := gs.Units[target]
	if u == nil || !u.Retreating {
		t.Fatal("defender should remain on the board and retreat")
	}
	if r := gs.RetreatOf(1); r.From != target || r.To != InvalidCell {
		t.Errorf("retreat: got %+v, want {%d -1}", r, target)
	}
	rec := gs.Attacks[0]
	if rec == nil || rec.Target != target || rec.Unit == nil || rec.Unit.Retreating {
		t.Errorf("attack record: got %+v", rec)
	}
	if ok, _ := CanAttack(gs, 0, target); ok {
		t.Error("second attack should be rejected")
	}
	if _, err := Attack(gs, target); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("second attack: got %v, want ErrIllegalAction", err)
	}
}

func TestAttack_Capture(t *testing.T) {
	gs, target := frontState(t)
	gs.Units[gs.Size.Cell(4, 5)] = NewUnit(Artillery, 0)

	outcome, err := Attack(gs, target)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if outcome != OutcomeCapture {
		t.Fatalf("outcome: got %v, want capture", outcome)
	}
	if gs.Units[target] != nil {
		t.Error("defender should be removed")
	}
	if gs.RetreatOf(1).Pending() {
		t.Error("capture should not set a retreat")
	}
}

func TestForcedRetreat_Completes(t *testing.T) {
	gs, target := frontState(t)
	if _, err := Attack(gs, target); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if _, over := EndTurn(gs); over {
		t.Fatal("game should not be over")
	}
	if gs.Current != 1 || gs.Turn != 1 {
		t.Fatalf("current/turn: got %v/%d, want 1/1", gs.Current, gs.Turn)
	}
	if gs.Units[target] == nil {
		t.Fatal("supplied retreater with room to move should survive the turn start")
	}

	if CanPick(gs, 1, gs.Size.Cell(9, 9)) || !CanPick(gs, 1, target) {
		t.Error("only the retreating unit should be pickable")
	}
	if ok, _ := CanAttack(gs, 1, gs.Size.Cell(4, 5)); ok {
		t.Error("no attack while a retreat is pending")
	}

	dest := gs.Size.Cell(6, 6)
	if err := MovePiece(gs, target, dest); err != nil {
		t.Fatalf("retreat move: %v", err)
	}
	if r := gs.RetreatOf(1); r.Pending() || r.To != dest {
		t.Errorf("retreat after move: got %+v", r)
	}

	EndTurn(gs)
	if gs.Units[dest].Retreating {
		t.Error("retreating flag should clear at the end of the turn")
	}
	if r := gs.RetreatOf(1); r != NoRetreat {
		t.Errorf("retreat: got %+v, want cleared", r)
	}
	if gs.Current != 0 {
		t.Errorf("current: got %v, want 0", gs.Current)
	}
}

func TestForcedRetreat_UnsuppliedIsCaptured(t *testing.T) {
	gs, target := frontState(t)
	if _, err := Attack(gs, target); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if err := EditStronghold(gs, gs.Size.Cell(9, 9), nil); err != nil {
		t.Fatalf("EditStronghold: %v", err)
	}

	res, over := EndTurn(gs)
	if gs.Units[target] != nil {
		t.Error("unsupplied retreater should be captured at the turn start")
	}
	if gs.RetreatOf(1) != NoRetreat {
		t.Error("retreat should be cleared after the capture")
	}
	if !over || res.Winner != 0 || res.Loser != 1 {
		t.Errorf("result: got %+v %v, want player 0 over player 1", res, over)
	}
}

func TestForcedRetreat_SurroundedIsCaptured(t *testing.T) {
	gs, target := frontState(t)
	if _, err := Attack(gs, target); err != nil {
		t.Fatalf("Attack: %v", err)
	}
	for _, p := range []Position{{4, 4}, {5, 4}, {6, 4}, {6, 5}, {4, 6}, {5, 6}} {
		putUnit(gs, p.X, p.Y, Infantry, 0)
	}
	putUnit(gs, 6, 6, Infantry, 1)

	EndTurn(gs)
	if !gs.Units[gs.Size.Cell(6, 6)].Supplied {
		t.Fatal("supply line to the retreater should stay open")
	}
	if gs.Units[target] != nil {
		t.Error("retreater without a free neighbour should be captured")
	}
}

func TestDepotCapture(t *testing.T) {
	gs := newTestState(10, 10)
	depot := putStronghold(gs, 5, 5, Depot, 0)
	putStronghold(gs, 0, 0, Depot, 0)
	putStronghold(gs, 9, 9, Depot, 1)
	putUnit(gs, 6, 6, Infantry, 1)
	gs.Current = 1
	BeginTurn(gs)

	if err := MovePiece(gs, gs.Size.Cell(6, 6), depot); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if gs.Strongholds[depot] != nil {
		t.Fatal("depot under a hostile supplied unit should be destroyed")
	}
	rec := gs.Attacks[1]
	if rec == nil || !rec.Depot || rec.Target != depot {
		t.Errorf("attack record: got %+v", rec)
	}
	if CanPick(gs, 1, gs.Size.Cell(5, 5)) {
		t.Error("depot capture uses up the turn's attack")
	}
	if n := gs.DepotCount(0); n != 1 {
		t.Errorf("player 0 depots: got %d, want 1", n)
	}
}

func TestDepotCapture_AllyDoesNotCapture(t *testing.T) {
	gs := newTestState(10, 10)
	gs.Roster.Alliances[0] = []PlayerID{1}
	depot := putStronghold(gs, 5, 5, Depot, 0)
	putStronghold(gs, 9, 9, Depot, 1)
	putUnit(gs, 5, 5, Infantry, 1)
	BeginTurn(gs)

	if s := gs.Strongholds[depot]; s == nil || s.Owner != 0 {
		t.Errorf("allied occupant should leave the depot alone, got %+v", s)
	}
}

func TestStrongholdOwnershipSweep(t *testing.T) {
	gs := newTestState(10, 10)
	held := putStronghold(gs, 1, 1, Fortress, NoPlayer)
	putUnit(gs, 1, 1, Infantry, 0)
	cav := putStronghold(gs, 3, 3, Pass, 1)
	putUnit(gs, 3, 3, Cavalry, 0)
	empty := putStronghold(gs, 5, 5, Fortress, 1)
	unowned := putStronghold(gs, 7, 7, Depot, NoPlayer)
	putUnit(gs, 7, 7, Artillery, 1)
	mountain := putStronghold(gs, 8, 1, Mountain, NoPlayer)

	BeginTurn(gs)

	tests := []struct {
		name string
		cell CellID
		want PlayerID
	}{
		{"infantry takes fortress", held, 0},
		{"cavalry cannot hold pass", cav, NoPlayer},
		{"empty fortress", empty, NoPlayer},
		{"unowned depot", unowned, 1},
		{"mountain", mountain, NoPlayer},
	}
	for _, tt := range tests {
		if got := gs.Strongholds[tt.cell].Owner; got != tt.want {
			t.Errorf("%s: owner %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWinner(t *testing.T) {
	gs := newTestState(5, 5)
	if _, over := Winner(gs); over {
		t.Error("board without strongholds has no winner")
	}

	putStronghold(gs, 0, 0, Fortress, NoPlayer)
	putStronghold(gs, 4, 4, Depot, 1)
	res, over := Winner(gs)
	if !over || res.Loser != 0 || res.Winner != 1 {
		t.Errorf("result: got %+v %v, want player 1 over player 0", res, over)
	}

	putStronghold(gs, 2, 2, Depot, 0)
	if _, over := Winner(gs); over {
		t.Error("player with a depot has not lost")
	}
}

func TestEndTurn_RotatesAndClearsRecords(t *testing.T) {
	gs := LoadBoard(mustScenario(t, "Default").Board, DefaultRoster(), ReferenceSize)
	for i := range 8 {
		if gs.Current != PlayerID(i) {
			t.Fatalf("turn %d: current %v, want %d", i, gs.Current, i)
		}
		gs.Moves[gs.Current] = []Move{{From: 1, To: 2}}
		if _, over := EndTurn(gs); over {
			t.Fatalf("turn %d: unexpected game end", i)
		}
		if gs.Phase != PhaseActing {
			t.Errorf("phase: got %q, want %q", gs.Phase, PhaseActing)
		}
	}
	if gs.Current != 0 || gs.Turn != 8 {
		t.Errorf("after a round: current %v turn %d, want 0 and 8", gs.Current, gs.Turn)
	}
	if len(gs.Moves[0]) != 0 {
		t.Error("moves should reset when the turn begins")
	}
}

func mustScenario(t *testing.T, name string) Scenario {
	t.Helper()
	sc, ok := ScenarioByName(name)
	if !ok {
		t.Fatalf("scenario %q missing", name)
	}
	return sc
}
