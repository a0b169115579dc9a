package kriegspiel

import (
	"slices"
	"strconv"
	"strings"
)

// Board text is a run-length encoding of the cells in CellID order:
//
//	|💂.0/🎪.0|8|🏇.1|⛰️|
//
// Tokens are separated by '|'. A decimal token skips that many empty cells.
// Any other token describes one cell: a unit ("symbol.owner"), a stronghold
// ("symbol" or "symbol.owner"), or both joined by '/'. Trailing empty cells
// are not written.
const (
	boardSep  = "|"
	mixedSep  = "/"
	ownerSep  = "."
	maxBoardN = 1 << 20
)

var (
	unitBySymbol       = make(map[string]UnitType)
	strongholdBySymbol = make(map[string]StrongholdType)
)

func init() {
	for _, t := range AllUnitTypes() {
		unitBySymbol[t.Profile().Symbol] = t
	}
	for _, t := range AllStrongholdTypes() {
		strongholdBySymbol[t.Symbol()] = t
	}
}

// EncodeBoard serializes the units and strongholds of gs. Per-turn state
// (records, supply, flags) is not part of the board text.
func EncodeBoard(gs *GameState) string {
	return encodeCells(gs.Units, gs.Strongholds)
}

func encodeCells(units []*Unit, strongholds []*Stronghold) string {
	var tokens []string
	empty := 0
	for c := range units {
		u, s := units[c], strongholds[c]
		if u == nil && s == nil {
			empty++
			continue
		}
		if empty > 0 {
			tokens = append(tokens, strconv.Itoa(empty))
			empty = 0
		}
		switch {
		case u != nil && s != nil:
			tokens = append(tokens, encodeUnit(u)+mixedSep+encodeStronghold(s))
		case u != nil:
			tokens = append(tokens, encodeUnit(u))
		default:
			tokens = append(tokens, encodeStronghold(s))
		}
	}
	return boardSep + strings.Join(tokens, boardSep) + boardSep
}

func encodeUnit(u *Unit) string {
	return u.Type.Profile().Symbol + ownerSep + strconv.Itoa(int(u.Owner))
}

func encodeStronghold(s *Stronghold) string {
	if s.Owner == NoPlayer {
		return s.Type.Symbol()
	}
	return s.Type.Symbol() + ownerSep + strconv.Itoa(int(s.Owner))
}

// DecodeBoard parses board text into per-cell unit and stronghold slices of
// size.Cells() length. Decoding never fails: unknown tokens leave their cell
// empty and cells past the end of the board are dropped. Decoded units are in
// their placed state; supply is derived by the caller.
func DecodeBoard(text string, size Size) ([]*Unit, []*Stronghold) {
	n := size.Cells()
	units := make([]*Unit, n)
	strongholds := make([]*Stronghold, n)

	cursor := 0
	for _, tok := range strings.Split(text, boardSep) {
		if tok == "" {
			continue
		}
		if skip, err := strconv.Atoi(tok); err == nil && skip >= 0 {
			cursor += min(skip, maxBoardN)
			continue
		}
		if cursor < n {
			parts := strings.Split(tok, mixedSep)
			units[cursor] = decodeUnit(parts[0])
			strongholds[cursor] = decodeStronghold(parts[len(parts)-1])
		}
		cursor++
	}
	return units, strongholds
}

func decodeUnit(tok string) *Unit {
	sym, owner, ok := strings.Cut(tok, ownerSep)
	if !ok {
		return nil
	}
	t, known := unitBySymbol[sym]
	p, valid := parseOwner(owner)
	if !known || !valid {
		return nil
	}
	return NewUnit(t, p)
}

func decodeStronghold(tok string) *Stronghold {
	sym, owner, hasOwner := strings.Cut(tok, ownerSep)
	t, known := strongholdBySymbol[sym]
	if !known {
		return nil
	}
	if !hasOwner {
		return NewStronghold(t, NoPlayer)
	}
	p, valid := parseOwner(owner)
	if !valid {
		return nil
	}
	return NewStronghold(t, p)
}

func parseOwner(s string) (PlayerID, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return NoPlayer, false
	}
	return PlayerID(n), true
}

// BoardPlayers returns the distinct owners of units and strongholds in board
// text, ascending.
func BoardPlayers(text string, size Size) []PlayerID {
	units, strongholds := DecodeBoard(text, size)
	var ids []PlayerID
	add := func(p PlayerID) {
		if p != NoPlayer && !slices.Contains(ids, p) {
			ids = append(ids, p)
		}
	}
	for c := range units {
		if u := units[c]; u != nil {
			add(u.Owner)
		}
		if s := strongholds[c]; s != nil {
			add(s.Owner)
		}
	}
	slices.Sort(ids)
	return ids
}
