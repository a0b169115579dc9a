package kriegspiel

import (
	"fmt"
	"slices"
)

// PlayerID is a player slot. Slots are rendered in board text as decimal
// numbers.
type PlayerID int

// NoPlayer is the owner of an unowned stronghold.
const NoPlayer PlayerID = -1

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "none"
	}
	return fmt.Sprintf("%d", int(p))
}

// Player is one seat at the table.
type Player struct {
	ID   PlayerID
	Name string
}

// Roster is the ordered turn rotation plus each player's outgoing alliance
// list. Alliances need not be mutual: Allied(a, b) says only that a treats b
// as friendly.
type Roster struct {
	Players   []Player
	Alliances map[PlayerID][]PlayerID
}

// DefaultRoster returns the eight-seat table of the reference scenarios.
func DefaultRoster() Roster {
	return Roster{
		Players: []Player{
			{0, "Count Guibert"},
			{1, "Umbrella Corps"},
			{2, "Southern Snowcones"},
			{3, "Ragnar the Fearless"},
			{4, "The Rabble"},
			{5, "The Eyeballs"},
			{6, "Michiel de Ruyter"},
			{7, "House of Haltwhistle"},
		},
		Alliances: map[PlayerID][]PlayerID{
			0: {2, 5},
			1: {3},
			2: {0, 4, 7},
			3: {1, 5},
			4: {2, 5},
			5: {4, 0, 3},
			6: {7},
			7: {2, 6},
		},
	}
}

// NewRoster returns n players with generated names and no alliances.
func NewRoster(n int) Roster {
	r := Roster{Alliances: make(map[PlayerID][]PlayerID, n)}
	for i := range n {
		r.Players = append(r.Players, Player{ID: PlayerID(i), Name: fmt.Sprintf("Player %d", i)})
	}
	return r
}

// Has reports whether p sits at the table.
func (r Roster) Has(p PlayerID) bool {
	return r.index(p) >= 0
}

// Name returns p's display name, or its slot number when unknown.
func (r Roster) Name(p PlayerID) string {
	if i := r.index(p); i >= 0 {
		return r.Players[i].Name
	}
	return p.String()
}

// Allied reports whether p lists q as an ally.
func (r Roster) Allied(p, q PlayerID) bool {
	return slices.Contains(r.Alliances[p], q)
}

// Friendly reports whether q is p or one of p's allies.
func (r Roster) Friendly(p, q PlayerID) bool {
	return p == q || r.Allied(p, q)
}

// Hostile is the complement of Friendly.
func (r Roster) Hostile(p, q PlayerID) bool {
	return !r.Friendly(p, q)
}

// Next returns the player after p in rotation. An unknown p maps to the
// first player.
func (r Roster) Next(p PlayerID) PlayerID {
	if len(r.Players) == 0 {
		return NoPlayer
	}
	i := r.index(p)
	return r.Players[(i+1)%len(r.Players)].ID
}

// Clone returns an independent copy.
func (r Roster) Clone() Roster {
	c := Roster{Players: slices.Clone(r.Players)}
	if r.Alliances != nil {
		c.Alliances = make(map[PlayerID][]PlayerID, len(r.Alliances))
		for p, allies := range r.Alliances {
			c.Alliances[p] = slices.Clone(allies)
		}
	}
	return c
}

func (r Roster) index(p PlayerID) int {
	return slices.IndexFunc(r.Players, func(pl Player) bool { return pl.ID == p })
}

// Subset keeps the players in ids, in rotation order, and drops alliances
// with anyone outside the subset.
func (r Roster) Subset(ids []PlayerID) Roster {
	out := Roster{Alliances: make(map[PlayerID][]PlayerID)}
	for _, p := range r.Players {
		if slices.Contains(ids, p.ID) {
			out.Players = append(out.Players, p)
		}
	}
	for _, p := range out.Players {
		for _, q := range r.Alliances[p.ID] {
			if slices.Contains(ids, q) {
				out.Alliances[p.ID] = append(out.Alliances[p.ID], q)
			}
		}
	}
	return out
}
