package kriegspiel

// UnitKind is the functional class of a unit. Rules that mention Cavalry or
// Relay test the kind, so variants such as SwiftRelay follow the same rules.
type UnitKind int

const (
	KindInfantry UnitKind = iota
	KindCavalry
	KindArtillery
	KindRelay
)

// UnitType identifies a concrete unit profile.
type UnitType int

const (
	Infantry UnitType = iota
	Cavalry
	CavalryWolf
	Artillery
	SwiftArtillery
	Relay
	SwiftRelay
)

// Profile is the immutable, type-derived part of a unit.
type Profile struct {
	Name      string
	Kind      UnitKind
	Symbol    string
	Speed     int
	Range     int
	Offense   int
	Defense   int
	CanAddDef bool // may receive a co-located stronghold's defense bonus
}

var profiles = [...]Profile{
	Infantry:       {"infantry", KindInfantry, "\U0001F482", 1, 2, 4, 6, true},
	Cavalry:        {"cavalry", KindCavalry, "\U0001F3C7", 2, 2, 4, 5, false},
	CavalryWolf:    {"cavalry_wolf", KindCavalry, "\U0001F43A", 2, 2, 4, 5, false},
	Artillery:      {"artillery", KindArtillery, "\U0001F389", 1, 3, 5, 8, true},
	SwiftArtillery: {"swift_artillery", KindArtillery, "\U0001F680", 2, 3, 5, 8, true},
	Relay:          {"relay", KindRelay, "\U0001F6A9", 1, 0, 0, 1, false},
	SwiftRelay:     {"swift_relay", KindRelay, "\U0001F69A", 2, 0, 0, 1, false},
}

// AllUnitTypes returns every unit type in declaration order.
func AllUnitTypes() []UnitType {
	return []UnitType{Infantry, Cavalry, CavalryWolf, Artillery, SwiftArtillery, Relay, SwiftRelay}
}

// Profile returns the static data for t.
func (t UnitType) Profile() Profile {
	return profiles[t]
}

func (t UnitType) String() string {
	return profiles[t].Name
}

// ParseUnitType resolves a unit type by its name ("infantry", "swift_relay", ...).
func ParseUnitType(name string) (UnitType, bool) {
	for _, t := range AllUnitTypes() {
		if profiles[t].Name == name {
			return t, true
		}
	}
	return 0, false
}

// Unit is a piece on the board. Supplied is recomputed after every mutation;
// Retreating is set by a forced-retreat attack outcome.
type Unit struct {
	Type       UnitType
	Owner      PlayerID
	Supplied   bool
	Retreating bool
}

// NewUnit returns a unit in its placed state: supplied, not retreating.
func NewUnit(t UnitType, owner PlayerID) *Unit {
	return &Unit{Type: t, Owner: owner, Supplied: true}
}

func (u *Unit) Kind() UnitKind  { return profiles[u.Type].Kind }
func (u *Unit) Speed() int      { return profiles[u.Type].Speed }
func (u *Unit) Range() int      { return profiles[u.Type].Range }
func (u *Unit) Offense() int    { return profiles[u.Type].Offense }
func (u *Unit) Defense() int    { return profiles[u.Type].Defense }
func (u *Unit) CanAddDef() bool { return profiles[u.Type].CanAddDef }

// StrongholdType classifies a terrain feature.
type StrongholdType int

const (
	Depot StrongholdType = iota // the arsenal; losing every one loses the game
	Fortress
	Pass
	Mountain // impassable, blocks supply and fire
)

var strongholdData = [...]struct {
	name       string
	symbol     string
	defenseAdd int
}{
	Depot:    {"depot", "\U0001F3AA", 0},
	Fortress: {"fortress", "\U0001F3F0", 4},
	Pass:     {"pass", "\U0001F6E3\uFE0F", 2},
	Mountain: {"mountain", "\u26F0\uFE0F", 0},
}

// AllStrongholdTypes returns every stronghold type in declaration order.
func AllStrongholdTypes() []StrongholdType {
	return []StrongholdType{Depot, Fortress, Pass, Mountain}
}

func (t StrongholdType) String() string { return strongholdData[t].name }

// Symbol is the board-text symbol of t.
func (t StrongholdType) Symbol() string { return strongholdData[t].symbol }

// DefenseAdd is the bonus granted to a co-located unit that can receive it.
func (t StrongholdType) DefenseAdd() int { return strongholdData[t].defenseAdd }

// ParseStrongholdType resolves a stronghold type by name.
func ParseStrongholdType(name string) (StrongholdType, bool) {
	for _, t := range AllStrongholdTypes() {
		if strongholdData[t].name == name {
			return t, true
		}
	}
	return 0, false
}

// Stronghold occupies a cell independently of units.
type Stronghold struct {
	Type  StrongholdType
	Owner PlayerID // NoPlayer when unowned
}

// NewStronghold returns a stronghold of type t owned by owner (NoPlayer for none).
func NewStronghold(t StrongholdType, owner PlayerID) *Stronghold {
	return &Stronghold{Type: t, Owner: owner}
}

func (s *Stronghold) DefenseAdd() int { return s.Type.DefenseAdd() }
