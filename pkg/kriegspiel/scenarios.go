package kriegspiel

// OnlyMap is the reference terrain with every stronghold and no units.
const OnlyMap = "|32|🏰|6|🎪.0|19|⛰️|⛰️|⛰️|⛰️|19|🎪.0|1|⛰️|24|⛰️|24|🛣️|24|⛰️|24|⛰️|10|🏰|13|⛰️|2|🏰|76|🏰|12|🏰|32|⛰️|" +
	"⛰️|⛰️|⛰️|⛰️|⛰️|24|🛣️|6|🏰|17|⛰️|24|⛰️|24|⛰️|36|🎪.1|19|🎪.1|"

// Scenario is a named starting board.
type Scenario struct {
	Name  string
	Board string
}

var scenarios = []Scenario{
	{Name: "Default", Board: "|15|🎪.0|3|🏇.3|9|🚚.3|28|🏰|51|⛰️|⛰️|⛰️|⛰️|15|🚩.3|9|🚀.3|14|🚩.0|3|🎪.0|1|⛰️|17|🎪.3|4|⛰️|🛣️|⛰️|⛰️|⛰️|" +
		"1|💂.3|💂.3|1|🏇.2|17|⛰️|16|🏇.3|3|🎉.3|⛰️|🛣️|⛰️|2|💂.3|1|💂.3|2|🏇.2|🏇.2|14|💂.0|1|💂.0/🛣️.0|💂.0|19|⛰️|" +
		"🛣️|⛰️|2|💂.3|10|⛰️|8|💂.0|3|⛰️|20|⛰️|⛰️|💂.3|1|💂.3|1|🏇.3|4|🏰|3|⛰️|9|💂.0|1|🚀.0|1|⛰️|2|💂.1|8|🏰|8|⛰️|" +
		"4|🏰|8|⛰️|8|🚚.0|4|🎉.0|⛰️|2|🎉.1/🏰.1|17|⛰️|3|🏇.3|9|⛰️|⛰️|11|💂.0|1|💂.0|💂.0|1|💂.1|1|💂.1|30|⛰️|7|🏇.0|" +
		"6|💂.0|2|💂.1|2|💂.1|44|🏇.0|2|💂.1|💂.1|💂.1|17|🚩.2|💂.2|6|🚚.2|8|🏰|5|🏇.0|8|💂.1|16|💂.2|24|🏇.0|2|⛰️|⛰️|" +
		"⛰️|⛰️|⛰️|🚚.1|5|🚩.1|8|💂.2|1|💂.2|💂.2|1|💂.2|28|🚀.1/🛣️.1|6|🏰|7|💂.2|💂.2|⛰️|18|⛰️|13|⛰️|7|🏇.1|5|💂.2|" +
		"🎉.2|1|⛰️|18|⛰️|13|⛰️|3|🎪.1|3|🏇.1|🏇.1|🏇.1|3|🎪.2|2|⛰️|6|💂.5|10|⛰️|🛣️|⛰️|12|⛰️|16|⛰️|18|⛰️|26|🚚.5|" +
		"3|🛣️|8|🏰|18|🏰|18|⛰️|⛰️|⛰️|⛰️|55|💂.5|💂.5|6|🏰|11|⛰️|10|🏰|19|🚩.5|12|🏰|4|⛰️|29|🚀.5|18|⛰️|49|⛰️|9|" +
		"🎪.4|10|🏰|4|💂.5|1|🏇.5|1|🎪.5|13|🚚.4|5|🛣️|4|🎉.4|4|💂.4|💂.4|💂.4|2|🚩.4|10|🎉.5|⛰️|1|💂.5|1|💂.5|2|💂.5|14|" +
		"🏇.4|⛰️|4|🏇.4|🏇.4|3|💂.4|💂.4|12|🎪.5|2|⛰️|22|⛰️|26|⛰️|7|🐺.7|10|💂.4|🎪.4|4|🏇.6|21|🏇.5|🏇.5|🏇.5|8|🐺.7|" +
		"🐺.7|9|💂.4|💂.4|🚀.4|4|🏇.6|31|🐺.7|17|🏇.6|14|💂.7/🏰.7|18|🏰|9|💂.6|7|🏰|15|💂.7|🚚.7|7|🚀.7|3|⛰️|11|🎉.6|13|" +
		"🚀.6|💂.6|7|💂.7|6|💂.7|3|⛰️|⛰️|⛰️|⛰️|⛰️|10|💂.6/🏰.6|8|🏇.6|13|💂.7|3|💂.7|1|💂.7|1|💂.7|1|🚩.7|29|🚚.6|4|" +
		"💂.6|4|💂.7|25|💂.6|1|⛰️|⛰️|⛰️|3|🚩.6|10|💂.6|10|🎉.7|1|🎪.7|15|⛰️|20|💂.6|💂.6|💂.6|6|⛰️|19|⛰️|29|⛰️|14|" +
		"🎪.7|4|⛰️|19|🎪.6|9|⛰️|17|⛰️|1|⛰️|5|🎪.6|23|🛣️|18|⛰️|"},
	{Name: "Pump House", Board: "|32|🏰|6|🎪.0|19|⛰️|⛰️|⛰️|⛰️|19|🎪.0|1|⛰️|24|⛰️|💂.0|23|💂.0/🛣️.0|🎉.0|23|⛰️|🚩.0|💂.0|16|🚚.0|🏇.0|🏇.0|" +
		"💂.0|1|💂.0|⛰️|10|🏰|8|🏇.0|🚀.0|1|💂.0|1|⛰️|2|🏰|16|🏇.0|1|💂.0|💂.0|💂.0|55|🏰|12|🏰|17|🏇.1|🏇.1|🏇.1|12|⛰️|" +
		"⛰️|⛰️|⛰️|⛰️|⛰️|💂.1|🎉.1|💂.1|💂.1|🚀.1|🏇.1|🚚.1|17|💂.1/🛣️.1|1|🚩.1|💂.1|💂.1|💂.1|1|💂.1/🏰.1|17|⛰️|4|💂.1|" +
		"19|⛰️|24|⛰️|36|🎪.1|19|🎪.1|"},
	{Name: "Rio de Janeiro", Board: "|32|🏰|6|🎪.0|19|⛰️|⛰️|⛰️|⛰️|19|🎪.0|1|⛰️|24|⛰️|21|🏇.0|🚚.0|💂.0|💂.0/🛣️.0|20|🚀.0|🏇.0|💂.0|1|⛰️|9|💂.0|" +
		"🚩.0|🏇.0|12|⛰️|2|💂.0|💂.0|5|💂.0|🎉.0/🏰.0|🏇.0|12|⛰️|2|💂.0/🏰.0|💂.0|74|💂.1|💂.1/🏰.1|5|💂.1|💂.1|🚀.1|🏇.1|" +
		"3|💂.1/🏰.1|💂.1|🎉.1|10|💂.1|5|💂.1|1|🏇.1|3|🏇.1|🏇.1|6|⛰️|⛰️|⛰️|⛰️|⛰️|⛰️|11|🚚.1|12|💂.1/🛣️.1|1|🚩.1|4|🏰|" +
		"17|⛰️|24|⛰️|24|⛰️|36|🎪.1|19|🎪.1|"},
	{Name: "1800 Marengo campaign", Board: "|32|🏰|6|🎪.0|19|⛰️|⛰️|⛰️|⛰️|19|🎪.0|1|⛰️|24|⛰️|20|🚩.0|3|💂.0/🛣️.0|8|🚚.0|15|⛰️|17|🏇.0|🏇.0|🎉.0|💂.0|3|" +
		"⛰️|10|🚀.0/🏰.0|💂.0|🏇.0|🏇.0|4|💂.0|💂.0|💂.0|3|⛰️|2|🏰|6|💂.0|💂.0|💂.0|67|💂.1/🏰.1|12|💂.1/🏰.1|💂.1|24|🎉.1|" +
		"6|⛰️|⛰️|⛰️|⛰️|⛰️|⛰️|💂.1|15|💂.1|7|🛣️|1|🚩.1|4|💂.1/🏰.1|8|🚚.1|8|⛰️|24|⛰️|19|💂.1|💂.1|3|⛰️|18|🏇.1|🏇.1|" +
		"💂.1|15|🎪.1|6|🏇.1|🚀.1|🏇.1|10|🎪.1|"},
	{Name: "1805 battle of Austerlitz", Board: "|32|🏰|6|🎪.0|19|⛰️|⛰️|⛰️|⛰️|19|🎪.0|1|⛰️|24|⛰️|24|🛣️|20|🏇.0|1|🚚.0|1|⛰️|21|💂.0|2|⛰️|10|🚩.0/🏰|💂.0|8|" +
		"💂.0|1|🎉.0|1|⛰️|2|💂.0/🏰.0|💂.0|6|💂.0|💂.0|🏇.0|🚀.0|21|💂.0|💂.0|🏇.0|🏇.0|40|🎉.1/🏰.1|12|💂.1/🏰.1|💂.1|9|" +
		"💂.1|1|💂.1|12|🏇.1|6|⛰️|⛰️|⛰️|⛰️|⛰️|⛰️|7|💂.1|3|🚩.1|4|🚚.1|2|💂.1|💂.1|3|🛣️|6|💂.1/🏰.1|11|🚀.1|🏇.1|💂.1|" +
		"3|⛰️|19|🏇.1|🏇.1|3|⛰️|24|⛰️|36|🎪.1|19|🎪.1|"},
}

// Scenarios returns the built-in starting boards in menu order. All of them
// are laid out for ReferenceSize.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// ScenarioByName looks up a built-in board. "Only Map" resolves to OnlyMap.
func ScenarioByName(name string) (Scenario, bool) {
	if name == OnlyMapName {
		return Scenario{Name: OnlyMapName, Board: OnlyMap}, true
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// OnlyMapName is the scenario name under which OnlyMap is listed.
const OnlyMapName = "Only Map"
