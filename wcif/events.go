package wcif

const (
	// FewestMovesID is the one discipline scorecards are never generated
	// for: attempts are written solutions, not timed solves.
	FewestMovesID = "333fm"
	// MultiBlindID has no per-solve time limit in the WCIF sense; its
	// limit is the regulation 10-minutes-per-cube rule.
	MultiBlindID = "333mbf"
)

var eventNames = map[string]string{
	"333":    "3x3x3 Cube",
	"222":    "2x2x2 Cube",
	"444":    "4x4x4 Cube",
	"555":    "5x5x5 Cube",
	"666":    "6x6x6 Cube",
	"777":    "7x7x7 Cube",
	"333bf":  "3x3x3 Blindfolded",
	"333fm":  "3x3x3 Fewest Moves",
	"333oh":  "3x3x3 One-Handed",
	"clock":  "Clock",
	"minx":   "Megaminx",
	"pyram":  "Pyraminx",
	"skewb":  "Skewb",
	"sq1":    "Square-1",
	"444bf":  "4x4x4 Blindfolded",
	"555bf":  "5x5x5 Blindfolded",
	"333mbf": "3x3x3 Multi-Blind",
}

// EventName returns the display name for a WCA event id. Unknown ids are
// returned verbatim so future events still produce usable scorecards.
func EventName(id string) string {
	if name, ok := eventNames[id]; ok {
		return name
	}
	return id
}
