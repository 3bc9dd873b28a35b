// Package wcif holds the WCIF competition document types, the HTTP fetch
// against the WCA API, and the read-only model queries the scorecard
// pipeline is built on.
package wcif

// Competition is the subset of the WCIF schema this tool consumes.
type Competition struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Events   []Event  `json:"events"`
	Persons  []Person `json:"persons"`
	Schedule Schedule `json:"schedule"`
}

type Event struct {
	ID     string  `json:"id"`
	Rounds []Round `json:"rounds"`
}

type Round struct {
	ID                   string                `json:"id"`
	Format               string                `json:"format"`
	TimeLimit            *TimeLimit            `json:"timeLimit"`
	Cutoff               *Cutoff               `json:"cutoff"`
	AdvancementCondition *AdvancementCondition `json:"advancementCondition"`
}

// TimeLimit is the per-attempt limit in centiseconds. A non-empty
// CumulativeRoundIDs means the limit is shared across those rounds.
type TimeLimit struct {
	Centiseconds       int      `json:"centiseconds"`
	CumulativeRoundIDs []string `json:"cumulativeRoundIds"`
}

// Cutoff requires a result under AttemptResult centiseconds within the
// first NumberOfAttempts attempts to continue the round.
type Cutoff struct {
	NumberOfAttempts int `json:"numberOfAttempts"`
	AttemptResult    int `json:"attemptResult"`
}

type AdvancementCondition struct {
	Type  string `json:"type"`
	Level int    `json:"level"`
}

type Schedule struct {
	Venues []Venue `json:"venues"`
}

type Venue struct {
	Name  string `json:"name"`
	Rooms []Room `json:"rooms"`
}

type Room struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	ID              int        `json:"id"`
	ActivityCode    string     `json:"activityCode"`
	ChildActivities []Activity `json:"childActivities"`
}

type Person struct {
	RegistrantID int           `json:"registrantId"`
	Name         string        `json:"name"`
	WCAID        string        `json:"wcaId"`
	Registration *Registration `json:"registration"`
	Assignments  []Assignment  `json:"assignments"`
}

type Registration struct {
	EventIDs []string `json:"eventIds"`
	Status   string   `json:"status"`
}

type Assignment struct {
	ActivityID     int    `json:"activityId"`
	AssignmentCode string `json:"assignmentCode"`
}

const (
	// RegistrationAccepted marks a person as an accepted registrant.
	RegistrationAccepted = "accepted"
	// AssignmentCompetitor marks an assignment as a competing slot.
	AssignmentCompetitor = "competitor"
)
