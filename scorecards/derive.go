// Package scorecards derives the flat per-round scorecard records from a
// competition model and formats them into final display values.
package scorecards

import (
	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/wcif"
)

// ScorecardsPerPage is how many cards fit on one A4 page.
const ScorecardsPerPage = 4

// RecordKind discriminates the two scorecard variants.
type RecordKind int

const (
	// KindCompetitor is a card pre-filled for one competitor in a group.
	KindCompetitor RecordKind = iota
	// KindRoundBlank is an unassigned card for the round, filled in by
	// hand on site.
	KindRoundBlank
)

// Record is one scorecard to be rendered. Round-level fields are always
// set; person and group fields only for KindCompetitor.
type Record struct {
	Kind RecordKind

	EventID     string
	Round       int
	TotalRounds int
	Format      string
	Cutoff      *wcif.Cutoff
	TimeLimit   *wcif.TimeLimit

	RegistrantID int
	WCAID        string
	Name         string
	Group        int
	Room         string
	RoomCount    int
}

// DeriveForRound emits one competitor record per assigned competitor, in
// group order then assignment order, followed by the round's blank records.
// With groups assigned, blanks only top the last page up to a multiple of
// four; without groups the user-requested page count is the sole source of
// cards. Either way the user option adds whole pages of blanks.
func DeriveForRound(m *wcif.Model, opts *options.Set, eventID string, round int) ([]Record, error) {
	totalRounds, err := m.NumRounds(eventID)
	if err != nil {
		return nil, err
	}
	format, err := m.Format(eventID, round)
	if err != nil {
		return nil, err
	}
	cutoff, err := m.Cutoff(eventID, round)
	if err != nil {
		return nil, err
	}
	timeLimit, err := m.TimeLimit(eventID, round)
	if err != nil {
		return nil, err
	}

	base := Record{
		Kind:        KindRoundBlank,
		EventID:     eventID,
		Round:       round,
		TotalRounds: totalRounds,
		Format:      format,
		Cutoff:      cutoff,
		TimeLimit:   timeLimit,
	}

	activityIDs, err := m.GroupActivityIDs(eventID, round)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, activityID := range activityIDs {
		group, err := m.GroupNumber(activityID)
		if err != nil {
			return nil, err
		}
		room, err := m.GroupRoom(activityID)
		if err != nil {
			return nil, err
		}
		competitors, err := m.CompetitorsInActivity(activityID)
		if err != nil {
			return nil, err
		}
		for _, registrantID := range competitors {
			name, err := m.PersonName(registrantID)
			if err != nil {
				return nil, err
			}
			wcaID, err := m.WCAID(registrantID)
			if err != nil {
				return nil, err
			}
			rec := base
			rec.Kind = KindCompetitor
			rec.RegistrantID = registrantID
			rec.WCAID = wcaID
			rec.Name = name
			rec.Group = group
			rec.Room = room
			rec.RoomCount = m.RoomCount()
			records = append(records, rec)
		}
	}

	fillerBlanks := 0
	if len(activityIDs) > 0 {
		if rem := len(records) % ScorecardsPerPage; rem != 0 {
			fillerBlanks = ScorecardsPerPage - rem
		}
	}
	totalBlanks := fillerBlanks + opts.BlanksFor(eventID, round)*ScorecardsPerPage
	for i := 0; i < totalBlanks; i++ {
		records = append(records, base)
	}
	return records, nil
}

// DeriveForEvent concatenates DeriveForRound for rounds 1..numRounds in
// round order.
func DeriveForEvent(m *wcif.Model, opts *options.Set, eventID string) ([]Record, error) {
	numRounds, err := m.NumRounds(eventID)
	if err != nil {
		return nil, err
	}
	var records []Record
	for round := 1; round <= numRounds; round++ {
		roundRecords, err := DeriveForRound(m, opts, eventID, round)
		if err != nil {
			return nil, err
		}
		records = append(records, roundRecords...)
	}
	return records, nil
}
