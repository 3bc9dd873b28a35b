package scorecards

import (
	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/wcif"
)

// fixtureCompetition has 333 with five assigned competitors across three
// groups in two rooms, an unscheduled 333 final, cumulative blindfolded
// rounds, multi-blind, and Fewest Moves (which must never get cards).
func fixtureCompetition() *wcif.Competition {
	return &wcif.Competition{
		ID:   "TestopiaOpen2026",
		Name: "Testopia Open 2026",
		Events: []wcif.Event{
			{ID: "333", Rounds: []wcif.Round{
				{
					ID:        "333-r1",
					Format:    "a",
					TimeLimit: &wcif.TimeLimit{Centiseconds: 60000},
					Cutoff:    &wcif.Cutoff{NumberOfAttempts: 2, AttemptResult: 7000},
				},
				{ID: "333-r2", Format: "a", TimeLimit: &wcif.TimeLimit{Centiseconds: 60000}},
			}},
			{ID: "333fm", Rounds: []wcif.Round{{ID: "333fm-r1", Format: "m"}}},
			{ID: "333bf", Rounds: []wcif.Round{
				{ID: "333bf-r1", Format: "3", TimeLimit: &wcif.TimeLimit{
					Centiseconds:       60000,
					CumulativeRoundIDs: []string{"333bf-r1", "444bf-r1"},
				}},
			}},
			{ID: "444bf", Rounds: []wcif.Round{
				{ID: "444bf-r1", Format: "3", TimeLimit: &wcif.TimeLimit{
					Centiseconds:       60000,
					CumulativeRoundIDs: []string{"333bf-r1", "444bf-r1"},
				}},
			}},
			{ID: "333mbf", Rounds: []wcif.Round{{ID: "333mbf-r1", Format: "1"}}},
		},
		Persons: []wcif.Person{
			{
				RegistrantID: 1, Name: "Jason Chang (章維祐)", WCAID: "2015CHAN01",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 11, AssignmentCode: wcif.AssignmentCompetitor}},
			},
			{
				RegistrantID: 2, Name: "Ada Lovelace",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 11, AssignmentCode: wcif.AssignmentCompetitor}},
			},
			{
				RegistrantID: 3, Name: "Grace Hopper", WCAID: "2017HOPP01",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 12, AssignmentCode: wcif.AssignmentCompetitor}},
			},
			{
				RegistrantID: 4, Name: "Alan Turing", WCAID: "2016TURI01",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 12, AssignmentCode: wcif.AssignmentCompetitor}},
			},
			{
				RegistrantID: 5, Name: "Edsger Dijkstra", WCAID: "2018DIJK01",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 31, AssignmentCode: wcif.AssignmentCompetitor}},
			},
		},
		Schedule: wcif.Schedule{Venues: []wcif.Venue{{Name: "Testopia Hall", Rooms: []wcif.Room{
			{ID: 1, Name: "Main Hall", Activities: []wcif.Activity{
				{ID: 10, ActivityCode: "333-r1", ChildActivities: []wcif.Activity{
					{ID: 11, ActivityCode: "333-r1-g1"},
					{ID: 12, ActivityCode: "333-r1-g2"},
				}},
			}},
			{ID: 2, Name: "Side Room", Activities: []wcif.Activity{
				{ID: 30, ActivityCode: "333-r1", ChildActivities: []wcif.Activity{
					{ID: 31, ActivityCode: "333-r1-g3"},
				}},
			}},
		}}}},
	}
}

func fixtureSession() (*wcif.Model, *options.Set) {
	m := wcif.NewModel(fixtureCompetition())
	opts, err := options.Build(m)
	if err != nil {
		panic(err)
	}
	return m, opts
}
