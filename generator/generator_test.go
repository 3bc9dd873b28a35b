package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/wcif"
)

func testCompetition() *wcif.Competition {
	return &wcif.Competition{
		ID:   "TestopiaOpen2026",
		Name: "Testopia Open 2026",
		Events: []wcif.Event{
			{ID: "333", Rounds: []wcif.Round{
				{
					ID:                   "333-r1",
					Format:               "a",
					TimeLimit:            &wcif.TimeLimit{Centiseconds: 60000},
					Cutoff:               &wcif.Cutoff{NumberOfAttempts: 2, AttemptResult: 7000},
					AdvancementCondition: &wcif.AdvancementCondition{Type: "percent", Level: 75},
				},
				{ID: "333-r2", Format: "a", TimeLimit: &wcif.TimeLimit{Centiseconds: 60000}},
			}},
			{ID: "333fm", Rounds: []wcif.Round{{ID: "333fm-r1", Format: "m"}}},
			{ID: "pyram", Rounds: []wcif.Round{
				{ID: "pyram-r1", Format: "a", TimeLimit: &wcif.TimeLimit{Centiseconds: 30000}},
			}},
		},
		Persons: []wcif.Person{
			{
				RegistrantID: 1, Name: "Jason Chang (章維祐)", WCAID: "2015CHAN01",
				Registration: &wcif.Registration{EventIDs: []string{"333", "pyram"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 11, AssignmentCode: wcif.AssignmentCompetitor}},
			},
			{
				RegistrantID: 2, Name: "Ada Lovelace",
				Registration: &wcif.Registration{EventIDs: []string{"333"}, Status: wcif.RegistrationAccepted},
				Assignments:  []wcif.Assignment{{ActivityID: 11, AssignmentCode: wcif.AssignmentCompetitor}},
			},
		},
		Schedule: wcif.Schedule{Venues: []wcif.Venue{{Name: "Testopia Hall", Rooms: []wcif.Room{
			{ID: 1, Name: "Main Hall", Activities: []wcif.Activity{
				{ID: 10, ActivityCode: "333-r1", ChildActivities: []wcif.Activity{
					{ID: 11, ActivityCode: "333-r1-g1"},
				}},
			}},
		}}}},
	}
}

func testSession(t *testing.T) *Session {
	t.Helper()
	data, err := json.Marshal(testCompetition())
	require.NoError(t, err)
	session, err := LoadCompetitionWCIF(bytes.NewReader(data))
	require.NoError(t, err)
	return session
}

func TestLoadCompetitionWCIF(t *testing.T) {
	session := testSession(t)
	require.Equal(t, "TestopiaOpen2026", session.Model.CompetitionID())
	require.Equal(t, []string{"333", "pyram"}, session.Model.EventIDs())
	require.NotNil(t, session.Options.ByID(options.RoundBlanksID("333", 1)))
}

func TestEventSummaries(t *testing.T) {
	session := testSession(t)
	summaries, err := session.EventSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.Equal(t, "3x3x3 Cube", summaries[0].Name)
	require.Equal(t, 2, summaries[0].Rounds)
	// round 1 has two assigned competitors; round 2 estimates 75% of them
	require.Equal(t, 3, summaries[0].EstimatedCards)

	require.Equal(t, "Pyraminx", summaries[1].Name)
	require.Equal(t, 1, summaries[1].EstimatedCards)
}

func TestGenerate(t *testing.T) {
	session := testSession(t)

	var progressed []Progress
	docs, err := Generate(context.Background(), session, map[string]string{
		options.RoundBlanksID("333", 2): "1",
	}, nil, func(p Progress) {
		progressed = append(progressed, p)
	})
	require.NoError(t, err)

	require.Len(t, docs, 2)
	require.Equal(t, "TestopiaOpen2026-3x3x3_Cube.pdf", docs[0].FileName)
	require.Equal(t, "TestopiaOpen2026-Pyraminx.pdf", docs[1].FileName)
	for _, doc := range docs {
		require.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	}

	// one start and one done notification per event
	require.Len(t, progressed, 4)
	require.False(t, progressed[0].Done)
	require.True(t, progressed[1].Done)
	require.Equal(t, docs[0].FileName, progressed[1].FileName)
}

func TestGenerate_InvalidCutoffAborts(t *testing.T) {
	comp := testCompetition()
	comp.Events[0].Rounds[0].Cutoff = &wcif.Cutoff{NumberOfAttempts: 4, AttemptResult: 7000}
	data, err := json.Marshal(comp)
	require.NoError(t, err)
	session, err := LoadCompetitionWCIF(bytes.NewReader(data))
	require.NoError(t, err)

	docs, err := Generate(context.Background(), session, nil, nil, nil)
	require.Error(t, err)
	require.Nil(t, docs)
	require.Contains(t, err.Error(), "TestopiaOpen2026")
}

func TestGenerate_CanceledContextStops(t *testing.T) {
	session := testSession(t)
	ctx, cancel := context.WithCancel(context.Background())

	var progressed []Progress
	docs, err := Generate(ctx, session, nil, nil, func(p Progress) {
		progressed = append(progressed, p)
		if p.Done {
			cancel()
		}
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, docs)
	// the first event finishes, then the cancellation stops the run
	require.Len(t, progressed, 2)
	require.Equal(t, "333", progressed[1].EventID)
}

func TestFileName(t *testing.T) {
	require.Equal(t, "TestopiaOpen2026-3x3x3_One-Handed.pdf", FileName("TestopiaOpen2026", "333oh"))
}
