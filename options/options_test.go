package options

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nydauron/wcif-scorecards/wcif"
)

func testModel(rooms ...string) *wcif.Model {
	roomList := make([]wcif.Room, 0, len(rooms))
	for i, name := range rooms {
		roomList = append(roomList, wcif.Room{ID: i + 1, Name: name})
	}
	return wcif.NewModel(&wcif.Competition{
		ID:   "TestopiaOpen2026",
		Name: "Testopia Open 2026",
		Events: []wcif.Event{
			{ID: "333", Rounds: []wcif.Round{{ID: "333-r1", Format: "a"}, {ID: "333-r2", Format: "a"}}},
			{ID: "333fm", Rounds: []wcif.Round{{ID: "333fm-r1", Format: "m"}}},
			{ID: "pyram", Rounds: []wcif.Round{{ID: "pyram-r1", Format: "a"}}},
		},
		Schedule: wcif.Schedule{Venues: []wcif.Venue{{Rooms: roomList}}},
	})
}

func TestGenerateID(t *testing.T) {
	require.Equal(t, "blanks-333-r2", RoundBlanksID("333", 2))
	require.Equal(t, "room-Main_Hall", RoomAbbrevID("Main Hall"))
	// same parts always yield the same id
	require.Equal(t, GenerateID("a", "b c"), GenerateID("a", "b c"))
}

func TestBuild(t *testing.T) {
	set, err := Build(testModel("Main Hall", "Side Room"))
	require.NoError(t, err)

	// one blanks option per round of each non-excluded event, then rooms
	ids := make([]string, 0)
	for _, o := range set.All() {
		ids = append(ids, o.ID)
	}
	require.Equal(t, []string{
		"blanks-333-r1",
		"blanks-333-r2",
		"blanks-pyram-r1",
		"room-Main_Hall",
		"room-Side_Room",
	}, ids)

	require.Equal(t, "0", set.ByID("blanks-333-r1").Value)
	require.Equal(t, "M", set.ByID("room-Main_Hall").Default)
	require.Equal(t, "S", set.ByID("room-Side_Room").Default)
}

func TestBuild_NonASCIIRoomNames(t *testing.T) {
	set, err := Build(testModel("Зеленый зал", "青の間"))
	require.NoError(t, err)
	require.Equal(t, "З", set.ByID(RoomAbbrevID("Зеленый зал")).Default)
	require.Equal(t, "青", set.ByID(RoomAbbrevID("青の間")).Default)
}

func TestBuild_SingleRoomAbbrevEmpty(t *testing.T) {
	set, err := Build(testModel("Main Hall"))
	require.NoError(t, err)
	require.Equal(t, "", set.ByID("room-Main_Hall").Default)
	require.Equal(t, "", set.AbbrevFor("Main Hall"))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]string
		wantBlanks int
		wantAbbrev string
	}{
		{
			name:       "plain values",
			values:     map[string]string{"blanks-333-r1": "3", "room-Main_Hall": "A"},
			wantBlanks: 3,
			wantAbbrev: "A",
		},
		{
			name:       "negative count coerced to zero",
			values:     map[string]string{"blanks-333-r1": "-2"},
			wantBlanks: 0,
			wantAbbrev: "M",
		},
		{
			name:       "non-numeric count coerced to zero",
			values:     map[string]string{"blanks-333-r1": "lots"},
			wantBlanks: 0,
			wantAbbrev: "M",
		},
		{
			name:       "overlong abbreviation capped",
			values:     map[string]string{"room-Main_Hall": "MAIN"},
			wantBlanks: 0,
			wantAbbrev: "MA",
		},
		{
			name:       "multibyte abbreviation capped at rune boundary",
			values:     map[string]string{"room-Main_Hall": "ЗЕЛ"},
			wantBlanks: 0,
			wantAbbrev: "ЗЕ",
		},
		{
			name:       "two-rune non-latin abbreviation kept whole",
			values:     map[string]string{"room-Main_Hall": "ЗЗ"},
			wantBlanks: 0,
			wantAbbrev: "ЗЗ",
		},
		{
			name:       "unknown ids ignored",
			values:     map[string]string{"blanks-888-r9": "7"},
			wantBlanks: 0,
			wantAbbrev: "M",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Build(testModel("Main Hall", "Side Room"))
			require.NoError(t, err)
			set.Apply(tt.values)
			require.Equal(t, tt.wantBlanks, set.BlanksFor("333", 1))
			require.Equal(t, tt.wantAbbrev, set.AbbrevFor("Main Hall"))
		})
	}
}

func TestPresetRoundTrip(t *testing.T) {
	set, err := Build(testModel("Main Hall", "Side Room"))
	require.NoError(t, err)
	set.Apply(map[string]string{"blanks-333-r2": "2", "room-Side_Room": "SR"})

	var buf bytes.Buffer
	require.NoError(t, SavePreset(&buf, set))

	values, err := LoadPreset(&buf)
	require.NoError(t, err)
	require.Equal(t, "2", values["blanks-333-r2"])
	require.Equal(t, "SR", values["room-Side_Room"])

	fresh, err := Build(testModel("Main Hall", "Side Room"))
	require.NoError(t, err)
	fresh.Apply(values)
	require.Equal(t, 2, fresh.BlanksFor("333", 2))
	require.Equal(t, "SR", fresh.AbbrevFor("Side Room"))
}
