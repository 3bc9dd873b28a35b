// Package options models the user-configurable generation values: blank
// scorecard counts per round and room abbreviations. Option ids are
// deterministic so submitted values can be matched back to their target.
package options

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Nydauron/wcif-scorecards/wcif"
)

// Kind selects how an option's value is interpreted.
type Kind int

const (
	// KindRoundBlanks is a non-negative count of extra blank pages for a
	// round (each page holds four scorecards).
	KindRoundBlanks Kind = iota
	// KindRoomAbbrev is a short (at most two character) room abbreviation
	// printed in front of the group number.
	KindRoomAbbrev
)

// RoomAbbrevMaxLen caps room abbreviations so group labels stay short.
const RoomAbbrevMaxLen = 2

// Option is one configurable value. Value defaults to Default until
// overwritten by Apply.
type Option struct {
	ID      string
	Kind    Kind
	Label   string
	Default string
	Value   string
}

// GenerateID builds a deterministic option id from its semantic key parts.
// Spaces are replaced so ids stay usable as form field names.
func GenerateID(parts ...string) string {
	return strings.ReplaceAll(strings.Join(parts, "-"), " ", "_")
}

// RoundBlanksID is the id of the blank-pages option for an event round.
func RoundBlanksID(eventID string, round int) string {
	return GenerateID("blanks", eventID, fmt.Sprintf("r%d", round))
}

// RoomAbbrevID is the id of the abbreviation option for a room.
func RoomAbbrevID(roomName string) string {
	return GenerateID("room", roomName)
}

// Set holds the options for one generation session, in enumeration order.
type Set struct {
	opts []*Option
	byID map[string]*Option
}

// Build enumerates the session's options from the competition model: one
// round-blanks option per (event, round) across non-excluded events, then
// one abbreviation option per room. With a single room the abbreviation
// defaults to empty; otherwise to the room name's uppercased first letter.
func Build(m *wcif.Model) (*Set, error) {
	s := &Set{byID: map[string]*Option{}}
	for _, eventID := range m.EventIDs() {
		numRounds, err := m.NumRounds(eventID)
		if err != nil {
			return nil, err
		}
		for round := 1; round <= numRounds; round++ {
			s.add(&Option{
				ID:      RoundBlanksID(eventID, round),
				Kind:    KindRoundBlanks,
				Label:   fmt.Sprintf("Blank pages for %s round %d", wcif.EventName(eventID), round),
				Default: "0",
			})
		}
	}
	singleRoom := m.RoomCount() == 1
	for _, roomName := range m.RoomNames() {
		def := ""
		if !singleRoom && roomName != "" {
			first, _ := utf8.DecodeRuneInString(roomName)
			def = string(unicode.ToUpper(first))
		}
		s.add(&Option{
			ID:      RoomAbbrevID(roomName),
			Kind:    KindRoomAbbrev,
			Label:   fmt.Sprintf("Abbreviation for room %q", roomName),
			Default: def,
		})
	}
	return s, nil
}

func (s *Set) add(o *Option) {
	o.Value = o.Default
	s.opts = append(s.opts, o)
	s.byID[o.ID] = o
}

// All returns the options in enumeration order.
func (s *Set) All() []*Option {
	return s.opts
}

// ByID returns the option with the given id, or nil.
func (s *Set) ByID(id string) *Option {
	return s.byID[id]
}

// Apply overwrites option values from submitted form data. Unknown ids are
// ignored; values are coerced per kind but not otherwise validated.
func (s *Set) Apply(values map[string]string) {
	for id, value := range values {
		o, ok := s.byID[id]
		if !ok {
			continue
		}
		switch o.Kind {
		case KindRoundBlanks:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				n = 0
			}
			o.Value = strconv.Itoa(n)
		case KindRoomAbbrev:
			v := strings.TrimSpace(value)
			if utf8.RuneCountInString(v) > RoomAbbrevMaxLen {
				v = string([]rune(v)[:RoomAbbrevMaxLen])
			}
			o.Value = v
		}
	}
}

// BlanksFor returns the user-requested blank page count for a round.
func (s *Set) BlanksFor(eventID string, round int) int {
	o := s.byID[RoundBlanksID(eventID, round)]
	if o == nil {
		return 0
	}
	n, err := strconv.Atoi(o.Value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AbbrevFor returns the abbreviation for a room, empty if unset.
func (s *Set) AbbrevFor(roomName string) string {
	o := s.byID[RoomAbbrevID(roomName)]
	if o == nil {
		return ""
	}
	return o.Value
}

// Values returns the current id to value mapping.
func (s *Set) Values() map[string]string {
	values := make(map[string]string, len(s.opts))
	for _, o := range s.opts {
		values[o.ID] = o.Value
	}
	return values
}
