package wcif

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var activityCodeRegex = regexp.MustCompile(`^([a-z0-9]+)-r(\d+)(?:-g(\d+))?(?:-a(\d+))?$`)

// activityCode is the decomposed form of a WCIF activity code such as
// "333-r1-g2" or "333mbf-r1-g1-a1".
type activityCode struct {
	EventID string
	Round   int
	Group   int
	Attempt int
}

func parseActivityCode(code string) (activityCode, bool) {
	m := activityCodeRegex.FindStringSubmatch(code)
	if m == nil {
		return activityCode{}, false
	}
	round, _ := strconv.Atoi(m[2])
	parsed := activityCode{EventID: m[1], Round: round}
	if m[3] != "" {
		parsed.Group, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		parsed.Attempt, _ = strconv.Atoi(m[4])
	}
	return parsed, true
}

type groupActivity struct {
	id       int
	code     activityCode
	roomName string
}

// Model is a read-only view over a Competition document with the lookup
// maps the derivation pipeline needs. All query methods are pure.
type Model struct {
	comp *Competition

	eventsByID  map[string]*Event
	personsByID map[int]*Person
	roomNames   []string

	// group activities in schedule order, keyed by "event-r<round>"
	groupsByRound map[string][]groupActivity
	groupsByID    map[int]groupActivity

	// registrant ids per activity id, in persons-list order
	competitorsByActivity map[int][]int
}

// NewModel indexes a competition document. The document is not copied;
// callers must treat it as immutable afterwards.
func NewModel(comp *Competition) *Model {
	m := &Model{
		comp:                  comp,
		eventsByID:            map[string]*Event{},
		personsByID:           map[int]*Person{},
		groupsByRound:         map[string][]groupActivity{},
		groupsByID:            map[int]groupActivity{},
		competitorsByActivity: map[int][]int{},
	}
	for i := range comp.Events {
		e := &comp.Events[i]
		m.eventsByID[e.ID] = e
	}
	for i := range comp.Persons {
		p := &comp.Persons[i]
		if p.RegistrantID != 0 {
			m.personsByID[p.RegistrantID] = p
		}
	}
	for _, venue := range comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			m.roomNames = append(m.roomNames, room.Name)
			for _, act := range room.Activities {
				m.indexGroups(act, room.Name)
			}
		}
	}
	for i := range comp.Persons {
		p := &comp.Persons[i]
		for _, a := range p.Assignments {
			if a.AssignmentCode != AssignmentCompetitor {
				continue
			}
			m.competitorsByActivity[a.ActivityID] = append(m.competitorsByActivity[a.ActivityID], p.RegistrantID)
		}
	}
	return m
}

// indexGroups walks an activity tree and records every group-level child.
// Multi-blind attempts repeat the same group with an attempt suffix; only
// the first occurrence of each (event, round, group) is kept.
func (m *Model) indexGroups(act Activity, roomName string) {
	for _, child := range act.ChildActivities {
		code, ok := parseActivityCode(child.ActivityCode)
		if ok && code.Group > 0 {
			key := roundKey(code.EventID, code.Round)
			if !m.hasGroup(key, code.Group, roomName) {
				g := groupActivity{id: child.ID, code: code, roomName: roomName}
				m.groupsByRound[key] = append(m.groupsByRound[key], g)
				m.groupsByID[child.ID] = g
			} else {
				m.groupsByID[child.ID] = groupActivity{id: child.ID, code: code, roomName: roomName}
			}
		}
		m.indexGroups(child, roomName)
	}
}

func (m *Model) hasGroup(key string, group int, roomName string) bool {
	for _, g := range m.groupsByRound[key] {
		if g.code.Group == group && g.roomName == roomName {
			return true
		}
	}
	return false
}

func roundKey(eventID string, round int) string {
	return fmt.Sprintf("%s-r%d", eventID, round)
}

// ParseRoundID splits a WCIF round id such as "555-r2" into its event id
// and round number.
func ParseRoundID(id string) (eventID string, round int, err error) {
	code, ok := parseActivityCode(id)
	if !ok || code.Group != 0 || code.Attempt != 0 {
		return "", 0, &NotFoundError{Kind: "round", ID: id}
	}
	return code.EventID, code.Round, nil
}

func (m *Model) CompetitionID() string {
	return m.comp.ID
}

func (m *Model) CompetitionName() string {
	return m.comp.Name
}

// EventIDs returns event ids in document order, excluding Fewest Moves.
func (m *Model) EventIDs() []string {
	ids := make([]string, 0, len(m.comp.Events))
	for _, e := range m.comp.Events {
		if e.ID == FewestMovesID {
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}

func (m *Model) event(eventID string) (*Event, error) {
	e, ok := m.eventsByID[eventID]
	if !ok {
		return nil, &NotFoundError{Kind: "event", ID: eventID}
	}
	return e, nil
}

func (m *Model) round(eventID string, round int) (*Round, error) {
	e, err := m.event(eventID)
	if err != nil {
		return nil, err
	}
	if round < 1 || round > len(e.Rounds) {
		return nil, &NotFoundError{Kind: "round", ID: roundKey(eventID, round)}
	}
	return &e.Rounds[round-1], nil
}

func (m *Model) NumRounds(eventID string) (int, error) {
	e, err := m.event(eventID)
	if err != nil {
		return 0, err
	}
	return len(e.Rounds), nil
}

func (m *Model) Format(eventID string, round int) (string, error) {
	r, err := m.round(eventID, round)
	if err != nil {
		return "", err
	}
	return r.Format, nil
}

// Cutoff returns the round's cutoff, or nil if the round has none.
func (m *Model) Cutoff(eventID string, round int) (*Cutoff, error) {
	r, err := m.round(eventID, round)
	if err != nil {
		return nil, err
	}
	return r.Cutoff, nil
}

// TimeLimit returns the round's time limit. It is nil only for
// multi-blind, which has no WCIF time limit.
func (m *Model) TimeLimit(eventID string, round int) (*TimeLimit, error) {
	r, err := m.round(eventID, round)
	if err != nil {
		return nil, err
	}
	return r.TimeLimit, nil
}

// GroupActivityIDs returns the round's group activity ids in schedule
// order (venue, then room, then listed order). Empty if the schedule has
// not assigned groups yet.
func (m *Model) GroupActivityIDs(eventID string, round int) ([]int, error) {
	if _, err := m.round(eventID, round); err != nil {
		return nil, err
	}
	groups := m.groupsByRound[roundKey(eventID, round)]
	ids := make([]int, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.id)
	}
	return ids, nil
}

// CompetitorsInActivity returns registrant ids of persons assigned as
// competitors to the activity, in persons-list order.
func (m *Model) CompetitorsInActivity(activityID int) ([]int, error) {
	if _, ok := m.groupsByID[activityID]; !ok {
		return nil, &NotFoundError{Kind: "activity", ID: strconv.Itoa(activityID)}
	}
	return m.competitorsByActivity[activityID], nil
}

func (m *Model) GroupNumber(activityID int) (int, error) {
	g, ok := m.groupsByID[activityID]
	if !ok {
		return 0, &NotFoundError{Kind: "activity", ID: strconv.Itoa(activityID)}
	}
	return g.code.Group, nil
}

func (m *Model) GroupRoom(activityID int) (string, error) {
	g, ok := m.groupsByID[activityID]
	if !ok {
		return "", &NotFoundError{Kind: "activity", ID: strconv.Itoa(activityID)}
	}
	return g.roomName, nil
}

func (m *Model) RoomNames() []string {
	return m.roomNames
}

func (m *Model) RoomCount() int {
	return len(m.roomNames)
}

func (m *Model) person(registrantID int) (*Person, error) {
	p, ok := m.personsByID[registrantID]
	if !ok {
		return nil, &NotFoundError{Kind: "person", ID: strconv.Itoa(registrantID)}
	}
	return p, nil
}

func (m *Model) IsNewCompetitor(registrantID int) (bool, error) {
	p, err := m.person(registrantID)
	if err != nil {
		return false, err
	}
	return p.WCAID == "", nil
}

func (m *Model) WCAID(registrantID int) (string, error) {
	p, err := m.person(registrantID)
	if err != nil {
		return "", err
	}
	return p.WCAID, nil
}

func (m *Model) PersonName(registrantID int) (string, error) {
	p, err := m.person(registrantID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// RegisteredCount returns the number of accepted registrants for an event.
func (m *Model) RegisteredCount(eventID string) int {
	count := 0
	for _, p := range m.comp.Persons {
		if p.Registration == nil || p.Registration.Status != RegistrationAccepted {
			continue
		}
		for _, id := range p.Registration.EventIDs {
			if id == eventID {
				count++
				break
			}
		}
	}
	return count
}

// assignedCount returns the number of distinct competitors across the
// round's group activities, and whether groups exist at all.
func (m *Model) assignedCount(eventID string, round int) (int, bool) {
	groups := m.groupsByRound[roundKey(eventID, round)]
	if len(groups) == 0 {
		return 0, false
	}
	seen := map[int]struct{}{}
	for _, g := range groups {
		for _, registrantID := range m.competitorsByActivity[g.id] {
			seen[registrantID] = struct{}{}
		}
	}
	return len(seen), true
}

// NumAdvancingToRound estimates how many competitors reach a round. If the
// round already has groups assigned, the assigned competitor count is
// authoritative. Otherwise the estimate starts from the nearest earlier
// round with groups (or round 1's registration count) and applies each
// intervening round's advancement condition: percentage advancement
// multiplies and floors the running total, ranking advancement replaces it
// with the fixed count.
func (m *Model) NumAdvancingToRound(eventID string, round int) (int, error) {
	if _, err := m.round(eventID, round); err != nil {
		return 0, err
	}
	if count, ok := m.assignedCount(eventID, round); ok {
		return count, nil
	}

	base := 1
	count := 0
	found := false
	for r := round - 1; r >= 1; r-- {
		if assigned, ok := m.assignedCount(eventID, r); ok {
			base, count, found = r, assigned, true
			break
		}
	}
	if !found {
		count = m.RegisteredCount(eventID)
	}

	for r := base; r < round; r++ {
		prev, err := m.round(eventID, r)
		if err != nil {
			return 0, err
		}
		cond := prev.AdvancementCondition
		if cond == nil {
			continue
		}
		switch cond.Type {
		case "percent":
			count = count * cond.Level / 100
		case "ranking":
			count = cond.Level
		}
	}
	return count, nil
}

// SanitizeEventName returns the event display name with spaces replaced,
// suitable for file names.
func SanitizeEventName(eventID string) string {
	return strings.ReplaceAll(EventName(eventID), " ", "_")
}
