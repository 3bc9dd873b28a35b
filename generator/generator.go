// Package generator ties the pipeline together as a two-phase workflow:
// load a competition into a session, then generate one PDF per event from
// the session plus submitted option values.
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/render"
	"github.com/Nydauron/wcif-scorecards/scorecards"
	"github.com/Nydauron/wcif-scorecards/wcif"
)

// Session holds the loaded competition model and the session's options.
// It replaces any ambient "current competition" state; everything the
// generation pass needs is threaded through here explicitly.
type Session struct {
	Model   *wcif.Model
	Options *options.Set
}

// Document is one finished per-event PDF.
type Document struct {
	EventID  string
	FileName string
	Data     []byte
}

// EventSummary is a pre-generation overview row for one event.
type EventSummary struct {
	ID             string
	Name           string
	Rounds         int
	EstimatedCards int
}

// LoadCompetition fetches the competition's WCIF document and builds the
// session. The fetch happens exactly once and is not retried.
func LoadCompetition(ctx context.Context, client *http.Client, baseURL, competitionID string) (*Session, error) {
	comp, err := wcif.Fetch(ctx, client, baseURL, competitionID)
	if err != nil {
		return nil, err
	}
	return newSession(comp)
}

// LoadCompetitionWCIF builds a session from an already retrieved WCIF
// JSON document, e.g. a local file.
func LoadCompetitionWCIF(r io.Reader) (*Session, error) {
	comp, err := wcif.Decode(r)
	if err != nil {
		return nil, err
	}
	return newSession(comp)
}

func newSession(comp *wcif.Competition) (*Session, error) {
	model := wcif.NewModel(comp)
	opts, err := options.Build(model)
	if err != nil {
		return nil, err
	}
	return &Session{Model: model, Options: opts}, nil
}

// EventSummaries estimates per-event scorecard needs before generation,
// using assigned groups where they exist and advancement estimates where
// they do not.
func (s *Session) EventSummaries() ([]EventSummary, error) {
	var summaries []EventSummary
	for _, eventID := range s.Model.EventIDs() {
		numRounds, err := s.Model.NumRounds(eventID)
		if err != nil {
			return nil, err
		}
		cards := 0
		for round := 1; round <= numRounds; round++ {
			n, err := s.Model.NumAdvancingToRound(eventID, round)
			if err != nil {
				return nil, err
			}
			cards += n
		}
		summaries = append(summaries, EventSummary{
			ID:             eventID,
			Name:           wcif.EventName(eventID),
			Rounds:         numRounds,
			EstimatedCards: cards,
		})
	}
	return summaries, nil
}

// Progress reports generation progress for one event: once with Done
// false before rendering, once with Done true and the file name after.
type Progress struct {
	Index    int
	Count    int
	EventID  string
	Done     bool
	FileName string
}

// ProgressFunc receives Progress updates during Generate.
type ProgressFunc func(p Progress)

// Generate applies the submitted option values and renders every event's
// scorecards sequentially. Any stage failure aborts the whole run; there
// is no partial output. Cancelling ctx stops before the next event.
func Generate(ctx context.Context, s *Session, values map[string]string, logger *slog.Logger, progress ProgressFunc) ([]Document, error) {
	s.Options.Apply(values)
	engine := render.NewEngine(logger)
	eventIDs := s.Model.EventIDs()

	var docs []Document
	for i, eventID := range eventIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(Progress{Index: i, Count: len(eventIDs), EventID: eventID})
		}
		records, err := scorecards.DeriveForEvent(s.Model, s.Options, eventID)
		if err != nil {
			return nil, fmt.Errorf("deriving %s scorecards for %s: %w", eventID, s.Model.CompetitionID(), err)
		}
		cards := make([]scorecards.Formatted, 0, len(records))
		for _, rec := range records {
			card, err := scorecards.Format(s.Model, s.Options, rec)
			if err != nil {
				return nil, fmt.Errorf("formatting %s round %d for %s: %w", rec.EventID, rec.Round, s.Model.CompetitionID(), err)
			}
			cards = append(cards, card)
		}
		data, err := engine.RenderEvent(eventID, cards)
		if err != nil {
			return nil, fmt.Errorf("rendering %s for %s: %w", eventID, s.Model.CompetitionID(), err)
		}
		doc := Document{
			EventID:  eventID,
			FileName: FileName(s.Model.CompetitionID(), eventID),
			Data:     data,
		}
		docs = append(docs, doc)
		if progress != nil {
			progress(Progress{Index: i, Count: len(eventIDs), EventID: eventID, Done: true, FileName: doc.FileName})
		}
	}
	return docs, nil
}

// FileName is the deterministic output name for an event's document.
func FileName(competitionID, eventID string) string {
	return fmt.Sprintf("%s-%s.pdf", competitionID, wcif.SanitizeEventName(eventID))
}
