package scorecards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nydauron/wcif-scorecards/options"
	"github.com/Nydauron/wcif-scorecards/wcif"
)

// InvalidCutoffError is returned when a round declares a cutoff threshold
// other than 1 or 2. Real competition data never produces this; fabricating
// a sentence for it would print a wrong instruction, so it is fatal.
type InvalidCutoffError struct {
	EventID  string
	Round    int
	Attempts int
}

func (e *InvalidCutoffError) Error() string {
	return fmt.Sprintf("%s round %d: cutoff after %d attempts is not supported", e.EventID, e.Round, e.Attempts)
}

// expectedAttempts maps a round format code to its attempt count.
var expectedAttempts = map[string]int{
	"a": 5,
	"m": 3,
	"1": 1,
	"2": 2,
	"3": 3,
	"5": 5,
}

// nominalPreCutoff is the attempt count printed before the cutoff line
// when an average or mean round has no cutoff declared. A declared cutoff
// is honored on any format.
var nominalPreCutoff = map[string]int{
	"a": 2,
	"m": 1,
}

// Formatted is the final display form of one scorecard, one-to-one with a
// Record. All fields are plain strings/numbers ready to draw.
type Formatted struct {
	Kind     RecordKind
	CompName string

	RegistrantID   string
	RomanName      string
	TranslatedName string
	WCAID          string

	EventRound string
	GroupLabel string

	AttemptsPre    int
	AttemptsPost   int
	CutoffSentence string

	TimeLimitLabel    string
	TimeLimitSentence string
}

// SplitName splits a raw person name into its roman-script part and an
// optional parenthesized translation, e.g. "Jason Chang (章維祐)".
func SplitName(raw string) (roman, translated string) {
	open := strings.Index(raw, "(")
	if open < 0 {
		return strings.TrimSpace(raw), ""
	}
	roman = strings.TrimSpace(raw[:open])
	translated = strings.TrimSuffix(raw[open+1:], ")")
	return roman, translated
}

// HumanDuration renders centiseconds as e.g. "1 minute 10 seconds".
// Zero-valued components are omitted; an all-zero duration is empty.
func HumanDuration(centiseconds int) string {
	hours := centiseconds / 360000
	minutes := centiseconds % 360000 / 6000
	seconds := float64(centiseconds%6000) / 100

	var parts []string
	if hours > 0 {
		parts = append(parts, durationPart(float64(hours), "hour"))
	}
	if minutes > 0 {
		parts = append(parts, durationPart(float64(minutes), "minute"))
	}
	if seconds > 0 {
		parts = append(parts, durationPart(seconds, "second"))
	}
	return strings.Join(parts, " ")
}

func durationPart(value float64, unit string) string {
	rendered := strconv.FormatFloat(value, 'f', -1, 64)
	if value != 1 {
		unit += "s"
	}
	return rendered + " " + unit
}

// RoundLabel is the event/round display text, "Final" for the last round.
func RoundLabel(eventName string, round, totalRounds int) string {
	if round == totalRounds {
		return fmt.Sprintf("%s Final", eventName)
	}
	return fmt.Sprintf("%s Round %d", eventName, round)
}

// Format derives the display values for one record. opts supplies room
// abbreviations for the group label; m resolves cumulative time-limit
// references to round labels.
func Format(m *wcif.Model, opts *options.Set, rec Record) (Formatted, error) {
	f := Formatted{
		Kind:       rec.Kind,
		CompName:   m.CompetitionName(),
		EventRound: RoundLabel(wcif.EventName(rec.EventID), rec.Round, rec.TotalRounds),
	}

	if rec.Kind == KindCompetitor {
		f.RegistrantID = strconv.Itoa(rec.RegistrantID)
		f.RomanName, f.TranslatedName = SplitName(rec.Name)
		f.WCAID = rec.WCAID
		if f.WCAID == "" {
			f.WCAID = "New Competitor"
		}
		f.GroupLabel = fmt.Sprintf("%s%d", opts.AbbrevFor(rec.Room), rec.Group)
	}

	if err := formatCutoff(&f, rec); err != nil {
		return Formatted{}, err
	}
	if err := formatTimeLimit(m, &f, rec); err != nil {
		return Formatted{}, err
	}
	return f, nil
}

func formatCutoff(f *Formatted, rec Record) error {
	total := expectedAttempts[rec.Format]
	nominal, capable := nominalPreCutoff[rec.Format]

	switch {
	case rec.Cutoff != nil:
		var wording string
		switch rec.Cutoff.NumberOfAttempts {
		case 1:
			wording = "1"
		case 2:
			wording = "1 or 2"
		default:
			return &InvalidCutoffError{EventID: rec.EventID, Round: rec.Round, Attempts: rec.Cutoff.NumberOfAttempts}
		}
		f.AttemptsPre = rec.Cutoff.NumberOfAttempts
		f.AttemptsPost = total - f.AttemptsPre
		f.CutoffSentence = fmt.Sprintf("Continue if %s < %s", wording, HumanDuration(rec.Cutoff.AttemptResult))
	case capable:
		f.AttemptsPre = nominal
		f.AttemptsPost = total - nominal
		f.CutoffSentence = "N/A"
	default:
		f.AttemptsPre = total
		f.AttemptsPost = 0
	}
	return nil
}

func formatTimeLimit(m *wcif.Model, f *Formatted, rec Record) error {
	if rec.EventID == wcif.MultiBlindID {
		f.TimeLimitLabel = "Time limit per solve"
		f.TimeLimitSentence = "10 minutes per cube, up to 1 hour"
		return nil
	}
	if rec.TimeLimit == nil {
		f.TimeLimitLabel = "Time limit per solve"
		return nil
	}

	duration := HumanDuration(rec.TimeLimit.Centiseconds)
	refs := rec.TimeLimit.CumulativeRoundIDs
	if len(refs) == 0 {
		f.TimeLimitLabel = "Time limit per solve"
		f.TimeLimitSentence = fmt.Sprintf("DNF if ≥ %s", duration)
		return nil
	}

	f.TimeLimitLabel = "Cumulative time limit"
	switch len(refs) {
	case 1:
		f.TimeLimitSentence = duration
	case 2:
		labels := make([]string, 2)
		for i, ref := range refs {
			eventID, round, err := wcif.ParseRoundID(ref)
			if err != nil {
				return err
			}
			total, err := m.NumRounds(eventID)
			if err != nil {
				return err
			}
			labels[i] = RoundLabel(wcif.EventName(eventID), round, total)
		}
		f.TimeLimitSentence = fmt.Sprintf("%s for %s and %s", duration, labels[0], labels[1])
	default:
		f.TimeLimitSentence = fmt.Sprintf("%s, shared by %d events", duration, len(refs))
	}
	return nil
}
