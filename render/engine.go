package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/Nydauron/wcif-scorecards/scorecards"
)

const fontFamily = "Helvetica"

// penaltyExample is the fixed reminder line printed under the time limit.
const penaltyExample = "Penalty example: 25.31 with a +2 becomes 27.31"

// Engine renders one PDF document per event.
type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// RenderEvent lays the event's cards out four per page and returns the
// finished PDF. A last page holding fewer than four cards is only a
// warning; more than four in a chunk means the deriver broke its own
// invariant and is fatal.
func (e *Engine) RenderEvent(eventID string, cards []scorecards.Formatted) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for pageNum, chunk := range chunkCards(cards) {
		if len(chunk) > scorecards.ScorecardsPerPage {
			return nil, &LayoutError{Reason: fmt.Sprintf("event %s page %d holds %d cards", eventID, pageNum+1, len(chunk))}
		}
		if len(chunk) < scorecards.ScorecardsPerPage {
			e.logger.Warn("under-filled scorecard page",
				"event", eventID, "page", pageNum+1, "cards", len(chunk))
		}
		doc.AddPage()
		drawCutGuides(doc)
		for i, card := range chunk {
			x, y := quadrantOrigin(i)
			if err := drawScorecard(doc, tr, x, y, card); err != nil {
				return nil, err
			}
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("rendering event %s: %w", eventID, doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering event %s: %w", eventID, err)
	}
	return buf.Bytes(), nil
}

// drawCutGuides draws light dashed lines across the page midpoints so the
// sheet can be cut into four cards.
func drawCutGuides(doc *fpdf.Fpdf) {
	doc.SetDrawColor(180, 180, 180)
	doc.SetLineWidth(0.1)
	doc.SetDashPattern([]float64{2, 2}, 0)
	doc.Line(0, pageHeight/2, pageWidth, pageHeight/2)
	doc.Line(pageWidth/2, 0, pageWidth/2, pageHeight)
	doc.SetDashPattern([]float64{}, 0)
	doc.SetDrawColor(0, 0, 0)
}

// drawScorecard draws one card's fixed region sequence at quadrant origin
// (x0, y0).
func drawScorecard(doc *fpdf.Fpdf, tr func(string) string, x0, y0 float64, card scorecards.Formatted) error {
	x := x0 + cardMargin
	y := y0 + 6

	// competition name
	doc.SetFont(fontFamily, "B", 10)
	doc.SetXY(x, y)
	doc.CellFormat(contentW, 5, tr(card.CompName), "", 0, "C", false, 0, "")
	y += 7

	y = drawHeaderTable(doc, tr, x, y, card)

	if card.Kind == scorecards.KindCompetitor {
		name := card.RomanName
		if card.TranslatedName != "" {
			name = fmt.Sprintf("%s (%s)", card.RomanName, card.TranslatedName)
		}
		size := fitFontSize(doc, tr(name), "B", 11, 6, contentW)
		doc.SetFont(fontFamily, "B", size)
		doc.SetXY(x, y)
		doc.CellFormat(contentW, 5, tr(name), "", 0, "C", false, 0, "")
		y += 5.5

		doc.SetFont(fontFamily, "", 9)
		doc.SetXY(x, y)
		doc.CellFormat(contentW, 4, tr(card.WCAID), "", 0, "C", false, 0, "")
		y += 5.5
	} else {
		// blank cards leave the identity block as writing space
		y += 11
	}

	var err error
	y, err = drawTimeLimit(doc, tr, x, y, card)
	if err != nil {
		return err
	}

	doc.SetFont(fontFamily, "I", 7)
	doc.SetTextColor(90, 90, 90)
	doc.SetXY(x, y)
	doc.CellFormat(contentW, 3.5, penaltyExample, "", 0, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	y += 5

	return drawAttemptTables(doc, tr, x, y, y0+cardHeight-5, card)
}

// drawHeaderTable draws the three-cell identity grid: registrant id,
// event/round label, group label.
func drawHeaderTable(doc *fpdf.Fpdf, tr func(string) string, x, y float64, card scorecards.Formatted) float64 {
	const idW, groupW = 16.0, 16.0
	labelW := contentW - idW - groupW

	doc.SetFont(fontFamily, "", 9)
	doc.SetXY(x, y)
	doc.CellFormat(idW, 6, card.RegistrantID, "1", 0, "C", false, 0, "")

	size := fitFontSize(doc, tr(card.EventRound), "", 9, 6, labelW-2)
	doc.SetFont(fontFamily, "", size)
	doc.CellFormat(labelW, 6, tr(card.EventRound), "1", 0, "C", false, 0, "")

	doc.SetFont(fontFamily, "", 9)
	doc.CellFormat(groupW, 6, tr(card.GroupLabel), "1", 0, "C", false, 0, "")
	return y + 8
}

// drawTimeLimit draws the bold label plus sentence, wrapping onto a second
// centered line when the pair overflows the card width.
func drawTimeLimit(doc *fpdf.Fpdf, tr func(string) string, x, y float64, card scorecards.Formatted) (float64, error) {
	label := card.TimeLimitLabel + ": "
	sentence := card.TimeLimitSentence
	if sentence == "" {
		label = card.TimeLimitLabel
	}

	measureLabel := func(s string) float64 {
		doc.SetFont(fontFamily, "B", 8)
		return doc.GetStringWidth(tr(s))
	}
	measureText := func(s string) float64 {
		doc.SetFont(fontFamily, "", 8)
		return doc.GetStringWidth(tr(s))
	}

	first, second, err := splitToFit(measureLabel, measureText, label, sentence, contentW)
	if err != nil {
		return 0, err
	}

	lineW := measureLabel(label) + measureText(first)
	doc.SetXY(x+(contentW-lineW)/2, y)
	doc.SetFont(fontFamily, "B", 8)
	doc.CellFormat(measureLabel(label), 4, tr(label), "", 0, "L", false, 0, "")
	doc.SetFont(fontFamily, "", 8)
	doc.CellFormat(measureText(first), 4, tr(first), "", 0, "L", false, 0, "")
	y += 4
	if second != "" {
		doc.SetXY(x, y)
		doc.CellFormat(contentW, 4, tr(second), "", 0, "C", false, 0, "")
		y += 4
	}
	return y + 1, nil
}

// attempt table column widths: attempt number, station, result, judge,
// competitor signature.
var attemptCols = []float64{7, 12, 44, 14, 14}

var attemptHeaders = []string{"", "St.", "Result", "Judge", "Comp."}

// drawAttemptTables draws the pre-cutoff rows, the optional cutoff line
// and post-cutoff rows, and the two extra-attempt rows. Row height is
// content-driven: the remaining vertical space is split across all rows.
func drawAttemptTables(doc *fpdf.Fpdf, tr func(string) string, x, y, bottom float64, card scorecards.Formatted) error {
	rows := card.AttemptsPre + card.AttemptsPost + 2
	fixed := 3.5 + 4.0 // column header + extras header
	if card.CutoffSentence != "" {
		fixed += 4.0
	}
	rowH := (bottom - y - fixed) / float64(rows)
	if rowH > 8.5 {
		rowH = 8.5
	}
	if rowH < 5 {
		return &LayoutError{Reason: fmt.Sprintf("%d attempt rows do not fit a card", rows)}
	}

	doc.SetFont(fontFamily, "", 6)
	doc.SetXY(x, y)
	for i, header := range attemptHeaders {
		doc.CellFormat(attemptCols[i], 3.5, header, "", 0, "C", false, 0, "")
	}
	y += 3.5

	y = drawAttemptRows(doc, x, y, rowH, 1, card.AttemptsPre, false)

	if card.CutoffSentence != "" {
		doc.SetFont(fontFamily, "", 7)
		doc.SetXY(x, y)
		doc.CellFormat(contentW, 4, tr("Cutoff: "+card.CutoffSentence), "", 0, "C", false, 0, "")
		y += 4
		y = drawAttemptRows(doc, x, y, rowH, card.AttemptsPre+1, card.AttemptsPost, false)
	}

	doc.SetFont(fontFamily, "B", 7)
	doc.SetXY(x, y)
	doc.CellFormat(contentW, 4, "Extras", "", 0, "C", false, 0, "")
	y += 4
	drawAttemptRows(doc, x, y, rowH, 0, 2, true)
	return nil
}

// drawAttemptRows draws count bordered attempt rows starting at attempt
// number first. Extra rows are dimmed and pre-label the station column
// with "D" for the delegate's initials.
func drawAttemptRows(doc *fpdf.Fpdf, x, y, rowH float64, first, count int, extra bool) float64 {
	if extra {
		doc.SetTextColor(150, 150, 150)
		doc.SetDrawColor(150, 150, 150)
	}
	doc.SetFont(fontFamily, "", 8)
	for i := 0; i < count; i++ {
		doc.SetXY(x, y)
		label := "_"
		station := ""
		if !extra {
			label = strconv.Itoa(first + i)
		} else {
			station = "D"
		}
		cells := []string{label, station, "", "", ""}
		for c, w := range attemptCols {
			border := "1"
			if c == 0 {
				border = ""
			}
			doc.CellFormat(w, rowH, cells[c], border, 0, "C", false, 0, "")
		}
		y += rowH
	}
	if extra {
		doc.SetTextColor(0, 0, 0)
		doc.SetDrawColor(0, 0, 0)
	}
	return y
}

// fitFontSize steps the font size down until text fits the width, not
// going below min.
func fitFontSize(doc *fpdf.Fpdf, text, style string, max, min, width float64) float64 {
	size := max
	for size > min {
		doc.SetFont(fontFamily, style, size)
		if doc.GetStringWidth(text) <= width {
			break
		}
		size -= 0.5
	}
	return size
}
