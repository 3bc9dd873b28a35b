// Package render lays formatted scorecards out four to an A4 page and
// draws them through go-pdf/fpdf.
package render

import (
	"fmt"
	"strings"

	"github.com/Nydauron/wcif-scorecards/scorecards"
)

// LayoutError signals a layout invariant violation: a page chunk holding
// more than four cards, or text that cannot be wrapped to fit. Both point
// at a derivation or formatting bug, never at user input.
type LayoutError struct {
	Reason string
}

func (e *LayoutError) Error() string {
	return "layout: " + e.Reason
}

// Page geometry in millimeters, A4 portrait.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	cardWidth  = pageWidth / 2
	cardHeight = pageHeight / 2
	cardMargin = 7.0
	contentW   = cardWidth - 2*cardMargin
)

// quadrantOrigin returns the top-left corner of card slot i (row-major:
// top-left, top-right, bottom-left, bottom-right).
func quadrantOrigin(i int) (x, y float64) {
	x = float64(i%2) * cardWidth
	y = float64(i/2) * cardHeight
	return x, y
}

// chunkCards partitions cards into consecutive pages of at most four.
func chunkCards(cards []scorecards.Formatted) [][]scorecards.Formatted {
	var chunks [][]scorecards.Formatted
	for len(cards) > 0 {
		n := scorecards.ScorecardsPerPage
		if len(cards) < n {
			n = len(cards)
		}
		chunks = append(chunks, cards[:n])
		cards = cards[n:]
	}
	return chunks
}

// splitToFit breaks text after a bold label so that the label plus the
// leading words of text fit within maxWidth. measure must report the
// rendered width of a string in the label's, respectively the text's,
// font; the label is measured as-is and never broken. The remainder goes
// on the second line and must itself fit. An unsatisfiable fit is a
// LayoutError.
func splitToFit(measureLabel, measureText func(string) float64, label, text string, maxWidth float64) (first, second string, err error) {
	labelWidth := measureLabel(label)
	if labelWidth > maxWidth {
		return "", "", &LayoutError{Reason: fmt.Sprintf("label %q does not fit width %.1f", label, maxWidth)}
	}
	if labelWidth+measureText(text) <= maxWidth {
		return text, "", nil
	}

	words := strings.Split(text, " ")
	for cut := len(words) - 1; cut > 0; cut-- {
		head := strings.Join(words[:cut], " ")
		if labelWidth+measureText(head) <= maxWidth {
			tail := strings.Join(words[cut:], " ")
			// a shorter head only lengthens the tail, so this is the
			// only split worth checking
			if measureText(tail) > maxWidth {
				return "", "", &LayoutError{Reason: fmt.Sprintf("text %q does not wrap within width %.1f", text, maxWidth)}
			}
			return head, tail, nil
		}
	}
	if measureText(text) <= maxWidth {
		// nothing fits beside the label; push the whole text down a line
		return "", text, nil
	}
	return "", "", &LayoutError{Reason: fmt.Sprintf("text %q does not fit width %.1f", text, maxWidth)}
}
