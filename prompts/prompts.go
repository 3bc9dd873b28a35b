// Package prompts collects option values interactively on the terminal.
package prompts

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Nydauron/wcif-scorecards/options"
)

// Prompt prints a message on stderr and reads one line from stdin.
func Prompt(message string) string {
	fmt.Fprint(os.Stderr, message)
	buf := bufio.NewReader(os.Stdin)
	input, _ := buf.ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}

// NonNegativeIntPrompt keeps asking until the user enters a non-negative
// integer; an empty line accepts the default.
func NonNegativeIntPrompt(message string, def string) string {
	for {
		userInput := Prompt(fmt.Sprintf("%s [%s]: ", message, def))
		if userInput == "" {
			return def
		}
		if n, err := strconv.Atoi(userInput); err == nil && n >= 0 {
			return strconv.Itoa(n)
		}
	}
}

// AbbrevPrompt keeps asking until the user enters at most max characters;
// an empty line accepts the default.
func AbbrevPrompt(message string, def string, max int) string {
	for {
		userInput := Prompt(fmt.Sprintf("%s [%s]: ", message, def))
		if userInput == "" {
			return def
		}
		if utf8.RuneCountInString(userInput) <= max {
			return strings.ToUpper(userInput)
		}
	}
}

// EditOptions walks every option in order and returns the submitted
// id-to-value mapping.
func EditOptions(set *options.Set) map[string]string {
	values := map[string]string{}
	for _, o := range set.All() {
		switch o.Kind {
		case options.KindRoundBlanks:
			values[o.ID] = NonNegativeIntPrompt(o.Label, o.Value)
		case options.KindRoomAbbrev:
			values[o.ID] = AbbrevPrompt(o.Label, o.Value, options.RoomAbbrevMaxLen)
		}
	}
	return values
}
