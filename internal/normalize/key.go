package normalize

import (
	"strings"
	"unicode"

	"github.com/pont-us/bibgulp/internal/record"
)

// stopWords are title words too common to start a citation key with.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "is": true,
	"it": true, "at": true, "of": true, "in": true, "as": true,
	"to": true, "are": true, "there": true, "el": true, "la": true,
	"has": true,
}

// CiteKey derives a citation key of the form <surname><year><firstword>,
// e.g. "smith1999rise". It expects the record's author list to be split
// and the year to be defaulted already. Keys are deterministic but not
// guaranteed unique; collisions are the reference manager's problem.
func CiteKey(r *record.Record) string {
	var surname string
	if len(r.Authors) > 0 {
		surname, _, _ = strings.Cut(r.Authors[0], ",")
		surname = StripAccents(strings.ToLower(surname))
	}
	return surname + r.Year + firstWord(r.Title)
}

// firstWord returns the first word of the title, lowercased, that is
// neither a stop word nor digit-initial. A present title with no
// qualifying word yields the placeholder "xxx"; an absent title yields "".
func firstWord(title string) string {
	if title == "" {
		return ""
	}
	for _, w := range strings.Fields(title) {
		w = strings.ToLower(w)
		if stopWords[w] {
			continue
		}
		if r := []rune(w)[0]; unicode.IsDigit(r) {
			continue
		}
		return w
	}
	return "xxx"
}
