package normalize

import (
	"strings"
	"unicode"

	"github.com/pont-us/bibgulp/internal/record"
)

// capitalizers are journals whose house style already capitalizes titles
// the way their editors want; their titles are left unprotected.
var capitalizers = map[string]bool{
	"Science":               true,
	"Geology":               true,
	"Surveys in Geophysics": true,
	"Radiocarbon":           true,
}

// protectTitle wraps title words in brace groups so BibTeX styles can't
// downcase them. The first word is never touched (styles capitalize it
// anyway). Title-case words get only their initial braced ("{G}eology"),
// mixed- and upper-case words are braced whole ("{DNA}"); all-lowercase
// words and words not starting with an ASCII letter pass through.
func protectTitle(r *record.Record) {
	if r.Title == "" || capitalizers[r.Journal] {
		return
	}

	words := strings.Split(r.Title, " ")
	for i := 1; i < len(words); i++ {
		words[i] = protectWord(words[i])
	}
	r.Title = strings.Join(words, " ")
}

func protectWord(w string) string {
	runes := []rune(w)
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && isLower(string(runes[1:])) {
		return "{" + string(runes[0]) + "}" + string(runes[1:])
	}
	if isLower(w) || !startsWithASCIILetter(w) {
		return w
	}
	return "{" + w + "}"
}

// isLower reports whether s contains at least one cased character and no
// uppercase or title-case ones.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func startsWithASCIILetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
