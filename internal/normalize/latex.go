package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritics: canonical decomposition followed by
// deletion of combining marks (DUPONT, Élodie -> DUPONT, Elodie).
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// accentCmds maps combining marks to LaTeX accent commands.
var accentCmds = map[rune]string{
	'̀': "`",  // grave
	'́': "'",  // acute
	'̂': "^",  // circumflex
	'̃': "~",  // tilde
	'̄': "=",  // macron
	'̆': "u ", // breve
	'̇': ".",  // dot above
	'̈': `"`,  // diaeresis
	'̊': "r ", // ring
	'̋': "H ", // double acute
	'̌': "v ", // caron
	'̧': "c ", // cedilla
	'̨': "k ", // ogonek
}

// specials maps non-decomposable characters to LaTeX equivalents.
var specials = map[rune]string{
	'ø': `{\o}`, 'Ø': `{\O}`,
	'ß': `{\ss}`,
	'æ': `{\ae}`, 'Æ': `{\AE}`,
	'œ': `{\oe}`, 'Œ': `{\OE}`,
	'ð': `{\dh}`, 'Ð': `{\DH}`,
	'þ': `{\th}`, 'Þ': `{\TH}`,
	'ł': `{\l}`, 'Ł': `{\L}`,
	'ı': `{\i}`,
	'¡': `!` + "`", '¿': `?` + "`",
	' ': `~`,
	'–': `--`,
	'—': `---`,
	'‘': "`", '’': `'`,
	'“': "``", '”': `''`,
	'…': `{\ldots}`,
	'§':      `{\S}`, '¶': `{\P}`,
	'°': `{\degree}`,
	'·': `{\cdot}`,
	'×': `{\times}`,
	'±': `{\pm}`,
	'µ': `{\textmu}`,
}

// ToLatex transliterates non-ASCII characters into LaTeX escape sequences.
// Accented latin letters become accent commands ({\'e}, {\"o}, {\c c});
// characters with no mapping pass through unchanged, and ASCII is never
// touched, so already-escaped text is not escaped twice.
func ToLatex(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if esc, ok := specials[r]; ok {
			b.WriteString(esc)
			continue
		}
		if esc, ok := accented(r); ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// accented decomposes a rune and renders base + combining marks as nested
// LaTeX accent commands, innermost first.
func accented(r rune) (string, bool) {
	decomposed := norm.NFD.String(string(r))
	runes := []rune(decomposed)
	if len(runes) < 2 {
		return "", false
	}

	out := string(runes[0])
	for _, mark := range runes[1:] {
		cmd, ok := accentCmds[mark]
		if !ok {
			return "", false
		}
		out = `\` + cmd + out
	}
	return "{" + out + "}", true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
