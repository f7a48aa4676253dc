// Package pdfdoi extracts DOIs from PDF files. When a paper PDF lands in
// the watched download directory there is no citation to clean, but the
// DOI printed on its first page is still worth surfacing.
package pdfdoi

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// doiPattern matches DOIs: 10.<4-9 digits>/<suffix>.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Extract returns the first DOI found in the opening pages of a PDF, or
// "" if none is found. A missing DOI is not an error.
func Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The DOI is almost always on the first page; check three to cover
	// cover sheets.
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := find(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// find returns the first plausible DOI in text.
func find(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if plausible(match) {
			return match
		}
	}
	return ""
}

func plausible(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}
