package normalize

import "strings"

// SplitAuthors splits a raw BibTeX author field into individual names in
// "Last, First" order. BibTeX joins authors with the word "and"; names
// already in "Last, First" form are kept, "First Middle Last" forms are
// flipped. Returns nil for an empty field.
func SplitAuthors(raw string) []string {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return nil
	}

	var authors []string
	for _, name := range strings.Split(raw, " and ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		authors = append(authors, lastFirst(name))
	}
	return authors
}

// lastFirst converts one name to "Last, First" form.
func lastFirst(name string) string {
	if strings.Contains(name, ",") {
		// Already "Last, First"; tidy the spacing around the comma.
		last, first, _ := strings.Cut(name, ",")
		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)
		if first == "" {
			return last
		}
		return last + ", " + first
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}
