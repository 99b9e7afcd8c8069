package palette

import "strings"

// Filter returns the entries whose normalized name contains search, in
// registry order. An empty search returns every entry.
//
// Names are lower-cased and reduced to ASCII letters and digits before
// matching, but search is only lower-cased: "heading 1" matches nothing
// while "heading1" matches "Heading 1".
func Filter(reg Registry, search string) []Entry {
	if search == "" {
		return reg.Entries()
	}
	needle := strings.ToLower(search)

	var out []Entry
	for _, e := range reg.entries {
		if strings.Contains(normalizeName(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
