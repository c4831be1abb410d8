package cvparse

import "strings"

// EntryFields is the role-neutral result of a Layout. For experience entries
// Title is the position and Organization the company; for education entries
// they are the degree and the institution.
type EntryFields struct {
	Title        string
	Organization string
	Location     *string
	Description  string
}

// Layout assigns the content lines of one entry to fields. Lines are trimmed,
// non-empty and already free of the matched date range; there are at least two.
type Layout func(lines []string) EntryFields

// edgePunct is stripped from the ends of titles once dates are cut out.
const edgePunct = " \t\r-–—|,:;•"

// orgSeparators split the organisation line into organisation and location.
const orgSeparators = "-–@|"

// PositionalLayout reads line 0 as the title, line 1 as "organisation -
// location" and everything after as the description.
func PositionalLayout(lines []string) EntryFields {
	f := EntryFields{Title: strings.Trim(lines[0], edgePunct)}
	if len(lines) > 1 {
		parts := strings.FieldsFunc(lines[1], func(r rune) bool {
			return strings.ContainsRune(orgSeparators, r)
		})
		if len(parts) > 0 && strings.IndexAny(lines[1], orgSeparators) != 0 {
			f.Organization = strings.TrimSpace(parts[0])
			parts = parts[1:]
		}
		if len(parts) > 0 {
			if loc := strings.TrimSpace(parts[0]); loc != "" {
				f.Location = &loc
			}
		}
	}
	if len(lines) > 2 {
		f.Description = strings.Join(lines[2:], "\n")
	}
	return f
}
