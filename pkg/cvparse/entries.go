package cvparse

import (
	"strings"
	"unicode/utf8"
)

// minFragmentLen is the trimmed length at or below which a fragment is noise.
const minFragmentLen = 10

// segmentEntries breaks a section span immediately before every date token.
// The closing token of a date range stays with its opening token. With strict
// set, only tokens that open a line start a new fragment.
func (p *Patterns) segmentEntries(text string, strict bool) []string {
	var closing [][2]int
	for _, m := range p.DateRange.FindAllStringSubmatchIndex(text, -1) {
		closing = append(closing, [2]int{m[4], m[5]})
	}

	cuts := []int{0}
	for _, loc := range p.DateToken.FindAllStringIndex(text, -1) {
		at := loc[0]
		if at == 0 || insideAny(at, closing) {
			continue
		}
		if strict && !opensLine(text, at) {
			continue
		}
		cuts = append(cuts, at)
	}
	cuts = append(cuts, len(text))

	var out []string
	for i := 0; i+1 < len(cuts); i++ {
		frag := text[cuts[i]:cuts[i+1]]
		if utf8.RuneCountInString(strings.TrimSpace(frag)) <= minFragmentLen {
			continue
		}
		out = append(out, frag)
	}
	return out
}

func insideAny(pos int, spans [][2]int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

func opensLine(text string, pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		switch text[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// entryDates is what the date-range recognizer found in one entry block.
type entryDates struct {
	start   string
	end     *string
	current bool
	// rest is the block with the matched date text removed.
	rest string
}

func (p *Patterns) extractDates(block string) entryDates {
	d := entryDates{start: UnknownValue, rest: block}
	if m := p.DateRange.FindStringSubmatchIndex(block); m != nil {
		d.start = block[m[2]:m[3]]
		if end := block[m[4]:m[5]]; !p.OpenEnded.MatchString(end) {
			d.end = strPtr(end)
		}
		d.rest = block[:m[0]] + block[m[1]:]
	} else if loc := p.DateToken.FindStringIndex(block); loc != nil {
		d.start = block[loc[0]:loc[1]]
		d.rest = block[:loc[0]] + block[loc[1]:]
	}
	d.current = d.end == nil && p.OpenEnded.MatchString(block)
	return d
}

// contentLines returns the trimmed lines that carry something besides punctuation.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		l := strings.TrimSpace(line)
		if strings.Trim(l, edgePunct) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (pr *Parser) extractExperience(block string) (Experience, bool) {
	d := pr.patterns.extractDates(block)
	lines := contentLines(d.rest)
	if len(lines) < 2 {
		return Experience{}, false
	}
	f := pr.layout(lines)
	return Experience{
		ID:                pr.newID(),
		Position:          f.Title,
		Company:           f.Organization,
		Location:          f.Location,
		StartDate:         d.start,
		EndDate:           d.end,
		Description:       f.Description,
		IsCurrentPosition: d.current,
	}, true
}

func (pr *Parser) extractEducation(block string) (Education, bool) {
	d := pr.patterns.extractDates(block)
	lines := contentLines(d.rest)
	if len(lines) < 2 {
		return Education{}, false
	}
	f := pr.layout(lines)
	institution := f.Organization
	if institution == "" {
		institution = UnknownValue
	}
	return Education{
		ID:          pr.newID(),
		Degree:      f.Title,
		Institution: institution,
		StartDate:   d.start,
		EndDate:     d.end,
		Description: f.Description,
	}, true
}
