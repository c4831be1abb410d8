package cvparse

import "strings"

// extractPersonalInfo runs the contact recognizers over the personal span.
// Each recognizer uses the first match only; misses stay nil.
func (p *Patterns) extractPersonalInfo(text string) PersonalInfo {
	info := PersonalInfo{Name: firstLine(text)}

	emailLoc := p.Email.FindStringIndex(text)
	if emailLoc != nil {
		info.Email = strPtr(text[emailLoc[0]:emailLoc[1]])
	}
	if m := p.Phone.FindString(text); m != "" {
		info.Phone = strPtr(strings.TrimSpace(m))
	}
	linkedinLoc := p.LinkedIn.FindStringIndex(text)
	if linkedinLoc != nil {
		info.LinkedIn = strPtr(text[linkedinLoc[0]:linkedinLoc[1]])
	}
	for _, loc := range p.Website.FindAllStringIndex(text, -1) {
		if overlaps(loc, emailLoc) || overlaps(loc, linkedinLoc) || touchesAt(text, loc) {
			continue
		}
		info.Website = strPtr(text[loc[0]:loc[1]])
		break
	}
	return info
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return l
		}
	}
	return ""
}

func overlaps(a, b []int) bool {
	return b != nil && a[0] < b[1] && b[0] < a[1]
}

// touchesAt rejects the domain half of an address the e-mail pattern missed.
func touchesAt(text string, loc []int) bool {
	return (loc[0] > 0 && text[loc[0]-1] == '@') || (loc[1] < len(text) && text[loc[1]] == '@')
}
