package cvparse

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Patterns is the compiled recognizer set. It is immutable once built and
// safe for concurrent use.
type Patterns struct {
	Email    *regexp.Regexp
	Phone    *regexp.Regexp
	LinkedIn *regexp.Regexp
	Website  *regexp.Regexp

	// Headings maps a section key to its keyword pattern. Group 1 is the keyword.
	Headings map[string]*regexp.Regexp

	// DateToken matches a bare year or a month name followed by a year.
	DateToken *regexp.Regexp
	// DateRange captures the start token (1) and the end token or open marker (2).
	DateRange *regexp.Regexp
	// OpenEnded matches a current-position marker. Group 1 is the marker.
	OpenEnded *regexp.Regexp

	// Level captures a parenthesised proficiency annotation (1).
	Level *regexp.Regexp
	// LanguageName matches the alphabetic name at the start of a language token.
	LanguageName *regexp.Regexp
	// ListDelimiter splits skill and language sections into tokens.
	ListDelimiter *regexp.Regexp

	nativeWords map[string]struct{}
}

// NewPatterns compiles the recognizers for the given locale table.
func NewPatterns(l Locales) *Patterns {
	months := alternation(l.months())
	open := alternation(l.openEnded())
	native := l.nativeLevels()
	token := `\b(?:(?:` + months + `)\.?\s+\d{4}|\d{4})\b`

	p := &Patterns{
		Email:    regexp.MustCompile(`[\w.+-]+@[\w.-]+\.[A-Za-z]{2,}`),
		Phone:    regexp.MustCompile(`(?:(?:\+|00)\d{1,4}[\s.-]?)?(?:\(\d{1,4}\)[\s.-]?)?(?:\d[\s.-]?){6,14}\d`),
		LinkedIn: regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[\w%-]+/?`),
		Website:  regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/[^\s,;]*)?`),

		Headings: make(map[string]*regexp.Regexp, len(headingKeys)),

		DateToken: regexp.MustCompile(`(?i)` + token),
		DateRange: regexp.MustCompile(`(?i)(` + token + `)\s*(?:-|–|—|\bto\b|\bau\b|à)\s*(` + token + `|(?:` + open + `)\b)`),
		OpenEnded: regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + open + `)(?:[^\p{L}]|$)`),

		Level:         regexp.MustCompile(`(?i)\(\s*(a1|a2|b1|b2|c1|c2|` + alternation(native) + `)\s*\)`),
		LanguageName:  regexp.MustCompile(`^\p{L}+(?:[\s'’-]+\p{L}+)*`),
		ListDelimiter: regexp.MustCompile(`[,;\n•·▪]`),

		nativeWords: make(map[string]struct{}, len(native)),
	}
	for _, key := range headingKeys {
		words := l.sectionWords(key)
		if len(words) == 0 {
			continue
		}
		p.Headings[key] = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + alternation(words) + `)(?:[^\p{L}\p{N}]|$)`)
	}
	for _, w := range native {
		p.nativeWords[strings.ToLower(w)] = struct{}{}
	}
	return p
}

// normalizeLevel maps a captured level annotation onto a CEFR code or NativeLevel.
func (p *Patterns) normalizeLevel(raw string) string {
	lv := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := p.nativeWords[lv]; ok {
		return NativeLevel
	}
	return strings.ToUpper(lv)
}

// alternation turns literal words into a regexp alternation, longest first so
// that "expériences professionnelles" wins over "expériences".
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	parts := make([]string, 0, len(sorted))
	for _, w := range sorted {
		q := regexp.QuoteMeta(strings.ToLower(w))
		q = strings.ReplaceAll(q, " ", `\s+`)
		parts = append(parts, q)
	}
	if len(parts) == 0 {
		// matches nothing
		return `[^\x00-\x{10FFFF}]`
	}
	return strings.Join(parts, "|")
}
