package cvparse

import (
	"strings"
	"unicode/utf8"
)

// listTokens splits a list section body on the delimiter set and drops
// tokens of one character or less.
func (p *Patterns) listTokens(body string) []string {
	var out []string
	for _, raw := range p.ListDelimiter.Split(body, -1) {
		tok := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), ":-*–"))
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (pr *Parser) extractSkills(span Span) []Skill {
	skills := []Skill{}
	for _, tok := range pr.patterns.listTokens(span.Body()) {
		skills = append(skills, Skill{ID: pr.newID(), Name: tok, Category: DefaultSkillCategory})
	}
	return skills
}

func (pr *Parser) extractLanguages(span Span) []Language {
	langs := []Language{}
	for _, tok := range pr.patterns.listTokens(span.Body()) {
		name := pr.patterns.LanguageName.FindString(tok)
		if name == "" {
			continue
		}
		level := NativeLevel
		if m := pr.patterns.Level.FindStringSubmatch(tok); m != nil {
			level = pr.patterns.normalizeLevel(m[1])
		}
		langs = append(langs, Language{ID: pr.newID(), Name: name, Level: level})
	}
	return langs
}
