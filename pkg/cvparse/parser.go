// Package cvparse turns the plain text of a résumé into a structured Record
// using keyword, pattern and position heuristics. It performs no I/O and a
// Parser may be shared between goroutines.
package cvparse

import "sync"

// Parser holds the compiled patterns and the pluggable strategies.
type Parser struct {
	locales  Locales
	patterns *Patterns
	newID    IDGenerator
	layout   Layout
	strict   bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(p *Parser) { p.newID = g }
}

// WithLayout replaces PositionalLayout for experience and education entries.
func WithLayout(l Layout) Option {
	return func(p *Parser) { p.layout = l }
}

// WithLocales replaces the embedded vocabulary.
func WithLocales(l Locales) Option {
	return func(p *Parser) { p.locales = l }
}

// WithStrictAnchors only splits entries on date tokens that start a line, so
// figures such as "2020 units" inside a description do not open a new entry.
func WithStrictAnchors() Option {
	return func(p *Parser) { p.strict = true }
}

// New builds a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{newID: NewID, layout: PositionalLayout}
	for _, opt := range opts {
		opt(p)
	}
	if p.locales == nil {
		p.locales = DefaultLocales()
	}
	p.patterns = NewPatterns(p.locales)
	return p
}

var defaultParser = sync.OnceValue(func() *Parser { return New() })

// Parse runs the default parser.
func Parse(text string) Record {
	return defaultParser().Parse(text)
}

// Patterns exposes the compiled recognizers.
func (pr *Parser) Patterns() *Patterns { return pr.patterns }

// Sections returns the section spans detected in text.
func (pr *Parser) Sections(text string) Sections {
	return pr.patterns.SplitSections(text)
}

// Parse extracts a Record from text. It never fails: whatever cannot be
// recognised is left absent or empty.
func (pr *Parser) Parse(text string) Record {
	rec := NewRecord()
	sections := pr.patterns.SplitSections(text)

	rec.PersonalInfo = pr.patterns.extractPersonalInfo(sections.Text(SectionPersonalInfo))

	if sp, ok := sections.Get(SectionExperience); ok {
		for _, block := range pr.patterns.segmentEntries(sp.Text, pr.strict) {
			if e, ok := pr.extractExperience(block); ok {
				rec.Experiences = append(rec.Experiences, e)
			}
		}
	}
	if sp, ok := sections.Get(SectionEducation); ok {
		for _, block := range pr.patterns.segmentEntries(sp.Text, pr.strict) {
			if e, ok := pr.extractEducation(block); ok {
				rec.Education = append(rec.Education, e)
			}
		}
	}
	if sp, ok := sections.Get(SectionSkills); ok {
		rec.Skills = pr.extractSkills(sp)
	}
	if sp, ok := sections.Get(SectionLanguages); ok {
		rec.Languages = pr.extractLanguages(sp)
	}
	return rec
}
