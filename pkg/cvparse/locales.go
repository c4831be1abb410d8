package cvparse

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v4"
)

// Section keys, in the order used when reporting spans.
const (
	SectionPersonalInfo = "personalInfo"
	SectionExperience   = "experience"
	SectionEducation    = "education"
	SectionSkills       = "skills"
	SectionLanguages    = "languages"
)

// headingKeys lists the section families that are detected by keyword.
var headingKeys = []string{SectionExperience, SectionEducation, SectionSkills, SectionLanguages}

//go:embed locales.yaml
var defaultLocalesYAML []byte

// Locale is the vocabulary of one language.
type Locale struct {
	Sections     map[string][]string `yaml:"sections"`
	Months       []string            `yaml:"months"`
	OpenEnded    []string            `yaml:"open_ended"`
	NativeLevels []string            `yaml:"native_levels"`
}

// Locales maps a language code to its vocabulary.
type Locales map[string]Locale

// DefaultLocales returns the embedded English/French table.
func DefaultLocales() Locales {
	l, err := ParseLocales(defaultLocalesYAML)
	if err != nil {
		panic(fmt.Sprintf("cvparse: embedded locales: %v", err))
	}
	return l
}

// LoadLocales reads a locale table from a YAML file.
func LoadLocales(path string) (Locales, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	return ParseLocales(data)
}

// ParseLocales decodes a YAML locale table.
func ParseLocales(data []byte) (Locales, error) {
	var l Locales
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode locales: %w", err)
	}
	if len(l) == 0 {
		return nil, fmt.Errorf("decode locales: no languages defined")
	}
	for code, loc := range l {
		for key := range loc.Sections {
			if !isHeadingKey(key) {
				return nil, fmt.Errorf("decode locales: %s: unknown section %q", code, key)
			}
		}
	}
	return l, nil
}

func isHeadingKey(key string) bool {
	for _, k := range headingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// sectionWords merges the keywords of every language for one section.
func (l Locales) sectionWords(key string) []string {
	var out []string
	for _, code := range l.codes() {
		out = append(out, l[code].Sections[key]...)
	}
	return dedupe(out)
}

func (l Locales) months() []string {
	var out []string
	for _, code := range l.codes() {
		out = append(out, l[code].Months...)
	}
	return dedupe(out)
}

func (l Locales) openEnded() []string {
	var out []string
	for _, code := range l.codes() {
		out = append(out, l[code].OpenEnded...)
	}
	return dedupe(out)
}

func (l Locales) nativeLevels() []string {
	var out []string
	for _, code := range l.codes() {
		out = append(out, l[code].NativeLevels...)
	}
	return dedupe(out)
}

func (l Locales) codes() []string {
	codes := make([]string, 0, len(l))
	for c := range l {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
