package nlp

import "strings"

// aliases maps a normalized token or phrase to its canonical spelling.
var aliases = map[string]string{
	"golang":   "go",
	"postgres": "postgresql",
	"psql":     "postgresql",
	"k8s":      "kubernetes",
	"js":       "javascript",
	"ts":       "typescript",
	"rest api": "rest",
	"cicd":     "ci cd",
	"anglais":  "english",
	"français": "french",
	"francais": "french",
	"allemand": "german",
	"deutsch":  "german",
	"espagnol": "spanish",
	"español":  "spanish",
	"italien":  "italian",
	"italiano": "italian",
	"node js":  "nodejs",
	"node":     "nodejs",
	"react js": "react",
	"reactjs":  "react",
	"vue js":   "vue",
	"vuejs":    "vue",
}

// Canonical returns the alias-resolved normalized form of a skill or
// language name. Multi-word names are resolved as a whole first and then
// token by token.
func Canonical(name string) string {
	base := NormalizeText(name)
	if base == "" {
		return ""
	}
	if c, ok := aliases[base]; ok {
		return c
	}
	parts := Tokens(base)
	if len(parts) == 1 {
		return base
	}
	for i, p := range parts {
		if c, ok := aliases[p]; ok {
			parts[i] = c
		}
	}
	return strings.Join(parts, " ")
}

// SameName reports whether two names denote the same skill or language.
func SameName(a, b string) bool {
	ca := Canonical(a)
	return ca != "" && ca == Canonical(b)
}

// SamePhrase compares free text after normalization, without aliases.
func SamePhrase(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}
