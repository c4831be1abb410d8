package resume

import (
	"slices"
	"strings"

	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/nlp"
)

// Merge prefills a form the user may already have started. Non-blank user
// input always wins; parsed values fill the gaps and parsed list entries are
// appended unless an equivalent entry exists. Neither argument is modified.
func Merge(existing, parsed cvparse.Record) cvparse.Record {
	out := existing.Clone()
	out.Normalize()
	p := parsed.Clone()

	pi := &out.PersonalInfo
	if strings.TrimSpace(pi.Name) == "" {
		pi.Name = p.PersonalInfo.Name
	}
	pi.Email = pick(pi.Email, p.PersonalInfo.Email)
	pi.Phone = pick(pi.Phone, p.PersonalInfo.Phone)
	pi.LinkedIn = pick(pi.LinkedIn, p.PersonalInfo.LinkedIn)
	pi.Website = pick(pi.Website, p.PersonalInfo.Website)

	for _, e := range p.Experiences {
		if !slices.ContainsFunc(out.Experiences, func(x cvparse.Experience) bool {
			return nlp.SamePhrase(x.Position, e.Position) && nlp.SamePhrase(x.Company, e.Company)
		}) {
			out.Experiences = append(out.Experiences, e)
		}
	}
	for _, e := range p.Education {
		if !slices.ContainsFunc(out.Education, func(x cvparse.Education) bool {
			return nlp.SamePhrase(x.Degree, e.Degree) && nlp.SamePhrase(x.Institution, e.Institution)
		}) {
			out.Education = append(out.Education, e)
		}
	}
	for _, s := range p.Skills {
		if !slices.ContainsFunc(out.Skills, func(x cvparse.Skill) bool { return nlp.SameName(x.Name, s.Name) }) {
			out.Skills = append(out.Skills, s)
		}
	}
	for _, l := range p.Languages {
		if !slices.ContainsFunc(out.Languages, func(x cvparse.Language) bool { return nlp.SameName(x.Name, l.Name) }) {
			out.Languages = append(out.Languages, l)
		}
	}
	return out
}

func pick(user, parsed *string) *string {
	if user != nil && strings.TrimSpace(*user) != "" {
		return user
	}
	if parsed != nil {
		return parsed
	}
	return user
}

