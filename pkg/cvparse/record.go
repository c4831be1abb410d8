package cvparse

// Record is the structured résumé produced by Parse.
// Every list is non-nil; absent scalar fields are nil pointers.
type Record struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	Languages    []Language   `json:"languages"`
}

type PersonalInfo struct {
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
}

type Experience struct {
	ID                string  `json:"id"`
	Position          string  `json:"position"`
	Company           string  `json:"company"`
	Location          *string `json:"location,omitempty"`
	StartDate         string  `json:"startDate"`
	EndDate           *string `json:"endDate,omitempty"`
	Description       string  `json:"description"`
	IsCurrentPosition bool    `json:"isCurrentPosition"`
}

type Education struct {
	ID          string  `json:"id"`
	Degree      string  `json:"degree"`
	Institution string  `json:"institution"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Description string  `json:"description"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

const (
	// UnknownValue fills start dates and institutions the heuristics could not find.
	UnknownValue = "Unknown"
	// DefaultSkillCategory is assigned to every extracted skill.
	DefaultSkillCategory = "technical"
	// NativeLevel is the language level used when no annotation is present.
	NativeLevel = "native"
)

// NewRecord returns an empty record with all lists initialised.
func NewRecord() Record {
	return Record{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills:      []Skill{},
		Languages:   []Language{},
	}
}

// IsEmpty reports whether nothing at all was detected. Callers use it to
// switch to manual entry instead of presenting an empty form as a success.
func (r Record) IsEmpty() bool {
	p := r.PersonalInfo
	return p.Name == "" && p.Email == nil && p.Phone == nil && p.LinkedIn == nil && p.Website == nil &&
		len(r.Experiences) == 0 && len(r.Education) == 0 && len(r.Skills) == 0 && len(r.Languages) == 0
}

// Normalize replaces nil lists with empty ones, e.g. after JSON decoding.
func (r *Record) Normalize() {
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{
		PersonalInfo: PersonalInfo{
			Name:     r.PersonalInfo.Name,
			Email:    cloneStr(r.PersonalInfo.Email),
			Phone:    cloneStr(r.PersonalInfo.Phone),
			LinkedIn: cloneStr(r.PersonalInfo.LinkedIn),
			Website:  cloneStr(r.PersonalInfo.Website),
		},
		Experiences: make([]Experience, len(r.Experiences)),
		Education:   make([]Education, len(r.Education)),
		Skills:      append([]Skill{}, r.Skills...),
		Languages:   append([]Language{}, r.Languages...),
	}
	for i, e := range r.Experiences {
		e.Location = cloneStr(e.Location)
		e.EndDate = cloneStr(e.EndDate)
		out.Experiences[i] = e
	}
	for i, e := range r.Education {
		e.EndDate = cloneStr(e.EndDate)
		out.Education[i] = e
	}
	return out
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func strPtr(s string) *string { return &s }
