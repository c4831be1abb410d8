package cvparse

import "sort"

// Span is a contiguous slice of the source document attributed to one section.
type Span struct {
	Key   string `json:"key"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	// HeadingLen is the byte length of the keyword that opened the section.
	HeadingLen int    `json:"headingLen"`
	Text       string `json:"text"`
}

// Body returns the span text without its opening keyword.
func (s Span) Body() string {
	if s.HeadingLen > len(s.Text) {
		return ""
	}
	return s.Text[s.HeadingLen:]
}

// Sections is the splitter output. Spans are ordered by position, personal
// info first; only detected sections are present.
type Sections struct {
	Spans []Span `json:"spans"`
}

// Get returns the span for key, if it was detected.
func (s Sections) Get(key string) (Span, bool) {
	for _, sp := range s.Spans {
		if sp.Key == key {
			return sp, true
		}
	}
	return Span{}, false
}

// Text returns the text of the span for key, or "" when the section is absent.
func (s Sections) Text(key string) string {
	sp, _ := s.Get(key)
	return sp.Text
}

type headingHit struct {
	key   string
	start int
	end   int
}

// SplitSections locates the first heading of each family and slices text into
// contiguous spans. The spans always concatenate back to text.
func (p *Patterns) SplitSections(text string) Sections {
	var hits []headingHit
	for _, key := range headingKeys {
		re, ok := p.Headings[key]
		if !ok {
			continue
		}
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		hits = append(hits, headingHit{key: key, start: loc[2], end: loc[3]})
	}
	// Two families can claim the same offset; keep the order of headingKeys then.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	personalEnd := len(text)
	if len(hits) > 0 {
		personalEnd = hits[0].start
	}
	spans := []Span{{Key: SectionPersonalInfo, Start: 0, End: personalEnd, Text: text[:personalEnd]}}
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		headingLen := h.end - h.start
		if h.start+headingLen > end {
			headingLen = end - h.start
		}
		spans = append(spans, Span{
			Key:        h.key,
			Start:      h.start,
			End:        end,
			HeadingLen: headingLen,
			Text:       text[h.start:end],
		})
	}
	return Sections{Spans: spans}
}
