package cvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTokens(t *testing.T) {
	p := NewPatterns(DefaultLocales())
	got := p.listTokens(": Go; Rust\n• Docker\n- Kubernetes, C, ,  \n")
	assert.Equal(t, []string{"Go", "Rust", "Docker", "Kubernetes"}, got)
}

func TestExtractLanguages(t *testing.T) {
	pr := New(WithIDGenerator(SequentialIDs("l")))
	sp := pr.Sections("Languages: English (native), German (b1); Italian ( C2 ), 42, Portuguese (bilingual)\n")

	span, ok := sp.Get(SectionLanguages)
	require.True(t, ok)
	langs := pr.extractLanguages(span)

	require.Len(t, langs, 4)
	assert.Equal(t, Language{ID: "l-1", Name: "English", Level: NativeLevel}, langs[0])
	assert.Equal(t, "B1", langs[1].Level)
	assert.Equal(t, "Italian", langs[2].Name)
	assert.Equal(t, "C2", langs[2].Level)
	assert.Equal(t, NativeLevel, langs[3].Level)
}

func TestExtractSkills_HeadingStripped(t *testing.T) {
	pr := New(WithIDGenerator(SequentialIDs("s")))
	rec := pr.Parse("Skills\nGo • PostgreSQL • gRPC\n")

	require.Len(t, rec.Skills, 3)
	assert.Equal(t, Skill{ID: "s-1", Name: "Go", Category: DefaultSkillCategory}, rec.Skills[0])
	assert.Equal(t, "gRPC", rec.Skills[2].Name)
}
