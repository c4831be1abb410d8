package improve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvpolish/pkg/cvparse"
)

type fakeModel struct {
	calls   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
	fail    func(text string) bool
}

func (m *fakeModel) ModelName() string { return "fake" }

func (m *fakeModel) Ask(_ context.Context, _, user string) (string, error) {
	m.calls.Add(1)
	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		cur := m.maxSeen.Load()
		if n <= cur || m.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}
	if m.fail != nil && m.fail(user) {
		return "", errors.New("boom")
	}
	return "```text\n" + strings.ToUpper(user) + "\n```", nil
}

type memCache struct {
	mu sync.Mutex
	m  map[string]string
}

func (c *memCache) Get(_ context.Context, k string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[k]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, k, v string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string]string{}
	}
	c.m[k] = v
	return nil
}

func sample() cvparse.Record {
	rec := cvparse.NewRecord()
	rec.Experiences = []cvparse.Experience{
		{ID: "1", Position: "Dev", Description: "built apis"},
		{ID: "2", Position: "Ops", Description: "  "},
		{ID: "3", Position: "Lead", Description: "ran team"},
	}
	rec.Education = []cvparse.Education{{ID: "4", Degree: "MSc", Description: "thesis on go"}}
	return rec
}

func TestImprove(t *testing.T) {
	m := &fakeModel{}
	rec := sample()

	got, err := New(m).Improve(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, "BUILT APIS", got.Experiences[0].Description)
	assert.Equal(t, "  ", got.Experiences[1].Description)
	assert.Equal(t, "RAN TEAM", got.Experiences[2].Description)
	assert.Equal(t, "THESIS ON GO", got.Education[0].Description)
	assert.Equal(t, int32(3), m.calls.Load())

	assert.Equal(t, "built apis", rec.Experiences[0].Description, "input untouched")
}

func TestImprove_PartialFailureKeepsOriginal(t *testing.T) {
	m := &fakeModel{fail: func(s string) bool { return s == "ran team" }}
	got, err := New(m).Improve(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, "ran team", got.Experiences[2].Description)
	assert.Equal(t, "BUILT APIS", got.Experiences[0].Description)
}

func TestImprove_AllFail(t *testing.T) {
	m := &fakeModel{fail: func(string) bool { return true }}
	got, err := New(m).Improve(context.Background(), sample())
	require.ErrorIs(t, err, ErrLLMUnavailable)
	assert.Equal(t, "built apis", got.Experiences[0].Description)
}

func TestImprove_NothingToDo(t *testing.T) {
	m := &fakeModel{}
	got, err := New(m).Improve(context.Background(), cvparse.Record{})
	require.NoError(t, err)
	assert.NotNil(t, got.Skills)
	assert.Zero(t, m.calls.Load())
}

func TestImprove_Cache(t *testing.T) {
	m := &fakeModel{}
	c := &memCache{}
	im := New(m, WithCache(c))

	_, err := im.Improve(context.Background(), sample())
	require.NoError(t, err)
	got, err := im.Improve(context.Background(), sample())
	require.NoError(t, err)

	assert.Equal(t, int32(3), m.calls.Load())
	assert.Equal(t, "RAN TEAM", got.Experiences[2].Description)
	assert.Len(t, c.m, 3)
}

func TestImprove_ConcurrencyLimit(t *testing.T) {
	rec := cvparse.NewRecord()
	for i := 0; i < 20; i++ {
		rec.Experiences = append(rec.Experiences, cvparse.Experience{Description: strings.Repeat("x", i+1)})
	}
	m := &fakeModel{}
	_, err := New(m, WithConcurrency(2)).Improve(context.Background(), rec)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.maxSeen.Load(), int32(2))
	assert.Equal(t, int32(20), m.calls.Load())
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("m", kindExperience, "text")
	assert.Len(t, a, 64)
	assert.Equal(t, a, cacheKey("m", kindExperience, "text"))
	assert.NotEqual(t, a, cacheKey("m", kindEducation, "text"))
	assert.NotEqual(t, a, cacheKey("m2", kindExperience, "text"))
}

func TestCleanAnswer(t *testing.T) {
	assert.Equal(t, "hello", cleanAnswer("```\nhello\n```"))
	assert.Equal(t, "hello", cleanAnswer("  hello "))
	assert.Equal(t, "", cleanAnswer("```"))
}
