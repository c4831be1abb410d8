// Package improve rewrites the free-text parts of a record with an LLM.
package improve

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/llm"
)

// ErrLLMUnavailable is returned when no field could be improved at all.
var ErrLLMUnavailable = errors.New("llm unavailable")

const defaultConcurrency = 4

const (
	kindExperience = "experience"
	kindEducation  = "education"
)

var systemPrompts = map[string]string{
	kindExperience: "You edit résumés. Rewrite the job description you receive so it is concise, " +
		"uses strong action verbs and keeps every fact. Answer in the language of the input. " +
		"Return only the rewritten text without any preamble.",
	kindEducation: "You edit résumés. Rewrite the education details you receive so they are concise " +
		"and keep every fact. Answer in the language of the input. " +
		"Return only the rewritten text without any preamble.",
}

// Cache stores generated text by key. Any Get error is treated as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type Option func(*Improver)

func WithCache(c Cache) Option { return func(im *Improver) { im.cache = c } }

func WithConcurrency(n int) Option { return func(im *Improver) { im.limit = n } }

func WithLogger(l *slog.Logger) Option { return func(im *Improver) { im.log = l } }

// Improver sends record descriptions through a chat model.
type Improver struct {
	model llm.ChatModel
	cache Cache
	limit int
	log   *slog.Logger
}

func New(model llm.ChatModel, opts ...Option) *Improver {
	im := &Improver{model: model, limit: defaultConcurrency, log: slog.Default()}
	for _, opt := range opts {
		opt(im)
	}
	if im.limit <= 0 {
		im.limit = defaultConcurrency
	}
	return im
}

type job struct {
	kind string
	text string
	set  func(string)
}

// Improve returns a copy of rec with its descriptions rewritten. A field whose
// generation fails keeps its original text; an error is returned only when
// every generation failed.
func (im *Improver) Improve(ctx context.Context, rec cvparse.Record) (cvparse.Record, error) {
	out := rec.Clone()
	out.Normalize()

	var jobs []job
	for i := range out.Experiences {
		e := &out.Experiences[i]
		if strings.TrimSpace(e.Description) != "" {
			jobs = append(jobs, job{kind: kindExperience, text: e.Description, set: func(s string) { e.Description = s }})
		}
	}
	for i := range out.Education {
		e := &out.Education[i]
		if strings.TrimSpace(e.Description) != "" {
			jobs = append(jobs, job{kind: kindEducation, text: e.Description, set: func(s string) { e.Description = s }})
		}
	}
	if len(jobs) == 0 {
		return out, nil
	}

	results := make([]string, len(jobs))
	var (
		mu       sync.Mutex
		failed   int
		firstErr error
	)
	var g errgroup.Group
	g.SetLimit(im.limit)
	for i, j := range jobs {
		g.Go(func() error {
			text, err := im.generate(ctx, j.kind, j.text)
			if err != nil {
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				im.log.WarnContext(ctx, "improve field", "kind", j.kind, "err", err)
				return nil
			}
			results[i] = text
			return nil
		})
	}
	_ = g.Wait()

	for i, j := range jobs {
		if results[i] != "" {
			j.set(results[i])
		}
	}
	if failed == len(jobs) {
		return out, fmt.Errorf("%w: %v", ErrLLMUnavailable, firstErr)
	}
	return out, nil
}

func (im *Improver) generate(ctx context.Context, kind, text string) (string, error) {
	key := cacheKey(im.model.ModelName(), kind, text)
	if im.cache != nil {
		if v, err := im.cache.Get(ctx, key); err == nil && v != "" {
			return v, nil
		}
	}
	answer, err := im.model.Ask(ctx, systemPrompts[kind], text)
	if err != nil {
		return "", err
	}
	answer = cleanAnswer(answer)
	if answer == "" {
		return "", llm.ErrEmptyAnswer
	}
	if im.cache != nil {
		if err := im.cache.Set(ctx, key, answer); err != nil {
			im.log.WarnContext(ctx, "improve cache set", "err", err)
		}
	}
	return answer, nil
}

func cacheKey(model, kind, text string) string {
	sum := blake2b.Sum256([]byte(model + "\x00" + kind + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// cleanAnswer drops markdown code fences some models wrap their output in.
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
