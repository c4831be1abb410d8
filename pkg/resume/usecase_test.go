package resume

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/resume/textextract"
)

type memRepo struct {
	mu     sync.Mutex
	metas  map[uuid.UUID]Resume
	parsed map[uuid.UUID]Parsed

	saveParsedErr error
}

func newMemRepo() *memRepo {
	return &memRepo{metas: map[uuid.UUID]Resume{}, parsed: map[uuid.UUID]Parsed{}}
}

func (r *memRepo) Create(_ context.Context, m Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metas[m.ID] = m
	return nil
}

func (r *memRepo) SaveParsed(_ context.Context, p Parsed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveParsedErr != nil {
		return r.saveParsedErr
	}
	r.parsed[p.ResumeID] = p
	return nil
}

func (r *memRepo) GetParsed(_ context.Context, id uuid.UUID) (Parsed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parsed[id]
	if !ok {
		return Parsed{}, ErrNotFound
	}
	return p, nil
}

func (r *memRepo) GetMetaForOwner(_ context.Context, owner, id uuid.UUID) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[id]
	if !ok || m.OwnerID != owner {
		return Resume{}, ErrNotFound
	}
	return m, nil
}

func (r *memRepo) ListByOwner(_ context.Context, owner uuid.UUID, _, _ int) ([]Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Resume
	for _, m := range r.metas {
		if m.OwnerID == owner {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) GetMetaAny(_ context.Context, id uuid.UUID) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return m, nil
}

func (r *memRepo) ListAll(_ context.Context, _, _ int) ([]Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Resume, 0, len(r.metas))
	for _, m := range r.metas {
		out = append(out, m)
	}
	return out, nil
}

func (r *memRepo) DeleteForOwner(ctx context.Context, owner, id uuid.UUID) (Resume, error) {
	m, err := r.GetMetaForOwner(ctx, owner, id)
	if err != nil {
		return Resume{}, err
	}
	return r.DeleteAny(ctx, m.ID)
}

func (r *memRepo) DeleteAny(_ context.Context, id uuid.UUID) (Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.metas[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	delete(r.metas, id)
	delete(r.parsed, id)
	return m, nil
}

type memFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (f *memFiles) Save(_ context.Context, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	uri := "mem://" + name
	f.files[uri] = data
	return uri, nil
}

func (f *memFiles) Remove(uri string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, uri)
	return nil
}

const sampleCV = `Jane Doe
jane.doe@example.com
Experience
2019 - 2021
Software Engineer
Acme Corp
Skills
Go, Rust, Docker
`

func newTestService(t *testing.T, opts Options) (UseCase, *memRepo, *memFiles) {
	t.Helper()
	repo := newMemRepo()
	files := &memFiles{}
	parser := cvparse.New(cvparse.WithIDGenerator(cvparse.SequentialIDs("id")))
	if opts.MinTextChars == 0 {
		opts.MinTextChars = 50
	}
	return NewService(repo, files, parser, opts, nil), repo, files
}

func TestService_UploadAndGet(t *testing.T) {
	svc, repo, files := newTestService(t, Options{MaxBytes: 1 << 20})
	owner := Actor{UserID: uuid.New()}

	st, err := svc.Upload(context.Background(), owner, "cv.txt", "text/plain", []byte(sampleCV))
	require.NoError(t, err)

	assert.False(t, st.ManualEntry)
	assert.Equal(t, "Jane Doe", st.Record.PersonalInfo.Name)
	require.Len(t, st.Record.Experiences, 1)
	assert.Equal(t, "Acme Corp", st.Record.Experiences[0].Company)
	assert.Len(t, st.Record.Skills, 3)
	assert.Len(t, st.Meta.ContentHash, 64)
	assert.Equal(t, owner.UserID, st.Meta.OwnerID)
	assert.Len(t, files.files, 1)
	assert.Contains(t, repo.parsed[st.Meta.ID].Text, "Acme Corp")

	got, err := svc.Get(context.Background(), owner, st.Meta.ID)
	require.NoError(t, err)
	assert.Equal(t, st.Record, got.Record)

	_, err = svc.Get(context.Background(), Actor{UserID: uuid.New()}, st.Meta.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), Actor{UserID: uuid.New(), IsAdmin: true}, st.Meta.ID)
	assert.NoError(t, err)
}

func TestService_UploadSaveParsedFails(t *testing.T) {
	svc, repo, files := newTestService(t, Options{MaxBytes: 1 << 20})
	down := errors.New("db down")
	repo.saveParsedErr = down
	owner := Actor{UserID: uuid.New()}

	_, err := svc.Upload(context.Background(), owner, "cv.txt", "text/plain", []byte(sampleCV))
	require.ErrorIs(t, err, down)

	assert.Empty(t, repo.metas)
	assert.Empty(t, files.files)
	items, err := svc.List(context.Background(), owner, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestService_UploadRejects(t *testing.T) {
	svc, _, files := newTestService(t, Options{MaxBytes: 64})
	actor := Actor{UserID: uuid.New()}

	_, err := svc.Upload(context.Background(), actor, "cv.odt", "", []byte(sampleCV))
	assert.ErrorIs(t, err, textextract.ErrUnsupportedFormat)

	_, err = svc.Upload(context.Background(), actor, "cv.txt", "", []byte(strings.Repeat("x", 65)))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Upload(context.Background(), actor, "cv.txt", "", []byte("Jane Doe\nshort"))
	assert.ErrorIs(t, err, textextract.ErrTextTooShort)

	assert.Empty(t, files.files)
}

func TestService_UploadManualEntry(t *testing.T) {
	svc, _, _ := newTestService(t, Options{MinTextChars: -1})
	st, err := svc.Upload(context.Background(), Actor{}, "blank.txt", "", []byte("  \n\n \t\n"))
	require.NoError(t, err)
	assert.True(t, st.ManualEntry)
	assert.True(t, st.Record.IsEmpty())
}

func TestService_UploadBusy(t *testing.T) {
	svc, _, _ := newTestService(t, Options{MaxConcurrent: 1})
	s := svc.(*service)
	require.True(t, s.sem.TryAcquire(1))
	defer s.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Upload(ctx, Actor{}, "cv.txt", "", []byte(sampleCV))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestService_DeleteAndList(t *testing.T) {
	svc, _, files := newTestService(t, Options{})
	owner := Actor{UserID: uuid.New()}
	other := Actor{UserID: uuid.New()}

	st, err := svc.Upload(context.Background(), owner, "cv.txt", "", []byte(sampleCV))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), other, "cv.txt", "", []byte(sampleCV))
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), owner, 50, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	all, err := svc.List(context.Background(), Actor{IsAdmin: true}, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.Delete(context.Background(), other, st.Meta.ID), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), owner, st.Meta.ID))
	assert.Len(t, files.files, 1)

	_, err = svc.Download(context.Background(), owner, st.Meta.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Reparse(t *testing.T) {
	svc, repo, _ := newTestService(t, Options{})
	owner := Actor{UserID: uuid.New()}
	st, err := svc.Upload(context.Background(), owner, "cv.txt", "", []byte(sampleCV))
	require.NoError(t, err)

	p := repo.parsed[st.Meta.ID]
	p.Record = cvparse.NewRecord()
	repo.parsed[st.Meta.ID] = p

	again, err := svc.Reparse(context.Background(), owner, st.Meta.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again.Record.PersonalInfo.Name)
	assert.Equal(t, "Jane Doe", repo.parsed[st.Meta.ID].Record.PersonalInfo.Name)
}
