package resume

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/semaphore"

	"github.com/artem13815/cvpolish/pkg/resume/textextract"
)

// UseCase описывает сценарии работы с загруженными резюме.
type UseCase interface {
	Upload(ctx context.Context, actor Actor, filename, mime string, data []byte) (Stored, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (Stored, error)
	List(ctx context.Context, actor Actor, limit, offset int) ([]Resume, error)
	Download(ctx context.Context, actor Actor, id uuid.UUID) (Resume, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Reparse(ctx context.Context, actor Actor, id uuid.UUID) (Stored, error)
}

type Options struct {
	MaxBytes      int64
	MinTextChars  int
	MaxConcurrent int64
}

type service struct {
	repo   Repository
	files  FileStore
	parser TextParser
	sem    *semaphore.Weighted
	opts   Options
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates the default implementation.
func NewService(repo Repository, files FileStore, parser TextParser, opts Options, log *slog.Logger) UseCase {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:   repo,
		files:  files,
		parser: parser,
		sem:    semaphore.NewWeighted(opts.MaxConcurrent),
		opts:   opts,
		log:    log.With("component", "resume"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Upload(ctx context.Context, actor Actor, filename, mime string, data []byte) (Stored, error) {
	if !textextract.Supported(filename) {
		return Stored{}, textextract.ErrUnsupportedFormat
	}
	if s.opts.MaxBytes > 0 && int64(len(data)) > s.opts.MaxBytes {
		return Stored{}, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.opts.MaxBytes)
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Stored{}, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer s.sem.Release(1)

	text, err := textextract.Extract(filename, data)
	if err != nil {
		return Stored{}, err
	}
	if err := textextract.CheckLength(text, s.opts.MinTextChars); err != nil {
		return Stored{}, err
	}
	rec := s.parser.Parse(text)

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	ext := strings.ToLower(filepath.Ext(filename))
	uri, err := s.files.Save(ctx, id.String()+ext, data)
	if err != nil {
		return Stored{}, fmt.Errorf("store file: %w", err)
	}
	sum := blake2b.Sum256(data)
	meta := Resume{
		ID:          id,
		OwnerID:     actor.UserID,
		Filename:    filename,
		MimeType:    mime,
		Size:        int64(len(data)),
		StorageURI:  uri,
		ContentHash: hex.EncodeToString(sum[:]),
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, meta); err != nil {
		s.removeFile(ctx, id, uri)
		return Stored{}, fmt.Errorf("save metadata: %w", err)
	}
	if err := s.repo.SaveParsed(ctx, Parsed{ResumeID: id, Text: text, Record: rec, ParsedAt: s.now()}); err != nil {
		// A metadata row without its parsed record would list but never load.
		if _, derr := s.repo.DeleteAny(context.WithoutCancel(ctx), id); derr != nil {
			s.log.WarnContext(ctx, "rollback metadata", "id", id, "err", derr)
		}
		s.removeFile(ctx, id, uri)
		return Stored{}, fmt.Errorf("save parsed: %w", err)
	}
	s.log.InfoContext(ctx, "resume uploaded",
		"id", id, "owner", actor.UserID, "bytes", len(data),
		"experiences", len(rec.Experiences), "education", len(rec.Education),
		"manual_entry", rec.IsEmpty())
	return Stored{Meta: meta, Record: rec, ManualEntry: rec.IsEmpty()}, nil
}

func (s *service) removeFile(ctx context.Context, id uuid.UUID, uri string) {
	if err := s.files.Remove(uri); err != nil {
		s.log.WarnContext(ctx, "remove stored file", "id", id, "err", err)
	}
}

func (s *service) meta(ctx context.Context, actor Actor, id uuid.UUID) (Resume, error) {
	if actor.IsAdmin {
		return s.repo.GetMetaAny(ctx, id)
	}
	return s.repo.GetMetaForOwner(ctx, actor.UserID, id)
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (Stored, error) {
	meta, err := s.meta(ctx, actor, id)
	if err != nil {
		return Stored{}, err
	}
	p, err := s.repo.GetParsed(ctx, id)
	if err != nil {
		return Stored{}, err
	}
	p.Record.Normalize()
	return Stored{Meta: meta, Record: p.Record, ManualEntry: p.Record.IsEmpty()}, nil
}

func (s *service) List(ctx context.Context, actor Actor, limit, offset int) ([]Resume, error) {
	if actor.IsAdmin {
		return s.repo.ListAll(ctx, limit, offset)
	}
	return s.repo.ListByOwner(ctx, actor.UserID, limit, offset)
}

func (s *service) Download(ctx context.Context, actor Actor, id uuid.UUID) (Resume, error) {
	return s.meta(ctx, actor, id)
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	var (
		meta Resume
		err  error
	)
	if actor.IsAdmin {
		meta, err = s.repo.DeleteAny(ctx, id)
	} else {
		meta, err = s.repo.DeleteForOwner(ctx, actor.UserID, id)
	}
	if err != nil {
		return err
	}
	s.removeFile(ctx, id, meta.StorageURI)
	return nil
}

// Reparse runs the parser again over the stored text, e.g. after the
// locale table changed.
func (s *service) Reparse(ctx context.Context, actor Actor, id uuid.UUID) (Stored, error) {
	meta, err := s.meta(ctx, actor, id)
	if err != nil {
		return Stored{}, err
	}
	p, err := s.repo.GetParsed(ctx, id)
	if err != nil {
		return Stored{}, err
	}
	rec := s.parser.Parse(p.Text)
	if err := s.repo.SaveParsed(ctx, Parsed{ResumeID: id, Text: p.Text, Record: rec, ParsedAt: s.now()}); err != nil {
		return Stored{}, fmt.Errorf("save parsed: %w", err)
	}
	return Stored{Meta: meta, Record: rec, ManualEntry: rec.IsEmpty()}, nil
}
