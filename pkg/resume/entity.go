package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/cvpolish/pkg/cvparse"
)

var (
	ErrNotFound = errors.New("resume not found")
	ErrTooLarge = errors.New("file too large")
	ErrBusy     = errors.New("too many uploads in progress")
)

// Resume хранит метаданные загруженного файла.
type Resume struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId,omitempty"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	StorageURI  string    `json:"-"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Parsed хранит извлечённый текст и структурированную запись.
type Parsed struct {
	ResumeID uuid.UUID
	Text     string
	Record   cvparse.Record
	ParsedAt time.Time
}

// Stored is what the service hands back after an upload or lookup.
type Stored struct {
	Meta        Resume         `json:"meta"`
	Record      cvparse.Record `json:"record"`
	ManualEntry bool           `json:"manualEntry"`
}

// Actor is the authenticated caller. Admins see every résumé.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// Repository: порт доступа к резюме.
type Repository interface {
	Create(ctx context.Context, r Resume) error
	SaveParsed(ctx context.Context, p Parsed) error
	GetParsed(ctx context.Context, resumeID uuid.UUID) (Parsed, error)
	// meta
	GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	// admin
	GetMetaAny(ctx context.Context, id uuid.UUID) (Resume, error)
	ListAll(ctx context.Context, limit, offset int) ([]Resume, error)
	// delete (returns deleted meta for file cleanup)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	DeleteAny(ctx context.Context, id uuid.UUID) (Resume, error)
}

// FileStore keeps the original uploaded bytes.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (uri string, err error)
	Remove(uri string) error
}

// TextParser turns extracted text into a record. *cvparse.Parser satisfies it.
type TextParser interface {
	Parse(text string) cvparse.Record
}
